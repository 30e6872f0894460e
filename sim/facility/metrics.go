package facility

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the facility's Prometheus collectors. Each Metrics owns its
// registry so parallel replications never collide on registration.
type Metrics struct {
	Registry *prometheus.Registry

	loadsEnqueued  *prometheus.CounterVec
	loadsCompleted prometheus.Counter
	stageCompleted *prometheus.CounterVec
	employeePolls  prometheus.Counter
	restocks       prometheus.Counter
	detergentStock prometheus.Gauge
	turnaround     prometheus.Histogram
}

// NewMetrics creates and registers the facility collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		loadsEnqueued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "laundry_loads_enqueued_total",
			Help: "Total number of loads delivered to the wash queue",
		}, []string{"client"}),
		loadsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "laundry_loads_completed_total",
			Help: "Total number of loads that left the facility",
		}),
		stageCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "laundry_stage_completed_total",
			Help: "Total number of completed stage visits",
		}, []string{"stage"}),
		employeePolls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "laundry_employee_poll_retries_total",
			Help: "Total number of free-employee checks that found nobody",
		}),
		restocks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "laundry_detergent_restocks_total",
			Help: "Total number of detergent packs ordered",
		}),
		detergentStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "laundry_detergent_stock_grams",
			Help: "Current detergent stock in grams",
		}),
		turnaround: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "laundry_load_turnaround_minutes",
			Help:    "Simulated minutes from delivery to leaving the facility",
			Buckets: prometheus.LinearBuckets(60, 60, 24),
		}),
	}

	m.Registry.MustRegister(
		m.loadsEnqueued,
		m.loadsCompleted,
		m.stageCompleted,
		m.employeePolls,
		m.restocks,
		m.detergentStock,
		m.turnaround,
	)
	return m
}

// RecordEnqueue counts a delivered load.
func (m *Metrics) RecordEnqueue(client string) {
	m.loadsEnqueued.WithLabelValues(client).Inc()
}

// RecordStage counts a completed stage visit.
func (m *Metrics) RecordStage(stage string) {
	m.stageCompleted.WithLabelValues(stage).Inc()
}

// RecordCompleted counts a load leaving the facility.
func (m *Metrics) RecordCompleted(turnaround float64) {
	m.loadsCompleted.Inc()
	m.turnaround.Observe(turnaround)
}

// RecordPollRetry counts a free-employee check that found nobody.
func (m *Metrics) RecordPollRetry() {
	m.employeePolls.Inc()
}

// RecordRestock counts a detergent order.
func (m *Metrics) RecordRestock() {
	m.restocks.Inc()
}

// SetDetergentStock updates the stock gauge.
func (m *Metrics) SetDetergentStock(grams float64) {
	m.detergentStock.Set(grams)
}
