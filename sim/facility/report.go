package facility

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Report summarizes one finished run for end-of-run output.
type Report struct {
	Seed       int64   `json:"seed"`
	Clock      float64 `json:"clock"`
	Delivered  int     `json:"delivered"`
	Completed  int     `json:"completed"`
	InProgress int     `json:"in_progress"`
	Dropped    int     `json:"dropped"`

	TurnaroundMean float64 `json:"turnaround_mean"`
	TurnaroundP50  float64 `json:"turnaround_p50"`
	TurnaroundP95  float64 `json:"turnaround_p95"`

	CompletedByType map[string]int `json:"completed_by_type"`

	PeakWashers      int     `json:"peak_washers"`
	PeakDryers       int     `json:"peak_dryers"`
	PeakSpecialDryer int     `json:"peak_special_dryer"`
	DetergentOrders  int     `json:"detergent_orders"`
	DetergentStock   float64 `json:"detergent_stock"`
}

// Report builds the summary of the facility's state at the current clock.
func (f *Facility) Report() Report {
	r := Report{
		Seed:             int64(f.env.RNG.Key()),
		Clock:            f.env.Now(),
		Delivered:        f.WashQ.Puts(),
		Completed:        len(f.completed),
		InProgress:       f.InProgress(),
		Dropped:          f.dropped,
		CompletedByType:  make(map[string]int),
		PeakWashers:      f.Washers.Peak(),
		PeakDryers:       f.Dryers.Peak(),
		PeakSpecialDryer: f.SpecialDryer.Peak(),
		DetergentOrders:  f.Detergent.Orders(),
		DetergentStock:   f.Detergent.Stock(),
	}
	if len(f.completed) == 0 {
		return r
	}

	turnaround := make([]float64, len(f.completed))
	for i, c := range f.completed {
		turnaround[i] = c.Turnaround()
		r.CompletedByType[c.Load.Type]++
	}
	sort.Float64s(turnaround)
	r.TurnaroundMean = stat.Mean(turnaround, nil)
	r.TurnaroundP50 = stat.Quantile(0.5, stat.Empirical, turnaround, nil)
	r.TurnaroundP95 = stat.Quantile(0.95, stat.Empirical, turnaround, nil)
	return r
}

// Print writes the report in human-readable form.
func (r Report) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Laundry Simulation Report ===")
	fmt.Fprintf(w, "Seed                 : %d\n", r.Seed)
	fmt.Fprintf(w, "Simulated minutes    : %.0f\n", r.Clock)
	fmt.Fprintf(w, "Baskets delivered    : %d\n", r.Delivered)
	fmt.Fprintf(w, "Baskets completed    : %d\n", r.Completed)
	fmt.Fprintf(w, "Baskets in progress  : %d\n", r.InProgress)
	if r.Dropped > 0 {
		fmt.Fprintf(w, "Baskets dropped      : %d\n", r.Dropped)
	}
	if r.Completed > 0 {
		fmt.Fprintf(w, "Turnaround mean      : %.1f min\n", r.TurnaroundMean)
		fmt.Fprintf(w, "Turnaround p50 / p95 : %.1f / %.1f min\n", r.TurnaroundP50, r.TurnaroundP95)
		names := make([]string, 0, len(r.CompletedByType))
		for name := range r.CompletedByType {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %-18s : %d\n", name, r.CompletedByType[name])
		}
	}
	fmt.Fprintf(w, "Peak machines in use : washers %d, dryers %d, special dryer %d\n",
		r.PeakWashers, r.PeakDryers, r.PeakSpecialDryer)
	fmt.Fprintf(w, "Detergent            : %d orders, %.0fg in stock\n", r.DetergentOrders, r.DetergentStock)
}
