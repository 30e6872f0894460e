package facility

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	simtest "github.com/laundry-sim/laundry-sim/sim/internal/testutil"
	"github.com/laundry-sim/laundry-sim/sim/workload"
)

func TestFacility_Report_SummarizesCompletedLoads(t *testing.T) {
	// GIVEN two loads finished with known turnarounds
	env, f := newTestFacility(t, fixedConfig())
	deliverAt(env, f, at(0, 9, 0),
		workload.NewLoad(1, 10001, workload.TypeBoilWash, 0),
		workload.NewLoad(2, 20001, workload.TypeWool, 0))
	env.Sim.RunUntil(at(0, 12, 0))

	// WHEN the report is built
	r := f.Report()

	// THEN counts and turnaround statistics reflect both loads
	assert.Equal(t, int64(42), r.Seed)
	assert.Equal(t, 2, r.Delivered)
	assert.Equal(t, 2, r.Completed)
	assert.Equal(t, 0, r.InProgress)
	simtest.AssertFloat64Equal(t, "turnaround mean", (176.0+75.0)/2, r.TurnaroundMean, 1e-12)
	assert.Equal(t, 75.0, r.TurnaroundP50)
	assert.Equal(t, 176.0, r.TurnaroundP95)
	assert.Equal(t, map[string]int{workload.TypeBoilWash: 1, workload.TypeWool: 1}, r.CompletedByType)
	assert.Equal(t, 2, r.PeakWashers)
	assert.Equal(t, 1, r.PeakSpecialDryer)
	assert.Equal(t, 960.0, r.DetergentStock)
}

func TestReport_Print(t *testing.T) {
	r := Report{
		Seed:            7,
		Clock:           2700,
		Delivered:       3,
		Completed:       2,
		InProgress:      1,
		TurnaroundMean:  120,
		TurnaroundP50:   100,
		TurnaroundP95:   140,
		CompletedByType: map[string]int{"Wool": 1, "Boil-wash": 1},
		DetergentOrders: 1,
		DetergentStock:  500,
	}
	var buf bytes.Buffer
	r.Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "Baskets completed    : 2")
	assert.Contains(t, out, "Turnaround p50 / p95 : 100.0 / 140.0 min")
	assert.Contains(t, out, "1 orders, 500g in stock")
	assert.NotContains(t, out, "dropped")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Boil-wash")), bytes.Index(buf.Bytes(), []byte("Wool")))
}

func TestReport_Empty(t *testing.T) {
	_, f := newTestFacility(t, fixedConfig())
	r := f.Report()
	assert.Zero(t, r.Completed)
	assert.Zero(t, r.TurnaroundMean)
	assert.Empty(t, r.CompletedByType)
}
