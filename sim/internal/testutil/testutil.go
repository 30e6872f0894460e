// Package testutil provides shared test infrastructure for the laundry
// simulator: clock helpers, a deterministic laundry type table and float
// assertions used across sim/ test packages.
package testutil

import (
	"math"
	"testing"

	"github.com/laundry-sim/laundry-sim/sim/workload"
)

// At returns the simulated instant of hh:mm on the given zero-based day,
// where day 0 is a Monday.
func At(day, hh, mm int) float64 {
	return float64(day*24*60 + hh*60 + mm)
}

// FixedLaundryTypes returns the standard type mix and routing with every
// duration pinned to a constant, so stage timings are exact:
//
//	Boil-wash      wash 90, dry 60, ironed
//	Colored wash   wash 60, dry 40, ironed
//	Delicate wash  wash 50, dry 50
//	Wool           wash 30, special dry 35
func FixedLaundryTypes() []workload.LaundryType {
	fixed := func(v float64) workload.DurationSampler { return workload.FixedDuration{Value: v} }
	return []workload.LaundryType{
		{Name: workload.TypeBoilWash, Share: 0.4, Washing: fixed(90), Dryer: workload.DryerStandard, Drying: fixed(60), Ironing: true},
		{Name: workload.TypeColored, Share: 0.3, Washing: fixed(60), Dryer: workload.DryerStandard, Drying: fixed(40), Ironing: true},
		{Name: workload.TypeDelicate, Share: 0.2, Washing: fixed(50), Dryer: workload.DryerStandard, Drying: fixed(50), Ironing: false},
		{Name: workload.TypeWool, Share: 0.1, Washing: fixed(30), Dryer: workload.DryerSpecial, Drying: fixed(35), Ironing: false},
	}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
