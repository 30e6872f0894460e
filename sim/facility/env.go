package facility

import (
	"github.com/laundry-sim/laundry-sim/sim"
	"github.com/laundry-sim/laundry-sim/sim/calendar"
	"github.com/laundry-sim/laundry-sim/sim/trace"
)

// Env is the simulation context shared by every facility component: the
// clock, the business calendar, the RNG partitions and the observers. Each
// run builds its own Env, so independent simulations never share state.
type Env struct {
	Sim      *sim.Simulator
	Calendar calendar.Calendar
	RNG      *sim.PartitionedRNG
	Metrics  *Metrics
	Trace    *trace.SimulationTrace // nil disables tracing
}

// NewEnv creates an Env with a fresh simulator and metrics registry.
func NewEnv(horizon float64, seed int64, cal calendar.Calendar) *Env {
	return &Env{
		Sim:      sim.NewSimulator(horizon),
		Calendar: cal,
		RNG:      sim.NewPartitionedRNG(sim.NewSimulationKey(seed)),
		Metrics:  NewMetrics(),
	}
}

// Now returns the current simulated time.
func (env *Env) Now() float64 {
	return env.Sim.Now()
}

// Stamp returns the current time formatted for log lines.
func (env *Env) Stamp() string {
	return calendar.FormatTime(env.Sim.Now())
}
