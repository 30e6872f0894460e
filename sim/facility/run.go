package facility

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/laundry-sim/laundry-sim/sim"
	"github.com/laundry-sim/laundry-sim/sim/trace"
	"github.com/laundry-sim/laundry-sim/sim/workload"
)

// Run is one independent simulation: its own Env, facility and client
// arrival processes. Runs share nothing, so several may execute in parallel.
type Run struct {
	Env      *Env
	Facility *Facility
	Arrivals *workload.Arrivals
}

// NewRun wires a facility and both clients onto a fresh Env. Employees and
// clients never stop on their own, so the horizon must be finite.
func NewRun(cfg Config, seed int64, horizon float64, level trace.TraceLevel) (*Run, error) {
	if !(horizon > 0) || math.IsInf(horizon, 1) {
		return nil, fmt.Errorf("horizon must be a positive number of minutes, got %v", horizon)
	}
	env := NewEnv(horizon, seed, cfg.Calendar)
	if level != trace.TraceLevelNone && level != "" {
		env.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: level})
	}

	f, err := New(env, cfg)
	if err != nil {
		return nil, err
	}

	src := env.RNG.ForSubsystem(sim.SubsystemArrivals)
	chooser, err := workload.NewTypeChooser(f.Types(), src)
	if err != nil {
		return nil, fmt.Errorf("laundry type mix: %w", err)
	}
	arrivals := &workload.Arrivals{
		Calendar: cfg.Calendar,
		Sink:     f,
		Chooser:  chooser,
		RNG:      src,
	}
	arrivals.Start(env.Sim)

	return &Run{Env: env, Facility: f, Arrivals: arrivals}, nil
}

// Execute runs the simulation to its horizon, stops every remaining process
// and returns the end-of-run report.
func (r *Run) Execute() Report {
	logrus.Infof("Starting simulation (seed %d, horizon %v min)", r.Env.RNG.Key(), r.Env.Sim.Horizon)
	r.Env.Sim.Run()
	report := r.Facility.Report()
	logrus.Infof("Simulation finished at %s: %d/%d baskets completed",
		r.Env.Stamp(), report.Completed, report.Delivered)
	return report
}
