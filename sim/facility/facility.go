// Package facility assembles the laundry: machine pools, staff, detergent
// stock and the four stage queues with their dispatchers.
package facility

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/laundry-sim/laundry-sim/sim"
	"github.com/laundry-sim/laundry-sim/sim/workload"
)

// Completion records a load that left the facility.
type Completion struct {
	Load     *workload.Load
	Finished float64
}

// Turnaround returns the minutes between delivery and completion.
func (c Completion) Turnaround() float64 {
	return c.Finished - c.Load.ArrivalTime
}

// Facility owns every resource, queue and employee of one simulation run.
type Facility struct {
	Washers      *sim.Resource
	Dryers       *sim.Resource
	SpecialDryer *sim.Resource
	Employees    []*Employee
	Detergent    *DetergentManager

	WashQ       *sim.Store[*workload.Load]
	DryQ        *sim.Store[*workload.Load]
	SpecialDryQ *sim.Store[*workload.Load]
	IronQ       *sim.Store[*workload.Load]

	env       *Env
	cfg       Config
	types     *workload.TypeTable
	durations *rand.Rand
	completed []Completion
	dropped   int
}

// New validates cfg, builds the facility on env and starts the employee and
// dispatcher processes. Nothing runs until the simulator is stepped.
func New(env *Env, cfg Config) (*Facility, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid facility config: %w", err)
	}
	types, err := workload.NewTypeTable(cfg.Types)
	if err != nil {
		return nil, fmt.Errorf("invalid laundry types: %w", err)
	}

	f := &Facility{
		Washers:      sim.NewResource(env.Sim, "washers", cfg.Washers),
		Dryers:       sim.NewResource(env.Sim, "dryers", cfg.Dryers),
		SpecialDryer: sim.NewResource(env.Sim, "special-dryer", cfg.SpecialDryers),
		Detergent:    NewDetergentManager(env, cfg.Detergent),
		WashQ:        sim.NewStore[*workload.Load](env.Sim, "wash"),
		DryQ:         sim.NewStore[*workload.Load](env.Sim, "dry"),
		SpecialDryQ:  sim.NewStore[*workload.Load](env.Sim, "special-dry"),
		IronQ:        sim.NewStore[*workload.Load](env.Sim, "iron"),
		env:          env,
		cfg:          cfg,
		types:        types,
		durations:    env.RNG.ForSubsystem(sim.SubsystemDurations),
	}
	for _, ec := range cfg.Employees {
		f.Employees = append(f.Employees, NewEmployee(env, ec, cfg.BreakMinutes))
	}

	f.dispatch(f.WashQ, f.washing)
	f.dispatch(f.DryQ, func(p *sim.Process, load *workload.Load) { f.drying(p, load, false) })
	f.dispatch(f.SpecialDryQ, func(p *sim.Process, load *workload.Load) { f.drying(p, load, true) })
	f.dispatch(f.IronQ, f.ironing)

	logrus.Debugf("Facility ready: %s %s %s, %d employees",
		f.Washers, f.Dryers, f.SpecialDryer, len(f.Employees))
	return f, nil
}

// Types returns the facility's laundry type table.
func (f *Facility) Types() *workload.TypeTable {
	return f.types
}

// Enqueue delivers a load to the wash queue. It never blocks.
func (f *Facility) Enqueue(load *workload.Load) {
	f.env.Metrics.RecordEnqueue(fmt.Sprint(load.ClientID))
	logrus.Debugf("[%s] %s enters the wash queue", f.env.Stamp(), load)
	f.WashQ.Put(load)
}

// FreeEmployee returns the first employee, in roster order, who is present
// and not working on a task, or nil if there is none.
func (f *Facility) FreeEmployee() *Employee {
	for _, e := range f.Employees {
		if e.Free() {
			return e
		}
	}
	return nil
}

// Completed returns the loads that have left the facility, in completion order.
func (f *Facility) Completed() []Completion {
	return f.completed
}

// Dropped returns the number of loads discarded because their type was unknown.
func (f *Facility) Dropped() int {
	return f.dropped
}

// InProgress returns the number of delivered loads that have neither
// completed nor been dropped.
func (f *Facility) InProgress() int {
	return f.WashQ.Puts() - len(f.completed) - f.dropped
}

// awaitEmployee polls until an employee is free, waiting one poll interval
// through the calendar between attempts, and returns with that employee's
// task unit held.
func (f *Facility) awaitEmployee(p *sim.Process) *Employee {
	for {
		if e := f.FreeEmployee(); e != nil {
			e.Task.Acquire(p)
			return e
		}
		f.env.Metrics.RecordPollRetry()
		f.env.Calendar.Wait(p, f.cfg.PollInterval)
	}
}

// dispatch starts the dispatcher for q: take a load, spawn its worker, repeat.
func (f *Facility) dispatch(q *sim.Store[*workload.Load], work func(*sim.Process, *workload.Load)) {
	f.env.Sim.Spawn("dispatch:"+q.Name, func(p *sim.Process) {
		for {
			load := q.Get(p)
			f.env.Sim.Spawn(fmt.Sprintf("%s:%d", q.Name, load.BasketID), func(wp *sim.Process) {
				work(wp, load)
			})
		}
	})
}
