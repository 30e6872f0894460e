package facility

import (
	"github.com/sirupsen/logrus"

	"github.com/laundry-sim/laundry-sim/sim"
	"github.com/laundry-sim/laundry-sim/sim/calendar"
	"github.com/laundry-sim/laundry-sim/sim/trace"
)

// PresenceState is an employee's position in the daily presence cycle.
type PresenceState int

const (
	StateNotYetArrived PresenceState = iota
	StateAvailable
	StateOnBreak
	StateDeparted
)

func (s PresenceState) String() string {
	switch s {
	case StateNotYetArrived:
		return "not-yet-arrived"
	case StateAvailable:
		return "available"
	case StateOnBreak:
		return "on-break"
	case StateDeparted:
		return "departed"
	default:
		return "unknown"
	}
}

// Employee is a member of staff. Presence is driven by the calendar alone;
// Task tracks whether the employee is currently assigned to a load.
type Employee struct {
	Name       string
	BreakStart float64 // minute of day
	// Task is held by a worker for the length of a loading or ironing job.
	Task *sim.Resource

	env      *Env
	breakLen float64
	state    PresenceState
}

// NewEmployee creates an employee and starts the presence process.
func NewEmployee(env *Env, cfg EmployeeConfig, breakMinutes float64) *Employee {
	e := &Employee{
		Name:       cfg.Name,
		BreakStart: cfg.BreakStart,
		Task:       sim.NewResource(env.Sim, cfg.Name, 1),
		env:        env,
		breakLen:   breakMinutes,
		state:      StateNotYetArrived,
	}
	env.Sim.Spawn("presence:"+cfg.Name, e.presence)
	return e
}

// Available reports whether the employee is present and not on break.
func (e *Employee) Available() bool {
	return e.state == StateAvailable
}

// State returns the current presence state.
func (e *Employee) State() PresenceState {
	return e.state
}

// Free reports whether the employee can take a new task right now.
func (e *Employee) Free() bool {
	return e.Available() && e.Task.Count() == 0
}

func (e *Employee) setState(s PresenceState) {
	if e.state == s {
		return
	}
	e.state = s
	e.env.Trace.RecordPresence(trace.PresenceRecord{Employee: e.Name, State: s.String(), Clock: e.env.Now()})
}

// presence runs the daily cycle: arrive at opening, take the break, leave at
// closing. Closed days are skipped without any transition.
func (e *Employee) presence(p *sim.Process) {
	cal := e.env.Calendar
	for {
		if open := cal.NextOpening(p.Now()); open > p.Now() {
			if cal.SpansClosedDay(p.Now(), open) {
				logrus.Infof("[%s] %s skips the weekend", e.env.Stamp(), e.Name)
			}
			calendar.WaitUntil(p, open)
		}

		day := calendar.Day(p.Now())
		e.setState(StateAvailable)
		logrus.Debugf("[%s] %s arrives", e.env.Stamp(), e.Name)

		breakAt := calendar.DayStart(day) + e.BreakStart
		if e.breakLen > 0 && p.Now() < breakAt+e.breakLen && breakAt < cal.ClosingOf(day) {
			calendar.WaitUntil(p, breakAt)
			e.setState(StateOnBreak)
			logrus.Infof("[%s] %s is on break", e.env.Stamp(), e.Name)
			cal.Wait(p, e.breakLen)
			e.setState(StateAvailable)
			logrus.Infof("[%s] %s returns from break", e.env.Stamp(), e.Name)
			// A break that ran past closing ends on a later day, which still
			// has its own break to take.
			if calendar.Day(p.Now()) != day {
				continue
			}
		}

		calendar.WaitUntil(p, cal.Closing(p.Now()))
		e.setState(StateDeparted)
		logrus.Debugf("[%s] %s leaves for the day", e.env.Stamp(), e.Name)
	}
}
