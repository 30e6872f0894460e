package sim

import (
	"fmt"
	"math"
	"runtime"
)

// Process is a cooperative task. Its body runs on its own goroutine but only
// while the simulator has handed it control; it gives control back at every
// suspension point (Wait, Resource.Acquire, Store.Get) and when it returns.
type Process struct {
	ID   int64
	Name string

	sim     *Simulator
	body    func(*Process)
	resume  chan struct{}
	started bool
	done    bool
	killed  bool
}

// Spawn creates a process and schedules its start at the current time.
// Processes spawned in the same instant start in spawn order.
func (sim *Simulator) Spawn(name string, body func(*Process)) *Process {
	if body == nil {
		panic("Spawn: body must not be nil")
	}
	p := &Process{
		ID:     sim.nextPID,
		Name:   name,
		sim:    sim,
		body:   body,
		resume: make(chan struct{}),
	}
	sim.nextPID++
	sim.live[p.ID] = p
	sim.Schedule(&ResumeEvent{time: sim.Clock, proc: p})
	return p
}

// Sim returns the simulator that owns the process.
func (p *Process) Sim() *Simulator {
	return p.sim
}

// Now returns the current simulated time.
func (p *Process) Now() float64 {
	return p.sim.Clock
}

// Done reports whether the process body has returned.
func (p *Process) Done() bool {
	return p.done
}

func (p *Process) String() string {
	return fmt.Sprintf("%s#%d", p.Name, p.ID)
}

// Wait suspends the process for d minutes. A zero wait still yields, so other
// processes scheduled for the same instant run first.
func (p *Process) Wait(d float64) {
	if d < 0 || math.IsNaN(d) {
		panic(fmt.Sprintf("Wait: invalid duration %v for %s", d, p))
	}
	p.sim.Schedule(&ResumeEvent{time: p.sim.Clock + d, proc: p})
	p.park()
}

// WaitUntil suspends the process until the absolute instant t, which must
// not be in the past.
func (p *Process) WaitUntil(t float64) {
	if t < p.sim.Clock || math.IsNaN(t) {
		panic(fmt.Sprintf("WaitUntil: instant %v is before now (%v) for %s", t, p.sim.Clock, p))
	}
	p.sim.Schedule(&ResumeEvent{time: t, proc: p})
	p.park()
}

// park hands control back to the simulator and blocks until resumed.
// Whoever calls park must have arranged for a ResumeEvent to be scheduled
// eventually, either directly or by registering as a waiter.
func (p *Process) park() {
	p.sim.yield <- struct{}{}
	<-p.resume
	if p.killed {
		runtime.Goexit()
	}
}

// wake schedules p to resume at the current time.
func (p *Process) wake() {
	p.sim.Schedule(&ResumeEvent{time: p.sim.Clock, proc: p})
}

func (p *Process) run() {
	defer func() {
		p.done = true
		delete(p.sim.live, p.ID)
		p.sim.yield <- struct{}{}
	}()
	p.body(p)
}
