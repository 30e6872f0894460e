// sim/simulator.go
package sim

import (
	"container/heap"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// eventEntry wraps an Event with a sequence ID for deterministic FIFO
// tie-breaking when timestamps are equal.
type eventEntry struct {
	event Event
	seqID int64
}

// EventQueue is a min-heap ordered by (Timestamp, seqID).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []eventEntry

func (eq EventQueue) Len() int { return len(eq) }

func (eq EventQueue) Less(i, j int) bool {
	if eq[i].event.Timestamp() != eq[j].event.Timestamp() {
		return eq[i].event.Timestamp() < eq[j].event.Timestamp()
	}
	return eq[i].seqID < eq[j].seqID
}

func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(eventEntry))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds simulation time, the pending event
// queue and the set of live processes.
//
// Thread-safety: the simulator and its processes hand control to each other
// over unbuffered channels, so exactly one of them runs at any moment. Callers
// outside the simulation must not touch it while Run is in progress.
type Simulator struct {
	// Clock is the current simulated time in minutes.
	Clock float64
	// Horizon is the time after which Run stops executing events.
	Horizon float64

	queue   EventQueue
	nextSeq int64
	nextPID int64

	// yield is signalled by the running process when it suspends or exits.
	yield chan struct{}
	live  map[int64]*Process
	// halted is set once Shutdown has started; afterwards no events execute.
	halted bool
}

// NewSimulator creates a simulator at time 0. A non-positive or infinite
// horizon means "run until no events remain".
func NewSimulator(horizon float64) *Simulator {
	if horizon <= 0 {
		horizon = math.Inf(1)
	}
	return &Simulator{
		Clock:   0,
		Horizon: horizon,
		queue:   make(EventQueue, 0),
		yield:   make(chan struct{}),
		live:    make(map[int64]*Process),
	}
}

// Now returns the current simulated time.
func (sim *Simulator) Now() float64 {
	return sim.Clock
}

// Schedule pushes an event into the simulator's EventQueue. Events with equal
// timestamps execute in the order they were scheduled.
func (sim *Simulator) Schedule(ev Event) {
	if ev.Timestamp() < sim.Clock {
		panic("Schedule: event timestamp is in the past")
	}
	heap.Push(&sim.queue, eventEntry{event: ev, seqID: sim.nextSeq})
	sim.nextSeq++
}

// Pending returns the number of events waiting in the queue.
func (sim *Simulator) Pending() int {
	return sim.queue.Len()
}

// Step pops and executes the earliest event. It returns false when the queue
// is empty or the simulator has been shut down.
func (sim *Simulator) Step() bool {
	if sim.halted || sim.queue.Len() == 0 {
		return false
	}
	entry := heap.Pop(&sim.queue).(eventEntry)
	sim.Clock = entry.event.Timestamp()
	logrus.Tracef("[t=%.2f] Executing %T", sim.Clock, entry.event)
	entry.event.Execute(sim)
	return true
}

// RunUntil executes every event whose timestamp is at or before until, then
// advances the clock to until. It may be called repeatedly with increasing
// bounds to observe state between events.
func (sim *Simulator) RunUntil(until float64) {
	for !sim.halted && sim.queue.Len() > 0 {
		if sim.queue[0].event.Timestamp() > until {
			break
		}
		sim.Step()
	}
	if !math.IsInf(until, 1) && until > sim.Clock {
		sim.Clock = until
	}
}

// Run executes events up to the horizon and then shuts the simulator down.
func (sim *Simulator) Run() {
	sim.RunUntil(sim.Horizon)
	logrus.Debugf("[t=%.2f] Simulation ended with %d pending events", sim.Clock, sim.queue.Len())
	sim.Shutdown()
}

// Shutdown unwinds every process that is still suspended, one at a time in
// creation order, so their deferred releases run. No further events execute
// and the simulator cannot be resumed afterwards.
func (sim *Simulator) Shutdown() {
	if sim.halted {
		return
	}
	sim.halted = true
	ids := make([]int64, 0, len(sim.live))
	for id := range sim.live {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		p := sim.live[id]
		if p == nil || !p.started {
			delete(sim.live, id)
			continue
		}
		p.killed = true
		sim.resume(p)
	}
	sim.queue = sim.queue[:0]
}

// Live returns the number of processes that have been spawned and not yet
// finished.
func (sim *Simulator) Live() int {
	return len(sim.live)
}

// resume hands control to p and blocks until p suspends or finishes.
func (sim *Simulator) resume(p *Process) {
	if !p.started {
		p.started = true
		go p.run()
	} else {
		p.resume <- struct{}{}
	}
	<-sim.yield
}
