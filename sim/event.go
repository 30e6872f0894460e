package sim

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in simulated minutes) and an Execute
// method that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// ResumeEvent wakes a suspended process. It is used both for the first start
// of a process and for every timed wait or hand-off that completes.
type ResumeEvent struct {
	time float64
	proc *Process
}

// Timestamp returns the scheduled time of the ResumeEvent.
func (e *ResumeEvent) Timestamp() float64 {
	return e.time
}

// Execute resumes the process until its next suspension point.
func (e *ResumeEvent) Execute(sim *Simulator) {
	if e.proc.done {
		return
	}
	sim.resume(e.proc)
}

// FuncEvent runs a plain callback at a fixed time without a process.
type FuncEvent struct {
	time float64
	fn   func(*Simulator)
}

// NewFuncEvent creates a FuncEvent firing at the given time.
func NewFuncEvent(time float64, fn func(*Simulator)) *FuncEvent {
	return &FuncEvent{time: time, fn: fn}
}

// Timestamp returns the scheduled time of the FuncEvent.
func (e *FuncEvent) Timestamp() float64 {
	return e.time
}

// Execute invokes the callback.
func (e *FuncEvent) Execute(sim *Simulator) {
	e.fn(sim)
}
