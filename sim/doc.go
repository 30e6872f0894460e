// Package sim provides the core discrete-event simulation kernel for the
// laundry facility simulator.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - simulator.go: the clock, the event heap and the Run loop
//   - process.go: cooperative processes and timed waits
//   - resource.go: capacity-limited pools with FIFO waiters
//   - queue.go: unbounded FIFO stores used as hand-off queues
//
// # Execution model
//
// Every process body runs on its own goroutine, but the simulator hands
// control to exactly one of them at a time and waits for it to suspend.
// State shared between processes therefore needs no locking. Events with the
// same timestamp resume in the order they were scheduled.
//
// # Sub-packages
//   - sim/calendar/: business hours, weekend closure and calendar-aware waits
//   - sim/workload/: duration descriptors, laundry types and client arrivals
//   - sim/facility/: employees, detergent stock and the stage pipeline
//   - sim/trace/: stage visit records
package sim
