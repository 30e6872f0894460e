package sim

import "fmt"

// Resource is a capacity-limited pool. Up to Capacity processes may hold a
// unit at once; further acquirers queue and are granted units strictly in the
// order they started waiting.
type Resource struct {
	Name string

	sim      *Simulator
	capacity int
	users    int
	peak     int
	waiters  []*Process
}

// NewResource creates a resource with the given capacity (must be > 0).
func NewResource(sim *Simulator, name string, capacity int) *Resource {
	if capacity < 1 {
		panic(fmt.Sprintf("NewResource: capacity of %q must be positive, got %d", name, capacity))
	}
	return &Resource{Name: name, sim: sim, capacity: capacity}
}

// Capacity returns the number of units in the pool.
func (r *Resource) Capacity() int { return r.capacity }

// Count returns the number of units currently held.
func (r *Resource) Count() int { return r.users }

// Peak returns the highest number of units ever held at once.
func (r *Resource) Peak() int { return r.peak }

// QueueLen returns the number of processes waiting for a unit.
func (r *Resource) QueueLen() int { return len(r.waiters) }

// Acquire blocks p until a unit is granted.
func (r *Resource) Acquire(p *Process) {
	if r.users < r.capacity && len(r.waiters) == 0 {
		r.grant()
		return
	}
	r.waiters = append(r.waiters, p)
	defer r.dropWaiter(p)
	p.park()
}

// dropWaiter removes p from the wait list if it is still queued, which only
// happens when p is unwound by Shutdown before being granted a unit.
func (r *Resource) dropWaiter(p *Process) {
	for i, w := range r.waiters {
		if w == p {
			r.waiters = append(r.waiters[:i], r.waiters[i+1:]...)
			return
		}
	}
}

// Release returns a unit. If processes are waiting, the unit passes directly
// to the longest waiter, which resumes at the current time. After Shutdown the
// unit simply returns to the pool.
func (r *Resource) Release() {
	if r.users == 0 {
		panic(fmt.Sprintf("Release: %q released with no holder", r.Name))
	}
	if len(r.waiters) > 0 && !r.sim.halted {
		next := r.waiters[0]
		r.waiters = r.waiters[1:]
		next.wake()
		return
	}
	r.users--
}

// Use holds a unit for the duration of fn. The unit is released on every
// exit path of fn, including a panic or process shutdown.
func (r *Resource) Use(p *Process, fn func()) {
	r.Acquire(p)
	defer r.Release()
	fn()
}

func (r *Resource) grant() {
	r.users++
	if r.users > r.capacity {
		panic(fmt.Sprintf("Resource %q: %d holders exceed capacity %d", r.Name, r.users, r.capacity))
	}
	if r.users > r.peak {
		r.peak = r.users
	}
}

func (r *Resource) String() string {
	return fmt.Sprintf("%s[%d/%d, %d waiting]", r.Name, r.users, r.capacity, len(r.waiters))
}
