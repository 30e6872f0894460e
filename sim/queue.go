// Implements the Store, an unbounded FIFO hand-off queue between processes.
// Items are put by producers and taken by consumer processes that block while
// the store is empty.

package sim

import (
	"fmt"
	"strings"
)

type storeGetter[T any] struct {
	proc *Process
	item T
}

// Store is an unbounded FIFO queue. Put never blocks; Get suspends the caller
// until an item is available. Blocked getters are served in the order they
// started waiting, and items leave in the order they were put.
type Store[T any] struct {
	Name string

	sim     *Simulator
	items   []T
	getters []*storeGetter[T]
	puts    int
}

// NewStore creates an empty store.
func NewStore[T any](sim *Simulator, name string) *Store[T] {
	return &Store[T]{Name: name, sim: sim}
}

// Put adds an item to the back of the store, or hands it straight to the
// longest-waiting getter.
func (s *Store[T]) Put(item T) {
	s.puts++
	if len(s.getters) > 0 {
		g := s.getters[0]
		s.getters = s.getters[1:]
		g.item = item
		g.proc.wake()
		return
	}
	s.items = append(s.items, item)
}

// Get removes and returns the item at the front of the store, blocking p
// while the store is empty.
func (s *Store[T]) Get(p *Process) T {
	if len(s.items) > 0 && len(s.getters) == 0 {
		item := s.items[0]
		s.items = s.items[1:]
		return item
	}
	g := &storeGetter[T]{proc: p}
	s.getters = append(s.getters, g)
	defer s.dropGetter(g)
	p.park()
	return g.item
}

// dropGetter removes g from the getter list if it is still queued.
func (s *Store[T]) dropGetter(g *storeGetter[T]) {
	for i, w := range s.getters {
		if w == g {
			s.getters = append(s.getters[:i], s.getters[i+1:]...)
			return
		}
	}
}

// Len returns the number of items waiting in the store.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// Puts returns the total number of items ever put.
func (s *Store[T]) Puts() int {
	return s.puts
}

// Waiting returns the number of processes blocked in Get.
func (s *Store[T]) Waiting() int {
	return len(s.getters)
}

func (s *Store[T]) String() string {
	var sb strings.Builder
	sb.WriteString(s.Name)
	sb.WriteString("[")
	for i, val := range s.items {
		sb.WriteString(fmt.Sprint(val))
		if i < len(s.items)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
