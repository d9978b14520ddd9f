package portal

import "sync/atomic"

var stateSeq atomic.Uint64

// StateHandle is a typed slot of page-local state kept per tab, such as a
// cached list the page filters without refetching.
type StateHandle[T any] struct {
	id      uint64
	initial T
}

func State[T any](initial T) *StateHandle[T] {
	return &StateHandle[T]{
		id:      stateSeq.Add(1),
		initial: initial,
	}
}

func (s *StateHandle[T]) Get(c *Context) T {
	if c == nil || c.tab == nil {
		return s.initial
	}
	c.tab.mu.Lock()
	defer c.tab.mu.Unlock()
	if val, ok := c.tab.state[s.id]; ok {
		return val.(T)
	}
	return s.initial
}

func (s *StateHandle[T]) Set(c *Context, value T) {
	if c == nil || c.tab == nil {
		return
	}
	c.tab.mu.Lock()
	defer c.tab.mu.Unlock()
	c.tab.state[s.id] = value
}

// Reset drops the tab's value so Get returns the initial one again.
func (s *StateHandle[T]) Reset(c *Context) {
	if c == nil || c.tab == nil {
		return
	}
	c.tab.mu.Lock()
	defer c.tab.mu.Unlock()
	delete(c.tab.state, s.id)
}
