// Package browse wires user intent to the state store: filter edits trigger a
// fresh load, and reaching the end of the list loads the next page.
package browse

import (
	"sync"

	"github.com/MrJJimenez/jobboard/internal/state"
)

// Session is the orchestration layer between a renderer and a Store.
type Session struct {
	store *state.Store

	mu      sync.Mutex
	nearEnd bool
	last    <-chan struct{}
}

func New(store *state.Store) *Session {
	return &Session{store: store}
}

func (s *Session) Store() *state.Store {
	return s.store
}

// Start performs the initial load for the current filter.
func (s *Session) Start() {
	s.track(s.store.LoadInitial())
}

// Apply updates one filter dimension and reloads when the filter actually
// changed. Experience and salary keep only the most recent value.
func (s *Session) Apply(dim state.Dimension, values []string) (bool, error) {
	if dim == state.DimExperience || dim == state.DimSalary {
		values = ClampLast(values)
	}
	changed, err := s.store.SetFilter(dim, values)
	if err != nil || !changed {
		return changed, err
	}
	s.track(s.store.LoadInitial())
	return true, nil
}

// Reset clears every filter and reloads when anything was set.
func (s *Session) Reset() bool {
	if !s.store.ResetFilters() {
		return false
	}
	s.track(s.store.LoadInitial())
	return true
}

// NearEnd receives the "end of list visible" signal. Only a transition from
// not visible to visible asks for more.
func (s *Session) NearEnd(visible bool) bool {
	s.mu.Lock()
	rising := visible && !s.nearEnd
	s.nearEnd = visible
	s.mu.Unlock()

	if !rising {
		return false
	}
	done, ok := s.store.LoadMore()
	if ok {
		s.track(done)
	}
	return ok
}

// Wait blocks until the most recently issued fetch settles.
func (s *Session) Wait() {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()
	if last != nil {
		<-last
	}
}

func (s *Session) track(done <-chan struct{}) {
	s.mu.Lock()
	s.last = done
	s.mu.Unlock()
}

// ClampLast keeps only the last value, mirroring single-choice pickers.
func ClampLast[T any](values []T) []T {
	if len(values) == 0 {
		return values
	}
	return []T{values[len(values)-1]}
}
