package mux

import (
	"sync"

	"github.com/lowvisionlabs/axmux/internal/backend"
	"github.com/lowvisionlabs/axmux/internal/model"
)

// BackendSetEvent describes one enabled-set mutation.
type BackendSetEvent struct {
	Enabled model.BackendSet
	Changed model.Identity
	On      bool
}

// FocusFunc receives unified focus-changed notifications.
type FocusFunc func(backend.FocusEvent)

// SetChangedFunc receives enabled-set-changed notifications.
type SetChangedFunc func(BackendSetEvent)

// subscribers fans dispatcher notifications out to registered callbacks.
// Callbacks run synchronously on the notifying goroutine.
type subscribers struct {
	mu     sync.Mutex
	nextID int
	focus  map[int]FocusFunc
	set    map[int]SetChangedFunc
}

func (s *subscribers) addFocus(fn FocusFunc) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.focus == nil {
		s.focus = make(map[int]FocusFunc)
	}
	id := s.nextID
	s.nextID++
	s.focus[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.focus, id)
		s.mu.Unlock()
	}
}

func (s *subscribers) addSetChanged(fn SetChangedFunc) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set == nil {
		s.set = make(map[int]SetChangedFunc)
	}
	id := s.nextID
	s.nextID++
	s.set[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.set, id)
		s.mu.Unlock()
	}
}

func (s *subscribers) notifyFocus(ev backend.FocusEvent) {
	s.mu.Lock()
	fns := make([]FocusFunc, 0, len(s.focus))
	for _, fn := range s.focus {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (s *subscribers) notifySetChanged(ev BackendSetEvent) {
	s.mu.Lock()
	fns := make([]SetChangedFunc, 0, len(s.set))
	for _, fn := range s.set {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// SubscribeFocus registers a callback for the unified focus-changed
// stream and returns its unsubscribe function.
func (d *Dispatcher) SubscribeFocus(fn FocusFunc) func() {
	return d.subs.addFocus(fn)
}

// SubscribeBackendSet registers a callback for enabled-set changes and
// returns its unsubscribe function.
func (d *Dispatcher) SubscribeBackendSet(fn SetChangedFunc) func() {
	return d.subs.addSetChanged(fn)
}
