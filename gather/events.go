package gather

import "sync"

// Signal delivers payloads of one event kind to its listeners, synchronously and in registration order
type Signal[T any] struct {
	mux       sync.Mutex
	nextID    int
	listeners []*listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// Connect registers fn and returns a function that unregisters it
func (s *Signal[T]) Connect(fn func(T)) (disconnect func()) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, &listener[T]{id: id, fn: fn})
	return func() {
		s.mux.Lock()
		defer s.mux.Unlock()
		for i, candidate := range s.listeners {
			if candidate.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every listener registered at the time of the call with payload
func (s *Signal[T]) Emit(payload T) {
	s.mux.Lock()
	listeners := append([]*listener[T](nil), s.listeners...)
	s.mux.Unlock()
	for _, l := range listeners {
		l.fn(payload)
	}
}

// Reset is the payload of a log reset
type Reset struct {
	// Executions is the number of executions dropped
	Executions int
}
