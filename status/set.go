package status

import "sync"

// Set is a keyed collection of telemetry cells of type T
// Cells are allocated on first Get and never removed, so callers cache the pointer
// and write to it without touching the set again
type Set[T any] struct {
	mu    sync.RWMutex
	cells map[string]*T
	order []string
}

func newSet[T any]() *Set[T] {
	return &Set[T]{cells: make(map[string]*T)}
}

// Get returns the cell for key, allocating it on first use
func (s *Set[T]) Get(key string) *T {
	s.mu.RLock()
	cell, ok := s.cells[key]
	s.mu.RUnlock()
	if ok {
		return cell
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cell, ok := s.cells[key]; ok {
		return cell
	}
	cell = new(T)
	s.cells[key] = cell
	s.order = append(s.order, key)
	return cell
}

// Has reports whether key was ever registered
func (s *Set[T]) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.cells[key]
	return ok
}

// Range visits cells in registration order
func (s *Set[T]) Range(fn func(key string, cell *T)) {
	s.mu.RLock()
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	s.mu.RUnlock()

	for _, k := range keys {
		fn(k, s.Get(k))
	}
}

// Len returns the number of registered cells
func (s *Set[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
