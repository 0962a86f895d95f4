// Package nutrition implements the time-keyed associative store that feeds
// burst detection (spec.md section 4.3), grounded on
// original_source/lib/tdt/nutrition/tests/test_memory_nutrition_store.py —
// memory_nutrition_store.py itself was filtered out of the retrieval pack,
// so MemoryNutritionStore's behaviour (an in-memory map from epoch-second
// timestamp to arbitrary nutrition data, usually a term->score vector, but
// staying opaque to that shape) is reconstructed from its test cases.
package nutrition

import "sync"

// Store is a thread-safe timestamp-keyed associative store. The teacher
// repo has no direct analogue (focus-gate is request/response, not a
// streaming accumulator). The consumers write and read it from their own
// Consume goroutine; the lock makes it safe to share beyond that.
type Store struct {
	mu   sync.RWMutex
	data map[int64]any
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[int64]any)}
}

// Add records nutrition data at timestamp, overwriting any existing entry.
func (s *Store) Add(timestamp int64, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[timestamp] = value
}

// Get returns the nutrition data at timestamp, or nil if absent.
func (s *Store) Get(timestamp int64) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[timestamp]
}

// All returns every timestamp->value pair currently stored. The returned
// map is a shallow copy; callers may range over it freely without holding
// the store's lock.
func (s *Store) All() map[int64]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]any, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// Between returns nutrition data for timestamps in [start, end): start
// inclusive, end exclusive. It panics if start >= end, mirroring the
// Python store's ValueError — a caller asking for a zero or negative-width
// window has a bug, not a legitimate empty-result case.
func (s *Store) Between(start, end int64) map[int64]any {
	if start >= end {
		panic("nutrition: between requires start < end")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]any)
	for k, v := range s.data {
		if k >= start && k < end {
			out[k] = v
		}
	}
	return out
}

// Since returns nutrition data for timestamps >= start, inclusive.
func (s *Store) Since(start int64) map[int64]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]any)
	for k, v := range s.data {
		if k >= start {
			out[k] = v
		}
	}
	return out
}

// Until returns nutrition data for timestamps < end, exclusive.
func (s *Store) Until(end int64) map[int64]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]any)
	for k, v := range s.data {
		if k < end {
			out[k] = v
		}
	}
	return out
}

// Remove deletes the given timestamps. Called with no arguments, it is a
// no-op.
func (s *Store) Remove(timestamps ...int64) {
	if len(timestamps) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range timestamps {
		delete(s.data, t)
	}
}

// Copy returns a deep-enough copy: a new Store with its own top-level map,
// so adding to the copy never mutates the original. Nested nutrition
// values (e.g. a term->score map) are shared by reference, matching the
// Python implementation's copy.deepcopy only insofar as callers treat
// per-timestamp nutrition values as immutable once stored — consumers
// always Add a freshly-built map rather than mutating one in place.
func (s *Store) Copy() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]any, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return &Store{data: out}
}

// Len returns the number of timestamps currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
