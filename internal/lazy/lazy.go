// Package lazy provides deferred, materialize-once collections.
//
// Clan and player payloads embed arrays whose elements are only worth
// constructing when a caller actually asks for them. List and Map hold the
// unconsumed element sequence until first access, drain it exactly once into
// a cached structure, and serve every later read from that cache. The slot
// state is an explicit field rather than an implicit property of a closure,
// so the contract is visible: Unmaterialized until first access, Ready after.
package lazy

import (
	"iter"
	"sync"
)

// State identifies the materialization phase of a collection.
type State uint8

const (
	// Unmaterialized means only the pending element sequence exists.
	Unmaterialized State = iota
	// Materializing means the first access is draining the sequence.
	Materializing
	// Ready means the cached structure is present and the sequence is gone.
	Ready
)

// String returns the state name for logs and test failures.
func (s State) String() string {
	switch s {
	case Unmaterialized:
		return "unmaterialized"
	case Materializing:
		return "materializing"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// List is an ordered collection whose elements are produced on first access.
//
// The source sequence is drained exactly once, in order, with duplicates
// preserved. The mutex guards the materialize step so the at-most-once
// invariant holds even when an instance leaks across goroutines.
type List[T any] struct {
	mu    sync.Mutex
	state State
	src   iter.Seq[T]
	items []T
}

// NewList creates a List over the given pending sequence.
// A nil sequence materializes into an empty list.
func NewList[T any](src iter.Seq[T]) *List[T] {
	return &List[T]{src: src}
}

// Items drains the pending sequence on first call and returns the cached
// slice on every call. Callers must treat the returned slice as read-only.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.materializeLocked()
	return l.items
}

// Len reports the number of elements, materializing if needed.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.materializeLocked()
	return len(l.items)
}

// State reports the current slot state.
func (l *List[T]) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *List[T]) materializeLocked() {
	if l.state == Ready {
		return
	}

	l.state = Materializing
	if l.src != nil {
		for v := range l.src {
			l.items = append(l.items, v)
		}
		// Drop the one-shot sequence so it can never be consumed again.
		l.src = nil
	}
	l.state = Ready
}

// Map is a keyed collection whose elements are produced on first access.
//
// Draining assigns each element the key reported by the key function. A
// duplicate key overwrites the earlier element (last write wins) while the
// key keeps its first-seen position, so external iteration order is stable
// across calls.
type Map[V any] struct {
	mu    sync.Mutex
	state State
	src   iter.Seq[V]
	keyFn func(V) string
	items map[string]V
	order []string
}

// NewMap creates a Map over the given pending sequence. keyFn must be
// non-nil; a nil sequence materializes into an empty map.
func NewMap[V any](keyFn func(V) string, src iter.Seq[V]) *Map[V] {
	if keyFn == nil {
		panic("lazy: NewMap requires a key function")
	}
	return &Map[V]{keyFn: keyFn, src: src}
}

// Get returns the element stored under key, materializing if needed.
func (m *Map[V]) Get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.materializeLocked()
	v, ok := m.items[key]
	return v, ok
}

// Values returns the elements in first-seen key order, materializing if
// needed. The returned slice is freshly built; the elements are shared.
func (m *Map[V]) Values() []V {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.materializeLocked()
	values := make([]V, 0, len(m.order))
	for _, k := range m.order {
		values = append(values, m.items[k])
	}
	return values
}

// Len reports the number of unique keys, materializing if needed.
func (m *Map[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.materializeLocked()
	return len(m.items)
}

// State reports the current slot state.
func (m *Map[V]) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Map[V]) materializeLocked() {
	if m.state == Ready {
		return
	}

	m.state = Materializing
	m.items = make(map[string]V)
	if m.src != nil {
		for v := range m.src {
			key := m.keyFn(v)
			if _, seen := m.items[key]; !seen {
				m.order = append(m.order, key)
			}
			m.items[key] = v
		}
		m.src = nil
	}
	m.state = Ready
}
