// Package mqueue provides the multi-reader broadcast queue that carries
// values between dataflow components.
//
// A Queue is written by exactly one logical producer and read independently,
// at independent rates, by any number of Views. Each buffered value carries a
// remaining-reader count; a value is evicted from the front exactly when the
// last view covering it has consumed (or released) it. Because views consume
// strictly left to right, only the front element can ever reach a count of
// zero, so eviction is always O(1).
package mqueue

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	imetrics "github.com/tickflow/tickflow/internal/infrastructure/metrics"
)

// Config holds configuration for a Queue.
type Config struct {
	// Label identifies the queue in metrics. Defaults to "queue".
	Label string
	// StalenessThreshold overrides the runtime default retention for
	// queues with no registered views.
	StalenessThreshold int
}

// Queue is a multi-reader broadcast buffer.
// PRINCIPLES:
// - SRP: Single responsibility - buffering and reference-counted eviction
// - Thread-safe: all state is mutated under one mutex
type Queue[T any] struct {
	mu     sync.Mutex
	notify chan struct{}

	items []T
	refs  []int
	views map[*View[T]]struct{}

	closed    bool
	staleness int

	id    string
	label string
}

// New creates an empty queue.
func New[T any](cfg Config) *Queue[T] {
	if cfg.Label == "" {
		cfg.Label = "queue"
	}
	if cfg.StalenessThreshold <= 0 {
		cfg.StalenessThreshold = defaultRuntimeConfig.StalenessThreshold
	}

	return &Queue[T]{
		notify:    make(chan struct{}),
		views:     make(map[*View[T]]struct{}),
		staleness: cfg.StalenessThreshold,
		id:        uuid.NewString(),
		label:     cfg.Label,
	}
}

// ID returns the queue's unique identifier.
func (q *Queue[T]) ID() string { return q.id }

// Label returns the queue's metrics label.
func (q *Queue[T]) Label() string { return q.label }

// Push appends value to the queue and wakes all blocked readers.
//
// If no views are registered the value is discarded (subject to the
// staleness retention threshold). Push never fails; pushing to a closed
// queue is a silent no-op.
func (q *Queue[T]) Push(value T) {
	q.mu.Lock()

	if q.closed {
		q.mu.Unlock()
		return
	}

	// With no readers there is nobody to reference-count for; retain at
	// most the configured number of stale values.
	if len(q.views) == 0 {
		if q.staleness == 0 {
			q.mu.Unlock()
			imetrics.QueueDropped(q.label, 1)
			return
		}
		if len(q.items) >= q.staleness {
			last := len(q.items) - 1
			var zero T
			q.items[last] = zero
			q.items = q.items[:last]
			q.refs = q.refs[:last]
		}
		q.items = append(q.items, value)
		q.refs = append(q.refs, 0)
		q.mu.Unlock()
		imetrics.QueuePushed(q.label, 1)
		return
	}

	q.items = append(q.items, value)
	q.refs = append(q.refs, len(q.views))
	q.signal()
	q.mu.Unlock()

	imetrics.QueuePushed(q.label, 1)
}

// OpenView registers a new view positioned at the queue's current length.
// The view never observes values that were buffered before it was opened.
func (q *Queue[T]) OpenView() *View[T] {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return &View[T]{}
	}

	v := &View[T]{q: q, pos: len(q.items)}
	q.views[v] = struct{}{}
	return v
}

// Len returns the number of currently buffered values.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Views returns the number of currently registered views.
func (q *Queue[T]) Views() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.views)
}

// Close marks the queue gone and releases its buffer. Every view still
// referencing the queue reports ErrDanglingView from then on.
//
// Close does not wake blocked readers: a Pop that is already waiting when
// the queue closes stays blocked. Callers needing bounded waits must use
// WaitFor.
func (q *Queue[T]) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil // Already closed
	}

	q.closed = true
	q.items = nil
	q.refs = nil
	q.views = make(map[*View[T]]struct{})
	return nil
}

// Backlog returns a copy of the buffered values together with the sorted
// read positions of all registered views, for snapshot capture.
func (q *Queue[T]) Backlog() ([]T, []int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := make([]T, len(q.items))
	copy(items, q.items)

	cursors := make([]int, 0, len(q.views))
	for v := range q.views {
		cursors = append(cursors, v.pos)
	}
	sort.Ints(cursors)
	return items, cursors
}

// Stats returns queue statistics.
func (q *Queue[T]) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()

	return Stats{
		Label:  q.label,
		Length: len(q.items),
		Views:  len(q.views),
		Closed: q.closed,
	}
}

// Stats provides queue statistics.
type Stats struct {
	Label  string `json:"label"`
	Length int    `json:"length"`
	Views  int    `json:"views"`
	Closed bool   `json:"closed"`
}

// signal notifies all current waiters of a state change.
// Must be called with q.mu held.
func (q *Queue[T]) signal() {
	old := q.notify
	q.notify = make(chan struct{})
	close(old)
}

// release decrements the remaining-reader count at idx, then evicts from
// the front while the front count is zero. Eviction shifts every registered
// view's position down by one. Must be called with q.mu held.
//
// Given left-to-right consumption, a count can only reach zero at the
// leftmost index any view still covers; the loop also sweeps out stale
// zero-count values retained while the queue had no readers.
func (q *Queue[T]) release(idx int) {
	q.refs[idx]--

	var evicted int64
	for len(q.refs) > 0 && q.refs[0] == 0 {
		var zero T
		q.items[0] = zero
		q.items = q.items[1:]
		q.refs = q.refs[1:]

		for v := range q.views {
			v.pos--
		}
		evicted++
	}

	if evicted > 0 {
		imetrics.QueueEvicted(q.label, evicted)
	}
}

// drain releases the view's claim on every value it has not yet read,
// advancing its position to the queue's tail. Must be called with q.mu held.
func (q *Queue[T]) drain(v *View[T]) {
	for v.pos != len(q.items) {
		old := v.pos
		v.pos++
		q.release(old)
	}
}

// unregister removes the view after draining its unread range. Idempotent
// no-op when the view is not registered. Must be called with q.mu held.
func (q *Queue[T]) unregister(v *View[T]) {
	if _, ok := q.views[v]; !ok {
		return
	}
	q.drain(v)
	delete(q.views, v)
}
