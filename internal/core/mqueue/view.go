package mqueue

import "time"

// View is a reader's independent cursor into a Queue.
//
// A view holds a non-owning reference to its queue plus a read position.
// Every view operation resolves the reference first and reports
// ErrDanglingView when the queue is gone. The zero View is inert: it has no
// queue and every operation on it reports ErrDanglingView, which lets
// callers distinguish "not wired" from "no data yet".
//
// Views are reference types: hand a *View to whoever should consume through
// it. Clone produces an independent reader; Close releases the view's claim
// on everything it has not read.
type View[T any] struct {
	q   *Queue[T]
	pos int
}

// resolve returns the underlying queue, or ErrDanglingView when the queue
// is gone or was never wired.
func (v *View[T]) resolve() (*Queue[T], error) {
	q := v.q
	if q == nil {
		return nil, ErrDanglingView
	}

	q.mu.Lock()
	closed := q.closed
	q.mu.Unlock()
	if closed {
		return nil, ErrDanglingView
	}
	return q, nil
}

// Len returns the number of unread values owed to this view.
func (v *View[T]) Len() (int, error) {
	q, err := v.resolve()
	if err != nil {
		return 0, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - v.pos, nil
}

// Pop blocks until a value is available, consumes it, and returns it.
//
// The dangling check happens once at entry: a queue closed while Pop is
// already waiting does not unblock the wait. Callers that need to bound the
// wait must poll with WaitFor.
func (v *View[T]) Pop() (T, error) {
	var zero T

	q, err := v.resolve()
	if err != nil {
		return zero, err
	}

	for {
		q.mu.Lock()
		if v.pos < len(q.items) {
			value := q.items[v.pos]
			old := v.pos
			v.pos++
			q.release(old)
			q.mu.Unlock()
			return value, nil
		}
		ch := q.notify
		q.mu.Unlock()

		<-ch
	}
}

// WaitFor waits up to d for a value to become available. It reports whether
// one is available and does not consume it.
func (v *View[T]) WaitFor(d time.Duration) (bool, error) {
	q, err := v.resolve()
	if err != nil {
		return false, err
	}

	deadline := time.Now().Add(d)
	for {
		q.mu.Lock()
		if v.pos < len(q.items) {
			q.mu.Unlock()
			return true, nil
		}
		ch := q.notify
		q.mu.Unlock()

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false, nil
		}

		timer := time.NewTimer(remaining)
		select {
		case <-ch:
			timer.Stop()
			// state changed; loop and recheck
		case <-timer.C:
			return false, nil
		}
	}
}

// Clear resets the view to cover no pending values, releasing its claim on
// everything it previously owed. Equivalent to closing and reopening the
// view at the queue's current length.
func (v *View[T]) Clear() error {
	q, err := v.resolve()
	if err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.drain(v)
	return nil
}

// Clone returns an independent view at the same position.
//
// The clone takes its own claim on every value still owed to the source, so
// the source consuming (or closing) first can never evict values the clone
// has not yet read. Cloning a dangling view yields another dangling view.
func (v *View[T]) Clone() *View[T] {
	q := v.q
	if q == nil {
		return &View[T]{}
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return &View[T]{}
	}

	nv := &View[T]{q: q, pos: v.pos}
	q.views[nv] = struct{}{}
	for i := v.pos; i < len(q.items); i++ {
		q.refs[i]++
	}
	return nv
}

// Close unregisters the view, releasing its claim on every unread value and
// potentially evicting them. The view becomes inert; idempotent.
func (v *View[T]) Close() error {
	q := v.q
	if q == nil {
		return nil
	}
	v.q = nil

	q.mu.Lock()
	defer q.mu.Unlock()
	q.unregister(v)
	return nil
}
