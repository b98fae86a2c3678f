// Package snapshot captures the buffered backlog of a queue as a storable
// record, for diagnostics and offline replay.
package snapshot

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/tickflow/tickflow/internal/core/mqueue"
)

// Record is a point-in-time capture of one queue: the values still buffered
// and the read positions of all registered views.
type Record struct {
	ID         string        `json:"id" msgpack:"id"`
	QueueID    string        `json:"queue_id" msgpack:"queue_id"`
	Label      string        `json:"label" msgpack:"label"`
	CapturedAt time.Time     `json:"captured_at" msgpack:"captured_at"`
	Backlog    []interface{} `json:"backlog" msgpack:"backlog"`
	Cursors    []int         `json:"cursors" msgpack:"cursors"`
}

// Validate ensures record integrity.
func (r *Record) Validate() error {
	if r == nil || r.ID == "" {
		return ErrInvalidRecordID
	}
	if r.QueueID == "" {
		return ErrInvalidQueueID
	}
	return nil
}

// Capture builds a record from a live queue. The queue is locked only long
// enough to copy its backlog; capture never blocks readers for the duration
// of a save.
func Capture[T any](q *mqueue.Queue[T]) *Record {
	items, cursors := q.Backlog()

	backlog := make([]interface{}, len(items))
	for i, item := range items {
		backlog[i] = item
	}

	return &Record{
		ID:         uuid.NewString(),
		QueueID:    q.ID(),
		Label:      q.Label(),
		CapturedAt: time.Now().UTC(),
		Backlog:    backlog,
		Cursors:    cursors,
	}
}

// Replay pushes a record's backlog into a queue, oldest first. The target's
// registered views observe the replayed values as fresh pushes.
//
// Records loaded from a saver carry codec-normalized element types (msgpack
// shrinks ints, JSON widens them to float64), so elements that are not
// directly of the queue's type are converted when the conversion is legal.
func Replay[T any](r *Record, q *mqueue.Queue[T]) error {
	if err := r.Validate(); err != nil {
		return err
	}

	want := reflect.TypeOf((*T)(nil)).Elem()
	for _, item := range r.Backlog {
		if v, ok := item.(T); ok {
			q.Push(v)
			continue
		}

		rv := reflect.ValueOf(item)
		if !rv.IsValid() || !rv.Type().ConvertibleTo(want) {
			return ErrBacklogType
		}
		// Integer-to-string conversion is legal but produces a rune
		// string, never a replayed value.
		if want.Kind() == reflect.String && rv.Kind() != reflect.String {
			return ErrBacklogType
		}
		q.Push(rv.Convert(want).Interface().(T))
	}
	return nil
}

// Saver persists records.
type Saver interface {
	// Save stores a record, overwriting any record with the same ID.
	Save(ctx context.Context, r *Record) error

	// Load retrieves a record by ID.
	Load(ctx context.Context, id string) (*Record, error)

	// Delete removes a record by ID; missing IDs are a no-op.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all records for a queue, newest first.
	List(ctx context.Context, queueID string) ([]string, error)
}
