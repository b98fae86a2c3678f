package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickflow/tickflow/internal/core/mqueue"
)

func TestCapture(t *testing.T) {
	q := mqueue.New[int](mqueue.Config{Label: "sensor"})
	v1 := q.OpenView()
	v2 := q.OpenView()

	q.Push(10)
	q.Push(20)

	_, err := v1.Pop()
	require.NoError(t, err)

	r := Capture(q)
	require.NoError(t, r.Validate())

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, q.ID(), r.QueueID)
	assert.Equal(t, "sensor", r.Label)
	assert.Equal(t, []interface{}{10, 20}, r.Backlog)
	assert.Equal(t, []int{0, 1}, r.Cursors)
	assert.False(t, r.CapturedAt.IsZero())

	_ = v2
}

func TestReplay(t *testing.T) {
	t.Run("BacklogReplaysInOrder", func(t *testing.T) {
		src := mqueue.New[int](mqueue.Config{})
		keep := src.OpenView()
		src.Push(1)
		src.Push(2)
		_ = keep

		r := Capture(src)

		dst := mqueue.New[int](mqueue.Config{})
		v := dst.OpenView()
		require.NoError(t, Replay(r, dst))

		for want := 1; want <= 2; want++ {
			got, err := v.Pop()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("NormalizedNumericTypesConvert", func(t *testing.T) {
		// A record that went through a codec comes back with narrowed or
		// widened numbers (msgpack: int8/int64, JSON: float64).
		r := &Record{
			ID:      "r",
			QueueID: "q",
			Backlog: []interface{}{int8(1), int64(2), float64(3)},
		}

		dst := mqueue.New[int](mqueue.Config{})
		v := dst.OpenView()
		require.NoError(t, Replay(r, dst))

		for want := 1; want <= 3; want++ {
			got, err := v.Pop()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("NumberToStringRejected", func(t *testing.T) {
		r := &Record{ID: "r", QueueID: "q", Backlog: []interface{}{int64(65)}}

		dst := mqueue.New[string](mqueue.Config{})
		_ = dst.OpenView()
		assert.ErrorIs(t, Replay(r, dst), ErrBacklogType)
	})

	t.Run("TypeMismatchRejected", func(t *testing.T) {
		r := &Record{ID: "r", QueueID: "q", Backlog: []interface{}{"oops"}}

		dst := mqueue.New[int](mqueue.Config{})
		_ = dst.OpenView()
		assert.ErrorIs(t, Replay(r, dst), ErrBacklogType)
	})
}

func TestRecordValidate(t *testing.T) {
	assert.ErrorIs(t, (&Record{}).Validate(), ErrInvalidRecordID)
	assert.ErrorIs(t, (&Record{ID: "r"}).Validate(), ErrInvalidQueueID)
	assert.NoError(t, (&Record{ID: "r", QueueID: "q"}).Validate())
}
