package mqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewDangling(t *testing.T) {
	t.Run("ZeroViewIsDangling", func(t *testing.T) {
		var v View[int]

		_, err := v.Len()
		assert.ErrorIs(t, err, ErrDanglingView)

		_, err = v.Pop()
		assert.ErrorIs(t, err, ErrDanglingView)

		_, err = v.WaitFor(time.Millisecond)
		assert.ErrorIs(t, err, ErrDanglingView)

		assert.ErrorIs(t, v.Clear(), ErrDanglingView)
		assert.NoError(t, v.Close())
	})

	t.Run("CloneOfDanglingViewDangles", func(t *testing.T) {
		var v View[int]
		clone := v.Clone()

		_, err := clone.Len()
		assert.ErrorIs(t, err, ErrDanglingView)
	})
}

func TestViewPopBlocks(t *testing.T) {
	q := New[int](Config{})
	v := q.OpenView()

	done := make(chan int, 1)
	go func() {
		val, err := v.Pop()
		if err != nil {
			done <- -1
			return
		}
		done <- val
	}()

	// The pop must not complete before a value arrives.
	select {
	case <-done:
		t.Fatal("pop returned without a value")
	case <-time.After(20 * time.Millisecond):
	}

	q.Push(42)

	select {
	case got := <-done:
		assert.Equal(t, 42, got)
	case <-time.After(time.Second):
		t.Fatal("pop did not wake after push")
	}
}

func TestViewWaitFor(t *testing.T) {
	t.Run("TimesOutOnEmptyQueue", func(t *testing.T) {
		q := New[int](Config{})
		v := q.OpenView()

		start := time.Now()
		ok, err := v.WaitFor(30 * time.Millisecond)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("ReturnsImmediatelyWhenNotEmpty", func(t *testing.T) {
		q := New[int](Config{})
		v := q.OpenView()
		q.Push(1)

		ok, err := v.WaitFor(time.Second)
		require.NoError(t, err)
		assert.True(t, ok)

		// WaitFor does not consume.
		n, err := v.Len()
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("WakesOnConcurrentPush", func(t *testing.T) {
		q := New[int](Config{})
		v := q.OpenView()

		go func() {
			time.Sleep(10 * time.Millisecond)
			q.Push(7)
		}()

		ok, err := v.WaitFor(time.Second)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestViewClear(t *testing.T) {
	q := New[int](Config{})
	v := q.OpenView()

	q.Push(1)
	q.Push(2)

	require.NoError(t, v.Clear())

	n, err := v.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// The sole view released its claims, so the buffer is empty.
	assert.Equal(t, 0, q.Len())

	// The view keeps working after a clear.
	q.Push(3)
	got, err := v.Pop()
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestViewClone(t *testing.T) {
	t.Run("CloneReadsIndependently", func(t *testing.T) {
		q := New[int](Config{})
		v := q.OpenView()
		clone := v.Clone()

		q.Push(1)
		q.Push(2)

		for i := 1; i <= 2; i++ {
			got, err := v.Pop()
			require.NoError(t, err)
			assert.Equal(t, i, got)
		}
		for i := 1; i <= 2; i++ {
			got, err := clone.Pop()
			require.NoError(t, err)
			assert.Equal(t, i, got)
		}
	})

	t.Run("CloneKeepsClaimOnBufferedBacklog", func(t *testing.T) {
		// Values already buffered at clone time must survive the source
		// consuming them before the clone catches up.
		q := New[int](Config{})
		v := q.OpenView()

		q.Push(1)
		q.Push(2)

		clone := v.Clone()

		// Source races ahead over the shared backlog.
		for i := 1; i <= 2; i++ {
			got, err := v.Pop()
			require.NoError(t, err)
			assert.Equal(t, i, got)
		}

		// Nothing was evicted from under the clone.
		n, err := clone.Len()
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		for i := 1; i <= 2; i++ {
			got, err := clone.Pop()
			require.NoError(t, err)
			assert.Equal(t, i, got)
		}
		assert.Equal(t, 0, q.Len())
	})

	t.Run("CloneAtTailSeesOnlyFuturePushes", func(t *testing.T) {
		q := New[int](Config{})
		v := q.OpenView()

		q.Push(1)
		_, err := v.Pop()
		require.NoError(t, err)

		clone := v.Clone()
		q.Push(2)

		got, err := clone.Pop()
		require.NoError(t, err)
		assert.Equal(t, 2, got)
	})
}

func TestViewCloseIdempotent(t *testing.T) {
	q := New[int](Config{})
	v := q.OpenView()

	q.Push(1)

	require.NoError(t, v.Close())
	require.NoError(t, v.Close())

	// Closed views are inert.
	_, err := v.Pop()
	assert.ErrorIs(t, err, ErrDanglingView)

	// Its claim was released, the buffer drained.
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, q.Views())
}
