package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickflow/tickflow/internal/core/snapshot"
)

// testPool connects to the database named by TICKFLOW_POSTGRES_DSN, skipping
// the test when none is configured.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TICKFLOW_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TICKFLOW_POSTGRES_DSN not set; skipping postgres integration test")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresSaver(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)

	s := NewSaver(pool, nil)
	require.NoError(t, s.EnsureSchema(ctx))

	queueID := uuid.NewString()
	r := &snapshot.Record{
		ID:         uuid.NewString(),
		QueueID:    queueID,
		Label:      "sensor",
		CapturedAt: time.Now().UTC().Truncate(time.Second),
		Backlog:    []interface{}{int64(1), int64(2)},
		Cursors:    []int{0, 1},
	}

	require.NoError(t, s.Save(ctx, r))
	defer func() { _ = s.Delete(ctx, r.ID) }()

	t.Run("Load", func(t *testing.T) {
		got, err := s.Load(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, r.ID, got.ID)
		assert.Equal(t, r.QueueID, got.QueueID)
		assert.Equal(t, r.Cursors, got.Cursors)
		assert.Len(t, got.Backlog, 2)
	})

	t.Run("SaveIsUpsert", func(t *testing.T) {
		r.Label = "sensor-renamed"
		require.NoError(t, s.Save(ctx, r))

		got, err := s.Load(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, "sensor-renamed", got.Label)
	})

	t.Run("List", func(t *testing.T) {
		ids, err := s.List(ctx, queueID)
		require.NoError(t, err)
		assert.Contains(t, ids, r.ID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, r.ID))

		_, err := s.Load(ctx, r.ID)
		assert.ErrorIs(t, err, snapshot.ErrRecordNotFound)
	})

	t.Run("LoadMissing", func(t *testing.T) {
		_, err := s.Load(ctx, uuid.NewString())
		assert.ErrorIs(t, err, snapshot.ErrRecordNotFound)
	})
}
