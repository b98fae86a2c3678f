// Package postgres provides a snapshot saver backed by PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tickflow/tickflow/internal/core/snapshot"
	imetrics "github.com/tickflow/tickflow/internal/infrastructure/metrics"
	"github.com/tickflow/tickflow/pkg/serialization"
)

// Saver implements snapshot.Saver on top of a pgx connection pool. The
// record payload is stored serialized (codec+compression) in a bytea
// column; identity and listing columns stay relational.
type Saver struct {
	pool       *pgxpool.Pool
	serializer *serialization.Serializer
	tableName  string
}

// NewSaver creates a PostgreSQL snapshot saver. A nil serializer defaults
// to msgpack+zstd.
func NewSaver(pool *pgxpool.Pool, serializer *serialization.Serializer) *Saver {
	if serializer == nil {
		serializer = serialization.Default()
	}
	return &Saver{
		pool:       pool,
		serializer: serializer,
		tableName:  "queue_snapshots",
	}
}

// EnsureSchema creates the snapshot table if it does not exist.
func (s *Saver) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id          TEXT PRIMARY KEY,
			queue_id    TEXT NOT NULL,
			label       TEXT NOT NULL,
			captured_at TIMESTAMPTZ NOT NULL,
			payload     BYTEA NOT NULL
		);
		CREATE INDEX IF NOT EXISTS %s_queue_id_idx ON %s (queue_id, captured_at DESC)
	`, s.tableName, s.tableName, s.tableName)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure snapshot schema: %w", err)
	}
	return nil
}

// Save implements snapshot.Saver.
func (s *Saver) Save(ctx context.Context, r *snapshot.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	payload, err := s.serializer.Serialize(r)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, queue_id, label, captured_at, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			queue_id    = EXCLUDED.queue_id,
			label       = EXCLUDED.label,
			captured_at = EXCLUDED.captured_at,
			payload     = EXCLUDED.payload
	`, s.tableName)

	if _, err := s.pool.Exec(ctx, query, r.ID, r.QueueID, r.Label, r.CapturedAt, payload); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	imetrics.IncSnapshotsSaved()
	return nil
}

// Load implements snapshot.Saver.
func (s *Saver) Load(ctx context.Context, id string) (*snapshot.Record, error) {
	if id == "" {
		return nil, snapshot.ErrInvalidRecordID
	}

	query := fmt.Sprintf(`SELECT payload FROM %s WHERE id = $1`, s.tableName)

	var payload []byte
	err := s.pool.QueryRow(ctx, query, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, snapshot.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}

	var r snapshot.Record
	if err := s.serializer.Deserialize(payload, &r); err != nil {
		return nil, fmt.Errorf("failed to deserialize record: %w", err)
	}
	return &r, nil
}

// Delete implements snapshot.Saver.
func (s *Saver) Delete(ctx context.Context, id string) error {
	if id == "" {
		return snapshot.ErrInvalidRecordID
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.tableName)
	if _, err := s.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// List implements snapshot.Saver.
func (s *Saver) List(ctx context.Context, queueID string) ([]string, error) {
	query := fmt.Sprintf(
		`SELECT id FROM %s WHERE queue_id = $1 ORDER BY captured_at DESC`, s.tableName)

	rows, err := s.pool.Query(ctx, query, queueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan record id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
