// Package memory provides a thread-safe in-memory snapshot saver, intended
// for local usage and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tickflow/tickflow/internal/core/snapshot"
	imetrics "github.com/tickflow/tickflow/internal/infrastructure/metrics"
	"github.com/tickflow/tickflow/pkg/serialization"
)

// Saver implements snapshot.Saver with serialized in-memory storage.
// Records are stored in their serialized form so the saver exercises the
// same pipeline as the persistent backends.
type Saver struct {
	mu         sync.RWMutex
	records    map[string]entry
	serializer *serialization.Serializer
}

type entry struct {
	data       []byte
	queueID    string
	capturedAt time.Time
}

// Config holds configuration for the in-memory saver.
type Config struct {
	Serializer *serialization.Serializer // optional; defaults to msgpack+zstd
}

// NewSaver creates an in-memory saver.
func NewSaver(config Config) *Saver {
	if config.Serializer == nil {
		config.Serializer = serialization.Default()
	}
	return &Saver{
		records:    make(map[string]entry),
		serializer: config.Serializer,
	}
}

// DefaultSaver creates a saver with default settings.
func DefaultSaver() *Saver { return NewSaver(Config{}) }

// Save implements snapshot.Saver.
func (s *Saver) Save(_ context.Context, r *snapshot.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	data, err := s.serializer.Serialize(r)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	s.mu.Lock()
	s.records[r.ID] = entry{data: data, queueID: r.QueueID, capturedAt: r.CapturedAt}
	s.mu.Unlock()

	imetrics.IncSnapshotsSaved()
	return nil
}

// Load implements snapshot.Saver.
func (s *Saver) Load(_ context.Context, id string) (*snapshot.Record, error) {
	if id == "" {
		return nil, snapshot.ErrInvalidRecordID
	}

	s.mu.RLock()
	e, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, snapshot.ErrRecordNotFound
	}

	var r snapshot.Record
	if err := s.serializer.Deserialize(e.data, &r); err != nil {
		return nil, fmt.Errorf("failed to deserialize record: %w", err)
	}
	return &r, nil
}

// Delete implements snapshot.Saver.
func (s *Saver) Delete(_ context.Context, id string) error {
	if id == "" {
		return snapshot.ErrInvalidRecordID
	}

	s.mu.Lock()
	delete(s.records, id)
	s.mu.Unlock()
	return nil
}

// List implements snapshot.Saver.
func (s *Saver) List(_ context.Context, queueID string) ([]string, error) {
	type candidate struct {
		id         string
		capturedAt time.Time
	}

	s.mu.RLock()
	var matches []candidate
	for id, e := range s.records {
		if e.queueID == queueID {
			matches = append(matches, candidate{id: id, capturedAt: e.capturedAt})
		}
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].capturedAt.After(matches[j].capturedAt)
	})

	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.id
	}
	return ids, nil
}

// Len returns the number of stored records.
func (s *Saver) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
