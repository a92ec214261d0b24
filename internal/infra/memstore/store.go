package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domain "transcript-insights/internal/domain/analysis"
)

// Store is an in-memory implementation of the analysis Repository port.
// Every operation is safe under concurrent callers; the batch use case
// issues concurrent writes.
type Store struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*domain.TranscriptAnalysis
}

func New() *Store {
	return &Store{records: make(map[uuid.UUID]*domain.TranscriptAnalysis)}
}

// Save inserts or overwrites the record at its id.
func (s *Store) Save(_ context.Context, a *domain.TranscriptAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[a.ID] = a
	return nil
}

// Get returns the record under id, or nil when absent.
func (s *Store) Get(_ context.Context, id uuid.UUID) (*domain.TranscriptAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[id], nil
}

// GetAll returns all stored records, in no particular order.
func (s *Store) GetAll(_ context.Context) ([]*domain.TranscriptAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.TranscriptAnalysis, 0, len(s.records))
	for _, a := range s.records {
		out = append(out, a)
	}
	return out, nil
}

// Count returns the number of stored records.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
