package repository

import (
	"context"
	"sync"

	"github.com/salesight/salesight/internal/domain"
)

// Store is the persistence collaborator behind the repository. Each call is
// treated as atomic at the granularity of one user's full record set.
type Store interface {
	Load(ctx context.Context, userID string) ([]domain.SalesRecord, error)
	SaveAll(ctx context.Context, userID string, records []domain.SalesRecord) error
	DeleteAll(ctx context.Context, userID string) error
}

// MemoryStore keeps record sets in process memory. It backs tests and
// single-node deployments without a database.
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[string][]domain.SalesRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string][]domain.SalesRecord)}
}

func (s *MemoryStore) Load(ctx context.Context, userID string) ([]domain.SalesRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.sets[userID]
	out := make([]domain.SalesRecord, len(records))
	copy(out, records)
	return out, nil
}

func (s *MemoryStore) SaveAll(ctx context.Context, userID string, records []domain.SalesRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]domain.SalesRecord, len(records))
	copy(stored, records)
	s.sets[userID] = stored
	return nil
}

func (s *MemoryStore) DeleteAll(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, userID)
	return nil
}
