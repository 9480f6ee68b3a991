package session

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// MemoryStore implements Store using in-memory storage
type MemoryStore struct {
	logger  *zap.Logger
	mu      sync.Mutex
	flashes map[string][]Flash
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		logger:  logger.Named("session.store.memory"),
		flashes: make(map[string][]Flash),
	}
}

// PushFlash implements Store.PushFlash
func (s *MemoryStore) PushFlash(_ context.Context, sessionID string, f Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flashes[sessionID] = append(s.flashes[sessionID], f)
	return nil
}

// PopFlashes implements Store.PopFlashes
func (s *MemoryStore) PopFlashes(_ context.Context, sessionID string) ([]Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queued, ok := s.flashes[sessionID]
	if !ok {
		return nil, nil
	}
	delete(s.flashes, sessionID)
	return queued, nil
}

// Close implements Store.Close
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes = make(map[string][]Flash)
	return nil
}
