package store

import (
	"context"
	"sync"

	"homevest/internal/draft/models"
	"homevest/pkg/domain"
	"homevest/pkg/platform/sentinel"
)

// InMemoryStore keeps drafts in process memory. Used in tests and as the
// fallback when Redis is not configured.
type InMemoryStore struct {
	mu     sync.RWMutex
	drafts map[domain.PropertyType]*models.PropertyDraft
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{drafts: make(map[domain.PropertyType]*models.PropertyDraft)}
}

func (s *InMemoryStore) Load(_ context.Context, pt domain.PropertyType) (*models.PropertyDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[pt]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return draft.Clone(), nil
}

func (s *InMemoryStore) Save(_ context.Context, draft *models.PropertyDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.Type] = draft.Clone()
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, pt domain.PropertyType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, pt)
	return nil
}
