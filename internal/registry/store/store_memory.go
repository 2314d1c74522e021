package store

import (
	"context"
	"sort"
	"sync"

	"homevest/internal/registry/models"
	"homevest/pkg/domain"
	"homevest/pkg/platform/sentinel"
)

// InMemoryStore keeps registry entries in process memory with a secondary
// index on the dedup key.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[domain.RegistryID]*models.RegistryEntry
	byKey   map[models.DedupKey]domain.RegistryID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		entries: make(map[domain.RegistryID]*models.RegistryEntry),
		byKey:   make(map[models.DedupKey]domain.RegistryID),
	}
}

func (s *InMemoryStore) Insert(_ context.Context, entry *models.RegistryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byKey[entry.Key()]; exists {
		return sentinel.ErrConflict
	}
	s.entries[entry.ID] = entry.Clone()
	s.byKey[entry.Key()] = entry.ID
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id domain.RegistryID) (*models.RegistryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return entry.Clone(), nil
}

func (s *InMemoryStore) FindByKey(_ context.Context, key models.DedupKey) (*models.RegistryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byKey[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.entries[id].Clone(), nil
}

func (s *InMemoryStore) Update(_ context.Context, entry *models.RegistryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.entries[entry.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	// The dedup key is immutable through updates.
	delete(s.byKey, existing.Key())
	s.entries[entry.ID] = entry.Clone()
	s.byKey[entry.Key()] = entry.ID
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id domain.RegistryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byKey, entry.Key())
	delete(s.entries, id)
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.RegistryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]*models.RegistryEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry.Clone())
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}
