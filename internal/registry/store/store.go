// Package store persists homeowner registry entries.
package store

import (
	"context"

	"homevest/internal/registry/models"
	"homevest/pkg/domain"
)

// Store is the registry persistence contract.
//
// Insert enforces the dedup invariant: at most one entry per (type, title)
// key. Inserting a duplicate returns sentinel.ErrConflict so the sync layer
// can treat it as an idempotent no-op. Get and Update return
// sentinel.ErrNotFound for unknown ids.
type Store interface {
	Insert(ctx context.Context, entry *models.RegistryEntry) error
	Get(ctx context.Context, id domain.RegistryID) (*models.RegistryEntry, error)
	FindByKey(ctx context.Context, key models.DedupKey) (*models.RegistryEntry, error)
	Update(ctx context.Context, entry *models.RegistryEntry) error
	Delete(ctx context.Context, id domain.RegistryID) error
	List(ctx context.Context) ([]*models.RegistryEntry, error)
}
