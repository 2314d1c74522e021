// Package store persists the per-type property drafts. Exactly one draft is
// live per property type; every mutation is mirrored here so the wizard
// survives process restarts. Last write wins, no conflict detection.
package store

import (
	"context"

	"homevest/internal/draft/models"
	"homevest/pkg/domain"
)

// Store is the draft persistence contract. Load returns
// sentinel.ErrNotFound when no draft exists for the type.
type Store interface {
	Load(ctx context.Context, pt domain.PropertyType) (*models.PropertyDraft, error)
	Save(ctx context.Context, draft *models.PropertyDraft) error
	Delete(ctx context.Context, pt domain.PropertyType) error
}
