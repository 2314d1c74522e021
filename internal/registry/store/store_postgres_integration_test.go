//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	draftmodels "homevest/internal/draft/models"
	"homevest/internal/registry/models"
	"homevest/pkg/domain"
	"homevest/pkg/platform/sentinel"
	"homevest/pkg/testutil/containers"
)

func newEntry(title string, createdAt time.Time) *models.RegistryEntry {
	draft := draftmodels.NewDraft(domain.PropertyTypeResidential)
	draft.PropertyID = "prop-123"
	draft.Details.Title = title
	draft.Pricing.MonthlyRent = "1200"
	draft.IsSubmitted = true

	return &models.RegistryEntry{
		ID:        domain.NewRegistryID(),
		Type:      domain.PropertyTypeResidential,
		Title:     title,
		Location:  "Lisbon",
		Status:    domain.StatusPending,
		Enabled:   true,
		CreatedAt: createdAt,
		Draft:     *draft,
	}
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()
	pc := containers.NewPostgresContainer(t)
	_, err := pc.DB.ExecContext(ctx, Schema)
	require.NoError(t, err)

	s := NewPostgresStore(pc.DB)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("insert and read back", func(t *testing.T) {
		e := newEntry("Sunny Garden Apartment", now)
		require.NoError(t, s.Insert(ctx, e))

		got, err := s.Get(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, e.ID, got.ID)
		assert.Equal(t, domain.StatusPending, got.Status)
		assert.True(t, got.Enabled)
		assert.Equal(t, "prop-123", got.Draft.PropertyID)
		assert.Equal(t, "1200", got.Draft.Pricing.MonthlyRent)
	})

	t.Run("unique index realizes the dedup key", func(t *testing.T) {
		err := s.Insert(ctx, newEntry("Sunny Garden Apartment", now))
		assert.ErrorIs(t, err, sentinel.ErrConflict)

		// Same title, different type is a different listing.
		other := newEntry("Sunny Garden Apartment", now)
		other.Type = domain.PropertyTypeCommercial
		assert.NoError(t, s.Insert(ctx, other))
	})

	t.Run("find by key", func(t *testing.T) {
		got, err := s.FindByKey(ctx, models.DedupKey{
			Type: domain.PropertyTypeResidential, Title: "Sunny Garden Apartment",
		})
		require.NoError(t, err)
		assert.Equal(t, "Sunny Garden Apartment", got.Title)

		_, err = s.FindByKey(ctx, models.DedupKey{
			Type: domain.PropertyTypeResidential, Title: "No Such Listing",
		})
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("update persists lifecycle fields", func(t *testing.T) {
		e := newEntry("Corner Building", now.Add(time.Minute))
		require.NoError(t, s.Insert(ctx, e))

		e.Status = domain.StatusApproved
		e.Paused = true
		e.PauseReason = "ownership dispute under review"
		e.Metrics = models.DisplayMetrics{MonthlyEarnings: 1200, OccupancyRate: 0.5, BookingsCount: 3}
		require.NoError(t, s.Update(ctx, e))

		got, err := s.Get(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, got.Status)
		assert.True(t, got.Paused)
		assert.Equal(t, "ownership dispute under review", got.PauseReason)
		assert.InDelta(t, 1200, got.Metrics.MonthlyEarnings, 0.001)
		assert.Equal(t, 3, got.Metrics.BookingsCount)
	})

	t.Run("update of a missing entry", func(t *testing.T) {
		err := s.Update(ctx, newEntry("Ghost Listing", now))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("list is oldest first", func(t *testing.T) {
		entries, err := s.List(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(entries), 2)
		for i := 1; i < len(entries); i++ {
			assert.False(t, entries[i].CreatedAt.Before(entries[i-1].CreatedAt))
		}
	})

	t.Run("delete frees the dedup key", func(t *testing.T) {
		e := newEntry("Short Lived", now.Add(2*time.Minute))
		require.NoError(t, s.Insert(ctx, e))
		require.NoError(t, s.Delete(ctx, e.ID))

		_, err := s.Get(ctx, e.ID)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		require.NoError(t, s.Insert(ctx, newEntry("Short Lived", now.Add(3*time.Minute))))
	})

	t.Run("delete of a missing entry", func(t *testing.T) {
		err := s.Delete(ctx, domain.NewRegistryID())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
