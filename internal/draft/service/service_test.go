package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homevest/internal/draft/models"
	"homevest/internal/draft/store"
	"homevest/internal/events"
	"homevest/pkg/domain"
	dErrors "homevest/pkg/domain-errors"
)

func newTestService(t *testing.T) (*Service, *events.Bus) {
	t.Helper()
	bus := events.NewBus(8)
	svc := New(store.NewInMemoryStore(), bus, slog.New(slog.DiscardHandler),
		WithClock(func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }))
	return svc, bus
}

func TestGet_DefaultDraft(t *testing.T) {
	svc, _ := newTestService(t)

	draft, err := svc.Get(context.Background(), domain.PropertyTypeResidential)
	require.NoError(t, err)
	assert.Equal(t, models.NewDraft(domain.PropertyTypeResidential), draft)
}

func TestUpdateSection(t *testing.T) {
	ctx := context.Background()

	t.Run("merge preserves untouched fields across calls", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.UpdateSection(ctx, domain.PropertyTypeResidential, domain.SectionDetails,
			json.RawMessage(`{"title":"Sunny Garden Apartment","city":"Lisbon","bedrooms":"2"}`))
		require.NoError(t, err)

		draft, err := svc.UpdateSection(ctx, domain.PropertyTypeResidential, domain.SectionDetails,
			json.RawMessage(`{"title":"Sunny Garden Flat"}`))
		require.NoError(t, err)

		assert.Equal(t, "Sunny Garden Flat", draft.Details.Title)
		assert.Equal(t, "Lisbon", draft.Details.City)
		assert.Equal(t, "2", draft.Details.Bedrooms)
	})

	t.Run("updates persist across reads", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.UpdateSection(ctx, domain.PropertyTypeCommercial, domain.SectionPricing,
			json.RawMessage(`{"totalValue":"900000","currency":"EUR"}`))
		require.NoError(t, err)

		draft, err := svc.Get(ctx, domain.PropertyTypeCommercial)
		require.NoError(t, err)
		assert.Equal(t, "900000", draft.Pricing.TotalValue)
	})

	t.Run("drafts are independent per property type", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.UpdateSection(ctx, domain.PropertyTypeResidential, domain.SectionDetails,
			json.RawMessage(`{"title":"Sunny Garden Apartment"}`))
		require.NoError(t, err)

		commercial, err := svc.Get(ctx, domain.PropertyTypeCommercial)
		require.NoError(t, err)
		assert.Empty(t, commercial.Details.Title)
	})

	t.Run("purpose section rejected for commercial flow", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.UpdateSection(ctx, domain.PropertyTypeCommercial, domain.SectionPurpose,
			json.RawMessage(`{"listingPurpose":"sell"}`))
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	})
}

func TestSetPropertyID(t *testing.T) {
	ctx := context.Background()

	t.Run("assigned once and persisted", func(t *testing.T) {
		svc, _ := newTestService(t)

		require.NoError(t, svc.SetPropertyID(ctx, domain.PropertyTypeResidential, "prop-123"))

		draft, err := svc.Get(ctx, domain.PropertyTypeResidential)
		require.NoError(t, err)
		assert.Equal(t, "prop-123", draft.PropertyID)
	})

	t.Run("repeating the same id is a no-op", func(t *testing.T) {
		svc, _ := newTestService(t)
		require.NoError(t, svc.SetPropertyID(ctx, domain.PropertyTypeResidential, "prop-123"))
		require.NoError(t, svc.SetPropertyID(ctx, domain.PropertyTypeResidential, "prop-123"))
	})

	t.Run("a different id is rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		require.NoError(t, svc.SetPropertyID(ctx, domain.PropertyTypeResidential, "prop-123"))

		err := svc.SetPropertyID(ctx, domain.PropertyTypeResidential, "prop-456")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodePreconditionFailed))
	})

	t.Run("empty id rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		err := svc.SetPropertyID(ctx, domain.PropertyTypeResidential, "")
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	})
}

func TestMarkSubmitted(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes snapshot and resets the draft", func(t *testing.T) {
		svc, bus := newTestService(t)

		_, err := svc.UpdateSection(ctx, domain.PropertyTypeResidential, domain.SectionDetails,
			json.RawMessage(`{"title":"Sunny Garden Apartment","city":"Lisbon"}`))
		require.NoError(t, err)
		require.NoError(t, svc.SetPropertyID(ctx, domain.PropertyTypeResidential, "prop-123"))

		snapshot, err := svc.MarkSubmitted(ctx, domain.PropertyTypeResidential)
		require.NoError(t, err)
		assert.True(t, snapshot.IsSubmitted)
		require.NotNil(t, snapshot.SubmittedAt)
		assert.Equal(t, "prop-123", snapshot.PropertyID)

		select {
		case ev := <-bus.Events():
			assert.Equal(t, domain.PropertyTypeResidential, ev.Type)
			assert.Equal(t, "Sunny Garden Apartment", ev.Title)
			assert.Equal(t, "Lisbon", ev.Location)
			assert.True(t, ev.Draft.IsSubmitted)
		default:
			t.Fatal("expected a submitted-listing event on the bus")
		}

		// The wizard starts clean for the next listing.
		draft, err := svc.Get(ctx, domain.PropertyTypeResidential)
		require.NoError(t, err)
		assert.Equal(t, models.NewDraft(domain.PropertyTypeResidential), draft)
	})

	t.Run("requires a property id", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.MarkSubmitted(ctx, domain.PropertyTypeResidential)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodePreconditionFailed))
	})

	t.Run("full bus does not fail the submission", func(t *testing.T) {
		bus := events.NewBus(0)
		svc := New(store.NewInMemoryStore(), bus, slog.New(slog.DiscardHandler))
		require.NoError(t, svc.SetPropertyID(ctx, domain.PropertyTypeResidential, "prop-123"))

		_, err := svc.MarkSubmitted(ctx, domain.PropertyTypeResidential)
		require.NoError(t, err)
	})
}

func TestSetUploaded(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.UpdateSection(ctx, domain.PropertyTypeResidential, domain.SectionMedia,
		json.RawMessage(`{"photos":[{"name":"front.jpg","localPath":"/tmp/front.jpg"}]}`))
	require.NoError(t, err)

	t.Run("merges the remote reference", func(t *testing.T) {
		err := svc.SetUploaded(ctx, domain.PropertyTypeResidential, domain.SectionMedia,
			"photo_0", "https://cdn/front.jpg", "front-key")
		require.NoError(t, err)

		draft, err := svc.Get(ctx, domain.PropertyTypeResidential)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn/front.jpg", draft.Media.Photos[0].RemoteURL)
	})

	t.Run("late result for a vanished field is dropped silently", func(t *testing.T) {
		err := svc.SetUploaded(ctx, domain.PropertyTypeResidential, domain.SectionMedia,
			"photo_9", "https://cdn/late.jpg", "late-key")
		assert.NoError(t, err)
	})
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.UpdateSection(ctx, domain.PropertyTypeResidential, domain.SectionDetails,
		json.RawMessage(`{"title":"Sunny Garden Apartment"}`))
	require.NoError(t, err)
	require.NoError(t, svc.SetPropertyID(ctx, domain.PropertyTypeResidential, "prop-123"))

	require.NoError(t, svc.Reset(ctx, domain.PropertyTypeResidential))

	draft, err := svc.Get(ctx, domain.PropertyTypeResidential)
	require.NoError(t, err)
	assert.Equal(t, models.NewDraft(domain.PropertyTypeResidential), draft)
}

func TestCompletionStatus_FreshEvaluation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	status, err := svc.GetCompletionStatus(ctx, domain.PropertyTypeResidential)
	require.NoError(t, err)
	assert.False(t, status[domain.SectionLegal])

	_, err = svc.UpdateSection(ctx, domain.PropertyTypeResidential, domain.SectionLegal,
		json.RawMessage(`{"termsAccepted":true,"ownershipDeclared":true,"informationAccurate":true}`))
	require.NoError(t, err)

	status, err = svc.GetCompletionStatus(ctx, domain.PropertyTypeResidential)
	require.NoError(t, err)
	assert.True(t, status[domain.SectionLegal])

	all, err := svc.IsAllSectionsComplete(ctx, domain.PropertyTypeResidential)
	require.NoError(t, err)
	assert.False(t, all)
}
