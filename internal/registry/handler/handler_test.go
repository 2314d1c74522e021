package handler

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	draftmodels "homevest/internal/draft/models"
	"homevest/internal/registry/models"
	"homevest/internal/registry/service"
	"homevest/internal/registry/store"
	"homevest/pkg/domain"
	"homevest/pkg/testutil"
)

func newTestRouter(t *testing.T) (chi.Router, *service.Service) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	svc := service.New(store.NewInMemoryStore(), logger)
	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r, svc
}

func submittedDraft(title string) draftmodels.PropertyDraft {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	d := draftmodels.NewDraft(domain.PropertyTypeResidential)
	d.PropertyID = "prop-123"
	d.Details.Title = title
	d.Details.City = "Lisbon"
	d.Pricing.MonthlyRent = "1200"
	d.IsSubmitted = true
	d.SubmittedAt = &now
	return *d
}

func syncOne(t *testing.T, router chi.Router, title string) models.RegistryEntry {
	t.Helper()
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/properties/sync",
		map[string]any{"type": "residential", "draft": submittedDraft(title)}))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/properties"))
	require.Equal(t, http.StatusOK, rr.Code)
	type listResponse struct {
		Properties []models.RegistryEntry `json:"properties"`
	}
	resp := testutil.UnmarshalResponse[listResponse](t, rr)
	require.NotEmpty(t, resp.Properties)
	return resp.Properties[len(resp.Properties)-1]
}

func TestHandleSync(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("first replay creates the entry", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/properties/sync",
			map[string]any{"type": "residential", "draft": submittedDraft("Sunny Garden Apartment")}))
		require.Equal(t, http.StatusOK, rr.Code)

		resp := testutil.UnmarshalResponse[map[string]bool](t, rr)
		assert.True(t, (*resp)["created"])
	})

	t.Run("second replay is a no-op", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/properties/sync",
			map[string]any{"type": "residential", "draft": submittedDraft("Sunny Garden Apartment")}))
		require.Equal(t, http.StatusOK, rr.Code)

		resp := testutil.UnmarshalResponse[map[string]bool](t, rr)
		assert.False(t, (*resp)["created"])
	})

	t.Run("unsubmitted draft is rejected", func(t *testing.T) {
		draft := submittedDraft("Another Apartment")
		draft.IsSubmitted = false
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/properties/sync",
			map[string]any{"type": "residential", "draft": draft}))
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestHandleUpdateStatus(t *testing.T) {
	router, _ := newTestRouter(t)
	entry := syncOne(t, router, "Sunny Garden Apartment")

	t.Run("approval", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t,
			http.MethodPatch, "/properties/"+entry.ID.String()+"/status",
			map[string]string{"status": "approved"}))
		require.Equal(t, http.StatusOK, rr.Code)

		got := testutil.UnmarshalResponse[models.RegistryEntry](t, rr)
		assert.Equal(t, domain.StatusApproved, got.Status)
		assert.InDelta(t, 1200, got.Metrics.MonthlyEarnings, 0.001)
	})

	t.Run("second transition is refused", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t,
			http.MethodPatch, "/properties/"+entry.ID.String()+"/status",
			map[string]string{"status": "rejected", "reason": "late paperwork"}))
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t,
			http.MethodPatch, "/properties/"+entry.ID.String()+"/status",
			map[string]string{"status": "archived"}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown entry", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t,
			http.MethodPatch, "/properties/"+domain.NewRegistryID().String()+"/status",
			map[string]string{"status": "approved"}))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t,
			http.MethodPatch, "/properties/not-a-uuid/status",
			map[string]string{"status": "approved"}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleEnableDisablePause(t *testing.T) {
	router, _ := newTestRouter(t)
	entry := syncOne(t, router, "Sunny Garden Apartment")

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPatch, "/properties/"+entry.ID.String()+"/status",
		map[string]string{"status": "approved"}))
	require.Equal(t, http.StatusOK, rr.Code)

	t.Run("disable leaves status untouched", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t,
			http.MethodPost, "/properties/"+entry.ID.String()+"/disable"))
		require.Equal(t, http.StatusOK, rr.Code)

		got := testutil.UnmarshalResponse[models.RegistryEntry](t, rr)
		assert.False(t, got.Enabled)
		assert.Equal(t, domain.StatusApproved, got.Status)
	})

	t.Run("enable restores visibility", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t,
			http.MethodPost, "/properties/"+entry.ID.String()+"/enable"))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, testutil.UnmarshalResponse[models.RegistryEntry](t, rr).Enabled)
	})

	t.Run("pause requires a reason", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t,
			http.MethodPost, "/properties/"+entry.ID.String()+"/pause",
			map[string]string{}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("pause with a reason", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t,
			http.MethodPost, "/properties/"+entry.ID.String()+"/pause",
			map[string]string{"reason": "ownership dispute under review"}))
		require.Equal(t, http.StatusOK, rr.Code)

		got := testutil.UnmarshalResponse[models.RegistryEntry](t, rr)
		assert.True(t, got.Paused)
		assert.Equal(t, "ownership dispute under review", got.PauseReason)
	})
}

func TestHandleDelete(t *testing.T) {
	router, _ := newTestRouter(t)
	entry := syncOne(t, router, "Sunny Garden Apartment")

	rr := testutil.DoRequest(router, testutil.NewRequest(t,
		http.MethodDelete, "/properties/"+entry.ID.String()))
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewRequest(t,
		http.MethodGet, "/properties/"+entry.ID.String()))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
