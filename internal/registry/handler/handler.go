// Package handler exposes the property-management endpoints consumed by the
// owner's property list screen. All routes sit behind bearer-token auth.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"homevest/internal/events"
	"homevest/internal/platform/middleware"
	"homevest/internal/registry/models"
	"homevest/pkg/domain"
	dErrors "homevest/pkg/domain-errors"
	"homevest/pkg/platform/httputil"
)

// Service defines the registry operations the management screen consumes.
type Service interface {
	Sync(ctx context.Context, ev events.SubmittedListing) (bool, error)
	List(ctx context.Context) ([]*models.RegistryEntry, error)
	Get(ctx context.Context, id domain.RegistryID) (*models.RegistryEntry, error)
	UpdateStatus(ctx context.Context, id domain.RegistryID, status domain.ListingStatus, reason string) (*models.RegistryEntry, error)
	SetEnabled(ctx context.Context, id domain.RegistryID, enabled bool) (*models.RegistryEntry, error)
	PauseFractionalization(ctx context.Context, id domain.RegistryID, reason string) (*models.RegistryEntry, error)
	Delete(ctx context.Context, id domain.RegistryID) error
}

// Handler handles registry endpoints.
type Handler struct {
	registry Service
	logger   *slog.Logger
}

func New(registry Service, logger *slog.Logger) *Handler {
	return &Handler{registry: registry, logger: logger}
}

// Register mounts the management routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/properties", h.handleList)
	r.Post("/properties/sync", h.handleSync)
	r.Get("/properties/{id}", h.handleGet)
	r.Patch("/properties/{id}/status", h.handleUpdateStatus)
	r.Post("/properties/{id}/enable", h.handleSetEnabled(true))
	r.Post("/properties/{id}/disable", h.handleSetEnabled(false))
	r.Post("/properties/{id}/pause", h.handlePause)
	r.Delete("/properties/{id}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.registry.List(r.Context())
	if err != nil {
		h.writeError(w, r, "list properties", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"properties": entries})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.registryID(w, r)
	if !ok {
		return
	}
	entry, err := h.registry.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "get property", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entry)
}

// handleSync is the recovery surface for a dropped submitted-listing event:
// an operator replays the submitted payload and the idempotent sync does the
// rest. Re-posting an already-synced listing is a 200 with created=false.
func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type  string          `json:"type"`
		Draft json.RawMessage `json:"draft"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	pt, err := domain.ParsePropertyType(req.Type)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	ev := events.SubmittedListing{Type: pt}
	if err := json.Unmarshal(req.Draft, &ev.Draft); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid draft payload"))
		return
	}
	ev.Title = ev.Draft.Details.Title
	ev.Location = ev.Draft.Details.City
	if ev.Draft.SubmittedAt != nil {
		ev.SubmittedAt = *ev.Draft.SubmittedAt
	}

	created, err := h.registry.Sync(r.Context(), ev)
	if err != nil {
		h.writeError(w, r, "sync property", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"created": created})
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.registryID(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	status, err := domain.ParseListingStatus(req.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entry, err := h.registry.UpdateStatus(r.Context(), id, status, req.Reason)
	if err != nil {
		h.writeError(w, r, "update property status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) handleSetEnabled(enabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.registryID(w, r)
		if !ok {
			return
		}
		entry, err := h.registry.SetEnabled(r.Context(), id, enabled)
		if err != nil {
			h.writeError(w, r, "toggle property", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, entry)
	}
}

func (h *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	id, ok := h.registryID(w, r)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	entry, err := h.registry.PauseFractionalization(r.Context(), id, req.Reason)
	if err != nil {
		h.writeError(w, r, "pause fractionalization", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.registryID(w, r)
	if !ok {
		return
	}
	if err := h.registry.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, "delete property", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) registryID(w http.ResponseWriter, r *http.Request) (domain.RegistryID, bool) {
	id, err := domain.ParseRegistryID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return domain.RegistryID{}, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(r.Context(), op+" failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
