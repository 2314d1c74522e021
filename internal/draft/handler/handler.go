// Package handler exposes the wizard-facing draft endpoints.
package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"homevest/internal/draft/models"
	"homevest/internal/draft/validate"
	"homevest/internal/platform/middleware"
	"homevest/pkg/domain"
	dErrors "homevest/pkg/domain-errors"
	"homevest/pkg/platform/httputil"
)

// Service defines the draft operations the wizard screens consume.
type Service interface {
	Get(ctx context.Context, pt domain.PropertyType) (*models.PropertyDraft, error)
	UpdateSection(ctx context.Context, pt domain.PropertyType, name domain.SectionName, raw json.RawMessage) (*models.PropertyDraft, error)
	SectionErrors(ctx context.Context, pt domain.PropertyType, name domain.SectionName) ([]validate.FieldError, error)
	GetCompletionStatus(ctx context.Context, pt domain.PropertyType) (map[domain.SectionName]bool, error)
	IsAllSectionsComplete(ctx context.Context, pt domain.PropertyType) (bool, error)
	Reset(ctx context.Context, pt domain.PropertyType) error
}

// Handler handles draft endpoints.
type Handler struct {
	drafts Service
	logger *slog.Logger
}

func New(drafts Service, logger *slog.Logger) *Handler {
	return &Handler{drafts: drafts, logger: logger}
}

// Register mounts the draft routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/drafts/{type}", h.handleGet)
	r.Patch("/drafts/{type}/sections/{section}", h.handleUpdateSection)
	r.Get("/drafts/{type}/sections/{section}/errors", h.handleSectionErrors)
	r.Get("/drafts/{type}/completion", h.handleCompletion)
	r.Post("/drafts/{type}/reset", h.handleReset)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	pt, ok := h.propertyType(w, r)
	if !ok {
		return
	}
	draft, err := h.drafts.Get(r.Context(), pt)
	if err != nil {
		h.writeError(w, r, "load draft", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, draft)
}

func (h *Handler) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	pt, ok := h.propertyType(w, r)
	if !ok {
		return
	}
	section, ok := h.section(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unreadable request body"))
		return
	}

	draft, err := h.drafts.UpdateSection(r.Context(), pt, section, body)
	if err != nil {
		h.writeError(w, r, "update section", err)
		return
	}

	// Inline feedback for the screen: the updated draft plus the section's
	// current advisory errors. The submit gate recomputes independently.
	errs, err := h.drafts.SectionErrors(r.Context(), pt, section)
	if err != nil {
		h.writeError(w, r, "validate section", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"draft":  draft,
		"errors": errs,
	})
}

func (h *Handler) handleSectionErrors(w http.ResponseWriter, r *http.Request) {
	pt, ok := h.propertyType(w, r)
	if !ok {
		return
	}
	section, ok := h.section(w, r)
	if !ok {
		return
	}
	errs, err := h.drafts.SectionErrors(r.Context(), pt, section)
	if err != nil {
		h.writeError(w, r, "validate section", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"errors": errs})
}

func (h *Handler) handleCompletion(w http.ResponseWriter, r *http.Request) {
	pt, ok := h.propertyType(w, r)
	if !ok {
		return
	}
	status, err := h.drafts.GetCompletionStatus(r.Context(), pt)
	if err != nil {
		h.writeError(w, r, "completion status", err)
		return
	}
	all, err := h.drafts.IsAllSectionsComplete(r.Context(), pt)
	if err != nil {
		h.writeError(w, r, "completion status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"sections":    status,
		"allComplete": all,
	})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	pt, ok := h.propertyType(w, r)
	if !ok {
		return
	}
	if err := h.drafts.Reset(r.Context(), pt); err != nil {
		h.writeError(w, r, "reset draft", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) propertyType(w http.ResponseWriter, r *http.Request) (domain.PropertyType, bool) {
	pt, err := domain.ParsePropertyType(chi.URLParam(r, "type"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return pt, true
}

func (h *Handler) section(w http.ResponseWriter, r *http.Request) (domain.SectionName, bool) {
	section, err := domain.ParseSectionName(chi.URLParam(r, "section"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return section, true
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
