// Package handler exposes the submission orchestration endpoints. Every
// route maps to one explicit user action; retries happen only when the user
// triggers the action again.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	draftmodels "homevest/internal/draft/models"
	"homevest/internal/platform/middleware"
	"homevest/internal/submission"
	"homevest/pkg/domain"
	dErrors "homevest/pkg/domain-errors"
	"homevest/pkg/platform/httputil"
)

// Orchestrator defines the submission phases the wizard invokes.
type Orchestrator interface {
	CreateRemote(ctx context.Context, pt domain.PropertyType) (string, error)
	SaveSection(ctx context.Context, pt domain.PropertyType, name domain.SectionName) error
	UploadPending(ctx context.Context, pt domain.PropertyType) (*submission.UploadReport, error)
	PendingUploads(ctx context.Context, pt domain.PropertyType) ([]draftmodels.PendingAttachment, error)
	SubmitForReview(ctx context.Context, pt domain.PropertyType) (*draftmodels.PropertyDraft, error)
}

// Handler handles submission endpoints.
type Handler struct {
	orchestrator Orchestrator
	logger       *slog.Logger
}

func New(orchestrator Orchestrator, logger *slog.Logger) *Handler {
	return &Handler{orchestrator: orchestrator, logger: logger}
}

// Register mounts the submission routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/drafts/{type}/create-remote", h.handleCreateRemote)
	r.Post("/drafts/{type}/sections/{section}/save", h.handleSaveSection)
	r.Post("/drafts/{type}/uploads", h.handleUploadPending)
	r.Get("/drafts/{type}/pending-uploads", h.handlePendingUploads)
	r.Post("/drafts/{type}/submit", h.handleSubmit)
}

func (h *Handler) handleCreateRemote(w http.ResponseWriter, r *http.Request) {
	pt, ok := h.propertyType(w, r)
	if !ok {
		return
	}
	id, err := h.orchestrator.CreateRemote(r.Context(), pt)
	if err != nil {
		h.writeError(w, r, "create remote property", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"propertyId": id})
}

func (h *Handler) handleSaveSection(w http.ResponseWriter, r *http.Request) {
	pt, ok := h.propertyType(w, r)
	if !ok {
		return
	}
	section, err := domain.ParseSectionName(chi.URLParam(r, "section"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.orchestrator.SaveSection(r.Context(), pt, section); err != nil {
		h.writeError(w, r, "save section", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUploadPending(w http.ResponseWriter, r *http.Request) {
	pt, ok := h.propertyType(w, r)
	if !ok {
		return
	}
	report, err := h.orchestrator.UploadPending(r.Context(), pt)
	if err != nil {
		h.writeError(w, r, "upload pending files", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) handlePendingUploads(w http.ResponseWriter, r *http.Request) {
	pt, ok := h.propertyType(w, r)
	if !ok {
		return
	}
	pending, err := h.orchestrator.PendingUploads(r.Context(), pt)
	if err != nil {
		h.writeError(w, r, "list pending uploads", err)
		return
	}

	warnings := make([]map[string]string, 0, len(pending))
	for _, p := range pending {
		warnings = append(warnings, map[string]string{
			"section": p.Section.String(),
			"field":   p.Field,
			"name":    p.Attachment.Name,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"pendingUploads": warnings})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	pt, ok := h.propertyType(w, r)
	if !ok {
		return
	}
	submitted, err := h.orchestrator.SubmitForReview(r.Context(), pt)
	if err != nil {
		h.writeError(w, r, "submit for review", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"propertyId":  submitted.PropertyID,
		"submittedAt": submitted.SubmittedAt,
	})
}

func (h *Handler) propertyType(w http.ResponseWriter, r *http.Request) (domain.PropertyType, bool) {
	pt, err := domain.ParsePropertyType(chi.URLParam(r, "type"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return pt, true
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
