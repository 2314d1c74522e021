// Package service owns the draft lifecycle: section updates, completion
// aggregation, server-id bookkeeping and the post-submission reset. It is the
// only writer of draft state; validators stay pure and the registry side only
// ever sees published events.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"homevest/internal/draft/models"
	"homevest/internal/draft/store"
	"homevest/internal/draft/validate"
	"homevest/internal/events"
	"homevest/internal/platform/metrics"
	"homevest/pkg/domain"
	dErrors "homevest/pkg/domain-errors"
	"homevest/pkg/platform/sentinel"
)

// Service coordinates draft reads and writes against the durable store.
type Service struct {
	store   store.Store
	bus     *events.Bus
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the wall clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(st store.Store, bus *events.Bus, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  st,
		bus:    bus,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the live draft for the property type, creating the documented
// default when none has been persisted yet.
func (s *Service) Get(ctx context.Context, pt domain.PropertyType) (*models.PropertyDraft, error) {
	draft, err := s.store.Load(ctx, pt)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.NewDraft(pt), nil
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "load draft", err)
	}
	return draft, nil
}

// UpdateSection shallow-merges the raw JSON patch into the named section and
// persists the result. Fields absent from the patch are preserved; object and
// array fields are replaced wholesale. Safe to call on every keystroke.
func (s *Service) UpdateSection(ctx context.Context, pt domain.PropertyType, name domain.SectionName, raw json.RawMessage) (*models.PropertyDraft, error) {
	if !sectionAllowed(pt, name) {
		return nil, dErrors.New(dErrors.CodeBadRequest,
			"section "+name.String()+" does not exist in the "+pt.String()+" flow")
	}

	patch, err := models.DecodePatch(name, raw)
	if err != nil {
		return nil, err
	}

	draft, err := s.Get(ctx, pt)
	if err != nil {
		return nil, err
	}
	draft.Apply(patch)

	if err := s.store.Save(ctx, draft); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "save draft", err)
	}
	s.metrics.ObserveSectionUpdate(pt.String(), name.String())
	return draft, nil
}

// SectionErrors re-validates the named section against live data and returns
// its current field errors. Advisory only: the submit gate recomputes.
func (s *Service) SectionErrors(ctx context.Context, pt domain.PropertyType, name domain.SectionName) ([]validate.FieldError, error) {
	draft, err := s.Get(ctx, pt)
	if err != nil {
		return nil, err
	}
	return validate.ValidateSection(draft, name), nil
}

// SetPropertyID records the server-assigned identifier. The id is assigned
// exactly once: repeating the same id is a no-op, a different id is rejected.
func (s *Service) SetPropertyID(ctx context.Context, pt domain.PropertyType, id string) error {
	if id == "" {
		return dErrors.New(dErrors.CodeBadRequest, "property id must not be empty")
	}

	draft, err := s.Get(ctx, pt)
	if err != nil {
		return err
	}
	if draft.PropertyID == id {
		return nil
	}
	if draft.PropertyID != "" {
		return dErrors.Wrap(dErrors.CodePreconditionFailed,
			"property id already assigned", sentinel.ErrInvalidState)
	}

	draft.PropertyID = id
	if err := s.store.Save(ctx, draft); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "save draft", err)
	}
	return nil
}

// MarkSubmitted flips the submitted flag after remote confirmation, publishes
// the submitted-listing event for registry sync, and resets the draft so the
// next wizard flow starts clean. Never call this optimistically: the remote
// submit-for-review ack must already be in hand.
func (s *Service) MarkSubmitted(ctx context.Context, pt domain.PropertyType) (*models.PropertyDraft, error) {
	draft, err := s.Get(ctx, pt)
	if err != nil {
		return nil, err
	}
	if draft.PropertyID == "" {
		return nil, dErrors.New(dErrors.CodePreconditionFailed, "draft has no property id")
	}

	submittedAt := s.now()
	draft.IsSubmitted = true
	draft.SubmittedAt = &submittedAt
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "save draft", err)
	}

	snapshot := draft.Clone()
	if err := s.bus.Publish(events.SubmittedListing{
		Type:        pt,
		Title:       snapshot.Details.Title,
		Location:    snapshot.Details.City,
		SubmittedAt: submittedAt,
		Draft:       *snapshot,
	}); err != nil {
		// Dropped events recover through the idempotent manual sync path.
		s.logger.ErrorContext(ctx, "submitted event dropped",
			"property_type", pt.String(),
			"error", err.Error(),
		)
	}

	// Stale data must not leak into the next listing flow.
	if err := s.store.Save(ctx, models.NewDraft(pt)); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "reset draft after submission", err)
	}
	return snapshot, nil
}

// SetUploaded merges a finished upload's remote URL and key into the draft.
// A result arriving for a field that no longer exists (the draft was reset or
// the photo removed mid-flight) is dropped with a warning, never an error:
// there is no cancellation for in-flight uploads and late results must be
// handled defensively.
func (s *Service) SetUploaded(ctx context.Context, pt domain.PropertyType, section domain.SectionName, field, url, key string) error {
	draft, err := s.Get(ctx, pt)
	if err != nil {
		return err
	}
	if !draft.SetUploaded(section, field, url, key) {
		s.logger.WarnContext(ctx, "upload result dropped, field no longer present",
			"property_type", pt.String(),
			"section", section.String(),
			"field", field,
		)
		return nil
	}
	if err := s.store.Save(ctx, draft); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "save draft", err)
	}
	return nil
}

// Reset restores the entire draft to its documented default.
func (s *Service) Reset(ctx context.Context, pt domain.PropertyType) error {
	if err := s.store.Save(ctx, models.NewDraft(pt)); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "reset draft", err)
	}
	return nil
}

// GetCompletionStatus derives the per-section readiness map by freshly
// re-validating the draft's live data. Results are never cached: a stale
// error object must not drive the submit gate.
func (s *Service) GetCompletionStatus(ctx context.Context, pt domain.PropertyType) (map[domain.SectionName]bool, error) {
	draft, err := s.Get(ctx, pt)
	if err != nil {
		return nil, err
	}
	return validate.CompletionStatus(draft), nil
}

// IsAllSectionsComplete is the submit gate: the logical AND over a fresh
// completion map.
func (s *Service) IsAllSectionsComplete(ctx context.Context, pt domain.PropertyType) (bool, error) {
	draft, err := s.Get(ctx, pt)
	if err != nil {
		return false, err
	}
	return validate.AllSectionsComplete(draft), nil
}

func sectionAllowed(pt domain.PropertyType, name domain.SectionName) bool {
	for _, allowed := range domain.RequiredSections(pt) {
		if allowed == name {
			return true
		}
	}
	return false
}
