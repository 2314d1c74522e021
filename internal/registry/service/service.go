// Package service owns the registry: idempotent sync of submitted drafts and
// the approval lifecycle with its orthogonal enabled and paused flags.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"homevest/internal/events"
	"homevest/internal/registry/metrics"
	"homevest/internal/registry/models"
	"homevest/internal/registry/store"
	"homevest/pkg/domain"
	dErrors "homevest/pkg/domain-errors"
	"homevest/pkg/platform/sentinel"
)

// RemoteDeleter removes the remote property record when an entry whose draft
// carried a server id is deleted locally.
type RemoteDeleter interface {
	DeleteProperty(ctx context.Context, id string) error
}

// Service governs registry entries.
type Service struct {
	store   store.Store
	remote  RemoteDeleter
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

// WithRemoteDeleter wires the remote delete call into entry deletion.
func WithRemoteDeleter(r RemoteDeleter) Option {
	return func(s *Service) { s.remote = r }
}

func New(st store.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync materializes a submitted listing into the registry, exactly once per
// (type, title) key. An existing entry is an intentional idempotent no-op,
// not an error, so Sync is safe to call unconditionally and repeatedly.
func (s *Service) Sync(ctx context.Context, ev events.SubmittedListing) (bool, error) {
	if !ev.Draft.IsSubmitted {
		return false, dErrors.New(dErrors.CodePreconditionFailed, "draft is not submitted")
	}

	key := models.DedupKey{Type: ev.Type, Title: ev.Title}
	if _, err := s.store.FindByKey(ctx, key); err == nil {
		s.metrics.IncSyncDeduped()
		return false, nil
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return false, dErrors.Wrap(dErrors.CodeInternal, "look up registry entry", err)
	}

	entry := &models.RegistryEntry{
		ID:        domain.NewRegistryID(),
		Type:      ev.Type,
		Title:     ev.Title,
		Location:  ev.Location,
		Status:    domain.StatusPending,
		Enabled:   true,
		Metrics:   models.DisplayMetrics{},
		CreatedAt: s.now(),
		Draft:     ev.Draft,
	}
	if err := s.store.Insert(ctx, entry); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// A concurrent sync won the race; same idempotent outcome.
			s.metrics.IncSyncDeduped()
			return false, nil
		}
		return false, dErrors.Wrap(dErrors.CodeInternal, "insert registry entry", err)
	}

	s.metrics.IncSyncCreated()
	s.logger.InfoContext(ctx, "registry entry created",
		"registry_id", entry.ID.String(),
		"property_type", entry.Type.String(),
		"title", entry.Title,
	)
	return true, nil
}

// UpdateStatus applies an external review decision. Only pending entries can
// move: pending→approved repopulates display metrics, pending→rejected
// requires a reason and zeroes them. Entries enter pending exclusively
// through Sync, never through this call.
func (s *Service) UpdateStatus(ctx context.Context, id domain.RegistryID, status domain.ListingStatus, reason string) (*models.RegistryEntry, error) {
	entry, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !entry.Status.CanTransition(status) {
		return nil, dErrors.New(dErrors.CodePreconditionFailed,
			"cannot transition from "+entry.Status.String()+" to "+status.String())
	}

	switch status {
	case domain.StatusApproved:
		entry.Status = domain.StatusApproved
		entry.RejectionReason = ""
		entry.Metrics = seedDisplayMetrics(entry)
	case domain.StatusRejected:
		if reason == "" {
			return nil, dErrors.New(dErrors.CodeBadRequest, "rejection requires a reason")
		}
		entry.Status = domain.StatusRejected
		entry.RejectionReason = reason
		entry.Metrics = models.DisplayMetrics{}
	}

	if err := s.store.Update(ctx, entry); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "update registry entry", err)
	}
	s.metrics.IncStatusChange(status.String())
	return entry, nil
}

// SetEnabled toggles the owner-facing visibility flag. It is orthogonal to
// the approval lifecycle: any status, any time, Status untouched.
func (s *Service) SetEnabled(ctx context.Context, id domain.RegistryID, enabled bool) (*models.RegistryEntry, error) {
	entry, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.Enabled = enabled
	if err := s.store.Update(ctx, entry); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "update registry entry", err)
	}
	return entry, nil
}

// PauseFractionalization suspends new investor purchases on an approved
// entry. The reason is mandatory. There is no unpause operation: the reverse
// transition is an unresolved product gap, not an oversight here.
func (s *Service) PauseFractionalization(ctx context.Context, id domain.RegistryID, reason string) (*models.RegistryEntry, error) {
	if reason == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "pause requires a reason")
	}

	entry, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.StatusApproved {
		return nil, dErrors.New(dErrors.CodePreconditionFailed,
			"only approved properties can be paused")
	}

	entry.Paused = true
	entry.PauseReason = reason
	if err := s.store.Update(ctx, entry); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "update registry entry", err)
	}
	return entry, nil
}

// Delete removes the entry. The draft/pending-only rule is the management
// UI's policy; the registry does not forbid deleting other statuses
// structurally. When the originating draft carried a remote property id the
// remote record is deleted too, and that failure is surfaced, not swallowed.
func (s *Service) Delete(ctx context.Context, id domain.RegistryID) error {
	entry, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if s.remote != nil && entry.Draft.PropertyID != "" {
		if err := s.remote.DeleteProperty(ctx, entry.Draft.PropertyID); err != nil {
			return err
		}
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "delete registry entry", err)
	}
	s.metrics.IncDeleted()
	return nil
}

// Get returns one entry.
func (s *Service) Get(ctx context.Context, id domain.RegistryID) (*models.RegistryEntry, error) {
	return s.get(ctx, id)
}

// List returns every entry across both property types, oldest first.
func (s *Service) List(ctx context.Context) ([]*models.RegistryEntry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list registry entries", err)
	}
	return entries, nil
}

func (s *Service) get(ctx context.Context, id domain.RegistryID) (*models.RegistryEntry, error) {
	entry, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "registry entry not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "get registry entry", err)
	}
	return entry, nil
}

// seedDisplayMetrics populates the figures shown once a property goes live.
// Monthly earnings start from the listed rent; occupancy and bookings start
// at zero and accrue from real activity.
func seedDisplayMetrics(entry *models.RegistryEntry) models.DisplayMetrics {
	m := models.DisplayMetrics{}
	if rent := entry.Draft.Pricing.MonthlyRent; rent != "" {
		if v, err := strconv.ParseFloat(rent, 64); err == nil {
			m.MonthlyEarnings = v
		}
	}
	return m
}
