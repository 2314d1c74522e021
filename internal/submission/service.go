// Package submission drives the strictly ordered remote sequence that turns a
// local draft into a property under review: create, per-section saves, file
// uploads, submit-for-review. Every phase is an explicit user action; nothing
// retries automatically and a failed remote call never touches local draft
// data.
package submission

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"homevest/internal/draft/models"
	"homevest/internal/draft/validate"
	"homevest/internal/platform/metrics"
	"homevest/internal/submission/remoteapi"
	"homevest/pkg/domain"
	dErrors "homevest/pkg/domain-errors"
)

// Drafts is the slice of the draft service the orchestrator needs.
type Drafts interface {
	Get(ctx context.Context, pt domain.PropertyType) (*models.PropertyDraft, error)
	SetPropertyID(ctx context.Context, pt domain.PropertyType, id string) error
	SetUploaded(ctx context.Context, pt domain.PropertyType, section domain.SectionName, field, url, key string) error
	MarkSubmitted(ctx context.Context, pt domain.PropertyType) (*models.PropertyDraft, error)
}

// RemoteAPI is the consumed Remote Property API surface.
type RemoteAPI interface {
	CreateProperty(ctx context.Context, details any) (string, error)
	SaveDraft(ctx context.Context, id, section string, payload any) error
	UploadFiles(ctx context.Context, id string, files []remoteapi.FileRef, fileType string) ([]remoteapi.UploadResult, error)
	SubmitForReview(ctx context.Context, id string) error
}

// Service is the submission orchestrator.
type Service struct {
	drafts         Drafts
	remote         RemoteAPI
	logger         *slog.Logger
	metrics        *metrics.Metrics
	uploadParallel int
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithUploadParallelism bounds concurrent file uploads.
func WithUploadParallelism(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.uploadParallel = n
		}
	}
}

func New(drafts Drafts, remote RemoteAPI, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		drafts:         drafts,
		remote:         remote,
		logger:         logger,
		uploadParallel: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRemote is phase one: it sends the details section to the remote
// create endpoint and records the returned identifier. This is the sole
// origin of the property id; failure here blocks every later phase.
// createProperty is at-most-once per draft, so a draft that already has an id
// fails the precondition rather than re-creating.
func (s *Service) CreateRemote(ctx context.Context, pt domain.PropertyType) (string, error) {
	draft, err := s.drafts.Get(ctx, pt)
	if err != nil {
		return "", err
	}
	if draft.PropertyID != "" {
		return "", dErrors.New(dErrors.CodePreconditionFailed, "property already created remotely")
	}
	if errs := validate.ValidateSection(draft, domain.SectionDetails); len(errs) > 0 {
		return "", dErrors.New(dErrors.CodeValidationFailed, "details section is incomplete")
	}

	id, err := s.remote.CreateProperty(ctx, draft.Details)
	if err != nil {
		return "", err
	}
	if err := s.drafts.SetPropertyID(ctx, pt, id); err != nil {
		return "", err
	}
	return id, nil
}

// SaveSection is phase two, repeated once per wizard screen: it sends the
// section's current data for the already-created property. A missing property
// id is a fatal precondition failure, not a retryable network error - the
// user must return to the details step.
func (s *Service) SaveSection(ctx context.Context, pt domain.PropertyType, name domain.SectionName) error {
	draft, err := s.drafts.Get(ctx, pt)
	if err != nil {
		return err
	}
	if draft.PropertyID == "" {
		return dErrors.New(dErrors.CodePreconditionFailed,
			"property has not been created remotely; complete the details step first")
	}

	payload := draft.SectionPayload(name)
	if payload == nil {
		return dErrors.New(dErrors.CodeBadRequest, "unknown section: "+name.String())
	}
	return s.remote.SaveDraft(ctx, draft.PropertyID, name.String(), payload)
}

// UploadOutcome reports one attempted upload.
type UploadOutcome struct {
	Section domain.SectionName `json:"section"`
	Field   string             `json:"field"`
	Error   string             `json:"error,omitempty"`
}

// UploadReport summarizes an UploadPending run. Failures are per-field and
// independently retryable by re-invoking UploadPending.
type UploadReport struct {
	Uploaded []UploadOutcome `json:"uploaded"`
	Failed   []UploadOutcome `json:"failed"`
}

// UploadPending is phase three: every attachment with a local reference and
// no remote URL is uploaded, concurrently. Successes are merged into the
// draft as they land; failures are reported without rolling anything back.
// Uploads never block section saves or final submission.
func (s *Service) UploadPending(ctx context.Context, pt domain.PropertyType) (*UploadReport, error) {
	draft, err := s.drafts.Get(ctx, pt)
	if err != nil {
		return nil, err
	}
	if draft.PropertyID == "" {
		return nil, dErrors.New(dErrors.CodePreconditionFailed,
			"property has not been created remotely; complete the details step first")
	}

	pending := draft.PendingUploads()
	s.metrics.SetUploadsPending(len(pending))
	report := &UploadReport{}
	if len(pending) == 0 {
		return report, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.uploadParallel)

	for _, item := range pending {
		g.Go(func() error {
			results, err := s.remote.UploadFiles(gctx, draft.PropertyID,
				[]remoteapi.FileRef{{Name: item.Attachment.Name, LocalPath: item.Attachment.LocalPath}},
				fileTypeFor(item.Section))
			if err != nil {
				mu.Lock()
				report.Failed = append(report.Failed, UploadOutcome{
					Section: item.Section, Field: item.Field, Error: err.Error(),
				})
				mu.Unlock()
				return nil
			}

			if err := s.drafts.SetUploaded(gctx, pt, item.Section, item.Field,
				results[0].URL, results[0].Key); err != nil {
				mu.Lock()
				report.Failed = append(report.Failed, UploadOutcome{
					Section: item.Section, Field: item.Field, Error: err.Error(),
				})
				mu.Unlock()
				return nil
			}

			s.metrics.IncUploadFinished()
			mu.Lock()
			report.Uploaded = append(report.Uploaded, UploadOutcome{
				Section: item.Section, Field: item.Field,
			})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	s.metrics.SetUploadsPending(len(pending) - len(report.Uploaded))
	return report, nil
}

// PendingUploads lists attachments still awaiting upload, surfaced as a
// warning before the user proceeds to submit. Pending uploads do not block
// submission.
func (s *Service) PendingUploads(ctx context.Context, pt domain.PropertyType) ([]models.PendingAttachment, error) {
	draft, err := s.drafts.Get(ctx, pt)
	if err != nil {
		return nil, err
	}
	return draft.PendingUploads(), nil
}

// SubmitForReview is the final phase. It is gated on a fresh full
// re-validation of every section - never on cached error state - and sends
// only the property id. On the remote ack the draft is marked submitted,
// which publishes the registry-sync event and resets the wizard.
func (s *Service) SubmitForReview(ctx context.Context, pt domain.PropertyType) (*models.PropertyDraft, error) {
	draft, err := s.drafts.Get(ctx, pt)
	if err != nil {
		return nil, err
	}
	if draft.PropertyID == "" {
		return nil, dErrors.New(dErrors.CodePreconditionFailed,
			"property has not been created remotely; complete the details step first")
	}
	if !validate.AllSectionsComplete(draft) {
		s.metrics.ObserveSubmission(pt.String(), "rejected_incomplete")
		return nil, dErrors.New(dErrors.CodePreconditionFailed, "not all sections are complete")
	}

	if err := s.remote.SubmitForReview(ctx, draft.PropertyID); err != nil {
		s.metrics.ObserveSubmission(pt.String(), "remote_failed")
		return nil, err
	}

	submitted, err := s.drafts.MarkSubmitted(ctx, pt)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveSubmission(pt.String(), "ok")
	return submitted, nil
}

func fileTypeFor(section domain.SectionName) string {
	if section == domain.SectionMedia {
		return "photo"
	}
	return "document"
}
