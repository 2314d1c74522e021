// Package worker consumes submitted-listing events and feeds them into
// registry sync. It is the registry side of the one-way producer/consumer
// link; sync errors are logged and skipped because the sync path is
// idempotent and re-runs on demand.
package worker

import (
	"context"
	"log/slog"

	"homevest/internal/events"
)

// Syncer is the slice of the registry service the worker needs.
type Syncer interface {
	Sync(ctx context.Context, ev events.SubmittedListing) (bool, error)
}

// Worker drains the event bus into the registry.
type Worker struct {
	registry Syncer
	inbox    <-chan events.SubmittedListing
	logger   *slog.Logger
}

func New(registry Syncer, inbox <-chan events.SubmittedListing, logger *slog.Logger) *Worker {
	return &Worker{registry: registry, inbox: inbox, logger: logger}
}

// Run consumes events until the context is canceled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-w.inbox:
			if _, err := w.registry.Sync(ctx, ev); err != nil {
				w.logger.ErrorContext(ctx, "registry sync failed",
					"property_type", ev.Type.String(),
					"title", ev.Title,
					"error", err.Error(),
				)
			}
		}
	}
}
