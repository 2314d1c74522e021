// Package events carries the one-way producer/consumer link between the draft
// side and the registry side. The draft service publishes a SubmittedListing
// after a confirmed submission; the registry worker consumes it. The registry
// never reaches backward into draft internals.
package events

import (
	"errors"
	"time"

	"homevest/internal/draft/models"
	"homevest/pkg/domain"
)

// SubmittedListing announces that a draft's submit-for-review call succeeded.
// It carries the full draft payload so the consumer needs no further reads.
type SubmittedListing struct {
	Type        domain.PropertyType
	Title       string
	Location    string
	SubmittedAt time.Time
	Draft       models.PropertyDraft
}

// ErrBusFull is returned when the bus buffer is exhausted. Losing an event is
// tolerable: registry sync is idempotent and re-runs on demand.
var ErrBusFull = errors.New("event bus full")

// Bus is an in-process buffered channel bus.
type Bus struct {
	ch chan SubmittedListing
}

// NewBus creates a bus with the given buffer size.
func NewBus(buffer int) *Bus {
	return &Bus{ch: make(chan SubmittedListing, buffer)}
}

// Publish enqueues the event without blocking the submit path. A full buffer
// returns ErrBusFull instead of stalling the caller.
func (b *Bus) Publish(ev SubmittedListing) error {
	select {
	case b.ch <- ev:
		return nil
	default:
		return ErrBusFull
	}
}

// Events exposes the consumer side of the bus.
func (b *Bus) Events() <-chan SubmittedListing {
	return b.ch
}
