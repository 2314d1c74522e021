package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homevest/internal/events"
	"homevest/pkg/domain"
)

type recordingSyncer struct {
	mu     sync.Mutex
	titles []string
	err    error
}

func (r *recordingSyncer) Sync(_ context.Context, ev events.SubmittedListing) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles = append(r.titles, ev.Title)
	return r.err == nil, r.err
}

func (r *recordingSyncer) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.titles...)
}

func TestWorker_DrainsBusIntoRegistry(t *testing.T) {
	bus := events.NewBus(4)
	syncer := &recordingSyncer{}
	w := New(syncer, bus.Events(), slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, bus.Publish(events.SubmittedListing{
		Type: domain.PropertyTypeResidential, Title: "Sunny Garden Apartment",
	}))
	require.NoError(t, bus.Publish(events.SubmittedListing{
		Type: domain.PropertyTypeCommercial, Title: "Riverside Office Block",
	}))

	require.Eventually(t, func() bool {
		return len(syncer.seen()) == 2
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"Sunny Garden Apartment", "Riverside Office Block"}, syncer.seen())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWorker_SyncErrorDoesNotStopTheLoop(t *testing.T) {
	bus := events.NewBus(4)
	syncer := &recordingSyncer{err: errors.New("store down")}
	w := New(syncer, bus.Events(), slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, bus.Publish(events.SubmittedListing{Title: "first"}))
	require.NoError(t, bus.Publish(events.SubmittedListing{Title: "second"}))

	require.Eventually(t, func() bool {
		return len(syncer.seen()) == 2
	}, time.Second, 10*time.Millisecond)
}
