package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/codesprint-backend/internal/model"
)

// notifyTimeout bounds a detached notification hand-off.
const notifyTimeout = 10 * time.Second

// Notifier hands outbound mail to the delivery pipeline.
type Notifier interface {
	RegistrationConfirmed(ctx context.Context, r model.RegistrantSummary) error
	AdminLoggedIn(ctx context.Context, e model.LoginEvent) error
}

// Dispatcher runs notifier calls detached from the request that triggered
// them. Failures are logged and dropped.
type Dispatcher struct {
	notifier Notifier
	log      zerolog.Logger
	inflight sync.WaitGroup
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(notifier Notifier, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		log:      log.With().Str("component", "notify_dispatcher").Logger(),
	}
}

// Go starts fn on its own goroutine with a fresh timeout context and
// returns immediately.
func (d *Dispatcher) Go(kind string, fn func(ctx context.Context, n Notifier) error) {
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := fn(ctx, d.notifier); err != nil {
			d.log.Error().Err(err).Str("kind", kind).Msg("Notification dispatch failed")
		}
	}()
}

// Wait blocks until every dispatch started so far has returned or ctx is
// done. It reports whether all of them finished.
func (d *Dispatcher) Wait(ctx context.Context) bool {
	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}
