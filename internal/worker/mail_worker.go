package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/codesprint-backend/internal/config"
	"github.com/stemsi/codesprint-backend/internal/mailer"
	"github.com/stemsi/codesprint-backend/internal/model"
)

// sendTimeout bounds a single delivery attempt.
const sendTimeout = 30 * time.Second

// MailWorker consumes the mail queue and delivers each job once. Failed
// deliveries are logged and dropped; nothing is retried.
type MailWorker struct {
	rdb       *redis.Client
	sender    mailer.Sender
	key       string
	eventName string
	log       zerolog.Logger
}

// NewMailWorker creates a new MailWorker.
func NewMailWorker(rdb *redis.Client, sender mailer.Sender, cfg *config.Config, log zerolog.Logger) *MailWorker {
	return &MailWorker{
		rdb:       rdb,
		sender:    sender,
		key:       cfg.MailQueue,
		eventName: cfg.EventName,
		log:       log.With().Str("component", "mail_worker").Logger(),
	}
}

// Start begins the worker loop. Call in a goroutine; it returns after ctx
// is cancelled and the queue has been drained.
func (w *MailWorker) Start(ctx context.Context) {
	w.log.Info().Str("queue", w.key).Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *MailWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, w.key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
			time.Sleep(time.Second)
		}
		return
	}

	if len(result) < 2 {
		return
	}
	w.deliver(ctx, result[1])
}

func (w *MailWorker) deliver(ctx context.Context, raw string) {
	var job model.MailJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}

	msg, err := mailer.Compose(job, w.eventName)
	if err != nil {
		w.log.Error().Err(err).Str("kind", string(job.Kind)).Msg("Compose error")
		return
	}

	// Delivery outlives a cancelled loop context so a job already popped
	// is not lost mid-send.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()

	if err := w.sender.Send(sendCtx, msg); err != nil {
		w.log.Error().Err(err).
			Str("kind", string(job.Kind)).
			Str("to", job.To).
			Msg("Send failed, dropping")
		return
	}

	w.log.Info().
		Str("kind", string(job.Kind)).
		Str("to", job.To).
		Dur("queued_for", time.Since(job.QueuedAt)).
		Msg("Mail sent")
}

// drain delivers all remaining jobs before shutdown.
func (w *MailWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, w.key).Result()
		if err != nil {
			break
		}
		w.deliver(ctx, result)
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
