package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/codesprint-backend/internal/config"
	"github.com/stemsi/codesprint-backend/internal/model"
)

// MailQueue enqueues mail jobs on a Redis list for MailWorker.
type MailQueue struct {
	rdb        *redis.Client
	key        string
	alertEmail string
	now        func() time.Time
}

// NewMailQueue creates a new MailQueue.
func NewMailQueue(rdb *redis.Client, cfg *config.Config) *MailQueue {
	return &MailQueue{
		rdb:        rdb,
		key:        cfg.MailQueue,
		alertEmail: cfg.AdminAlertEmail,
		now:        time.Now,
	}
}

// RegistrationConfirmed queues the confirmation mail to the registrant.
func (q *MailQueue) RegistrationConfirmed(ctx context.Context, r model.RegistrantSummary) error {
	return q.push(ctx, model.MailJob{
		Kind:       config.MailRegistrationConfirmation,
		To:         r.Email,
		Registrant: &r,
	})
}

// AdminLoggedIn queues the login alert to the operator address.
func (q *MailQueue) AdminLoggedIn(ctx context.Context, e model.LoginEvent) error {
	if q.alertEmail == "" {
		return nil
	}
	return q.push(ctx, model.MailJob{
		Kind:  config.MailAdminLoginAlert,
		To:    q.alertEmail,
		Login: &e,
	})
}

func (q *MailQueue) push(ctx context.Context, job model.MailJob) error {
	job.QueuedAt = q.now()
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal %s job: %w", job.Kind, err)
	}
	if err := q.rdb.RPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("enqueue %s job: %w", job.Kind, err)
	}
	return nil
}
