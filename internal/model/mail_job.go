package model

import (
	"time"

	"github.com/stemsi/codesprint-backend/internal/config"
)

// MailJob is the payload pushed onto the mail queue.
type MailJob struct {
	Kind       config.MailJobKind `json:"kind"`
	To         string             `json:"to"`
	Registrant *RegistrantSummary `json:"registrant,omitempty"`
	Login      *LoginEvent        `json:"login,omitempty"`
	QueuedAt   time.Time          `json:"queued_at"`
}
