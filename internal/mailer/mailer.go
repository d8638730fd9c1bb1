// Package mailer renders outbound notifications and delivers them over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/codesprint-backend/internal/config"
	"github.com/stemsi/codesprint-backend/internal/model"
)

// Message is a rendered plain-text mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New returns the SMTP sender, or a log-only sender when no SMTP host is
// configured.
func New(cfg *config.Config, log zerolog.Logger) (Sender, error) {
	if cfg.SMTP.Host == "" {
		return NewLogSender(log), nil
	}
	return NewSMTPSender(cfg.SMTP)
}

var (
	confirmationTmpl = template.Must(template.New("confirmation").Parse(
		`Hi {{.Registrant.Name}},

Your registration for {{.Event}} is confirmed.

  Registration ID: {{.Registrant.ID}}
  Email:           {{.Registrant.Email}}
  Phone:           {{.Registrant.Phone}}
  Roll number:     {{.Registrant.RollNumber}}
  Branch:          {{.Registrant.Branch}}

Keep this mail for your records. Contest details will follow closer to the date.

The {{.Event}} team
`))

	loginAlertTmpl = template.Must(template.New("login_alert").Parse(
		`An admin signed in to the {{.Event}} dashboard.

  Account:    {{.Login.AdminEmail}}
  Time:       {{.At}}
  IP address: {{.Login.IP}}
  User agent: {{.Login.UserAgent}}

If this was not expected, rotate the account password with create-admin.
`))
)

type templateData struct {
	Event      string
	Registrant *model.RegistrantSummary
	Login      *model.LoginEvent
	At         string
}

// Compose renders a queued job into a message.
func Compose(job model.MailJob, eventName string) (Message, error) {
	data := templateData{Event: eventName, Registrant: job.Registrant, Login: job.Login}

	var (
		tmpl    *template.Template
		subject string
	)
	switch job.Kind {
	case config.MailRegistrationConfirmation:
		if job.Registrant == nil {
			return Message{}, fmt.Errorf("%s job without registrant", job.Kind)
		}
		tmpl = confirmationTmpl
		subject = fmt.Sprintf("%s registration confirmed (#%d)", eventName, job.Registrant.ID)
	case config.MailAdminLoginAlert:
		if job.Login == nil {
			return Message{}, fmt.Errorf("%s job without login event", job.Kind)
		}
		tmpl = loginAlertTmpl
		subject = fmt.Sprintf("%s admin login: %s", eventName, job.Login.AdminEmail)
		data.At = job.Login.At.UTC().Format(time.RFC1123)
	default:
		return Message{}, fmt.Errorf("unknown mail kind %q", job.Kind)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("render %s: %w", job.Kind, err)
	}

	return Message{To: job.To, Subject: subject, Body: body.String()}, nil
}
