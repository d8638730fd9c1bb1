package mailer

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/codesprint-backend/internal/config"
	"github.com/stemsi/codesprint-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_RegistrationConfirmation(t *testing.T) {
	job := model.MailJob{
		Kind: config.MailRegistrationConfirmation,
		To:   "ana@x.com",
		Registrant: &model.RegistrantSummary{
			ID: 1, Name: "Ana Lee", Email: "ana@x.com", Phone: "9876543210",
			RollNumber: "21CS045", Branch: "Information Technology",
		},
	}

	msg, err := Compose(job, "CodeSprint")
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", msg.To)
	assert.Equal(t, "CodeSprint registration confirmed (#1)", msg.Subject)
	assert.Contains(t, msg.Body, "Hi Ana Lee,")
	assert.Contains(t, msg.Body, "21CS045")
	assert.Contains(t, msg.Body, "Information Technology")
}

func TestCompose_AdminLoginAlert(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	job := model.MailJob{
		Kind:  config.MailAdminLoginAlert,
		To:    "alerts@x.com",
		Login: &model.LoginEvent{AdminEmail: "ops@x.com", IP: "10.0.0.1", UserAgent: "curl/8", At: at},
	}

	msg, err := Compose(job, "CodeSprint")
	require.NoError(t, err)
	assert.Equal(t, "alerts@x.com", msg.To)
	assert.Equal(t, "CodeSprint admin login: ops@x.com", msg.Subject)
	assert.Contains(t, msg.Body, "10.0.0.1")
	assert.Contains(t, msg.Body, "curl/8")
	assert.Contains(t, msg.Body, at.Format(time.RFC1123))
}

func TestCompose_Rejects(t *testing.T) {
	cases := map[string]model.MailJob{
		"unknown kind":         {Kind: "newsletter"},
		"confirmation no data": {Kind: config.MailRegistrationConfirmation},
		"login alert no event": {Kind: config.MailAdminLoginAlert},
	}
	for name, job := range cases {
		_, err := Compose(job, "CodeSprint")
		assert.Error(t, err, name)
	}
}

func TestNew_SelectsSender(t *testing.T) {
	cfg := &config.Config{}
	s, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)

	cfg.SMTP = config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "no-reply@example.com"}
	s, err = New(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, s)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(zerolog.New(&buf))

	err := s.Send(context.Background(), Message{To: "ana@x.com", Subject: "hello", Body: "body"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"to":"ana@x.com"`)
	assert.Contains(t, buf.String(), `"subject":"hello"`)
}
