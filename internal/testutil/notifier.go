package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stemsi/codesprint-backend/internal/model"
)

// Notifier records notifications on buffered channels.
type Notifier struct {
	Registrations chan model.RegistrantSummary
	Logins        chan model.LoginEvent
	// Err, when set, is returned after recording.
	Err error
}

// NewNotifier creates a recording notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		Registrations: make(chan model.RegistrantSummary, 16),
		Logins:        make(chan model.LoginEvent, 16),
	}
}

func (n *Notifier) RegistrationConfirmed(_ context.Context, r model.RegistrantSummary) error {
	n.Registrations <- r
	return n.Err
}

func (n *Notifier) AdminLoggedIn(_ context.Context, e model.LoginEvent) error {
	n.Logins <- e
	return n.Err
}

// WaitRegistration returns the next recorded registration or fails the test.
func (n *Notifier) WaitRegistration(t *testing.T) model.RegistrantSummary {
	t.Helper()
	select {
	case r := <-n.Registrations:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no registration notification")
		return model.RegistrantSummary{}
	}
}

// WaitLogin returns the next recorded login alert or fails the test.
func (n *Notifier) WaitLogin(t *testing.T) model.LoginEvent {
	t.Helper()
	select {
	case e := <-n.Logins:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("no login notification")
		return model.LoginEvent{}
	}
}

// AssertNoRegistration fails if a registration notification arrives soon.
func (n *Notifier) AssertNoRegistration(t *testing.T) {
	t.Helper()
	select {
	case r := <-n.Registrations:
		t.Fatalf("unexpected registration notification: %+v", r)
	case <-time.After(50 * time.Millisecond):
	}
}
