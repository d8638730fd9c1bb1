package config

// MailJobKind tags a queued mail job so the worker can pick its template.
type MailJobKind string

const (
	MailRegistrationConfirmation MailJobKind = "registration_confirmation"
	MailAdminLoginAlert          MailJobKind = "admin_login_alert"
)
