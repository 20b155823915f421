// Package relay sends the best-effort email notification for a stored contact
// message. A relay never returns an error to its caller; the result of the
// single attempt is reported as an Outcome.
package relay

import (
	"context"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/model"
)

// Status is the result class of one notification.
type Status int

const (
	// StatusSkipped means no attempt was made (relay not configured).
	StatusSkipped Status = iota
	// StatusSucceeded means the provider accepted the message.
	StatusSucceeded
	// StatusFailed means the attempt was made and did not succeed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome describes what happened to a notification. Err is set only for StatusFailed.
type Outcome struct {
	Status Status
	Err    error
}

// Attempted reports whether a send was tried.
func (o Outcome) Attempted() bool {
	return o.Status == StatusSucceeded || o.Status == StatusFailed
}

// Relay notifies the site owner about a stored contact message.
type Relay interface {
	Notify(ctx context.Context, msg *model.ContactMessage) Outcome
}

// Disabled is the relay used when no credentials are configured.
type Disabled struct{}

// Notify always reports StatusSkipped.
func (Disabled) Notify(context.Context, *model.ContactMessage) Outcome {
	return Outcome{Status: StatusSkipped}
}

// New returns an SMTP relay for cfg, or Disabled when credentials are absent.
func New(cfg config.MailConfig, opts ...SMTPOption) Relay {
	if !cfg.Enabled() {
		return Disabled{}
	}
	return NewSMTPRelay(cfg, opts...)
}
