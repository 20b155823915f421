package service

import (
	"context"
	"errors"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/relay"
	"github.com/portfolio/backend/pkg/contract"
)

// ErrPersist wraps any failure to store a contact message.
var ErrPersist = errors.New("persist contact message")

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit stores a validated input and then notifies the owner. Only a
	// storage failure is returned as an error; the relay result is reported in
	// the Outcome and never fails the submission.
	Submit(ctx context.Context, input contract.ContactInput) (*model.ContactMessage, relay.Outcome, error)
}
