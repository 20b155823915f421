package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/relay"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/pkg/contract"
)

// relayTimeout bounds the notification attempt once it is detached from the request.
const relayTimeout = 30 * time.Second

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo   repository.ContactRepository
	relay  relay.Relay
	logger *slog.Logger
}

// NewContactService creates a ContactService. A nil relay disables notification
// and a nil logger means slog.Default().
func NewContactService(repo repository.ContactRepository, r relay.Relay, logger *slog.Logger) ContactService {
	if r == nil {
		r = relay.Disabled{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &contactServiceImpl{repo: repo, relay: r, logger: logger}
}

// Submit persists first; the relay runs only after a successful write and
// exactly once. The relay attempt is not cancelled when the caller goes away.
func (s *contactServiceImpl) Submit(ctx context.Context, input contract.ContactInput) (*model.ContactMessage, relay.Outcome, error) {
	msg := &model.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, relay.Outcome{Status: relay.StatusSkipped}, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), relayTimeout)
	defer cancel()
	out := s.relay.Notify(notifyCtx, msg)
	s.logOutcome(ctx, msg, out)
	return msg, out, nil
}

func (s *contactServiceImpl) logOutcome(ctx context.Context, msg *model.ContactMessage, out relay.Outcome) {
	switch out.Status {
	case relay.StatusSkipped:
		s.logger.InfoContext(ctx, "contact relay skipped: email credentials not configured, message saved",
			"contact_id", msg.ID)
	case relay.StatusSucceeded:
		s.logger.InfoContext(ctx, "contact relay sent", "contact_id", msg.ID)
	case relay.StatusFailed:
		s.logger.ErrorContext(ctx, "contact relay failed",
			"contact_id", msg.ID,
			"relay_status", out.Status.String(),
			"error", out.Err,
		)
	}
}
