package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/relay"
	"github.com/portfolio/backend/pkg/contract"
)

// ---------------------------------------------------------------------------
// mocks
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	createFunc func(ctx context.Context, msg *model.ContactMessage) error
	created    []*model.ContactMessage
}

func (m *mockContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	if m.createFunc != nil {
		if err := m.createFunc(ctx, msg); err != nil {
			return err
		}
	} else {
		msg.ID = "generated-id"
		msg.CreatedAt = time.Now()
	}
	m.created = append(m.created, msg)
	return nil
}

type mockRelay struct {
	notifyFunc func(ctx context.Context, msg *model.ContactMessage) relay.Outcome
	calls      int
}

func (m *mockRelay) Notify(ctx context.Context, msg *model.ContactMessage) relay.Outcome {
	m.calls++
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, msg)
	}
	return relay.Outcome{Status: relay.StatusSucceeded}
}

var validInput = contract.ContactInput{Name: "Ana", Email: "ana@example.com", Message: "Hi"}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

// ---------------------------------------------------------------------------
// Submit tests
// ---------------------------------------------------------------------------

func TestContactService_Submit_Success(t *testing.T) {
	repo := &mockContactRepository{}
	rl := &mockRelay{}
	logger, _ := newTestLogger()
	svc := NewContactService(repo, rl, logger)

	msg, out, err := svc.Submit(context.Background(), validInput)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.ID != "generated-id" {
		t.Errorf("expected stored id, got %q", msg.ID)
	}
	if msg.Name != "Ana" || msg.Email != "ana@example.com" || msg.Message != "Hi" {
		t.Errorf("unexpected stored message %+v", msg)
	}
	if out.Status != relay.StatusSucceeded {
		t.Errorf("expected relay succeeded, got %v", out.Status)
	}
	if rl.calls != 1 {
		t.Errorf("expected exactly one relay call, got %d", rl.calls)
	}
}

func TestContactService_Submit_PersistFailureSkipsRelay(t *testing.T) {
	dbErr := errors.New("connection refused")
	repo := &mockContactRepository{
		createFunc: func(ctx context.Context, msg *model.ContactMessage) error { return dbErr },
	}
	rl := &mockRelay{}
	logger, _ := newTestLogger()
	svc := NewContactService(repo, rl, logger)

	msg, out, err := svc.Submit(context.Background(), validInput)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrPersist) || !errors.Is(err, dbErr) {
		t.Errorf("expected ErrPersist wrapping the db error, got %v", err)
	}
	if msg != nil {
		t.Errorf("expected nil message, got %+v", msg)
	}
	if out.Attempted() {
		t.Error("relay outcome must not be attempted on persist failure")
	}
	if rl.calls != 0 {
		t.Errorf("expected no relay calls, got %d", rl.calls)
	}
}

func TestContactService_Submit_RelayFailureIsSwallowed(t *testing.T) {
	repo := &mockContactRepository{}
	rl := &mockRelay{
		notifyFunc: func(ctx context.Context, msg *model.ContactMessage) relay.Outcome {
			return relay.Outcome{Status: relay.StatusFailed, Err: errors.New("smtp down")}
		},
	}
	logger, buf := newTestLogger()
	svc := NewContactService(repo, rl, logger)

	msg, out, err := svc.Submit(context.Background(), validInput)
	if err != nil {
		t.Fatalf("relay failure must not fail submit, got %v", err)
	}
	if msg == nil || len(repo.created) != 1 {
		t.Fatal("expected message to be stored")
	}
	if out.Status != relay.StatusFailed {
		t.Errorf("expected failed outcome, got %v", out.Status)
	}
	logs := buf.String()
	if !strings.Contains(logs, `"level":"ERROR"`) || !strings.Contains(logs, "smtp down") {
		t.Errorf("expected relay failure to be logged at ERROR, got %s", logs)
	}
}

func TestContactService_Submit_NilRelayIsDisabled(t *testing.T) {
	repo := &mockContactRepository{}
	logger, buf := newTestLogger()
	svc := NewContactService(repo, nil, logger)

	_, out, err := svc.Submit(context.Background(), validInput)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != relay.StatusSkipped {
		t.Errorf("expected skipped, got %v", out.Status)
	}
	if !strings.Contains(buf.String(), "contact relay skipped") {
		t.Errorf("expected skip to be logged, got %s", buf.String())
	}
}

func TestContactService_Submit_DuplicatesAreIndependent(t *testing.T) {
	n := 0
	repo := &mockContactRepository{
		createFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			n++
			msg.ID = strings.Repeat("x", n)
			return nil
		},
	}
	svc := NewContactService(repo, relay.Disabled{}, nil)

	a, _, _ := svc.Submit(context.Background(), validInput)
	b, _, _ := svc.Submit(context.Background(), validInput)
	if len(repo.created) != 2 {
		t.Fatalf("expected 2 records, got %d", len(repo.created))
	}
	if a.ID == b.ID {
		t.Errorf("expected distinct records, both %q", a.ID)
	}
}

type ctxKey struct{}

func TestContactService_Submit_RelaySurvivesCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "req-1"))
	defer cancel()

	repo := &mockContactRepository{
		createFunc: func(_ context.Context, msg *model.ContactMessage) error {
			msg.ID = "generated-id"
			// client disconnects right after the row is written
			cancel()
			return nil
		},
	}
	var relayErr error
	var hasDeadline bool
	var value any
	rl := &mockRelay{
		notifyFunc: func(ctx context.Context, msg *model.ContactMessage) relay.Outcome {
			relayErr = ctx.Err()
			_, hasDeadline = ctx.Deadline()
			value = ctx.Value(ctxKey{})
			return relay.Outcome{Status: relay.StatusSucceeded}
		},
	}
	logger, _ := newTestLogger()
	svc := NewContactService(repo, rl, logger)

	_, out, err := svc.Submit(ctx, validInput)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rl.calls != 1 {
		t.Fatalf("expected one relay attempt, got %d", rl.calls)
	}
	if relayErr != nil {
		t.Errorf("relay context must not inherit caller cancellation, got %v", relayErr)
	}
	if !hasDeadline {
		t.Error("relay context must be bounded by a timeout")
	}
	if value != "req-1" {
		t.Errorf("relay context must keep request values, got %v", value)
	}
	if out.Status != relay.StatusSucceeded {
		t.Errorf("expected succeeded, got %v", out.Status)
	}
}
