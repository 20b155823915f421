package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/model"
)

func TestPgContactRepository_Create(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer pool.Close()

	repo := NewPgContactRepository(pool)

	unique := fmt.Sprintf("%d", time.Now().UnixNano())
	msg := &model.ContactMessage{
		Name:    "Test " + unique,
		Email:   fmt.Sprintf("test-%s@example.com", unique),
		Message: "integration",
	}
	if err := repo.Create(ctx, msg); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if msg.ID == "" {
		t.Error("expected ID to be set after Create")
	}
	if msg.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set after Create")
	}

	var stored string
	if err := pool.QueryRow(ctx, `SELECT email FROM contact_messages WHERE id = $1`, msg.ID).Scan(&stored); err != nil {
		t.Fatalf("select stored row: %v", err)
	}
	if stored != msg.Email {
		t.Errorf("expected email %q, got %q", msg.Email, stored)
	}
}
