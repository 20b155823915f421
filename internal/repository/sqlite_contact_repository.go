package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/model"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS contact_messages (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

// SqliteContactRepository stores contact messages in a SQLite file. IDs are
// random UUIDs and timestamps come from the repository clock.
type SqliteContactRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSqliteContactRepository creates a SqliteContactRepository on db.
// Call EnsureSchema before first use.
func NewSqliteContactRepository(db *sql.DB) *SqliteContactRepository {
	return &SqliteContactRepository{db: db, now: time.Now}
}

var _ ContactRepository = (*SqliteContactRepository)(nil)

// EnsureSchema creates the contact_messages table if it does not exist.
func (r *SqliteContactRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create sqlite schema: %w", err)
	}
	return nil
}

// Create inserts a row and populates msg.ID and msg.CreatedAt on success.
func (r *SqliteContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	id := uuid.NewString()
	createdAt := r.now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, message, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, msg.Name, msg.Email, msg.Message, createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	msg.ID = id
	msg.CreatedAt = createdAt
	return nil
}

// Ping checks the database handle.
func (r *SqliteContactRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
