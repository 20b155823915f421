package repository

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository persists contact messages. Create is the only operation:
// stored messages are never read back, updated or deleted through it.
type ContactRepository interface {
	// Create stores msg and fills in msg.ID and msg.CreatedAt.
	Create(ctx context.Context, msg *model.ContactMessage) error
}
