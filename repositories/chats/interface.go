package chats

import (
	"context"

	"github.com/enablehq/enable/models"
)

// Repository provides keyed access to chat records.
type Repository interface {
	// Get returns the chat with the given id, or (nil, nil) when absent.
	Get(ctx context.Context, id string) (*models.Chat, error)

	// GetAll returns every chat, in insertion order.
	GetAll(ctx context.Context) ([]models.Chat, error)

	// Save upserts a chat by id.
	Save(ctx context.Context, chat *models.Chat) error

	// Delete removes a chat. Absent ids are not an error.
	Delete(ctx context.Context, id string) error

	// DeleteMany removes the given chats in one batch.
	DeleteMany(ctx context.Context, ids []string) error
}
