package messages

import (
	"context"

	"github.com/enablehq/enable/models"
)

// Repository provides keyed access to message records.
type Repository interface {
	// Get returns the message with the given id, or (nil, nil) when absent.
	Get(ctx context.Context, id string) (*models.Message, error)

	// GetAll returns every message, in insertion order.
	GetAll(ctx context.Context) ([]models.Message, error)

	// GetByChatID returns the chat's messages sorted ascending by CreatedAt.
	// The sort is stable: messages with equal timestamps keep insertion
	// order, so conversation order is a total order.
	GetByChatID(ctx context.Context, chatID string) ([]models.Message, error)

	// Save upserts a message by id.
	Save(ctx context.Context, message *models.Message) error

	// Delete removes a message. Absent ids are not an error.
	Delete(ctx context.Context, id string) error

	// DeleteMany removes the given messages in one batch.
	DeleteMany(ctx context.Context, ids []string) error
}
