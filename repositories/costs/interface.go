package costs

import (
	"context"

	"github.com/enablehq/enable/models"
)

// Repository provides append-and-scan access to cost records. Records are
// never updated in place; the only mutation besides Save is the bulk delete
// used when a chat is removed.
type Repository interface {
	// Save appends a cost record.
	Save(ctx context.Context, record *models.CostRecord) error

	// GetAll returns every cost record, in insertion order.
	GetAll(ctx context.Context) ([]models.CostRecord, error)

	// GetByChatID returns the chat's cost records, in insertion order.
	GetByChatID(ctx context.Context, chatID string) ([]models.CostRecord, error)

	// GetByMessageID returns the record for a message, or (nil, nil) when
	// absent. If several exist, the first by insertion order is returned.
	GetByMessageID(ctx context.Context, messageID string) (*models.CostRecord, error)

	// DeleteMany removes the given records in one batch.
	DeleteMany(ctx context.Context, ids []string) error
}
