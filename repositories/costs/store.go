package costs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/enablehq/enable/models"
	"github.com/enablehq/enable/store"
)

// StoreRepository implements Repository on top of the store engine.
type StoreRepository struct {
	engine *store.Engine
}

// NewStoreRepository returns a StoreRepository bound to the given engine.
func NewStoreRepository(engine *store.Engine) *StoreRepository {
	return &StoreRepository{engine: engine}
}

func (r *StoreRepository) Save(ctx context.Context, record *models.CostRecord) error {
	if err := r.engine.Put(ctx, store.Costs, record); err != nil {
		return fmt.Errorf("failed to save cost record %s: %w", record.ID, err)
	}
	return nil
}

func (r *StoreRepository) GetAll(ctx context.Context) ([]models.CostRecord, error) {
	records, err := r.engine.GetAll(ctx, store.Costs)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost records: %w", err)
	}
	return decodeAll(records)
}

func (r *StoreRepository) GetByChatID(ctx context.Context, chatID string) ([]models.CostRecord, error) {
	records, err := r.engine.GetAllByIndex(ctx, store.Costs, "chatId", chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost records of chat %s: %w", chatID, err)
	}
	return decodeAll(records)
}

func (r *StoreRepository) GetByMessageID(ctx context.Context, messageID string) (*models.CostRecord, error) {
	records, err := r.engine.GetAllByIndex(ctx, store.Costs, "messageId", messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cost record of message %s: %w", messageID, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var record models.CostRecord
	if err := json.Unmarshal(records[0], &record); err != nil {
		return nil, fmt.Errorf("failed to decode cost record: %w", err)
	}
	return &record, nil
}

func (r *StoreRepository) DeleteMany(ctx context.Context, ids []string) error {
	if err := r.engine.DeleteMany(ctx, store.Costs, ids); err != nil {
		return fmt.Errorf("failed to delete cost records: %w", err)
	}
	return nil
}

func decodeAll(records []json.RawMessage) ([]models.CostRecord, error) {
	result := make([]models.CostRecord, 0, len(records))
	for _, raw := range records {
		var record models.CostRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("failed to decode cost record: %w", err)
		}
		result = append(result, record)
	}
	return result, nil
}
