package messages

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

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

func (r *StoreRepository) Get(ctx context.Context, id string) (*models.Message, error) {
	raw, err := r.engine.Get(ctx, store.Messages, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}
	if raw == nil {
		return nil, nil
	}

	var msg models.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("failed to decode message %s: %w", id, err)
	}
	return &msg, nil
}

func (r *StoreRepository) GetAll(ctx context.Context) ([]models.Message, error) {
	records, err := r.engine.GetAll(ctx, store.Messages)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return decodeAll(records)
}

func (r *StoreRepository) GetByChatID(ctx context.Context, chatID string) ([]models.Message, error) {
	records, err := r.engine.GetAllByIndex(ctx, store.Messages, "chatId", chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages of chat %s: %w", chatID, err)
	}

	result, err := decodeAll(records)
	if err != nil {
		return nil, err
	}

	// stable sort: ties keep the engine's insertion order
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt < result[j].CreatedAt
	})
	return result, nil
}

func (r *StoreRepository) Save(ctx context.Context, message *models.Message) error {
	if err := r.engine.Put(ctx, store.Messages, message); err != nil {
		return fmt.Errorf("failed to save message %s: %w", message.ID, err)
	}
	return nil
}

func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	if err := r.engine.Delete(ctx, store.Messages, id); err != nil {
		return fmt.Errorf("failed to delete message %s: %w", id, err)
	}
	return nil
}

func (r *StoreRepository) DeleteMany(ctx context.Context, ids []string) error {
	if err := r.engine.DeleteMany(ctx, store.Messages, ids); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	return nil
}

func decodeAll(records []json.RawMessage) ([]models.Message, error) {
	result := make([]models.Message, 0, len(records))
	for _, raw := range records {
		var msg models.Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		result = append(result, msg)
	}
	return result, nil
}
