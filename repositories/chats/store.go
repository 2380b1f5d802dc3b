package chats

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

func (r *StoreRepository) Get(ctx context.Context, id string) (*models.Chat, error) {
	raw, err := r.engine.Get(ctx, store.Chats, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat %s: %w", id, err)
	}
	if raw == nil {
		return nil, nil
	}

	var chat models.Chat
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, fmt.Errorf("failed to decode chat %s: %w", id, err)
	}
	return &chat, nil
}

func (r *StoreRepository) GetAll(ctx context.Context) ([]models.Chat, error) {
	records, err := r.engine.GetAll(ctx, store.Chats)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}

	result := make([]models.Chat, 0, len(records))
	for _, raw := range records {
		var chat models.Chat
		if err := json.Unmarshal(raw, &chat); err != nil {
			return nil, fmt.Errorf("failed to decode chat: %w", err)
		}
		result = append(result, chat)
	}
	return result, nil
}

func (r *StoreRepository) Save(ctx context.Context, chat *models.Chat) error {
	if err := r.engine.Put(ctx, store.Chats, chat); err != nil {
		return fmt.Errorf("failed to save chat %s: %w", chat.ID, err)
	}
	return nil
}

func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	if err := r.engine.Delete(ctx, store.Chats, id); err != nil {
		return fmt.Errorf("failed to delete chat %s: %w", id, err)
	}
	return nil
}

func (r *StoreRepository) DeleteMany(ctx context.Context, ids []string) error {
	if err := r.engine.DeleteMany(ctx, store.Chats, ids); err != nil {
		return fmt.Errorf("failed to delete chats: %w", err)
	}
	return nil
}
