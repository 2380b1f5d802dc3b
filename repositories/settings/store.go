package settings

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

func (r *StoreRepository) Get(ctx context.Context) (*models.Settings, error) {
	raw, err := r.engine.Get(ctx, store.Settings, RecordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var s models.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &s, nil
}

func (r *StoreRepository) Save(ctx context.Context, s *models.Settings) error {
	s.ID = RecordID
	if err := r.engine.Put(ctx, store.Settings, s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
