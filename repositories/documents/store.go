package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/enablehq/enable/models"
	"github.com/enablehq/enable/store"
)

// StoreRepository implements Repository on top of the store engine.
type StoreRepository struct {
	engine *store.Engine
	now    func() time.Time
}

// NewStoreRepository returns a StoreRepository bound to the given engine.
func NewStoreRepository(engine *store.Engine) *StoreRepository {
	return &StoreRepository{engine: engine, now: time.Now}
}

func (r *StoreRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	raw, err := r.engine.Get(ctx, store.Documents, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	if raw == nil {
		return nil, nil
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	return &doc, nil
}

func (r *StoreRepository) GetAll(ctx context.Context) ([]models.Document, error) {
	records, err := r.engine.GetAll(ctx, store.Documents)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	result := make([]models.Document, 0, len(records))
	for _, raw := range records {
		var doc models.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		result = append(result, doc)
	}
	return result, nil
}

func (r *StoreRepository) Revisions(ctx context.Context, id string) ([]models.Document, error) {
	doc, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return []models.Document{*doc}, nil
}

func (r *StoreRepository) Save(ctx context.Context, draft Draft) (*models.Document, error) {
	existing, err := r.Get(ctx, draft.ID)
	if err != nil {
		return nil, err
	}

	now := r.now().UnixMilli()
	doc := models.Document{
		ID:        draft.ID,
		Title:     draft.Title,
		Content:   draft.Content,
		Kind:      draft.Kind,
		UserID:    draft.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing != nil {
		doc.CreatedAt = existing.CreatedAt
	}

	if err := r.engine.Put(ctx, store.Documents, &doc); err != nil {
		return nil, fmt.Errorf("failed to save document %s: %w", draft.ID, err)
	}
	return &doc, nil
}

func (r *StoreRepository) ClearContentAfter(ctx context.Context, id string, cutoff time.Time) (int, error) {
	doc, err := r.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if doc == nil || doc.UpdatedAt <= cutoff.UnixMilli() {
		return 0, nil
	}

	doc.Content = ""
	doc.UpdatedAt = r.now().UnixMilli()
	if err := r.engine.Put(ctx, store.Documents, doc); err != nil {
		return 0, fmt.Errorf("failed to clear document %s: %w", id, err)
	}
	return 1, nil
}
