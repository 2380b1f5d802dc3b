package costs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enablehq/enable/models"
	"github.com/enablehq/enable/store"
)

func setupRepo(t *testing.T) *StoreRepository {
	t.Helper()
	engine := store.New(filepath.Join(t.TempDir(), "enable.db"), nil)
	t.Cleanup(func() { _ = engine.Close() })
	return NewStoreRepository(engine)
}

func record(id, chatID, messageID string, cost float64) *models.CostRecord {
	return &models.CostRecord{
		ID:           id,
		ChatID:       chatID,
		MessageID:    messageID,
		Model:        "claude-sonnet-4-5",
		InputTokens:  100,
		OutputTokens: 200,
		Cost:         cost,
		Timestamp:    1000,
	}
}

func TestSaveAndGetByChatID(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, record("r1", "c1", "m1", 0.01)))
	require.NoError(t, r.Save(ctx, record("r2", "c1", "m2", 0.02)))
	require.NoError(t, r.Save(ctx, record("r3", "c2", "m3", 0.03)))

	got, err := r.GetByChatID(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, "r2", got[1].ID)
}

func TestGetByMessageID_AbsentIsNilNil(t *testing.T) {
	r := setupRepo(t)

	got, err := r.GetByMessageID(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetByMessageID_DuplicateRecords_FirstWinsDeterministically(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, record("earlier", "c1", "m1", 0.01)))
	require.NoError(t, r.Save(ctx, record("later", "c1", "m1", 0.02)))

	got, err := r.GetByMessageID(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "earlier", got.ID)
}

func TestDeleteMany(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, record("r1", "c1", "m1", 0.01)))
	require.NoError(t, r.Save(ctx, record("r2", "c1", "m2", 0.02)))

	require.NoError(t, r.DeleteMany(ctx, []string{"r1", "r2"}))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
