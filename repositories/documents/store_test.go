package documents

import (
	"context"
	"path/filepath"
	"testing"
	"time"

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

func draft(id string) Draft {
	return Draft{
		ID:      id,
		Title:   "doc " + id,
		Content: "content of " + id,
		Kind:    models.DocumentKindText,
		UserID:  models.LocalUserID,
	}
}

func TestSave_NewDocument_SetsBothTimestamps(t *testing.T) {
	r := setupRepo(t)
	r.now = func() time.Time { return time.UnixMilli(1000) }

	doc, err := r.Save(context.Background(), draft("d1"))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), doc.CreatedAt)
	assert.Equal(t, int64(1000), doc.UpdatedAt)
}

func TestSave_ExistingID_PreservesCreatedAt(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	r.now = func() time.Time { return time.UnixMilli(1000) }
	_, err := r.Save(ctx, draft("d1"))
	require.NoError(t, err)

	r.now = func() time.Time { return time.UnixMilli(2000) }
	updated := draft("d1")
	updated.Content = "regenerated"
	doc, err := r.Save(ctx, updated)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), doc.CreatedAt, "createdAt survives overwrite")
	assert.Equal(t, int64(2000), doc.UpdatedAt)

	got, err := r.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "regenerated", got.Content)

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "latest wins, no second record")
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	r := setupRepo(t)

	doc, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, doc)
}

func TestRevisions(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	revs, err := r.Revisions(ctx, "absent")
	require.NoError(t, err)
	assert.Empty(t, revs)

	_, err = r.Save(ctx, draft("d1"))
	require.NoError(t, err)

	revs, err = r.Revisions(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, "d1", revs[0].ID)
}

func TestClearContentAfter(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	r.now = func() time.Time { return time.UnixMilli(5000) }
	_, err := r.Save(ctx, draft("d1"))
	require.NoError(t, err)

	// cutoff after the update: nothing touched
	n, err := r.ClearContentAfter(ctx, "d1", time.UnixMilli(6000))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// cutoff before the update: content blanked
	n, err = r.ClearContentAfter(ctx, "d1", time.UnixMilli(4000))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := r.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, got.Content)

	// absent id is a no-op
	n, err = r.ClearContentAfter(ctx, "absent", time.UnixMilli(0))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
