package enable

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enablehq/enable/artifact"
	"github.com/enablehq/enable/config"
	"github.com/enablehq/enable/models"
)

func openClient(t *testing.T) *Client {
	t.Helper()
	cfg := &config.Config{DatabasePath: filepath.Join(t.TempDir(), "enable.db")}
	client, err := Open(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestOpen_BadPricingFile(t *testing.T) {
	cfg := &config.Config{
		DatabasePath: filepath.Join(t.TempDir(), "enable.db"),
		PricingFile:  filepath.Join(t.TempDir(), "missing.yaml"),
	}
	_, err := Open(cfg, nil)
	require.Error(t, err)
}

func TestClient_EndToEndTurn(t *testing.T) {
	c := openClient(t)
	ctx := context.Background()

	chat, err := c.Chats.CreateChat(ctx, "", "hello world", "claude-sonnet-4-5")
	require.NoError(t, err)

	require.NoError(t, c.Chats.SaveMessage(ctx, &models.Message{
		ChatID: chat.ID,
		Role:   models.RoleUser,
		Parts:  []models.Part{models.TextPart("hi")},
	}))

	_, err = c.Ledger.SaveCost(ctx, chat.ID, "m1", "claude-sonnet-4-5", 1000, 2000)
	require.NoError(t, err)

	c.Artifact.Apply(ctx,
		artifact.IDDelta{Data: "d1"},
		artifact.TitleDelta{Data: "notes"},
		artifact.KindDelta{Data: "text"},
		artifact.TextDelta{Data: "draft body"},
		artifact.FinishDelta{},
	)

	assert.Len(t, c.Chats.MessagesByChat(ctx, chat.ID), 1)
	assert.Positive(t, c.Ledger.ChatCost(ctx, chat.ID))

	doc, err := c.Repos.Documents.Get(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "notes", doc.Title)
}

func TestClient_ExportImportRoundTrip(t *testing.T) {
	src := openClient(t)
	ctx := context.Background()

	chat, err := src.Chats.CreateChat(ctx, "c1", "backup me", "claude-sonnet-4-5")
	require.NoError(t, err)
	require.NoError(t, src.Chats.SaveMessage(ctx, &models.Message{ID: "m1", ChatID: chat.ID, Role: models.RoleUser}))

	data, err := src.ExportAll(ctx)
	require.NoError(t, err)

	dst := openClient(t)
	require.NoError(t, dst.ImportAll(ctx, data))

	restored, err := dst.Chats.GetChat(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "backup me", restored.Title)
	assert.Len(t, dst.Chats.MessagesByChat(ctx, "c1"), 1)
}
