// Package enable is the core of a local-first chat client: a versioned
// SQLite-backed record store, typed repositories for chats, messages,
// documents, costs and settings, a cost ledger, and the artifact streaming
// engine. It is a library; the enclosing application owns the UI and the
// model transport.
package enable

import (
	"context"
	"fmt"

	"github.com/enablehq/enable/artifact"
	"github.com/enablehq/enable/config"
	"github.com/enablehq/enable/logging"
	"github.com/enablehq/enable/pricing"
	"github.com/enablehq/enable/repositories/chats"
	"github.com/enablehq/enable/repositories/costs"
	"github.com/enablehq/enable/repositories/documents"
	"github.com/enablehq/enable/repositories/messages"
	"github.com/enablehq/enable/repositories/settings"
	"github.com/enablehq/enable/services"
	"github.com/enablehq/enable/store"
)

// Repositories bundles the typed record accessors. All of them share the
// client's store engine.
type Repositories struct {
	Chats     chats.Repository
	Messages  messages.Repository
	Documents documents.Repository
	Costs     costs.Repository
	Settings  settings.Repository
}

// Client owns the whole core: one store engine, the repositories on top of
// it, and the services that implement the cross-record rules.
type Client struct {
	engine *store.Engine

	Repos    *Repositories
	Chats    *services.ChatService
	Ledger   *services.Ledger
	Artifact *artifact.Engine
}

// Open wires a Client from the given configuration. The database file is
// created on first use; an optional pricing file replaces the built-in
// rates. A nil logger is replaced by a no-op.
func Open(cfg *config.Config, log logging.Logger) (*Client, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	table := pricing.Default()
	if cfg.PricingFile != "" {
		t, err := pricing.LoadFile(cfg.PricingFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open client: %w", err)
		}
		table = t
	}

	engine := store.New(cfg.DatabasePath, log)
	docs := documents.NewStoreRepository(engine)
	repos := &Repositories{
		Chats:     chats.NewStoreRepository(engine),
		Messages:  messages.NewStoreRepository(engine),
		Documents: docs,
		Costs:     costs.NewStoreRepository(engine),
		Settings:  settings.NewStoreRepository(engine),
	}

	return &Client{
		engine:   engine,
		Repos:    repos,
		Chats:    services.NewChatService(repos.Chats, repos.Messages, repos.Costs, log),
		Ledger:   services.NewLedger(repos.Costs, table, log),
		Artifact: artifact.NewEngine(docs, log),
	}, nil
}

// ExportAll produces a full-database backup, one record array per store.
func (c *Client) ExportAll(ctx context.Context) (*store.Export, error) {
	return c.engine.ExportAll(ctx)
}

// ImportAll upserts a backup into the store. Partial payloads are fine;
// stores missing from the payload are left untouched.
func (c *Client) ImportAll(ctx context.Context, data *store.Export) error {
	return c.engine.ImportAll(ctx, data)
}

// Close releases the database handle. The client stays usable; the next
// operation reopens.
func (c *Client) Close() error {
	return c.engine.Close()
}
