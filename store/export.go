package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/enablehq/enable/dbx"
)

// Export is a full-database backup: one array of raw records per store.
// Any field may be omitted; import tolerates partial payloads.
type Export struct {
	Chats     []json.RawMessage `json:"chats,omitempty"`
	Messages  []json.RawMessage `json:"messages,omitempty"`
	Settings  []json.RawMessage `json:"settings,omitempty"`
	Costs     []json.RawMessage `json:"costs,omitempty"`
	Documents []json.RawMessage `json:"documents,omitempty"`
}

// ExportAll reads every store into an Export.
func (e *Engine) ExportAll(ctx context.Context) (*Export, error) {
	out := &Export{}
	for _, store := range Stores() {
		records, err := e.GetAll(ctx, store)
		if err != nil {
			return nil, err
		}
		out.set(store, records)
	}
	return out, nil
}

// ImportAll upserts every record of the payload into its store, inside a
// single transaction. Stores missing from the payload are left untouched.
func (e *Engine) ImportAll(ctx context.Context, data *Export) error {
	if data == nil {
		return nil
	}
	db, err := e.conn(ctx)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, store := range Stores() {
			for _, record := range data.get(store) {
				if err := e.put(ctx, tx, store, record); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to import data: %w", err)
	}
	return nil
}

func (x *Export) set(store string, records []json.RawMessage) {
	switch store {
	case Chats:
		x.Chats = records
	case Messages:
		x.Messages = records
	case Settings:
		x.Settings = records
	case Costs:
		x.Costs = records
	case Documents:
		x.Documents = records
	}
}

func (x *Export) get(store string) []json.RawMessage {
	switch store {
	case Chats:
		return x.Chats
	case Messages:
		return x.Messages
	case Settings:
		return x.Settings
	case Costs:
		return x.Costs
	case Documents:
		return x.Documents
	}
	return nil
}
