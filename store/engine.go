package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	"github.com/enablehq/enable/dbx"
	"github.com/enablehq/enable/logging"
	"github.com/enablehq/enable/store/migrations"

	_ "modernc.org/sqlite"
)

// Engine provides keyed access to the named stores. It owns a single SQLite
// connection, opened lazily on first use; Close releases it and the next
// operation reopens (running any pending migrations again, which makes a
// version bump in a newer binary transparent to holders of the handle).
//
// Engine is safe for concurrent use. SQLite serializes conflicting writes
// to the same key internally; the connection pool is capped at one writer.
type Engine struct {
	dsn string
	log logging.Logger

	mu sync.Mutex
	db *sql.DB
}

// New returns an Engine for the given SQLite DSN. The database is not
// touched until the first operation. A nil logger is replaced by a no-op.
func New(dsn string, log logging.Logger) *Engine {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Engine{dsn: dsn, log: log}
}

// conn returns the open database handle, opening and migrating on demand.
func (e *Engine) conn(ctx context.Context) (*sql.DB, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db != nil {
		return e.db, nil
	}

	db, err := sql.Open("sqlite", e.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// Single writer avoids SQLITE_BUSY between our own connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Another process may hold the file lock briefly (e.g. a second tab of
	// the host application); back off before giving up.
	backoff := retry.WithMaxRetries(5, retry.NewFibonacci(50*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to store: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	e.log.Debug(ctx, "store opened", "dsn", e.dsn)
	e.db = db
	return db, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// gooseUpContext is a seam for testing the migration step.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// Close releases the database handle. Subsequent operations reopen.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}

// Get returns the raw record for key, or (nil, nil) when absent.
func (e *Engine) Get(ctx context.Context, store, key string) (json.RawMessage, error) {
	if _, ok := storeIndexes[store]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStore, store)
	}
	db, err := e.conn(ctx)
	if err != nil {
		return nil, err
	}

	var record []byte
	row := db.QueryRowContext(ctx, `SELECT record FROM `+store+` WHERE id = ?`, key)
	if err := row.Scan(&record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s[%s]: %w", store, key, err)
	}
	return record, nil
}

// Put upserts record by its "id" field. The write is a single statement:
// readers never observe a partially written record.
func (e *Engine) Put(ctx context.Context, store string, record any) error {
	if _, ok := storeIndexes[store]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStore, store)
	}
	db, err := e.conn(ctx)
	if err != nil {
		return err
	}
	return e.put(ctx, db, store, record)
}

func (e *Engine) put(ctx context.Context, db dbx.DBTX, store string, record any) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode %s record: %w", store, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("failed to decode %s record: %w", store, err)
	}
	id, _ := fields["id"].(string)
	if id == "" {
		return fmt.Errorf("failed to put into %s: %w", store, ErrMissingID)
	}

	cols := []string{"id"}
	args := []any{id}
	for _, name := range storeIndexes[store] {
		cols = append(cols, quote(name))
		args = append(args, fields[name])
	}
	cols = append(cols, "record")
	args = append(args, string(raw))

	updates := make([]string, 0, len(cols)-1)
	for _, col := range cols[1:] {
		updates = append(updates, col+" = excluded."+col)
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s`,
		store,
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
		strings.Join(updates, ", "),
	)

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to put %s[%s]: %w", store, id, err)
	}
	return nil
}

// Delete removes key from store. Deleting an absent key is not an error.
func (e *Engine) Delete(ctx context.Context, store, key string) error {
	if _, ok := storeIndexes[store]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStore, store)
	}
	db, err := e.conn(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM `+store+` WHERE id = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s[%s]: %w", store, key, err)
	}
	return nil
}

// DeleteMany removes the given keys in one transaction. Keys that are
// already absent are skipped silently.
func (e *Engine) DeleteMany(ctx context.Context, store string, keys []string) error {
	if _, ok := storeIndexes[store]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStore, store)
	}
	if len(keys) == 0 {
		return nil
	}
	db, err := e.conn(ctx)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+store+` WHERE id = ?`, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete %d keys from %s: %w", len(keys), store, err)
	}
	return nil
}

// GetAll returns every record in store, in insertion order.
func (e *Engine) GetAll(ctx context.Context, store string) ([]json.RawMessage, error) {
	if _, ok := storeIndexes[store]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStore, store)
	}
	db, err := e.conn(ctx)
	if err != nil {
		return nil, err
	}
	return e.selectRecords(ctx, db, `SELECT record FROM `+store+` ORDER BY rowid`, store)
}

// GetAllByIndex returns the records whose indexed field equals key, in
// insertion order. The index must be declared for the store.
func (e *Engine) GetAllByIndex(ctx context.Context, store, index string, key any) ([]json.RawMessage, error) {
	if _, ok := storeIndexes[store]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStore, store)
	}
	if !hasIndex(store, index) {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownIndex, store, index)
	}
	db, err := e.conn(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT record FROM ` + store + ` WHERE ` + quote(index) + ` = ? ORDER BY rowid`
	return e.selectRecords(ctx, db, query, store, key)
}

func (e *Engine) selectRecords(ctx context.Context, db dbx.DBTX, query, store string, args ...any) ([]json.RawMessage, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", store, err)
	}
	defer rows.Close()

	var result []json.RawMessage
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("failed to scan %s record: %w", store, err)
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s records: %w", store, err)
	}
	return result, nil
}

// Clear removes every record from store.
func (e *Engine) Clear(ctx context.Context, store string) error {
	if _, ok := storeIndexes[store]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStore, store)
	}
	db, err := e.conn(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM `+store); err != nil {
		return fmt.Errorf("failed to clear %s: %w", store, err)
	}
	return nil
}

func quote(column string) string {
	return `"` + column + `"`
}
