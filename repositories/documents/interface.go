package documents

import (
	"context"
	"time"

	"github.com/enablehq/enable/models"
)

// Draft is the caller-supplied part of a document; the repository assigns
// the timestamps on save.
type Draft struct {
	ID      string
	Title   string
	Content string
	Kind    models.DocumentKind
	UserID  string
}

// Repository provides keyed access to document records.
type Repository interface {
	// Get returns the document with the given id, or (nil, nil) when absent.
	Get(ctx context.Context, id string) (*models.Document, error)

	// GetAll returns every document, in insertion order.
	GetAll(ctx context.Context) ([]models.Document, error)

	// Revisions returns all stored revisions of a document id. With the
	// latest-wins store this is at most one element; the signature leaves
	// room for a history-backed implementation.
	Revisions(ctx context.Context, id string) ([]models.Document, error)

	// Save upserts a document by id. Saving an existing id preserves its
	// CreatedAt; UpdatedAt is always refreshed.
	Save(ctx context.Context, draft Draft) (*models.Document, error)

	// ClearContentAfter blanks the content of the document if it was
	// updated after cutoff, returning how many records were touched.
	ClearContentAfter(ctx context.Context, id string, cutoff time.Time) (int, error)
}
