package artifact

import (
	"context"
	"sync"

	"github.com/enablehq/enable/logging"
	"github.com/enablehq/enable/models"
	"github.com/enablehq/enable/repositories/documents"
)

// Status is the engine's lifecycle state.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusStreaming Status = "streaming"
)

// InitialDocumentID marks an artifact whose generation has not assigned a
// document id yet. Finishing in this state persists nothing.
const InitialDocumentID = "init"

// Reveal thresholds: the artifact panel opens the first time accumulated
// content lands strictly inside this window while streaming. A single large
// fragment can jump past the window without revealing; that matches the
// long-standing behavior and stays until the heuristic is rethought.
const (
	revealMin = 200
	revealMax = 250
)

// BoundingBox is a UI placement hint. It rides along with the artifact and
// never affects persistence.
type BoundingBox struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Artifact is the live state of the in-flight generation.
type Artifact struct {
	DocumentID  string
	Title       string
	Kind        models.DocumentKind
	Content     string
	IsVisible   bool
	Status      Status
	BoundingBox BoundingBox
}

// DocumentSaver persists the terminal artifact state. The documents
// repository satisfies it.
type DocumentSaver interface {
	Save(ctx context.Context, draft documents.Draft) (*models.Document, error)
}

// Engine folds stream deltas into artifact state and writes the terminal
// state through to the document store. One Engine serves one display slot;
// a new generation replaces the old state via its id delta.
type Engine struct {
	saver DocumentSaver
	log   logging.Logger

	mu    sync.Mutex
	state Artifact
}

// NewEngine wires an Engine. A nil logger is replaced with a no-op.
func NewEngine(saver DocumentSaver, log logging.Logger) *Engine {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Engine{
		saver: saver,
		log:   log,
		state: Artifact{DocumentID: InitialDocumentID, Status: StatusIdle},
	}
}

// Artifact returns a snapshot of the current state.
func (e *Engine) Artifact() Artifact {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// IsCurrent reports whether documentID is the artifact currently held by the
// engine. Consumers key display decisions off this, never off arrival order,
// so a stale generation's late deltas cannot masquerade as current.
func (e *Engine) IsCurrent(documentID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.DocumentID == documentID
}

// SetBoundingBox records the panel placement hint.
func (e *Engine) SetBoundingBox(b BoundingBox) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.BoundingBox = b
}

// Reset returns the engine to its initial state, dropping any in-flight
// artifact.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	box := e.state.BoundingBox
	e.state = Artifact{DocumentID: InitialDocumentID, Status: StatusIdle, BoundingBox: box}
}

// Apply folds a batch of deltas into the artifact state, in order. The whole
// batch is applied under one lock, so a concurrent batch never interleaves
// mid-accumulation. The resulting snapshot is returned.
//
// A finish delta persists the document unless the id is still unassigned;
// persistence failure is logged and the transition to idle happens anyway.
func (e *Engine) Apply(ctx context.Context, deltas ...Delta) Artifact {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, d := range deltas {
		e.fold(ctx, d)
	}
	return e.state
}

func (e *Engine) fold(ctx context.Context, d Delta) {
	switch d := d.(type) {
	case IDDelta:
		e.state.DocumentID = d.Data
		e.state.Status = StatusStreaming
	case TitleDelta:
		e.state.Title = d.Data
		e.state.Status = StatusStreaming
	case KindDelta:
		e.state.Kind = models.DocumentKind(d.Data)
		e.state.Status = StatusStreaming
	case TextDelta:
		e.state.Content += d.Data
		if e.state.Status == StatusStreaming && !e.state.IsVisible {
			n := len(e.state.Content)
			if n > revealMin && n < revealMax {
				e.state.IsVisible = true
			}
		}
		e.state.Status = StatusStreaming
	case ClearDelta:
		e.state.Content = ""
		e.state.Status = StatusStreaming
	case FinishDelta:
		e.persist(ctx)
		e.state.Status = StatusIdle
	default:
		// unknown delta kinds fall through untouched
	}
}

func (e *Engine) persist(ctx context.Context) {
	id := e.state.DocumentID
	if id == "" || id == InitialDocumentID {
		return
	}

	_, err := e.saver.Save(ctx, documents.Draft{
		ID:      id,
		Title:   e.state.Title,
		Content: e.state.Content,
		Kind:    e.state.Kind,
		UserID:  models.LocalUserID,
	})
	if err != nil {
		e.log.Error(ctx, "failed to persist artifact", "document_id", id, "error", err)
	}
}
