// Package handlers wires the pure domain mutations to persistence and to
// the agent-facing surfaces.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/canaworld/cana/internal/domain/entities"
	"github.com/canaworld/cana/internal/domain/ports"
)

// BibleHandler owns the current story bible snapshot. All mutations flow
// through Mutate, which replaces the snapshot atomically and writes the full
// document through to the blob store. Single-writer: the mutex serializes
// mutations; mutation functions themselves are pure snapshot transforms.
type BibleHandler struct {
	mu    sync.Mutex
	store ports.BlobStore
	bible *entities.StoryBible
	log   *zap.Logger
}

// NewBibleHandler creates a handler over the given blob store. A nil logger
// falls back to a no-op logger.
func NewBibleHandler(store ports.BlobStore, log *zap.Logger) *BibleHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &BibleHandler{store: store, bible: entities.DefaultBible(), log: log}
}

// Load reads the persisted document. A missing document yields the default;
// a malformed one is logged and also yields the default. Load never returns
// a parse failure to the caller.
func (h *BibleHandler) Load(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := h.store.Load(ctx)
	if errors.Is(err, ports.ErrNotFound) {
		h.bible = entities.DefaultBible()
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading bible: %w", err)
	}

	bible, decodeErr := entities.Decode(data)
	if decodeErr != nil {
		h.log.Warn("stored bible is malformed, falling back to default", zap.Error(decodeErr))
	}
	h.bible = bible
	return nil
}

// Current returns the live snapshot. Callers treat it as read-only; all
// edits go through Mutate.
func (h *BibleHandler) Current() *entities.StoryBible {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bible
}

// Mutate applies a pure snapshot transform, installs the result, and
// persists the full document. The transform sees the latest snapshot even
// when earlier calls in the same agent batch already mutated it.
func (h *BibleHandler) Mutate(ctx context.Context, fn func(*entities.StoryBible) *entities.StoryBible) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := fn(h.bible)
	if next == nil {
		return nil
	}
	h.bible = next
	return h.persistLocked(ctx)
}

// Replace installs a whole document, the import path. The caller has already
// confirmed the overwrite.
func (h *BibleHandler) Replace(ctx context.Context, bible *entities.StoryBible) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bible = bible
	return h.persistLocked(ctx)
}

// Reset restores the built-in default document and persists it.
func (h *BibleHandler) Reset(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.Reset(ctx); err != nil {
		return fmt.Errorf("resetting store: %w", err)
	}
	h.bible = entities.DefaultBible()
	return h.persistLocked(ctx)
}

// Export serializes the current document as indented JSON.
func (h *BibleHandler) Export() ([]byte, error) {
	return entities.Encode(h.Current())
}

// ExportFileName returns the dated default export name.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("cana_bible_%s.json", now.Format("2006-01-02"))
}

// Import parses a JSON document and replaces the current one wholesale.
// Unlike Load, a parse failure here is surfaced: the user picked the file.
func (h *BibleHandler) Import(ctx context.Context, data []byte) error {
	bible, err := entities.Decode(data)
	if err != nil {
		return fmt.Errorf("importing bible: %w", err)
	}
	return h.Replace(ctx, bible)
}

func (h *BibleHandler) persistLocked(ctx context.Context) error {
	data, err := entities.Encode(h.bible)
	if err != nil {
		return fmt.Errorf("encoding bible: %w", err)
	}
	if err := h.store.Save(ctx, data); err != nil {
		return fmt.Errorf("saving bible: %w", err)
	}
	return nil
}
