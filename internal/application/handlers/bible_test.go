package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canaworld/cana/internal/domain/entities"
	"github.com/canaworld/cana/internal/domain/mocks"
	"github.com/canaworld/cana/internal/domain/services"
)

func newTestHandler(t *testing.T) (*BibleHandler, *mocks.BlobStore) {
	t.Helper()
	store := &mocks.BlobStore{}
	h := NewBibleHandler(store, nil)
	require.NoError(t, h.Load(context.Background()))
	return h, store
}

func TestLoad_MissingDocumentYieldsDefault(t *testing.T) {
	h, store := newTestHandler(t)

	assert.Equal(t, entities.DefaultTitle, h.Current().Title)
	assert.Zero(t, store.Saves, "load alone does not write")
}

func TestLoad_ReadsPersistedDocument(t *testing.T) {
	seed := entities.DefaultBible()
	seed.Title = "Ashfall"
	data, err := entities.Encode(seed)
	require.NoError(t, err)

	h := NewBibleHandler(&mocks.BlobStore{Data: data}, nil)
	require.NoError(t, h.Load(context.Background()))
	assert.Equal(t, "Ashfall", h.Current().Title)
}

func TestLoad_MalformedDocumentFallsBackToDefault(t *testing.T) {
	h := NewBibleHandler(&mocks.BlobStore{Data: []byte("garbage")}, nil)

	require.NoError(t, h.Load(context.Background()))
	assert.Equal(t, entities.DefaultTitle, h.Current().Title)
}

func TestLoad_StoreErrorSurfaces(t *testing.T) {
	h := NewBibleHandler(&mocks.BlobStore{LoadErr: errors.New("disk gone")}, nil)

	err := h.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestMutate_PersistsNewSnapshot(t *testing.T) {
	h, store := newTestHandler(t)

	err := h.Mutate(context.Background(), func(b *entities.StoryBible) *entities.StoryBible {
		nb, _ := services.UpdateMetadata(b, "Ashfall", "", "")
		return nb
	})
	require.NoError(t, err)

	assert.Equal(t, "Ashfall", h.Current().Title)
	assert.Equal(t, 1, store.Saves)

	reloaded, err := entities.Decode(store.Data)
	require.NoError(t, err)
	assert.Equal(t, "Ashfall", reloaded.Title)
}

func TestMutate_NilResultIsNoOp(t *testing.T) {
	h, store := newTestHandler(t)
	before := h.Current()

	err := h.Mutate(context.Background(), func(b *entities.StoryBible) *entities.StoryBible {
		return nil
	})
	require.NoError(t, err)
	assert.Same(t, before, h.Current())
	assert.Zero(t, store.Saves)
}

func TestReset_RestoresDefault(t *testing.T) {
	h, store := newTestHandler(t)
	require.NoError(t, h.Mutate(context.Background(), func(b *entities.StoryBible) *entities.StoryBible {
		nb, _ := services.UpdateMetadata(b, "Ashfall", "", "")
		return nb
	}))

	require.NoError(t, h.Reset(context.Background()))

	assert.Equal(t, entities.DefaultTitle, h.Current().Title)
	assert.Equal(t, 1, store.Resets)
	assert.NotNil(t, store.Data, "default document is persisted after reset")
}

func TestExportImportRoundTrip(t *testing.T) {
	h, _ := newTestHandler(t)
	require.NoError(t, h.Mutate(context.Background(), func(b *entities.StoryBible) *entities.StoryBible {
		return services.AppendCharacter(b, entities.Character{Name: "Aria"})
	}))

	data, err := h.Export()
	require.NoError(t, err)

	other, _ := newTestHandler(t)
	require.NoError(t, other.Import(context.Background(), data))
	require.NotNil(t, other.Current().CharacterByName("aria"))
}

func TestImport_MalformedDataFails(t *testing.T) {
	h, _ := newTestHandler(t)

	err := h.Import(context.Background(), []byte("{not json"))
	require.Error(t, err)
	// Current document is untouched.
	assert.Equal(t, entities.DefaultTitle, h.Current().Title)
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2025, 3, 9, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "cana_bible_2025-03-09.json", ExportFileName(now))
}
