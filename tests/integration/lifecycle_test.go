package integration

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canaworld/cana/internal/application/handlers"
	"github.com/canaworld/cana/internal/domain/entities"
	"github.com/canaworld/cana/internal/domain/ports"
	"github.com/canaworld/cana/internal/domain/services"
	"github.com/canaworld/cana/internal/infrastructure/storage/sqlite"
)

// openHandler opens a store at path and loads a bible handler over it.
func openHandler(t *testing.T, path string) (*handlers.BibleHandler, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.NewStore(path)
	require.NoError(t, err)
	bible := handlers.NewBibleHandler(store, nil)
	require.NoError(t, bible.Load(context.Background()))
	return bible, store
}

func TestBibleSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cana.db")
	ctx := context.Background()

	bible, store := openHandler(t, path)
	assert.Equal(t, entities.DefaultTitle, bible.Current().Title)

	require.NoError(t, bible.Mutate(ctx, func(b *entities.StoryBible) *entities.StoryBible {
		nb, _ := services.UpdateMetadata(b, "Ashfall", "Grimdark", "")
		return nb
	}))
	require.NoError(t, bible.Mutate(ctx, func(b *entities.StoryBible) *entities.StoryBible {
		return services.AppendCharacter(b, entities.Character{Name: "Veyra", Role: "Antagonist"})
	}))
	require.NoError(t, store.Close())

	reopened, store2 := openHandler(t, path)
	defer store2.Close()

	b := reopened.Current()
	assert.Equal(t, "Ashfall", b.Title)
	assert.Equal(t, "Grimdark", b.Genre)
	require.Len(t, b.Characters, 1)
	assert.Equal(t, "Veyra", b.Characters[0].Name)
}

func TestToolBridgeWritesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cana.db")

	bible, store := openHandler(t, path)
	bridge := handlers.NewToolBridge(bible)

	result := bridge.Execute(ports.ToolCreateWorldItem, []byte(`{
		"name": "Mana Burn",
		"class_name": "Glossary",
		"description": "Overdrawing mana scorches the caster's channels."
	}`))
	assert.Contains(t, result, "Success")
	require.NoError(t, store.Close())

	reopened, store2 := openHandler(t, path)
	defer store2.Close()

	it := reopened.Current().WorldItemByName("Mana Burn")
	require.NotNil(t, it)
	assert.Equal(t, "Overdrawing mana scorches the caster's channels.", it.Description)

	// Instantiated from the glossary template.
	keys := make([]string, 0, len(it.Attributes))
	for _, a := range it.Attributes {
		keys = append(keys, a.Key)
	}
	assert.Contains(t, keys, "Category")
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	source, sourceStore := openHandler(t, filepath.Join(dir, "source.db"))
	defer sourceStore.Close()
	require.NoError(t, source.Mutate(ctx, func(b *entities.StoryBible) *entities.StoryBible {
		nb, _ := services.AddTimelineEvent(b, entities.LevelSaga, "The Sundering", "The world breaks", "")
		return nb
	}))

	data, err := source.Export()
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "timeline")

	target, targetStore := openHandler(t, filepath.Join(dir, "target.db"))
	defer targetStore.Close()
	require.NoError(t, target.Import(ctx, data))

	evt := target.Current().TimelineEventByTitle("The Sundering")
	require.NotNil(t, evt)
	assert.Equal(t, entities.LevelSaga, evt.Type)
}

func TestResetClearsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cana.db")
	ctx := context.Background()

	bible, store := openHandler(t, path)
	require.NoError(t, bible.Mutate(ctx, func(b *entities.StoryBible) *entities.StoryBible {
		nb, _ := services.UpdateMetadata(b, "Doomed Title", "", "")
		return nb
	}))
	require.NoError(t, bible.Reset(ctx))
	assert.Equal(t, entities.DefaultTitle, bible.Current().Title)
	require.NoError(t, store.Close())

	reopened, store2 := openHandler(t, path)
	defer store2.Close()
	assert.Equal(t, entities.DefaultTitle, reopened.Current().Title)
}
