package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canaworld/cana/internal/domain/entities"
	"github.com/canaworld/cana/internal/domain/ports"
)

func newTestBridge(t *testing.T) (*ToolBridge, *BibleHandler) {
	t.Helper()
	h, _ := newTestHandler(t)
	return NewToolBridge(h), h
}

func TestExecute_UnknownTool(t *testing.T) {
	bridge, _ := newTestBridge(t)

	res := bridge.Execute("summon_dragon", []byte(`{}`))
	assert.Equal(t, "Error: unknown tool 'summon_dragon'.", res)
	assert.Empty(t, bridge.LastAction())
}

func TestExecute_MalformedArguments(t *testing.T) {
	bridge, _ := newTestBridge(t)

	res := bridge.Execute(ports.ToolCreateCharacter, []byte(`{"name": 42}`))
	assert.Contains(t, res, "Error: invalid tool arguments")
}

func TestUpdateStoryMetadata(t *testing.T) {
	bridge, h := newTestBridge(t)

	res := bridge.Execute(ports.ToolUpdateStoryMetadata, []byte(`{"title":"Ashfall","genre":"Grimdark"}`))

	assert.Contains(t, res, "Success: Story Metadata updated")
	assert.Contains(t, res, "Title: Ashfall")
	assert.Equal(t, "Ashfall", h.Current().Title)
	assert.Equal(t, "Grimdark", h.Current().Genre)
	// Tone was not sent and keeps its default.
	assert.Equal(t, entities.DefaultTone, h.Current().Tone)
	assert.Equal(t, "Updated Metadata: Genre: Grimdark, Title: Ashfall", bridge.LastAction())
}

func TestUpdateStoryMetadata_EmptyArgs(t *testing.T) {
	bridge, h := newTestBridge(t)

	res := bridge.Execute(ports.ToolUpdateStoryMetadata, []byte(`{}`))

	assert.Equal(t, "No changes made to metadata.", res)
	assert.Equal(t, entities.DefaultTitle, h.Current().Title)
	assert.Empty(t, bridge.LastAction())
}

func TestCreateCharacter(t *testing.T) {
	bridge, h := newTestBridge(t)

	res := bridge.Execute(ports.ToolCreateCharacter,
		[]byte(`{"name":"Aria","role":"Protagonist","category_name":"human"}`))

	assert.Equal(t, "Success: Character 'Aria' created.", res)
	assert.Equal(t, "Added Character: Aria", bridge.LastAction())

	ch := h.Current().CharacterByName("ARIA")
	require.NotNil(t, ch)
	assert.NotEmpty(t, ch.ID)
	assert.Equal(t, "class_human", ch.CategoryID)
	// Category template materialized into empty attributes.
	require.Len(t, ch.Attributes, 2)
	assert.Equal(t, "Age", ch.Attributes[0].Key)
	assert.Empty(t, ch.Attributes[0].Value)
}

func TestCreateCharacter_DuplicateIsCaseInsensitive(t *testing.T) {
	bridge, h := newTestBridge(t)
	require.Contains(t, bridge.Execute(ports.ToolCreateCharacter, []byte(`{"name":"Aria"}`)), "Success")
	bridge.LastAction()

	res := bridge.Execute(ports.ToolCreateCharacter, []byte(`{"name":"aria"}`))

	assert.Equal(t, "FAILED: Character 'aria' already exists. Ask the user if they want to update it.", res)
	assert.Empty(t, bridge.LastAction())
	assert.Len(t, h.Current().Characters, 1)
}

func TestCreateWorldItem_ResolvesClassBySubstring(t *testing.T) {
	bridge, h := newTestBridge(t)

	res := bridge.Execute(ports.ToolCreateWorldItem,
		[]byte(`{"name":"Mana Burn","class_name":"Glossary","description":"Overcasting sickness"}`))

	assert.Equal(t, "Success: 'Mana Burn' created in class 'Glossary & Terminology'.", res)
	assert.Equal(t, "Added Item: Mana Burn (Glossary & Terminology)", bridge.LastAction())

	it := h.Current().WorldItemByName("mana burn")
	require.NotNil(t, it)
	assert.Equal(t, "class_glossary", it.ClassID)
	require.Len(t, it.Attributes, 2)
	assert.Equal(t, "Category", it.Attributes[0].Key)
}

func TestCreateWorldItem_UnknownClassFallsBackToFirst(t *testing.T) {
	bridge, h := newTestBridge(t)

	res := bridge.Execute(ports.ToolCreateWorldItem, []byte(`{"name":"Emberridge","class_name":"Cities"}`))

	assert.Contains(t, res, "in class 'Location'")
	assert.Equal(t, "class_location", h.Current().WorldItems[0].ClassID)
}

func TestCreateWorldItem_PrependsNewest(t *testing.T) {
	bridge, h := newTestBridge(t)
	bridge.Execute(ports.ToolCreateWorldItem, []byte(`{"name":"First"}`))
	bridge.Execute(ports.ToolCreateWorldItem, []byte(`{"name":"Second"}`))

	items := h.Current().WorldItems
	require.Len(t, items, 2)
	assert.Equal(t, "Second", items[0].Name)
}

func TestCreateTimelineEvent(t *testing.T) {
	bridge, h := newTestBridge(t)

	require.Contains(t, bridge.Execute(ports.ToolCreateTimelineEvent,
		[]byte(`{"title":"The Age of Embers","type":"Saga"}`)), "Success")

	res := bridge.Execute(ports.ToolCreateTimelineEvent,
		[]byte(`{"title":"The Long War","type":"Arc","parent_title":"age of embers"}`))
	assert.Equal(t, "Success: Timeline Event 'The Long War' created.", res)

	cur := h.Current()
	require.Len(t, cur.Timeline, 2)
	saga := cur.TimelineEventByTitle("The Age of Embers")
	arc := cur.TimelineEventByTitle("The Long War")
	require.NotNil(t, saga)
	require.NotNil(t, arc)
	assert.Equal(t, saga.ID, arc.ParentID)
	// Orders come from the total node count at creation time.
	assert.Equal(t, 0, saga.Order)
	assert.Equal(t, 1, arc.Order)
}

func TestCreateTimelineEvent_InvalidTypeDefaultsToEpisode(t *testing.T) {
	bridge, h := newTestBridge(t)

	bridge.Execute(ports.ToolCreateTimelineEvent, []byte(`{"title":"Something","type":"Chapter"}`))

	evt := h.Current().TimelineEventByTitle("Something")
	require.NotNil(t, evt)
	assert.Equal(t, entities.LevelEpisode, evt.Type)
	assert.Empty(t, evt.ParentID)
}

func TestUpdateCharacter(t *testing.T) {
	bridge, h := newTestBridge(t)
	bridge.Execute(ports.ToolCreateCharacter, []byte(`{"name":"Aria","role":"Protagonist"}`))
	bridge.LastAction()

	res := bridge.Execute(ports.ToolUpdateCharacter,
		[]byte(`{"target_name":"aria","new_name":"Aria Thornwood","description":"Exiled heir"}`))

	assert.Equal(t, "Success: Character 'aria' updated.", res)
	assert.Equal(t, "Updated Character: Aria Thornwood", bridge.LastAction())

	ch := h.Current().CharacterByName("Aria Thornwood")
	require.NotNil(t, ch)
	assert.Equal(t, "Exiled heir", ch.Description)
	// Fields left out of the call are preserved.
	assert.Equal(t, "Protagonist", ch.Role)
}

func TestUpdateCharacter_NotFound(t *testing.T) {
	bridge, _ := newTestBridge(t)

	res := bridge.Execute(ports.ToolUpdateCharacter, []byte(`{"target_name":"Nobody"}`))
	assert.Equal(t, "Error: Character 'Nobody' not found.", res)
	assert.Empty(t, bridge.LastAction())
}

func TestUpdateWorldItem_NotFound(t *testing.T) {
	bridge, _ := newTestBridge(t)

	res := bridge.Execute(ports.ToolUpdateWorldItem, []byte(`{"target_name":"Nowhere"}`))
	assert.Equal(t, "Error: Item 'Nowhere' not found.", res)
}

func TestUpdateTimelineEvent_NotFound(t *testing.T) {
	bridge, _ := newTestBridge(t)

	res := bridge.Execute(ports.ToolUpdateTimelineEvent, []byte(`{"target_title":"Never"}`))
	assert.Equal(t, "Error: Event 'Never' not found.", res)
}

func TestLastAction_ClearsOnRead(t *testing.T) {
	bridge, _ := newTestBridge(t)
	bridge.Execute(ports.ToolCreateCharacter, []byte(`{"name":"Aria"}`))

	assert.Equal(t, "Added Character: Aria", bridge.LastAction())
	assert.Empty(t, bridge.LastAction())
}

func TestExecute_BatchCallsSeeEarlierEffects(t *testing.T) {
	bridge, h := newTestBridge(t)

	first := bridge.Execute(ports.ToolCreateWorldItem, []byte(`{"name":"Emberridge"}`))
	second := bridge.Execute(ports.ToolUpdateWorldItem,
		[]byte(`{"target_name":"Emberridge","description":"A mining town"}`))

	assert.Contains(t, first, "Success")
	assert.Contains(t, second, "Success")
	assert.Equal(t, "A mining town", h.Current().WorldItemByName("Emberridge").Description)
}
