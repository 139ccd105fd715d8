package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canaworld/cana/internal/domain/entities"
)

func TestUpdateMetadata(t *testing.T) {
	b := entities.DefaultBible()

	nb, changed := UpdateMetadata(b, "", "Sci-Fi", "")
	assert.True(t, changed)
	assert.Equal(t, "Sci-Fi", nb.Genre)
	// Empty fields keep their previous values.
	assert.Equal(t, entities.DefaultTitle, nb.Title)
	assert.Equal(t, entities.DefaultTone, nb.Tone)

	_, changed = UpdateMetadata(b, "", "", "")
	assert.False(t, changed)
}

func TestAppendCharacter_AssignsIDAndDefaults(t *testing.T) {
	b := entities.DefaultBible()

	nb := AppendCharacter(b, entities.Character{Name: "Aria"})

	require.Len(t, nb.Characters, 1)
	ch := nb.Characters[0]
	assert.NotEmpty(t, ch.ID)
	assert.NotNil(t, ch.Traits)
	assert.NotNil(t, ch.Relationships)
	assert.NotNil(t, ch.Attributes)
}

func TestPrependWorldItem(t *testing.T) {
	b := entities.DefaultBible()
	b.WorldItems = []entities.WorldItem{{ID: "old", Name: "Old Town"}}

	nb := PrependWorldItem(b, entities.WorldItem{Name: "New Keep"})

	require.Len(t, nb.WorldItems, 2)
	assert.Equal(t, "New Keep", nb.WorldItems[0].Name)
	assert.Equal(t, "old", nb.WorldItems[1].ID)
}

func TestPatchCharacter_EmptyFieldsPreserved(t *testing.T) {
	b := entities.DefaultBible()
	b.Characters = []entities.Character{{
		ID: "ch1", Name: "Aria", Role: "Mage", Personality: "Stoic",
	}}

	nb := PatchCharacter(b, "ch1", CharacterPatch{Role: "Archmage"})

	ch := nb.Characters[0]
	assert.Equal(t, "Archmage", ch.Role)
	assert.Equal(t, "Aria", ch.Name)
	assert.Equal(t, "Stoic", ch.Personality)
}

func TestPatchCharacter_UnknownIDNoOp(t *testing.T) {
	b := entities.DefaultBible()
	b.Characters = []entities.Character{{ID: "ch1", Name: "Aria"}}

	nb := PatchCharacter(b, "nope", CharacterPatch{Name: "X"})
	assert.Equal(t, "Aria", nb.Characters[0].Name)
}

func TestSetCharacterAttribute(t *testing.T) {
	b := entities.DefaultBible()
	b.Characters = []entities.Character{{
		ID: "ch1", Name: "Aria",
		Attributes: []entities.Attribute{{ID: "a1", Key: "Age", Value: ""}},
	}}

	nb := SetCharacterAttribute(b, "ch1", "a1", "27")
	assert.Equal(t, "27", nb.Characters[0].Attributes[0].Value)

	// Unknown attribute leaves everything intact.
	nb = SetCharacterAttribute(b, "ch1", "nope", "99")
	assert.Empty(t, nb.Characters[0].Attributes[0].Value)
}

func TestChatHistoryOps(t *testing.T) {
	b := entities.DefaultBible()

	nb := AppendArchitectMessage(b, entities.ChatMessage{ID: "m1", Role: entities.RoleUser, Content: "hi"})
	nb = AppendRoleplayMessage(nb, entities.ChatMessage{ID: "m2", Role: entities.RoleUser, Content: "go"})
	require.Len(t, nb.ArchitectHistory, 1)
	require.Len(t, nb.RoleplayHistory, 1)

	nb = ClearArchitectHistory(nb)
	assert.Empty(t, nb.ArchitectHistory)
	assert.Len(t, nb.RoleplayHistory, 1)

	nb = ClearRoleplayHistory(nb)
	assert.Empty(t, nb.RoleplayHistory)
}
