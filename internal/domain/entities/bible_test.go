package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClone_IsDeep(t *testing.T) {
	b := DefaultBible()
	b.Characters = []Character{{
		ID:         "ch1",
		Name:       "Aria",
		Traits:     []string{"brave"},
		Attributes: []Attribute{{ID: "a1", Key: "Age", Value: "27"}},
	}}
	b.WorldItems = []WorldItem{{
		ID:         "it1",
		ClassID:    "class_location",
		Name:       "Emberridge",
		Attributes: []Attribute{{ID: "a2", Key: "Climate", Value: "Arid"}},
	}}
	b.Timeline = []TimelineEvent{{ID: "t1", Type: LevelSaga, Title: "The Fall"}}

	c := b.Clone()
	c.Title = "Changed"
	c.Characters[0].Name = "Renamed"
	c.Characters[0].Attributes[0].Value = "99"
	c.Characters[0].Traits[0] = "craven"
	c.WorldItems[0].Attributes[0].Value = "Frozen"
	c.WorldClasses[0].Template[0].Key = "Weather"
	c.Timeline[0].Order = 5

	assert.Equal(t, DefaultTitle, b.Title)
	assert.Equal(t, "Aria", b.Characters[0].Name)
	assert.Equal(t, "27", b.Characters[0].Attributes[0].Value)
	assert.Equal(t, "brave", b.Characters[0].Traits[0])
	assert.Equal(t, "Arid", b.WorldItems[0].Attributes[0].Value)
	assert.Equal(t, "Climate", b.WorldClasses[0].Template[0].Key)
	assert.Equal(t, 0, b.Timeline[0].Order)
}

func TestLookupsAreCaseInsensitive(t *testing.T) {
	b := DefaultBible()
	b.Characters = []Character{{ID: "ch1", Name: "Aria Thornwood"}}
	b.WorldItems = []WorldItem{{ID: "it1", Name: "Emberridge"}}
	b.Timeline = []TimelineEvent{{ID: "t1", Title: "The Long War"}}

	require.NotNil(t, b.CharacterByName("aria thornwood"))
	assert.Equal(t, "ch1", b.CharacterByName("  ARIA THORNWOOD ").ID)
	assert.Nil(t, b.CharacterByName("aria"), "partial names do not match")

	require.NotNil(t, b.WorldItemByName("EMBERRIDGE"))
	assert.Nil(t, b.WorldItemByName("ridge"))

	require.NotNil(t, b.TimelineEventByTitle("the long war"))
	assert.Nil(t, b.TimelineEventByTitle("war of"))
}

func TestWorldClassAndCategoryByID(t *testing.T) {
	b := DefaultBible()

	require.NotNil(t, b.WorldClass("class_glossary"))
	assert.Equal(t, "Glossary & Terminology", b.WorldClass("class_glossary").Name)
	assert.Nil(t, b.WorldClass("nope"))

	require.NotNil(t, b.CharacterCategory("class_human"))
	assert.Nil(t, b.CharacterCategory("class_location"), "world classes are a separate collection")
}

func TestResolveClassHint(t *testing.T) {
	classes := []Class{
		{ID: "c1", Name: "Location"},
		{ID: "c2", Name: "World Rules & Laws"},
		{ID: "c3", Name: "Glossary & Terminology"},
	}

	t.Run("substring of stored name matches", func(t *testing.T) {
		got := ResolveClassHint(classes, "glossary")
		require.NotNil(t, got)
		assert.Equal(t, "c3", got.ID)
	})

	t.Run("hint longer than stored name does not match", func(t *testing.T) {
		// Falls back to the first class instead.
		got := ResolveClassHint(classes, "Glossary of Terms")
		require.NotNil(t, got)
		assert.Equal(t, "c1", got.ID)
	})

	t.Run("no match falls back to first", func(t *testing.T) {
		got := ResolveClassHint(classes, "Factions")
		require.NotNil(t, got)
		assert.Equal(t, "c1", got.ID)
	})

	t.Run("empty collection yields nil", func(t *testing.T) {
		assert.Nil(t, ResolveClassHint(nil, "anything"))
	})
}

func TestResolveParentHint(t *testing.T) {
	b := DefaultBible()
	b.Timeline = []TimelineEvent{
		{ID: "t1", Type: LevelSaga, Title: "The Age of Embers"},
		{ID: "t2", Type: LevelArc, Title: "The Long War", ParentID: "t1"},
	}

	got := b.ResolveParentHint("long war")
	require.NotNil(t, got)
	assert.Equal(t, "t2", got.ID)

	assert.Nil(t, b.ResolveParentHint(""))
	assert.Nil(t, b.ResolveParentHint("   "))
	assert.Nil(t, b.ResolveParentHint("The Short Peace"))
}

func TestDefaultBibleSeeds(t *testing.T) {
	b := DefaultBible()

	require.Len(t, b.CharacterCategories, 1)
	assert.Equal(t, "Human", b.CharacterCategories[0].Name)
	require.Len(t, b.WorldClasses, 3)

	// Seed template field IDs are unique even across classes.
	seen := map[string]bool{}
	for _, cls := range append(b.WorldClasses, b.CharacterCategories...) {
		for _, f := range cls.Template {
			assert.False(t, seen[f.ID], "duplicate field id %s", f.ID)
			seen[f.ID] = true
		}
	}
}

func TestClassField(t *testing.T) {
	cls := Class{ID: "c1", Template: []TemplateField{{ID: "f1", Key: "Age"}}}

	require.NotNil(t, cls.Field("f1"))
	assert.Equal(t, "Age", cls.Field("f1").Key)
	assert.Nil(t, cls.Field("f2"))
}

func TestDuplicateKeys(t *testing.T) {
	cls := Class{Template: []TemplateField{
		{ID: "f1", Key: "Age"},
		{ID: "f2", Key: "Occupation"},
		{ID: "f3", Key: "Age"},
	}}

	assert.Equal(t, []string{"Age"}, cls.DuplicateKeys())

	cls.Template = cls.Template[:2]
	assert.Empty(t, cls.DuplicateKeys())
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "aria thornwood", NormalizeName("  Aria Thornwood "))
	assert.Equal(t, "", NormalizeName("   "))
}
