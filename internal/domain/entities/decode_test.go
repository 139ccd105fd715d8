package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_RoundTrip(t *testing.T) {
	b := DefaultBible()
	b.Title = "Ashfall"
	b.Characters = []Character{{ID: "ch1", Name: "Aria", Traits: []string{}, Relationships: []string{}, Attributes: []Attribute{}}}

	data, err := Encode(b)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "Ashfall", out.Title)
	require.Len(t, out.Characters, 1)
	assert.Equal(t, "Aria", out.Characters[0].Name)
}

func TestDecode_MalformedDocumentReturnsDefault(t *testing.T) {
	out, err := Decode([]byte("not json at all"))

	require.Error(t, err)
	require.NotNil(t, out)
	assert.Equal(t, DefaultTitle, out.Title)

	out, err = Decode([]byte(`"a string"`))
	require.Error(t, err)
	assert.Equal(t, DefaultTitle, out.Title)
}

func TestDecode_MalformedCollectionReplacedWithDefault(t *testing.T) {
	// characters is a number, the rest is valid.
	data := []byte(`{"title":"Ashfall","characters":42,"worldItems":[]}`)

	out, err := Decode(data)

	require.NoError(t, err)
	assert.Equal(t, "Ashfall", out.Title)
	assert.NotNil(t, out.Characters)
	assert.Empty(t, out.Characters)
}

func TestDecode_MissingFieldsGetDefaults(t *testing.T) {
	out, err := Decode([]byte(`{}`))

	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, out.Title)
	assert.Equal(t, DefaultGenre, out.Genre)
	assert.Equal(t, DefaultTone, out.Tone)
	// Seed classes fill in when the document carries none.
	assert.NotEmpty(t, out.WorldClasses)
	assert.NotEmpty(t, out.CharacterCategories)
	assert.NotNil(t, out.WorldItems)
	assert.NotNil(t, out.Timeline)
	assert.NotNil(t, out.ArchitectHistory)
}

func TestDecode_MigratesWorldCategories(t *testing.T) {
	data := []byte(`{
		"title": "Old Save",
		"worldCategories": [
			{"id": "wc1", "name": "Places", "entries": [
				{"id": "e1", "name": "Emberridge", "description": "A mining town"}
			]},
			{"id": "wc2", "name": "Factions", "entries": []}
		]
	}`)

	out, err := Decode(data)
	require.NoError(t, err)

	// Legacy field is consumed.
	assert.Nil(t, out.WorldCategories)

	require.Len(t, out.WorldClasses, 2)
	assert.Equal(t, "Places", out.WorldClasses[0].Name)
	assert.Empty(t, out.WorldClasses[0].Template)

	require.Len(t, out.WorldItems, 1)
	it := out.WorldItems[0]
	assert.Equal(t, "e1", it.ID)
	assert.Equal(t, "Emberridge", it.Name)
	assert.Equal(t, out.WorldClasses[0].ID, it.ClassID)
	assert.NotNil(t, it.Attributes)
}

func TestDecode_WorldCategoriesIgnoredWhenClassesExist(t *testing.T) {
	data := []byte(`{
		"worldClasses": [{"id": "cls1", "name": "Location", "template": []}],
		"worldCategories": [{"id": "wc1", "name": "Places", "entries": []}]
	}`)

	out, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, out.WorldClasses, 1)
	assert.Equal(t, "cls1", out.WorldClasses[0].ID)
}

func TestDecode_MigratesPlots(t *testing.T) {
	data := []byte(`{
		"plots": [
			{"id": "p1", "title": "The Fall", "description": "It begins"},
			{"id": "p2", "title": "The Rise", "description": "It ends"}
		]
	}`)

	out, err := Decode(data)
	require.NoError(t, err)

	assert.Nil(t, out.Plots)
	require.Len(t, out.Timeline, 3)

	saga := out.Timeline[0]
	assert.Equal(t, LevelSaga, saga.Type)
	assert.Equal(t, "Main Saga", saga.Title)

	for i, arc := range out.Timeline[1:] {
		assert.Equal(t, LevelArc, arc.Type)
		assert.Equal(t, saga.ID, arc.ParentID)
		assert.Equal(t, i, arc.Order)
	}
	assert.Equal(t, "The Fall", out.Timeline[1].Title)
}

func TestDecode_PlotsIgnoredWhenTimelineExists(t *testing.T) {
	data := []byte(`{
		"timeline": [{"id": "t1", "type": "Saga", "title": "Existing", "order": 0}],
		"plots": [{"id": "p1", "title": "The Fall"}]
	}`)

	out, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, out.Timeline, 1)
	assert.Equal(t, "Existing", out.Timeline[0].Title)
}

func TestDecode_CharacterDefaultsFilled(t *testing.T) {
	data := []byte(`{"characters": [{"id": "ch1", "name": "Aria"}]}`)

	out, err := Decode(data)
	require.NoError(t, err)

	ch := out.Characters[0]
	assert.NotNil(t, ch.Traits)
	assert.NotNil(t, ch.Relationships)
	assert.NotNil(t, ch.Attributes)
}
