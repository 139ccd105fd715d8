package entities

import (
	"encoding/json"
	"fmt"
)

// Decode parses a persisted bible document. It applies legacy migrations and
// integrity defaults and never leaves the caller without a usable document:
// when the blob cannot be parsed at all the built-in default is returned
// alongside the parse error, which callers log rather than surface.
func Decode(data []byte) (*StoryBible, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return DefaultBible(), fmt.Errorf("parsing bible document: %w", err)
	}
	if raw == nil {
		return DefaultBible(), fmt.Errorf("bible document is not an object")
	}

	// Each top-level field is decoded independently so one malformed
	// collection does not reject the whole document.
	b := &StoryBible{}
	decodeField(raw, "title", &b.Title)
	decodeField(raw, "genre", &b.Genre)
	decodeField(raw, "tone", &b.Tone)
	decodeField(raw, "characterCategories", &b.CharacterCategories)
	decodeField(raw, "characters", &b.Characters)
	decodeField(raw, "worldClasses", &b.WorldClasses)
	decodeField(raw, "worldItems", &b.WorldItems)
	decodeField(raw, "timeline", &b.Timeline)
	decodeField(raw, "architectHistory", &b.ArchitectHistory)
	decodeField(raw, "roleplayHistory", &b.RoleplayHistory)
	decodeField(raw, "worldCategories", &b.WorldCategories)
	decodeField(raw, "plots", &b.Plots)

	MigrateWorldCategories(b)
	MigratePlots(b)
	ApplyIntegrityDefaults(b)
	return b, nil
}

func decodeField[T any](raw map[string]json.RawMessage, key string, dst *T) {
	r, ok := raw[key]
	if !ok {
		return
	}
	// A malformed field keeps its zero value; defaults fill it in later.
	_ = json.Unmarshal(r, dst)
}

// MigrateWorldCategories converts the legacy worldCategories shape into
// classes (with empty templates) plus world items. It runs only when no
// worldClasses exist yet, and deletes the legacy field afterwards.
func MigrateWorldCategories(b *StoryBible) {
	if len(b.WorldCategories) == 0 || len(b.WorldClasses) > 0 {
		return
	}
	b.WorldClasses = []Class{}
	b.WorldItems = []WorldItem{}
	for _, cat := range b.WorldCategories {
		cls := Class{ID: NewID(), Name: cat.Name, Template: []TemplateField{}}
		b.WorldClasses = append(b.WorldClasses, cls)
		for _, entry := range cat.Entries {
			id := entry.ID
			if id == "" {
				id = NewID()
			}
			attrs := entry.Attributes
			if attrs == nil {
				attrs = []Attribute{}
			}
			b.WorldItems = append(b.WorldItems, WorldItem{
				ID:          id,
				ClassID:     cls.ID,
				Name:        entry.Name,
				Description: entry.Description,
				Attributes:  attrs,
			})
		}
	}
	b.WorldCategories = nil
}

// MigratePlots converts the legacy flat plots list into a timeline: one root
// Saga titled "Main Saga" with each plot as an Arc child, ordered by the
// original array index. Runs only when the timeline is still empty.
func MigratePlots(b *StoryBible) {
	if len(b.Plots) == 0 || len(b.Timeline) > 0 {
		return
	}
	saga := TimelineEvent{
		ID:          NewID(),
		Type:        LevelSaga,
		Title:       "Main Saga",
		Description: "Imported from legacy plots",
		Order:       0,
	}
	b.Timeline = []TimelineEvent{saga}
	for i, p := range b.Plots {
		id := p.ID
		if id == "" {
			id = NewID()
		}
		b.Timeline = append(b.Timeline, TimelineEvent{
			ID:          id,
			Type:        LevelArc,
			Title:       p.Title,
			Description: p.Description,
			ParentID:    saga.ID,
			Order:       i,
		})
	}
	b.Plots = nil
}

// ApplyIntegrityDefaults replaces missing collections and metadata with the
// built-in defaults so a partially written document still loads.
func ApplyIntegrityDefaults(b *StoryBible) {
	if b.Title == "" {
		b.Title = DefaultTitle
	}
	if b.Genre == "" {
		b.Genre = DefaultGenre
	}
	if b.Tone == "" {
		b.Tone = DefaultTone
	}
	if b.WorldClasses == nil {
		b.WorldClasses = DefaultBible().WorldClasses
	}
	if b.CharacterCategories == nil {
		b.CharacterCategories = DefaultBible().CharacterCategories
	}
	if b.WorldItems == nil {
		b.WorldItems = []WorldItem{}
	}
	if b.Timeline == nil {
		b.Timeline = []TimelineEvent{}
	}
	if b.Characters == nil {
		b.Characters = []Character{}
	}
	for i := range b.Characters {
		if b.Characters[i].Traits == nil {
			b.Characters[i].Traits = []string{}
		}
		if b.Characters[i].Relationships == nil {
			b.Characters[i].Relationships = []string{}
		}
		if b.Characters[i].Attributes == nil {
			b.Characters[i].Attributes = []Attribute{}
		}
	}
	if b.ArchitectHistory == nil {
		b.ArchitectHistory = []ChatMessage{}
	}
	if b.RoleplayHistory == nil {
		b.RoleplayHistory = []ChatMessage{}
	}
}

// Encode serializes the document as indented JSON, the export format.
func Encode(b *StoryBible) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}
