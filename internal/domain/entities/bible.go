package entities

import (
	"slices"
	"strings"
)

// StoryBible is the root aggregate. It is a single-writer in-process
// document: mutations produce a complete new snapshot and the whole document
// is persisted after every change.
type StoryBible struct {
	Title string `json:"title"`
	Genre string `json:"genre"`
	Tone  string `json:"tone"`

	CharacterCategories []Class     `json:"characterCategories"`
	Characters          []Character `json:"characters"`

	WorldClasses []Class     `json:"worldClasses"`
	WorldItems   []WorldItem `json:"worldItems"`

	Timeline []TimelineEvent `json:"timeline"`

	ArchitectHistory []ChatMessage `json:"architectHistory"`
	RoleplayHistory  []ChatMessage `json:"roleplayHistory"`

	// Legacy fields, consumed by migration on load.
	WorldCategories []WorldCategory `json:"worldCategories,omitempty"`
	Plots           []PlotPoint     `json:"plots,omitempty"`
}

// WorldCategory is the pre-class legacy shape of a world collection.
type WorldCategory struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Entries     []WorldEntry `json:"entries"`
}

// WorldEntry is a legacy world item without a class reference.
type WorldEntry struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Attributes  []Attribute `json:"attributes"`
}

// PlotPoint is the pre-timeline legacy shape of a story beat.
type PlotPoint struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
}

// Built-in metadata defaults.
const (
	DefaultTitle = "Untitled World Project"
	DefaultGenre = "High Fantasy"
	DefaultTone  = "Epic, Detailed, Mythological"
)

// DefaultBible returns the built-in starting document: empty collections
// plus a seed character category and world classes.
func DefaultBible() *StoryBible {
	return &StoryBible{
		Title: DefaultTitle,
		Genre: DefaultGenre,
		Tone:  DefaultTone,
		CharacterCategories: []Class{
			{
				ID:   "class_human",
				Name: "Human",
				Template: []TemplateField{
					{ID: "attr_age", Key: "Age"},
					{ID: "attr_occupation", Key: "Occupation"},
				},
			},
		},
		Characters: []Character{},
		WorldClasses: []Class{
			{
				ID:   "class_location",
				Name: "Location",
				Template: []TemplateField{
					{ID: NewID(), Key: "Climate"},
					{ID: NewID(), Key: "Population"},
					{ID: NewID(), Key: "Key Resources"},
				},
			},
			{
				ID:   "class_rules",
				Name: "World Rules & Laws",
				Template: []TemplateField{
					{ID: NewID(), Key: "Type"},
					{ID: NewID(), Key: "Penalty"},
				},
			},
			{
				ID:   "class_glossary",
				Name: "Glossary & Terminology",
				Template: []TemplateField{
					{ID: NewID(), Key: "Category"},
					{ID: NewID(), Key: "Synonyms"},
				},
			},
		},
		WorldItems:       []WorldItem{},
		Timeline:         []TimelineEvent{},
		ArchitectHistory: []ChatMessage{},
		RoleplayHistory:  []ChatMessage{},
	}
}

// Clone returns a deep copy. Mutation functions clone the prior snapshot and
// edit the copy, so a failed or declined operation leaves the original
// untouched.
func (b *StoryBible) Clone() *StoryBible {
	c := *b
	c.CharacterCategories = cloneClasses(b.CharacterCategories)
	c.WorldClasses = cloneClasses(b.WorldClasses)
	c.Characters = make([]Character, len(b.Characters))
	for i, ch := range b.Characters {
		ch.Traits = slices.Clone(ch.Traits)
		ch.Relationships = slices.Clone(ch.Relationships)
		ch.Attributes = slices.Clone(ch.Attributes)
		c.Characters[i] = ch
	}
	c.WorldItems = make([]WorldItem, len(b.WorldItems))
	for i, it := range b.WorldItems {
		it.Attributes = slices.Clone(it.Attributes)
		c.WorldItems[i] = it
	}
	c.Timeline = slices.Clone(b.Timeline)
	c.ArchitectHistory = slices.Clone(b.ArchitectHistory)
	c.RoleplayHistory = slices.Clone(b.RoleplayHistory)
	return &c
}

func cloneClasses(src []Class) []Class {
	out := make([]Class, len(src))
	for i, cl := range src {
		cl.Template = slices.Clone(cl.Template)
		out[i] = cl
	}
	return out
}

// WorldClass returns the world class with the given ID, or nil.
func (b *StoryBible) WorldClass(id string) *Class {
	return classByID(b.WorldClasses, id)
}

// CharacterCategory returns the character category with the given ID, or nil.
func (b *StoryBible) CharacterCategory(id string) *Class {
	return classByID(b.CharacterCategories, id)
}

func classByID(classes []Class, id string) *Class {
	for i := range classes {
		if classes[i].ID == id {
			return &classes[i]
		}
	}
	return nil
}

// CharacterByName finds a character by full case-insensitive name match.
func (b *StoryBible) CharacterByName(name string) *Character {
	want := NormalizeName(name)
	for i := range b.Characters {
		if NormalizeName(b.Characters[i].Name) == want {
			return &b.Characters[i]
		}
	}
	return nil
}

// WorldItemByName finds a world item by full case-insensitive name match.
func (b *StoryBible) WorldItemByName(name string) *WorldItem {
	want := NormalizeName(name)
	for i := range b.WorldItems {
		if NormalizeName(b.WorldItems[i].Name) == want {
			return &b.WorldItems[i]
		}
	}
	return nil
}

// TimelineEventByTitle finds a timeline event by full case-insensitive
// title match.
func (b *StoryBible) TimelineEventByTitle(title string) *TimelineEvent {
	want := NormalizeName(title)
	for i := range b.Timeline {
		if NormalizeName(b.Timeline[i].Title) == want {
			return &b.Timeline[i]
		}
	}
	return nil
}

// ResolveClassHint resolves a class-name hint against a class collection.
// The match is asymmetric: a stored name matches when it contains the hint,
// case-insensitively. With no match (or an empty collection) the first class
// is returned; nil when the collection is empty.
func ResolveClassHint(classes []Class, hint string) *Class {
	want := NormalizeName(hint)
	for i := range classes {
		if strings.Contains(NormalizeName(classes[i].Name), want) {
			return &classes[i]
		}
	}
	if len(classes) > 0 {
		return &classes[0]
	}
	return nil
}

// ResolveParentHint resolves a parent-title hint against the timeline using
// the same containment rule. Returns nil when nothing matches.
func (b *StoryBible) ResolveParentHint(hint string) *TimelineEvent {
	if strings.TrimSpace(hint) == "" {
		return nil
	}
	want := NormalizeName(hint)
	for i := range b.Timeline {
		if strings.Contains(NormalizeName(b.Timeline[i].Title), want) {
			return &b.Timeline[i]
		}
	}
	return nil
}
