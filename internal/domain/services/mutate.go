package services

import "github.com/canaworld/cana/internal/domain/entities"

// UpdateMetadata merges any non-empty field into the root document metadata.
// The second result reports whether anything changed.
func UpdateMetadata(b *entities.StoryBible, title, genre, tone string) (*entities.StoryBible, bool) {
	nb := b.Clone()
	changed := false
	if title != "" {
		nb.Title = title
		changed = true
	}
	if genre != "" {
		nb.Genre = genre
		changed = true
	}
	if tone != "" {
		nb.Tone = tone
		changed = true
	}
	return nb, changed
}

// AppendCharacter adds a character to the end of the roster, assigning an ID
// when none is set. Callers have already validated the name and resolved the
// category.
func AppendCharacter(b *entities.StoryBible, ch entities.Character) *entities.StoryBible {
	nb := b.Clone()
	if ch.ID == "" {
		ch.ID = entities.NewID()
	}
	if ch.Traits == nil {
		ch.Traits = []string{}
	}
	if ch.Relationships == nil {
		ch.Relationships = []string{}
	}
	if ch.Attributes == nil {
		ch.Attributes = []entities.Attribute{}
	}
	nb.Characters = append(nb.Characters, ch)
	return nb
}

// PrependWorldItem adds a world item at the front of the collection, the
// most-recent-first convention for agent-created items.
func PrependWorldItem(b *entities.StoryBible, it entities.WorldItem) *entities.StoryBible {
	nb := b.Clone()
	if it.ID == "" {
		it.ID = entities.NewID()
	}
	if it.Attributes == nil {
		it.Attributes = []entities.Attribute{}
	}
	nb.WorldItems = append([]entities.WorldItem{it}, nb.WorldItems...)
	return nb
}

// AppendTimelineEvent adds a prepared timeline node as-is. Unlike
// AddTimelineEvent it does not assign an order; the agent bridge sets it to
// the total node count.
func AppendTimelineEvent(b *entities.StoryBible, evt entities.TimelineEvent) *entities.StoryBible {
	nb := b.Clone()
	if evt.ID == "" {
		evt.ID = entities.NewID()
	}
	nb.Timeline = append(nb.Timeline, evt)
	return nb
}

// CharacterPatch carries the optional fields of a character update. Empty
// fields are preserved, never cleared.
type CharacterPatch struct {
	Name             string
	Role             string
	Description      string
	Personality      string
	Appearance       string
	DialogueExamples string
}

// PatchCharacter overwrites each non-empty patch field on the character.
func PatchCharacter(b *entities.StoryBible, charID string, p CharacterPatch) *entities.StoryBible {
	nb := b.Clone()
	for i := range nb.Characters {
		if nb.Characters[i].ID != charID {
			continue
		}
		ch := &nb.Characters[i]
		if p.Name != "" {
			ch.Name = p.Name
		}
		if p.Role != "" {
			ch.Role = p.Role
		}
		if p.Description != "" {
			ch.Description = p.Description
		}
		if p.Personality != "" {
			ch.Personality = p.Personality
		}
		if p.Appearance != "" {
			ch.Appearance = p.Appearance
		}
		if p.DialogueExamples != "" {
			ch.DialogueExamples = p.DialogueExamples
		}
		break
	}
	return nb
}

// PatchWorldItem overwrites the non-empty fields on a world item.
func PatchWorldItem(b *entities.StoryBible, itemID, name, description string) *entities.StoryBible {
	nb := b.Clone()
	for i := range nb.WorldItems {
		if nb.WorldItems[i].ID != itemID {
			continue
		}
		if name != "" {
			nb.WorldItems[i].Name = name
		}
		if description != "" {
			nb.WorldItems[i].Description = description
		}
		break
	}
	return nb
}

// PatchTimelineEvent overwrites the non-empty fields on a timeline node.
func PatchTimelineEvent(b *entities.StoryBible, eventID, title, description string) *entities.StoryBible {
	nb := b.Clone()
	for i := range nb.Timeline {
		if nb.Timeline[i].ID != eventID {
			continue
		}
		if title != "" {
			nb.Timeline[i].Title = title
		}
		if description != "" {
			nb.Timeline[i].Description = description
		}
		break
	}
	return nb
}

// DeleteCharacter removes a character from the roster.
func DeleteCharacter(b *entities.StoryBible, charID string) *entities.StoryBible {
	nb := b.Clone()
	kept := nb.Characters[:0]
	for _, ch := range nb.Characters {
		if ch.ID != charID {
			kept = append(kept, ch)
		}
	}
	nb.Characters = kept
	return nb
}

// DeleteWorldItem removes a world item.
func DeleteWorldItem(b *entities.StoryBible, itemID string) *entities.StoryBible {
	nb := b.Clone()
	kept := nb.WorldItems[:0]
	for _, it := range nb.WorldItems {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	nb.WorldItems = kept
	return nb
}

// SetCharacterAttribute sets the value of one attribute on a character.
func SetCharacterAttribute(b *entities.StoryBible, charID, attrID, value string) *entities.StoryBible {
	nb := b.Clone()
	for i := range nb.Characters {
		if nb.Characters[i].ID == charID {
			setAttrValue(nb.Characters[i].Attributes, attrID, value)
			break
		}
	}
	return nb
}

// SetWorldItemAttribute sets the value of one attribute on a world item.
func SetWorldItemAttribute(b *entities.StoryBible, itemID, attrID, value string) *entities.StoryBible {
	nb := b.Clone()
	for i := range nb.WorldItems {
		if nb.WorldItems[i].ID == itemID {
			setAttrValue(nb.WorldItems[i].Attributes, attrID, value)
			break
		}
	}
	return nb
}

func setAttrValue(attrs []entities.Attribute, attrID, value string) {
	for i := range attrs {
		if attrs[i].ID == attrID {
			attrs[i].Value = value
			return
		}
	}
}

// AppendArchitectMessage appends to the architect conversation log.
func AppendArchitectMessage(b *entities.StoryBible, msg entities.ChatMessage) *entities.StoryBible {
	nb := b.Clone()
	nb.ArchitectHistory = append(nb.ArchitectHistory, msg)
	return nb
}

// AppendRoleplayMessage appends to the roleplay conversation log.
func AppendRoleplayMessage(b *entities.StoryBible, msg entities.ChatMessage) *entities.StoryBible {
	nb := b.Clone()
	nb.RoleplayHistory = append(nb.RoleplayHistory, msg)
	return nb
}

// ClearArchitectHistory truncates the architect log to empty.
func ClearArchitectHistory(b *entities.StoryBible) *entities.StoryBible {
	nb := b.Clone()
	nb.ArchitectHistory = []entities.ChatMessage{}
	return nb
}

// ClearRoleplayHistory truncates the roleplay log to empty.
func ClearRoleplayHistory(b *entities.StoryBible) *entities.StoryBible {
	nb := b.Clone()
	nb.RoleplayHistory = []entities.ChatMessage{}
	return nb
}
