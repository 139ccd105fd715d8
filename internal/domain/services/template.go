// Package services holds the pure mutation functions of the story bible.
// Every function takes the prior document snapshot and returns a complete
// new snapshot; none of them fail. Missing targets make an operation a
// no-op, which keeps the agent bridge and the CLI free to report without
// rolling anything back.
package services

import (
	"github.com/canaworld/cana/internal/domain/entities"
)

// InstantiateAttributes materializes a fresh attribute list from a class
// template: one empty-valued attribute per field, template order preserved.
func InstantiateAttributes(template []entities.TemplateField) []entities.Attribute {
	attrs := make([]entities.Attribute, 0, len(template))
	for _, f := range template {
		attrs = append(attrs, entities.Attribute{ID: entities.NewID(), Key: f.Key, Value: ""})
	}
	return attrs
}

// AddWorldClass appends a new empty world class.
func AddWorldClass(b *entities.StoryBible, name string) (*entities.StoryBible, string) {
	nb := b.Clone()
	cls := entities.Class{ID: entities.NewID(), Name: name, Template: []entities.TemplateField{}}
	nb.WorldClasses = append(nb.WorldClasses, cls)
	return nb, cls.ID
}

// AddCharacterCategory appends a new empty character category.
func AddCharacterCategory(b *entities.StoryBible, name string) (*entities.StoryBible, string) {
	nb := b.Clone()
	cls := entities.Class{ID: entities.NewID(), Name: name, Template: []entities.TemplateField{}}
	nb.CharacterCategories = append(nb.CharacterCategories, cls)
	return nb, cls.ID
}

// RenameWorldClass sets a world class name.
func RenameWorldClass(b *entities.StoryBible, classID, name string) *entities.StoryBible {
	nb := b.Clone()
	if cls := nb.WorldClass(classID); cls != nil {
		cls.Name = name
	}
	return nb
}

// RenameCharacterCategory sets a character category name.
func RenameCharacterCategory(b *entities.StoryBible, classID, name string) *entities.StoryBible {
	nb := b.Clone()
	if cls := nb.CharacterCategory(classID); cls != nil {
		cls.Name = name
	}
	return nb
}

// AddWorldTemplateField appends a field to a world class template. Existing
// items are untouched: the field appears on instances created afterwards or
// when explicitly materialized.
func AddWorldTemplateField(b *entities.StoryBible, classID, key string) *entities.StoryBible {
	nb := b.Clone()
	if cls := nb.WorldClass(classID); cls != nil {
		cls.Template = append(cls.Template, entities.TemplateField{ID: entities.NewID(), Key: key})
	}
	return nb
}

// AddCategoryTemplateField appends a field to a character category template.
func AddCategoryTemplateField(b *entities.StoryBible, classID, key string) *entities.StoryBible {
	nb := b.Clone()
	if cls := nb.CharacterCategory(classID); cls != nil {
		cls.Template = append(cls.Template, entities.TemplateField{ID: entities.NewID(), Key: key})
	}
	return nb
}

// RenameWorldTemplateField renames a template field and propagates the
// rename onto every item of the class, matching attributes by the key the
// field had before the edit. An empty old key propagates nothing.
func RenameWorldTemplateField(b *entities.StoryBible, classID, fieldID, newKey string) *entities.StoryBible {
	nb := b.Clone()
	cls := nb.WorldClass(classID)
	if cls == nil {
		return nb
	}
	field := cls.Field(fieldID)
	if field == nil {
		return nb
	}
	oldKey := field.Key
	field.Key = newKey
	if oldKey == "" {
		return nb
	}
	for i := range nb.WorldItems {
		if nb.WorldItems[i].ClassID == classID {
			renameAttrKey(nb.WorldItems[i].Attributes, oldKey, newKey)
		}
	}
	return nb
}

// RenameCategoryTemplateField is the character-side counterpart of
// RenameWorldTemplateField.
func RenameCategoryTemplateField(b *entities.StoryBible, classID, fieldID, newKey string) *entities.StoryBible {
	nb := b.Clone()
	cls := nb.CharacterCategory(classID)
	if cls == nil {
		return nb
	}
	field := cls.Field(fieldID)
	if field == nil {
		return nb
	}
	oldKey := field.Key
	field.Key = newKey
	if oldKey == "" {
		return nb
	}
	for i := range nb.Characters {
		if nb.Characters[i].CategoryID == classID {
			renameAttrKey(nb.Characters[i].Attributes, oldKey, newKey)
		}
	}
	return nb
}

// DeleteWorldTemplateField removes a template field and strips the matching
// attribute (by key) from every item of the class. Callers obtain
// confirmation before invoking it.
func DeleteWorldTemplateField(b *entities.StoryBible, classID, fieldID string) *entities.StoryBible {
	nb := b.Clone()
	cls := nb.WorldClass(classID)
	if cls == nil {
		return nb
	}
	field := cls.Field(fieldID)
	if field == nil {
		return nb
	}
	key := field.Key
	cls.Template = removeField(cls.Template, fieldID)
	if key == "" {
		return nb
	}
	for i := range nb.WorldItems {
		if nb.WorldItems[i].ClassID == classID {
			nb.WorldItems[i].Attributes = removeAttrKey(nb.WorldItems[i].Attributes, key)
		}
	}
	return nb
}

// DeleteCategoryTemplateField is the character-side counterpart of
// DeleteWorldTemplateField.
func DeleteCategoryTemplateField(b *entities.StoryBible, classID, fieldID string) *entities.StoryBible {
	nb := b.Clone()
	cls := nb.CharacterCategory(classID)
	if cls == nil {
		return nb
	}
	field := cls.Field(fieldID)
	if field == nil {
		return nb
	}
	key := field.Key
	cls.Template = removeField(cls.Template, fieldID)
	if key == "" {
		return nb
	}
	for i := range nb.Characters {
		if nb.Characters[i].CategoryID == classID {
			nb.Characters[i].Attributes = removeAttrKey(nb.Characters[i].Attributes, key)
		}
	}
	return nb
}

// WorldItemsInClass counts the items a class deletion would cascade to.
// Callers use it to build the confirmation prompt.
func WorldItemsInClass(b *entities.StoryBible, classID string) int {
	n := 0
	for i := range b.WorldItems {
		if b.WorldItems[i].ClassID == classID {
			n++
		}
	}
	return n
}

// CharactersInCategory counts the characters a category deletion would
// cascade to.
func CharactersInCategory(b *entities.StoryBible, classID string) int {
	n := 0
	for i := range b.Characters {
		if b.Characters[i].CategoryID == classID {
			n++
		}
	}
	return n
}

// DeleteWorldClass removes a class and every item referencing it. The whole
// cascade lands in one snapshot.
func DeleteWorldClass(b *entities.StoryBible, classID string) *entities.StoryBible {
	nb := b.Clone()
	nb.WorldClasses = removeClass(nb.WorldClasses, classID)
	kept := nb.WorldItems[:0]
	for _, it := range nb.WorldItems {
		if it.ClassID != classID {
			kept = append(kept, it)
		}
	}
	nb.WorldItems = kept
	return nb
}

// DeleteCharacterCategory removes a category and every character
// referencing it.
func DeleteCharacterCategory(b *entities.StoryBible, classID string) *entities.StoryBible {
	nb := b.Clone()
	nb.CharacterCategories = removeClass(nb.CharacterCategories, classID)
	kept := nb.Characters[:0]
	for _, ch := range nb.Characters {
		if ch.CategoryID != classID {
			kept = append(kept, ch)
		}
	}
	nb.Characters = kept
	return nb
}

// SwitchCharacterCategory re-binds a character to another category and
// merges the new template in: fields whose key the character does not carry
// yet get a fresh empty attribute, existing attributes are never dropped.
func SwitchCharacterCategory(b *entities.StoryBible, charID, newCategoryID string) *entities.StoryBible {
	nb := b.Clone()
	cat := nb.CharacterCategory(newCategoryID)
	if cat == nil {
		return nb
	}
	for i := range nb.Characters {
		if nb.Characters[i].ID != charID {
			continue
		}
		ch := &nb.Characters[i]
		ch.CategoryID = newCategoryID
		for _, f := range cat.Template {
			if !hasAttrKey(ch.Attributes, f.Key) {
				ch.Attributes = append(ch.Attributes, entities.Attribute{ID: entities.NewID(), Key: f.Key, Value: ""})
			}
		}
		break
	}
	return nb
}

func renameAttrKey(attrs []entities.Attribute, oldKey, newKey string) {
	for i := range attrs {
		if attrs[i].Key == oldKey {
			attrs[i].Key = newKey
		}
	}
}

func removeAttrKey(attrs []entities.Attribute, key string) []entities.Attribute {
	kept := attrs[:0]
	for _, a := range attrs {
		if a.Key != key {
			kept = append(kept, a)
		}
	}
	return kept
}

func hasAttrKey(attrs []entities.Attribute, key string) bool {
	for i := range attrs {
		if attrs[i].Key == key {
			return true
		}
	}
	return false
}

func removeField(fields []entities.TemplateField, fieldID string) []entities.TemplateField {
	kept := fields[:0]
	for _, f := range fields {
		if f.ID != fieldID {
			kept = append(kept, f)
		}
	}
	return kept
}

func removeClass(classes []entities.Class, classID string) []entities.Class {
	kept := classes[:0]
	for _, c := range classes {
		if c.ID != classID {
			kept = append(kept, c)
		}
	}
	return kept
}
