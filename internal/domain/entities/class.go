package entities

import "strings"

// TemplateField is one named attribute slot declared on a Class. The ID is
// stable and is the join key for template edits; the Key is what instances
// denormalize into their attributes.
type TemplateField struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// Class is a schema entity: an ordered list of template fields shared by the
// instances that reference it. The same shape serves world classes and
// character categories.
type Class struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Template []TemplateField `json:"template"`
}

// Attribute is an instance-level key/value pair materialized from a class
// template. It carries its own identity; the key is a denormalized copy of
// the owning template field's key, kept in sync by propagation.
type Attribute struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Field returns the template field with the given ID, or nil.
func (c *Class) Field(fieldID string) *TemplateField {
	for i := range c.Template {
		if c.Template[i].ID == fieldID {
			return &c.Template[i]
		}
	}
	return nil
}

// DuplicateKeys reports template keys that appear more than once. Duplicates
// are allowed but make rename/delete propagation apply to every attribute
// sharing the key.
func (c *Class) DuplicateKeys() []string {
	seen := make(map[string]int, len(c.Template))
	for _, f := range c.Template {
		seen[f.Key]++
	}
	var dups []string
	for _, f := range c.Template {
		if seen[f.Key] > 1 {
			seen[f.Key] = 0
			dups = append(dups, f.Key)
		}
	}
	return dups
}

// NormalizeName lowercases and trims a name for case-insensitive matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
