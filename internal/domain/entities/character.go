package entities

// Character is a roster entry. CategoryID optionally references a character
// category (a Class); deleting the category cascades to its characters.
type Character struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Role             string      `json:"role"`
	CategoryID       string      `json:"categoryId,omitempty"`
	Description      string      `json:"description"`
	Personality      string      `json:"personality"`
	Appearance       string      `json:"appearance"`
	DialogueExamples string      `json:"dialogueExamples"`
	Traits           []string    `json:"traits"`
	Relationships    []string    `json:"relationships"`
	Attributes       []Attribute `json:"attributes"`
}

// WorldItem is an instance of a world class. ClassID must reference an
// existing Class at creation time; integrity afterwards is maintained only
// by cascading delete.
type WorldItem struct {
	ID          string      `json:"id"`
	ClassID     string      `json:"classId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Attributes  []Attribute `json:"attributes"`
}
