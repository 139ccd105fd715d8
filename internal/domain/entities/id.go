package entities

import (
	"strings"

	"github.com/google/uuid"
)

// idLength is the number of hex characters kept from a UUID. 16^12
// combinations keep the collision probability negligible for authoring-tool
// session sizes while staying short enough for hand editing.
const idLength = 12

// NewID returns a short unique identifier for a bible entity.
func NewID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return raw[:idLength]
}
