package entities

// TimelineLevel names the three tiers of the timeline hierarchy. The level
// is advisory: the data model accepts any parent, it only drives which
// "add child" control is offered.
type TimelineLevel string

const (
	LevelSaga    TimelineLevel = "Saga"
	LevelArc     TimelineLevel = "Arc"
	LevelEpisode TimelineLevel = "Episode"
)

// ValidLevel reports whether s is one of the three timeline levels.
func ValidLevel(s string) bool {
	switch TimelineLevel(s) {
	case LevelSaga, LevelArc, LevelEpisode:
		return true
	}
	return false
}

// ChildLevel returns the level offered beneath the given one, or "" for
// Episode which has no children.
func (l TimelineLevel) ChildLevel() TimelineLevel {
	switch l {
	case LevelSaga:
		return LevelArc
	case LevelArc:
		return LevelEpisode
	}
	return ""
}

// TimelineEvent is a node in the timeline forest. Nodes without a ParentID
// are roots. Order is a sibling rank, meaningful only among nodes sharing
// the same ParentID.
type TimelineEvent struct {
	ID          string        `json:"id"`
	Type        TimelineLevel `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ParentID    string        `json:"parentId,omitempty"`
	Order       int           `json:"order"`
}
