package services

import (
	"sort"

	"github.com/canaworld/cana/internal/domain/entities"
)

// Siblings returns the timeline nodes sharing parentID (the empty string
// selects the root group), sorted by order ascending.
func Siblings(b *entities.StoryBible, parentID string) []entities.TimelineEvent {
	var sibs []entities.TimelineEvent
	for _, t := range b.Timeline {
		if t.ParentID == parentID {
			sibs = append(sibs, t)
		}
	}
	sort.SliceStable(sibs, func(i, j int) bool { return sibs[i].Order < sibs[j].Order })
	return sibs
}

// AddTimelineEvent appends a node under the given parent. Order is assigned
// as the current sibling count, the next rank within that scope.
func AddTimelineEvent(b *entities.StoryBible, level entities.TimelineLevel, title, description, parentID string) (*entities.StoryBible, string) {
	nb := b.Clone()
	evt := entities.TimelineEvent{
		ID:          entities.NewID(),
		Type:        level,
		Title:       title,
		Description: description,
		ParentID:    parentID,
		Order:       len(Siblings(nb, parentID)),
	}
	nb.Timeline = append(nb.Timeline, evt)
	return nb, evt.ID
}

// MoveTimelineEvent swaps a node's order value with its sibling neighbor in
// the given direction. The backing slice is never reordered, only the two
// order fields are exchanged. A move past either boundary is a no-op.
func MoveTimelineEvent(b *entities.StoryBible, id, parentID string, dir Direction) *entities.StoryBible {
	nb := b.Clone()
	sibs := Siblings(nb, parentID)
	idx := -1
	for i := range sibs {
		if sibs[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nb
	}
	if dir == Up && idx == 0 {
		return nb
	}
	if dir == Down && idx == len(sibs)-1 {
		return nb
	}
	target := idx - 1
	if dir == Down {
		target = idx + 1
	}
	orderA, orderB := sibs[target].Order, sibs[idx].Order
	for i := range nb.Timeline {
		switch nb.Timeline[i].ID {
		case sibs[idx].ID:
			nb.Timeline[i].Order = orderA
		case sibs[target].ID:
			nb.Timeline[i].Order = orderB
		}
	}
	return nb
}

// SubtreeIDs computes the transitive closure of a node and its descendants
// by iterating the collection until a fixed point. Callers use the size for
// confirmation prompts before deleting.
func SubtreeIDs(b *entities.StoryBible, rootID string) map[string]bool {
	ids := map[string]bool{rootID: true}
	for changed := true; changed; {
		changed = false
		for _, t := range b.Timeline {
			if t.ParentID != "" && ids[t.ParentID] && !ids[t.ID] {
				ids[t.ID] = true
				changed = true
			}
		}
	}
	return ids
}

// DeleteTimelineSubtree removes a node and every descendant in one snapshot.
func DeleteTimelineSubtree(b *entities.StoryBible, rootID string) *entities.StoryBible {
	nb := b.Clone()
	ids := SubtreeIDs(nb, rootID)
	kept := nb.Timeline[:0]
	for _, t := range nb.Timeline {
		if !ids[t.ID] {
			kept = append(kept, t)
		}
	}
	nb.Timeline = kept
	return nb
}
