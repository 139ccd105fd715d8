package services

import "github.com/canaworld/cana/internal/domain/entities"

// Direction selects which visible neighbor a move targets.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// swapInView swaps an element with its neighbor in the visible subset by
// exchanging their positions in the full backing slice. Elements of the full
// slice that sit between them (filtered out of the view) keep their
// positions. At either end of the view the move is a no-op.
func swapInView[T any](full, view []T, id string, dir Direction, idOf func(T) string) []T {
	viewIdx := -1
	for i := range view {
		if idOf(view[i]) == id {
			viewIdx = i
			break
		}
	}
	if viewIdx == -1 {
		return full
	}
	if dir == Up && viewIdx == 0 {
		return full
	}
	if dir == Down && viewIdx == len(view)-1 {
		return full
	}
	target := viewIdx - 1
	if dir == Down {
		target = viewIdx + 1
	}

	idxA, idxB := -1, -1
	for i := range full {
		switch idOf(full[i]) {
		case idOf(view[viewIdx]):
			idxA = i
		case idOf(view[target]):
			idxB = i
		}
	}
	if idxA == -1 || idxB == -1 {
		return full
	}
	full[idxA], full[idxB] = full[idxB], full[idxA]
	return full
}

// MoveWorldClass moves a world class up or down in the class list.
func MoveWorldClass(b *entities.StoryBible, classID string, dir Direction) *entities.StoryBible {
	nb := b.Clone()
	nb.WorldClasses = swapInView(nb.WorldClasses, nb.WorldClasses, classID, dir, func(c entities.Class) string { return c.ID })
	return nb
}

// MoveCharacterCategory moves a character category up or down.
func MoveCharacterCategory(b *entities.StoryBible, classID string, dir Direction) *entities.StoryBible {
	nb := b.Clone()
	nb.CharacterCategories = swapInView(nb.CharacterCategories, nb.CharacterCategories, classID, dir, func(c entities.Class) string { return c.ID })
	return nb
}

// MoveCharacter moves a character up or down in the roster.
func MoveCharacter(b *entities.StoryBible, charID string, dir Direction) *entities.StoryBible {
	nb := b.Clone()
	nb.Characters = swapInView(nb.Characters, nb.Characters, charID, dir, func(c entities.Character) string { return c.ID })
	return nb
}

// MoveWorldItem moves a world item within the view filtered to its class.
// The swap exchanges the two items' global positions; items of other classes
// interleaved between them stay exactly where they were.
func MoveWorldItem(b *entities.StoryBible, itemID, classID string, dir Direction) *entities.StoryBible {
	nb := b.Clone()
	view := make([]entities.WorldItem, 0, len(nb.WorldItems))
	for _, it := range nb.WorldItems {
		if it.ClassID == classID {
			view = append(view, it)
		}
	}
	nb.WorldItems = swapInView(nb.WorldItems, view, itemID, dir, func(it entities.WorldItem) string { return it.ID })
	return nb
}
