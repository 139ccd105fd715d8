package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/canaworld/cana/internal/domain/entities"
	"github.com/canaworld/cana/internal/domain/services"
)

// findClass resolves a CLI reference against a class list, matching the ID
// first and then the name (case-insensitive).
func findClass(classes []entities.Class, ref string) *entities.Class {
	for i := range classes {
		if classes[i].ID == ref {
			return &classes[i]
		}
	}
	norm := entities.NormalizeName(ref)
	for i := range classes {
		if entities.NormalizeName(classes[i].Name) == norm {
			return &classes[i]
		}
	}
	return nil
}

func findCharacter(b *entities.StoryBible, ref string) *entities.Character {
	for i := range b.Characters {
		if b.Characters[i].ID == ref {
			return &b.Characters[i]
		}
	}
	return b.CharacterByName(ref)
}

func findWorldItem(b *entities.StoryBible, ref string) *entities.WorldItem {
	for i := range b.WorldItems {
		if b.WorldItems[i].ID == ref {
			return &b.WorldItems[i]
		}
	}
	return b.WorldItemByName(ref)
}

func findTimelineEvent(b *entities.StoryBible, ref string) *entities.TimelineEvent {
	for i := range b.Timeline {
		if b.Timeline[i].ID == ref {
			return &b.Timeline[i]
		}
	}
	return b.TimelineEventByTitle(ref)
}

// findAttribute matches an instance attribute by key (case-insensitive).
func findAttribute(attrs []entities.Attribute, key string) *entities.Attribute {
	norm := entities.NormalizeName(key)
	for i := range attrs {
		if entities.NormalizeName(attrs[i].Key) == norm {
			return &attrs[i]
		}
	}
	return nil
}

// parseDirection validates an up/down argument.
func parseDirection(s string) (services.Direction, error) {
	switch services.Direction(s) {
	case services.Up, services.Down:
		return services.Direction(s), nil
	default:
		return "", fmt.Errorf("invalid direction %q (use up or down)", s)
	}
}

// confirm prompts the user and returns true only for an explicit yes.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// truncate shortens long descriptions for list output.
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
