package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/canaworld/cana/internal/domain/entities"
	"github.com/canaworld/cana/internal/domain/ports"
	"github.com/canaworld/cana/internal/domain/services"
)

// ToolBridge maps agent-issued tool calls onto bible mutations. Arguments
// arrive as untyped JSON bags and are coerced into typed command structs
// before any mutation function sees them. Each call returns one short result
// string; mutating calls also record a last-action notice for the UI.
type ToolBridge struct {
	bible *BibleHandler

	mu         sync.Mutex
	lastAction string
}

// NewToolBridge creates a bridge over the bible handler.
func NewToolBridge(bible *BibleHandler) *ToolBridge {
	return &ToolBridge{bible: bible}
}

// LastAction returns the most recent mutation notice and clears it.
func (t *ToolBridge) LastAction() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	a := t.lastAction
	t.lastAction = ""
	return a
}

func (t *ToolBridge) noteAction(format string, args ...any) {
	t.mu.Lock()
	t.lastAction = fmt.Sprintf(format, args...)
	t.mu.Unlock()
}

// Execute runs one named tool call. Calls within one agent batch run in
// array order and each observes the effects of the previous ones, because
// the bible handler mutates synchronously between calls.
func (t *ToolBridge) Execute(name string, rawArgs []byte) string {
	switch name {
	case ports.ToolUpdateStoryMetadata:
		return runTool(rawArgs, t.updateStoryMetadata)
	case ports.ToolCreateCharacter:
		return runTool(rawArgs, t.createCharacter)
	case ports.ToolCreateWorldItem:
		return runTool(rawArgs, t.createWorldItem)
	case ports.ToolCreateTimelineEvent:
		return runTool(rawArgs, t.createTimelineEvent)
	case ports.ToolUpdateCharacter:
		return runTool(rawArgs, t.updateCharacter)
	case ports.ToolUpdateWorldItem:
		return runTool(rawArgs, t.updateWorldItem)
	case ports.ToolUpdateTimelineEvent:
		return runTool(rawArgs, t.updateTimelineEvent)
	default:
		return fmt.Sprintf("Error: unknown tool '%s'.", name)
	}
}

// runTool coerces the raw argument bag into the typed command struct before
// the handler runs. Malformed bags never reach a mutation function.
func runTool[A any](rawArgs []byte, fn func(A) string) string {
	var args A
	if len(rawArgs) > 0 {
		if err := json.Unmarshal(rawArgs, &args); err != nil {
			return fmt.Sprintf("Error: invalid tool arguments: %v", err)
		}
	}
	return fn(args)
}

type updateMetadataArgs struct {
	Genre string `json:"genre"`
	Tone  string `json:"tone"`
	Title string `json:"title"`
}

func (t *ToolBridge) updateStoryMetadata(args updateMetadataArgs) string {
	if args.Genre == "" && args.Tone == "" && args.Title == "" {
		return "No changes made to metadata."
	}
	if err := t.bible.Mutate(context.Background(), func(b *entities.StoryBible) *entities.StoryBible {
		nb, _ := services.UpdateMetadata(b, args.Title, args.Genre, args.Tone)
		return nb
	}); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	var changes []string
	if args.Genre != "" {
		changes = append(changes, "Genre: "+args.Genre)
	}
	if args.Tone != "" {
		changes = append(changes, "Tone: "+args.Tone)
	}
	if args.Title != "" {
		changes = append(changes, "Title: "+args.Title)
	}
	t.noteAction("Updated Metadata: %s", strings.Join(changes, ", "))

	cur := t.bible.Current()
	return fmt.Sprintf("Success: Story Metadata updated. Current State -> Title: %s, Genre: %s, Tone: %s",
		cur.Title, cur.Genre, cur.Tone)
}

type createCharacterArgs struct {
	Name             string `json:"name"`
	Role             string `json:"role"`
	Description      string `json:"description"`
	Personality      string `json:"personality"`
	Appearance       string `json:"appearance"`
	DialogueExamples string `json:"dialogue_examples"`
	CategoryName     string `json:"category_name"`
}

func (t *ToolBridge) createCharacter(args createCharacterArgs) string {
	cur := t.bible.Current()
	if cur.CharacterByName(args.Name) != nil {
		return fmt.Sprintf("FAILED: Character '%s' already exists. Ask the user if they want to update it.", args.Name)
	}

	cat := entities.ResolveClassHint(cur.CharacterCategories, args.CategoryName)
	ch := entities.Character{
		Name:             orDefault(args.Name, "Unnamed"),
		Role:             orDefault(args.Role, "Unknown"),
		Description:      args.Description,
		Personality:      args.Personality,
		Appearance:       args.Appearance,
		DialogueExamples: args.DialogueExamples,
	}
	if cat != nil {
		ch.CategoryID = cat.ID
		ch.Attributes = services.InstantiateAttributes(cat.Template)
	}

	if err := t.bible.Mutate(context.Background(), func(b *entities.StoryBible) *entities.StoryBible {
		return services.AppendCharacter(b, ch)
	}); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	t.noteAction("Added Character: %s", ch.Name)
	return fmt.Sprintf("Success: Character '%s' created.", ch.Name)
}

type createWorldItemArgs struct {
	Name        string `json:"name"`
	ClassName   string `json:"class_name"`
	Description string `json:"description"`
}

func (t *ToolBridge) createWorldItem(args createWorldItemArgs) string {
	cur := t.bible.Current()
	if cur.WorldItemByName(args.Name) != nil {
		return fmt.Sprintf("FAILED: World Item '%s' already exists. Ask the user if they want to update it.", args.Name)
	}

	cls := entities.ResolveClassHint(cur.WorldClasses, args.ClassName)
	it := entities.WorldItem{
		Name:        orDefault(args.Name, "Unnamed"),
		Description: args.Description,
	}
	clsName := "Default"
	if cls != nil {
		it.ClassID = cls.ID
		it.Attributes = services.InstantiateAttributes(cls.Template)
		clsName = cls.Name
	}

	if err := t.bible.Mutate(context.Background(), func(b *entities.StoryBible) *entities.StoryBible {
		return services.PrependWorldItem(b, it)
	}); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	t.noteAction("Added Item: %s (%s)", it.Name, clsName)
	return fmt.Sprintf("Success: '%s' created in class '%s'.", it.Name, clsName)
}

type createTimelineEventArgs struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
	ParentTitle string `json:"parent_title"`
}

func (t *ToolBridge) createTimelineEvent(args createTimelineEventArgs) string {
	cur := t.bible.Current()
	if cur.TimelineEventByTitle(args.Title) != nil {
		return fmt.Sprintf("FAILED: Event '%s' already exists. Ask the user if they want to update it.", args.Title)
	}

	level := entities.LevelEpisode
	if entities.ValidLevel(args.Type) {
		level = entities.TimelineLevel(args.Type)
	}
	evt := entities.TimelineEvent{
		Type:        level,
		Title:       orDefault(args.Title, "New Event"),
		Description: args.Description,
		// Global monotonic sequence, not scoped to the parent. Orders
		// stay comparable among siblings, which is all the sort needs.
		Order: len(cur.Timeline),
	}
	if parent := cur.ResolveParentHint(args.ParentTitle); parent != nil {
		evt.ParentID = parent.ID
	}

	if err := t.bible.Mutate(context.Background(), func(b *entities.StoryBible) *entities.StoryBible {
		return services.AppendTimelineEvent(b, evt)
	}); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	t.noteAction("Added Event: %s", evt.Title)
	return fmt.Sprintf("Success: Timeline Event '%s' created.", evt.Title)
}

type updateCharacterArgs struct {
	TargetName       string `json:"target_name"`
	NewName          string `json:"new_name"`
	Role             string `json:"role"`
	Description      string `json:"description"`
	Personality      string `json:"personality"`
	Appearance       string `json:"appearance"`
	DialogueExamples string `json:"dialogue_examples"`
}

func (t *ToolBridge) updateCharacter(args updateCharacterArgs) string {
	cur := t.bible.Current()
	ch := cur.CharacterByName(args.TargetName)
	if ch == nil {
		return fmt.Sprintf("Error: Character '%s' not found.", args.TargetName)
	}

	if err := t.bible.Mutate(context.Background(), func(b *entities.StoryBible) *entities.StoryBible {
		return services.PatchCharacter(b, ch.ID, services.CharacterPatch{
			Name:             args.NewName,
			Role:             args.Role,
			Description:      args.Description,
			Personality:      args.Personality,
			Appearance:       args.Appearance,
			DialogueExamples: args.DialogueExamples,
		})
	}); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	t.noteAction("Updated Character: %s", orDefault(args.NewName, args.TargetName))
	return fmt.Sprintf("Success: Character '%s' updated.", args.TargetName)
}

type updateWorldItemArgs struct {
	TargetName  string `json:"target_name"`
	NewName     string `json:"new_name"`
	Description string `json:"description"`
}

func (t *ToolBridge) updateWorldItem(args updateWorldItemArgs) string {
	cur := t.bible.Current()
	it := cur.WorldItemByName(args.TargetName)
	if it == nil {
		return fmt.Sprintf("Error: Item '%s' not found.", args.TargetName)
	}

	if err := t.bible.Mutate(context.Background(), func(b *entities.StoryBible) *entities.StoryBible {
		return services.PatchWorldItem(b, it.ID, args.NewName, args.Description)
	}); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	t.noteAction("Updated Item: %s", orDefault(args.NewName, args.TargetName))
	return fmt.Sprintf("Success: Item '%s' updated.", args.TargetName)
}

type updateTimelineEventArgs struct {
	TargetTitle string `json:"target_title"`
	NewTitle    string `json:"new_title"`
	Description string `json:"description"`
}

func (t *ToolBridge) updateTimelineEvent(args updateTimelineEventArgs) string {
	cur := t.bible.Current()
	evt := cur.TimelineEventByTitle(args.TargetTitle)
	if evt == nil {
		return fmt.Sprintf("Error: Event '%s' not found.", args.TargetTitle)
	}

	if err := t.bible.Mutate(context.Background(), func(b *entities.StoryBible) *entities.StoryBible {
		return services.PatchTimelineEvent(b, evt.ID, args.NewTitle, args.Description)
	}); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	t.noteAction("Updated Event: %s", orDefault(args.NewTitle, args.TargetTitle))
	return fmt.Sprintf("Success: Event '%s' updated.", args.TargetTitle)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
