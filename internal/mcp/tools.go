package mcp

import (
	"context"
	"encoding/json"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/canaworld/cana/internal/domain/entities"
	"github.com/canaworld/cana/internal/domain/ports"
)

type UpdateStoryMetadataInput struct {
	Genre string `json:"genre,omitempty" jsonschema:"inferred genre (e.g. Cyberpunk, Dark Fantasy)"`
	Tone  string `json:"tone,omitempty" jsonschema:"inferred tone (e.g. Gritty, Wholesome)"`
	Title string `json:"title,omitempty" jsonschema:"project title if mentioned"`
}

type CreateCharacterInput struct {
	Name             string `json:"name" jsonschema:"character name"`
	Role             string `json:"role" jsonschema:"narrative role"`
	Description      string `json:"description" jsonschema:"general bio"`
	Personality      string `json:"personality,omitempty" jsonschema:"habits, likes/dislikes, internal logic"`
	Appearance       string `json:"appearance,omitempty" jsonschema:"physical look, clothing, distinct features"`
	DialogueExamples string `json:"dialogue_examples,omitempty" jsonschema:"sample quotes or speech patterns"`
	CategoryName     string `json:"category_name,omitempty" jsonschema:"category name (e.g. Human)"`
}

type CreateWorldItemInput struct {
	Name        string `json:"name" jsonschema:"name of the item, rule, or term"`
	ClassName   string `json:"class_name" jsonschema:"class name (e.g. Location, World Rules, Glossary)"`
	Description string `json:"description" jsonschema:"detailed definition, mechanics, or lore"`
}

type CreateTimelineEventInput struct {
	Title       string `json:"title" jsonschema:"event title"`
	Type        string `json:"type" jsonschema:"Saga, Arc, or Episode"`
	Description string `json:"description" jsonschema:"event description"`
	ParentTitle string `json:"parent_title,omitempty" jsonschema:"parent event title"`
}

type UpdateCharacterInput struct {
	TargetName       string `json:"target_name" jsonschema:"current name of the character"`
	NewName          string `json:"new_name,omitempty" jsonschema:"new name"`
	Role             string `json:"role,omitempty" jsonschema:"new role"`
	Description      string `json:"description,omitempty" jsonschema:"new description"`
	Personality      string `json:"personality,omitempty" jsonschema:"new personality details"`
	Appearance       string `json:"appearance,omitempty" jsonschema:"new appearance details"`
	DialogueExamples string `json:"dialogue_examples,omitempty" jsonschema:"new dialogue examples"`
}

type UpdateWorldItemInput struct {
	TargetName  string `json:"target_name" jsonschema:"current name of the item"`
	NewName     string `json:"new_name,omitempty" jsonschema:"new name"`
	Description string `json:"description,omitempty" jsonschema:"new description"`
}

type UpdateTimelineEventInput struct {
	TargetTitle string `json:"target_title" jsonschema:"current title"`
	NewTitle    string `json:"new_title,omitempty" jsonschema:"new title"`
	Description string `json:"description,omitempty" jsonschema:"new description"`
}

type GetStoryBibleInput struct{}

// ToolResultOutput carries the bridge's result string plus the last-action
// notice when the call mutated the bible.
type ToolResultOutput struct {
	Result string `json:"result"`
	Action string `json:"action,omitempty"`
}

type StoryBibleOutput struct {
	Document json.RawMessage `json:"document"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        ports.ToolUpdateStoryMetadata,
		Description: "Update the global project metadata (Genre, Tone, Title)",
	}, s.handleUpdateStoryMetadata)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        ports.ToolCreateCharacter,
		Description: "Create a new character with detailed profile",
	}, s.handleCreateCharacter)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        ports.ToolCreateWorldItem,
		Description: "Create a new world item, rule, or glossary term",
	}, s.handleCreateWorldItem)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        ports.ToolCreateTimelineEvent,
		Description: "Add a timeline event",
	}, s.handleCreateTimelineEvent)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        ports.ToolUpdateCharacter,
		Description: "Update an existing character found by name",
	}, s.handleUpdateCharacter)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        ports.ToolUpdateWorldItem,
		Description: "Update an existing world item found by name",
	}, s.handleUpdateWorldItem)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        ports.ToolUpdateTimelineEvent,
		Description: "Update a timeline event found by title",
	}, s.handleUpdateTimelineEvent)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_story_bible",
		Description: "Return the full story bible document",
	}, s.handleGetStoryBible)
}

func (s *Server) handleUpdateStoryMetadata(ctx context.Context, req *sdk.CallToolRequest, input UpdateStoryMetadataInput) (*sdk.CallToolResult, ToolResultOutput, error) {
	return s.dispatch(ports.ToolUpdateStoryMetadata, input)
}

func (s *Server) handleCreateCharacter(ctx context.Context, req *sdk.CallToolRequest, input CreateCharacterInput) (*sdk.CallToolResult, ToolResultOutput, error) {
	return s.dispatch(ports.ToolCreateCharacter, input)
}

func (s *Server) handleCreateWorldItem(ctx context.Context, req *sdk.CallToolRequest, input CreateWorldItemInput) (*sdk.CallToolResult, ToolResultOutput, error) {
	return s.dispatch(ports.ToolCreateWorldItem, input)
}

func (s *Server) handleCreateTimelineEvent(ctx context.Context, req *sdk.CallToolRequest, input CreateTimelineEventInput) (*sdk.CallToolResult, ToolResultOutput, error) {
	return s.dispatch(ports.ToolCreateTimelineEvent, input)
}

func (s *Server) handleUpdateCharacter(ctx context.Context, req *sdk.CallToolRequest, input UpdateCharacterInput) (*sdk.CallToolResult, ToolResultOutput, error) {
	return s.dispatch(ports.ToolUpdateCharacter, input)
}

func (s *Server) handleUpdateWorldItem(ctx context.Context, req *sdk.CallToolRequest, input UpdateWorldItemInput) (*sdk.CallToolResult, ToolResultOutput, error) {
	return s.dispatch(ports.ToolUpdateWorldItem, input)
}

func (s *Server) handleUpdateTimelineEvent(ctx context.Context, req *sdk.CallToolRequest, input UpdateTimelineEventInput) (*sdk.CallToolResult, ToolResultOutput, error) {
	return s.dispatch(ports.ToolUpdateTimelineEvent, input)
}

func (s *Server) handleGetStoryBible(ctx context.Context, req *sdk.CallToolRequest, input GetStoryBibleInput) (*sdk.CallToolResult, StoryBibleOutput, error) {
	data, err := entities.Encode(s.bible.Current())
	if err != nil {
		return nil, StoryBibleOutput{}, err
	}
	return nil, StoryBibleOutput{Document: data}, nil
}

// dispatch funnels an MCP call through the same bridge the architect uses,
// so both surfaces share one set of semantics and result strings.
func (s *Server) dispatch(name string, input any) (*sdk.CallToolResult, ToolResultOutput, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, ToolResultOutput{}, err
	}

	result := s.bridge.Execute(name, raw)
	action := s.bridge.LastAction()
	s.log.Debug("tool executed",
		zap.String("tool", name),
		zap.String("result", result))

	return nil, ToolResultOutput{Result: result, Action: action}, nil
}
