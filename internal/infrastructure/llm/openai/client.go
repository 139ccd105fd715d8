// Package openai provides an LLMClient implementation using OpenAI.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/canaworld/cana/internal/domain/entities"
	"github.com/canaworld/cana/internal/domain/ports"
	"github.com/canaworld/cana/internal/infrastructure/config"
)

const architectPrompt = `You are the "Narrative Architect" (CANA), a specialized AI World Builder and Editor.
Your primary goal is to assist the user in building a deep, consistent, and detailed fictional world.

ROLE & PERSONA:
- Role: World Building Expert & Logic Keeper.
- Tone: Knowledgeable, Analytical, Creative but grounded.

CRITICAL INSTRUCTION - DATA RECORDING:
- You are NOT just a chatbot. You are a database manager.
- SAVE EVERYTHING: If the user mentions a new rule, a definition, a special condition, or a character trait, you MUST save it using tools.
- DICTIONARY/GLOSSARY: If the user defines a specific term, create a world item in the 'Glossary' or 'Terminology' class.
- RULES: If the user defines a law of physics or magic, create a world item in the 'World Rules' class.
- DO NOT SUMMARIZE: Do not just say "I'll remember that". Call the create_world_item or update_world_item tool immediately.
- CHARACTER DEPTH: When creating characters, fill in Personality, Appearance, and Dialogue Examples if provided.

INFER GENRE & TONE (IMPORTANT):
- Analyze the user's input. If the content suggests a specific Genre (e.g. Spaceships -> Sci-Fi) or Tone (e.g. Dark, Comedic), and it differs from the current metadata, YOU MUST UPDATE IT using update_story_metadata.
- Do not ask for permission to update metadata if the inference is obvious. Just do it and inform the user.

DATA AWARENESS:
- 'worldClasses' are the types (e.g. Geography, Rules, Glossary). 'worldItems' are the instances.
- 'characterCategories' are classes (e.g. Human). 'characters' are instances.
- 'timeline' is hierarchical: Saga > Arc > Episode.`

const gameMasterPrompt = `You are the "Game Master" (GM) for a text-based roleplay session.
ROLE: Dungeon Master / Storyteller.
Tone: Immersive, Vivid.
- Describe surroundings based on 'worldItems' (Locations, Rules).
- Act as NPCs based on 'characters' (use their 'dialogueExamples' and 'personality').
- If the user tries something impossible according to 'World Rules', describe the failure naturally.`

// recentHistory is how many roleplay messages are replayed to the game master.
const recentHistory = 10

// Client implements the LLMClient interface using OpenAI.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI LLM client.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required (set OPENAI_API_KEY or llm.api_key)")
	}

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Client{
		client: openai.NewClient(cfg.APIKey),
		model:  model,
	}, nil
}

// ArchitectReply runs a full architect round trip: the request carries the
// bible snapshot, the conversation so far, and the tool set. When the model
// answers with tool calls, each is executed through exec in array order and
// the results are sent back for the final natural-language reply.
func (c *Client) ArchitectReply(ctx context.Context, bible *entities.StoryBible, history []entities.ChatMessage, message string, exec ports.ToolExecutor) (string, error) {
	payload, err := entities.Encode(bible)
	if err != nil {
		return "", fmt.Errorf("encoding bible context: %w", err)
	}

	messages := []openai.ChatCompletionMessage{{
		Role: openai.ChatMessageRoleSystem,
		Content: fmt.Sprintf("%s\n\n[CURRENT STORY BIBLE JSON]\n%s\n[END JSON]",
			architectPrompt, payload),
	}}
	for _, h := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    chatRole(h.Role),
			Content: h.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		Tools:       toolDefinitions(),
	})
	if err != nil {
		return "", wrapAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	choice := resp.Choices[0].Message
	if len(choice.ToolCalls) == 0 {
		return replyText(choice.Content), nil
	}

	// Tool round: execute every call, feed the results back, and ask again.
	messages = append(messages, choice)
	for _, call := range choice.ToolCalls {
		result := exec.Execute(call.Function.Name, []byte(call.Function.Arguments))
		messages = append(messages, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			ToolCallID: call.ID,
			Content:    result,
		})
	}

	resp, err = c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		Tools:       toolDefinitions(),
	})
	if err != nil {
		return "", wrapAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	return replyText(resp.Choices[0].Message.Content), nil
}

// GameMasterReply runs a single narration round. Only the most recent
// exchanges are replayed; the bible snapshot carries the long-term state.
func (c *Client) GameMasterReply(ctx context.Context, bible *entities.StoryBible, history []entities.ChatMessage, message string) (string, error) {
	payload, err := entities.Encode(bible)
	if err != nil {
		return "", fmt.Errorf("encoding bible context: %w", err)
	}

	messages := []openai.ChatCompletionMessage{{
		Role: openai.ChatMessageRoleSystem,
		Content: fmt.Sprintf("%s\n\n[WORLD CONTEXT]\n%s\n[END CONTEXT]",
			gameMasterPrompt, payload),
	}}
	if len(history) > recentHistory {
		history = history[len(history)-recentHistory:]
	}
	for _, h := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    chatRole(h.Role),
			Content: h.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.9,
	})
	if err != nil {
		return "", wrapAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	return replyText(resp.Choices[0].Message.Content), nil
}

// chatRole maps a conversation log role onto the OpenAI wire role.
func chatRole(r entities.ChatRole) string {
	if r == entities.RoleModel {
		return openai.ChatMessageRoleAssistant
	}
	return openai.ChatMessageRoleUser
}

func replyText(content string) string {
	if strings.TrimSpace(content) == "" {
		return "No response."
	}
	return content
}

// wrapAPIError marks rate-limit responses so callers can render a distinct
// quota message.
func wrapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ports.ErrRateLimited, err)
	}
	return fmt.Errorf("calling OpenAI: %w", err)
}

// toolDefinitions declares the mutation tools offered to the architect.
func toolDefinitions() []openai.Tool {
	str := func(desc string) jsonschema.Definition {
		return jsonschema.Definition{Type: jsonschema.String, Description: desc}
	}
	fn := func(name, desc string, props map[string]jsonschema.Definition, required ...string) openai.Tool {
		return openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        name,
				Description: desc,
				Parameters: jsonschema.Definition{
					Type:       jsonschema.Object,
					Properties: props,
					Required:   required,
				},
			},
		}
	}

	return []openai.Tool{
		fn(ports.ToolUpdateStoryMetadata,
			"Update the global project metadata (Genre, Tone, Title) based on context.",
			map[string]jsonschema.Definition{
				"genre": str("Inferred genre (e.g. Cyberpunk, Dark Fantasy)"),
				"tone":  str("Inferred tone (e.g. Gritty, Wholesome, Philosophical)"),
				"title": str("Project title if mentioned"),
			}),
		fn(ports.ToolCreateCharacter,
			"Create a new character with detailed profile.",
			map[string]jsonschema.Definition{
				"name":              str("Name"),
				"role":              str("Role"),
				"description":       str("General bio"),
				"personality":       str("Detailed habits, likes/dislikes, internal logic"),
				"appearance":        str("Physical look, clothing, distinct features"),
				"dialogue_examples": str("Sample quotes or speech patterns"),
				"category_name":     str("Class name (e.g. Human)"),
			}, "name", "role", "description"),
		fn(ports.ToolCreateWorldItem,
			"Create a new world item, rule, or glossary term.",
			map[string]jsonschema.Definition{
				"name":        str("Name of the item, rule, or term"),
				"class_name":  str("Class name (e.g. Location, World Rules, Glossary)"),
				"description": str("Detailed definition, mechanics, or lore"),
			}, "name", "class_name", "description"),
		fn(ports.ToolCreateTimelineEvent,
			"Add a timeline event.",
			map[string]jsonschema.Definition{
				"title": str("Title"),
				"type": {
					Type: jsonschema.String,
					Enum: []string{"Saga", "Arc", "Episode"},
				},
				"description":  str("Description"),
				"parent_title": str("Parent event title (optional)"),
			}, "title", "type", "description"),
		fn(ports.ToolUpdateCharacter,
			"Update an existing character found by name.",
			map[string]jsonschema.Definition{
				"target_name":       str("Current name of the character to update"),
				"new_name":          str("New name (optional)"),
				"role":              str("New role (optional)"),
				"description":       str("New description (optional)"),
				"personality":       str("New personality details (optional)"),
				"appearance":        str("New appearance details (optional)"),
				"dialogue_examples": str("New dialogue examples (optional)"),
			}, "target_name"),
		fn(ports.ToolUpdateWorldItem,
			"Update an existing world item found by name.",
			map[string]jsonschema.Definition{
				"target_name": str("Current name of the item"),
				"new_name":    str("New name (optional)"),
				"description": str("New description (optional)"),
			}, "target_name"),
		fn(ports.ToolUpdateTimelineEvent,
			"Update a timeline event found by title.",
			map[string]jsonschema.Definition{
				"target_title": str("Current title"),
				"new_title":    str("New title (optional)"),
				"description":  str("New description (optional)"),
			}, "target_title"),
	}
}
