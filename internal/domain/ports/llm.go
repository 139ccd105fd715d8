package ports

import (
	"context"

	"github.com/canaworld/cana/internal/domain/entities"
)

// Tool names exposed to the agent. The set is fixed; unknown names yield an
// error string, never a mutation.
const (
	ToolUpdateStoryMetadata = "update_story_metadata"
	ToolCreateCharacter     = "create_character"
	ToolCreateWorldItem     = "create_world_item"
	ToolCreateTimelineEvent = "create_timeline_event"
	ToolUpdateCharacter     = "update_character"
	ToolUpdateWorldItem     = "update_world_item"
	ToolUpdateTimelineEvent = "update_timeline_event"
)

// ToolNames lists every exposed tool, in declaration order.
func ToolNames() []string {
	return []string{
		ToolUpdateStoryMetadata,
		ToolCreateCharacter,
		ToolCreateWorldItem,
		ToolCreateTimelineEvent,
		ToolUpdateCharacter,
		ToolUpdateWorldItem,
		ToolUpdateTimelineEvent,
	}
}

// ToolExecutor executes one named tool call issued by the agent and returns
// a short human-readable result string that is fed back to it. Implemented
// by the tool bridge; the transport dispatches every call of a response
// through it in array order before asking for the final reply.
type ToolExecutor interface {
	Execute(name string, rawArgs []byte) string
}

// LLMClient is the conversational transport. Both methods block for the full
// round trip (including any tool execution for the architect) and return the
// agent's final natural-language reply.
type LLMClient interface {
	// ArchitectReply sends the world-builder conversation. The bible
	// snapshot is embedded as context; tool calls returned by the model
	// are executed through exec before the final reply is produced.
	ArchitectReply(ctx context.Context, bible *entities.StoryBible, history []entities.ChatMessage, message string, exec ToolExecutor) (string, error)

	// GameMasterReply sends the roleplay conversation. No tools.
	GameMasterReply(ctx context.Context, bible *entities.StoryBible, history []entities.ChatMessage, message string) (string, error)
}
