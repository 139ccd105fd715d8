package mocks

import (
	"context"

	"github.com/canaworld/cana/internal/domain/entities"
	"github.com/canaworld/cana/internal/domain/ports"
)

// ToolCall is one scripted tool invocation the mock transport issues before
// replying.
type ToolCall struct {
	Name string
	Args string
}

// LLMClient is a mock implementation of ports.LLMClient. It executes any
// scripted tool calls against the supplied executor, records their results,
// and returns the configured reply.
type LLMClient struct {
	Reply     string
	ReplyErr  error
	ToolCalls []ToolCall

	// Captured on each call.
	LastMessage string
	LastHistory []entities.ChatMessage
	Results     []string
	Calls       int
}

// ArchitectReply runs the scripted tool calls and returns the reply.
func (m *LLMClient) ArchitectReply(_ context.Context, _ *entities.StoryBible, history []entities.ChatMessage, message string, exec ports.ToolExecutor) (string, error) {
	m.Calls++
	m.LastMessage = message
	m.LastHistory = history
	if m.ReplyErr != nil {
		return "", m.ReplyErr
	}
	for _, call := range m.ToolCalls {
		m.Results = append(m.Results, exec.Execute(call.Name, []byte(call.Args)))
	}
	return m.Reply, nil
}

// GameMasterReply returns the configured reply.
func (m *LLMClient) GameMasterReply(_ context.Context, _ *entities.StoryBible, history []entities.ChatMessage, message string) (string, error) {
	m.Calls++
	m.LastMessage = message
	m.LastHistory = history
	if m.ReplyErr != nil {
		return "", m.ReplyErr
	}
	return m.Reply, nil
}
