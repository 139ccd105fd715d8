package handlers

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/canaworld/cana/internal/domain/entities"
	"github.com/canaworld/cana/internal/domain/ports"
	"github.com/canaworld/cana/internal/domain/services"
)

// ErrBusy is returned when a reply is requested on a chat surface that is
// still waiting on a previous reply.
var ErrBusy = errors.New("a reply is already in progress")

// ChatHandler drives the two conversation surfaces. Each surface carries its
// own busy flag so a slow architect round trip never blocks the roleplay
// session, and vice versa.
//
// Transport failures are rendered as model messages rather than surfaced as
// errors: the conversation log keeps its user/model alternation and the
// failure stays visible in the history.
type ChatHandler struct {
	bible *BibleHandler
	llm   ports.LLMClient
	log   *zap.Logger

	mu            sync.Mutex
	architectBusy bool
	roleplayBusy  bool
}

// NewChatHandler creates a chat handler over the bible handler and transport.
func NewChatHandler(bible *BibleHandler, llm ports.LLMClient, log *zap.Logger) *ChatHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChatHandler{bible: bible, llm: llm, log: log}
}

// SendArchitect runs one architect exchange: the user message is appended to
// the log, the transport is asked for a reply with the tool bridge attached,
// and the reply is appended as a model message. The returned action string is
// a short notice describing the last mutation the agent performed through the
// tools, or empty when the reply made no changes.
func (h *ChatHandler) SendArchitect(ctx context.Context, message string) (reply, action string, err error) {
	if err := h.acquire(&h.architectBusy); err != nil {
		return "", "", err
	}
	defer h.release(&h.architectBusy)

	snapshot := h.bible.Current()
	history := snapshot.ArchitectHistory

	if err := h.bible.Mutate(ctx, func(cur *entities.StoryBible) *entities.StoryBible {
		return services.AppendArchitectMessage(cur, newMessage(entities.RoleUser, message))
	}); err != nil {
		return "", "", err
	}

	bridge := NewToolBridge(h.bible)
	reply, llmErr := h.llm.ArchitectReply(ctx, snapshot, history, message, bridge)
	if llmErr != nil {
		h.log.Warn("architect reply failed", zap.Error(llmErr))
		reply = architectErrorMessage(llmErr)
	}

	if err := h.bible.Mutate(ctx, func(cur *entities.StoryBible) *entities.StoryBible {
		return services.AppendArchitectMessage(cur, newMessage(entities.RoleModel, reply))
	}); err != nil {
		return "", "", err
	}
	return reply, bridge.LastAction(), nil
}

// SendRoleplay runs one game-master exchange. No tools are attached; the
// agent narrates against the current bible but cannot mutate it.
func (h *ChatHandler) SendRoleplay(ctx context.Context, message string) (string, error) {
	if err := h.acquire(&h.roleplayBusy); err != nil {
		return "", err
	}
	defer h.release(&h.roleplayBusy)

	snapshot := h.bible.Current()
	history := snapshot.RoleplayHistory

	if err := h.bible.Mutate(ctx, func(cur *entities.StoryBible) *entities.StoryBible {
		return services.AppendRoleplayMessage(cur, newMessage(entities.RoleUser, message))
	}); err != nil {
		return "", err
	}

	reply, llmErr := h.llm.GameMasterReply(ctx, snapshot, history, message)
	if llmErr != nil {
		h.log.Warn("game master reply failed", zap.Error(llmErr))
		reply = gameMasterErrorMessage(llmErr)
	}

	if err := h.bible.Mutate(ctx, func(cur *entities.StoryBible) *entities.StoryBible {
		return services.AppendRoleplayMessage(cur, newMessage(entities.RoleModel, reply))
	}); err != nil {
		return "", err
	}
	return reply, nil
}

// ClearArchitect empties the architect conversation log.
func (h *ChatHandler) ClearArchitect(ctx context.Context) error {
	return h.bible.Mutate(ctx, func(cur *entities.StoryBible) *entities.StoryBible {
		return services.ClearArchitectHistory(cur)
	})
}

// ClearRoleplay empties the roleplay conversation log.
func (h *ChatHandler) ClearRoleplay(ctx context.Context) error {
	return h.bible.Mutate(ctx, func(cur *entities.StoryBible) *entities.StoryBible {
		return services.ClearRoleplayHistory(cur)
	})
}

func (h *ChatHandler) acquire(flag *bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if *flag {
		return ErrBusy
	}
	*flag = true
	return nil
}

func (h *ChatHandler) release(flag *bool) {
	h.mu.Lock()
	*flag = false
	h.mu.Unlock()
}

func newMessage(role entities.ChatRole, content string) entities.ChatMessage {
	return entities.ChatMessage{
		ID:        entities.NewID(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
	}
}

func architectErrorMessage(err error) string {
	if errors.Is(err, ports.ErrRateLimited) {
		return "Error 429: Quota Exceeded. Please check your API key or wait before trying again."
	}
	return "System Error: " + err.Error()
}

func gameMasterErrorMessage(err error) string {
	if errors.Is(err, ports.ErrRateLimited) {
		return "Error 429: Quota Exceeded. Please check your API key settings."
	}
	return "GM Error: " + err.Error()
}
