package pipelinenode

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/questline/questline-agent/agent/contract"
	memoryx "github.com/questline/questline-agent/agent/memory"
)

var (
	ErrInvalidMessage      = errors.New("message is empty")
	ErrInvalidConversation = errors.New("conversation id is empty")
)

type GraphInput struct {
	ConversationID string
	Actor          string
	Text           string
}

type GraphOutput struct {
	Reply  string
	Memory []string
}

type GraphState struct {
	ConversationID string
	Actor          string
	Text           string
	Now            time.Time

	Memory   memoryx.Memory
	Decision contractx.AnalyzerDecision
	Result   contractx.ExecutorResult

	Reply       string
	MemoryDelta string
	Turn        *contractx.ConversationTurn
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	conversationID := strings.TrimSpace(in.ConversationID)
	if conversationID == "" {
		return nil, ErrInvalidConversation
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		ConversationID: conversationID,
		Actor:          strings.TrimSpace(in.Actor),
		Text:           text,
		Now:            nowFn().UTC(),
	}, nil
}
