package conversation

import (
	"errors"
	"strings"

	contractx "github.com/questline/questline-agent/agent/contract"
)

var (
	ErrNilTurn               = errors.New("conversation turn is nil")
	ErrInvalidConversationID = errors.New("conversation id is empty")
)

func validateTurn(turn *contractx.ConversationTurn) error {
	if turn == nil {
		return ErrNilTurn
	}
	if strings.TrimSpace(turn.ConversationID) == "" {
		return ErrInvalidConversationID
	}
	return nil
}

func memoriesOf(turns []*contractx.ConversationTurn, role contractx.Role) []string {
	out := make([]string, 0, len(turns))
	for _, turn := range turns {
		if turn.Role != role {
			continue
		}
		if memory := strings.TrimSpace(turn.Memory); memory != "" {
			out = append(out, memory)
		}
	}
	return out
}
