package pipelinenode

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	contractx "github.com/questline/questline-agent/agent/contract"
)

// PersistTurn appends the assistant turn. Its Memory field carries the
// turn's memory delta and is what LoadMemory replays next time.
func PersistTurn(ctx context.Context, in *GraphState, store contractx.ConversationStore) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	if strings.TrimSpace(in.Reply) == "" {
		// The tool round bound can leave no final text. Store a notice
		// rather than an empty assistant turn.
		in.Reply = "Je n'ai pas pu terminer cette action. Peux-tu reformuler la demande ?"
	}

	turn := &contractx.ConversationTurn{
		ID:             uuid.NewString(),
		ConversationID: in.ConversationID,
		Role:           contractx.RoleAssistant,
		Content:        in.Reply,
		Memory:         strings.TrimSpace(in.MemoryDelta),
		CreatedAt:      in.Now,
	}
	if err := store.Append(ctx, turn); err != nil {
		return nil, fmt.Errorf("persist assistant turn: %w", err)
	}

	in.Turn = turn
	if turn.Memory != "" {
		in.Memory = in.Memory.Append(turn.Memory)
	}
	return in, nil
}
