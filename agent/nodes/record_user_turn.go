package pipelinenode

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	contractx "github.com/questline/questline-agent/agent/contract"
)

// RecordUserTurn appends the inbound message before any model work so the
// transcript keeps the user side even when a later step fails.
func RecordUserTurn(ctx context.Context, in *GraphState, store contractx.ConversationStore) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	turn := &contractx.ConversationTurn{
		ID:             uuid.NewString(),
		ConversationID: in.ConversationID,
		Role:           contractx.RoleUser,
		Content:        in.Text,
		CreatedAt:      in.Now,
	}
	if err := store.Append(ctx, turn); err != nil {
		return nil, fmt.Errorf("record user turn: %w", err)
	}
	return in, nil
}
