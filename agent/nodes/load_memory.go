package pipelinenode

import (
	"context"
	"fmt"

	contractx "github.com/questline/questline-agent/agent/contract"
	memoryx "github.com/questline/questline-agent/agent/memory"
)

// LoadMemory seeds the state with the memory entries recorded by prior
// assistant turns. First turn of a conversation yields an empty slice.
func LoadMemory(ctx context.Context, in *GraphState, store contractx.ConversationStore) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	memory, err := store.ListMemories(ctx, in.ConversationID, contractx.RoleAssistant)
	if err != nil {
		return nil, fmt.Errorf("load conversation memory: %w", err)
	}
	in.Memory = memoryx.Memory(memory)
	return in, nil
}
