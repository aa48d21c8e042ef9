package pipelinenode

import (
	"fmt"

	contractx "github.com/questline/questline-agent/agent/contract"
)

// AssembleDecision turns a confirm or cancelled decision into the reply
// without touching any tool. The summary is the user-facing text.
func AssembleDecision(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Decision.Phase == contractx.PhaseExecute {
		return nil, fmt.Errorf("%w: execute phase must go through the tool loop", contractx.ErrValidation)
	}

	in.Reply = in.Decision.Summary
	in.MemoryDelta = in.Decision.MemoryDelta
	return in, nil
}
