package pipelinenode

import (
	"context"
	"fmt"

	contractx "github.com/questline/questline-agent/agent/contract"
)

// RunExecutor hands an execute-phase decision to the tool loop and captures
// its terminal message and memory delta.
func RunExecutor(ctx context.Context, in *GraphState, executor contractx.Executor) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Decision.Phase != contractx.PhaseExecute {
		return nil, fmt.Errorf("%w: executor invoked for phase %q", contractx.ErrValidation, in.Decision.Phase)
	}

	result, err := executor.Execute(ctx, contractx.ExecuteRequest{
		Prompt: in.Decision.Prompt,
		Tools:  in.Decision.Tools,
		Memory: in.Memory,
		Actor:  in.Actor,
	})
	if err != nil {
		return nil, err
	}

	in.Result = result
	in.Reply = result.Message
	in.MemoryDelta = result.MemoryDelta
	return in, nil
}
