package pipelinenode

import (
	"context"
	"fmt"

	contractx "github.com/questline/questline-agent/agent/contract"
)

// Analyze runs the classify step. The decision it stores drives the branch
// between the tool loop and a direct reply.
func Analyze(ctx context.Context, in *GraphState, analyzer contractx.Analyzer, catalogSummary string) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	decision, err := analyzer.Analyze(ctx, contractx.AnalyzeRequest{
		UserMessage:    in.Text,
		Memory:         in.Memory,
		CatalogSummary: catalogSummary,
	})
	if err != nil {
		return nil, err
	}
	in.Decision = decision
	return in, nil
}
