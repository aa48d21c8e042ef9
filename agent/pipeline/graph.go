package pipeline

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/questline/questline-agent/agent/contract"
	nodex "github.com/questline/questline-agent/agent/nodes"
)

func (s *Service) compileAnswerGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in, s.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("load_memory",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.LoadMemory(ctx, in, s.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_memory: %w", err)
	}

	if err := graph.AddLambdaNode("record_user_turn",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RecordUserTurn(ctx, in, s.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node record_user_turn: %w", err)
	}

	if err := graph.AddLambdaNode("analyze",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.Analyze(ctx, in, s.analyzer, s.catalogSummary)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node analyze: %w", err)
	}

	if err := graph.AddLambdaNode("run_executor",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RunExecutor(ctx, in, s.executor)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node run_executor: %w", err)
	}

	if err := graph.AddLambdaNode("assemble_decision",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.AssembleDecision(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node assemble_decision: %w", err)
	}

	if err := graph.AddLambdaNode("persist_turn",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.PersistTurn(ctx, in, s.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node persist_turn: %w", err)
	}

	if err := graph.AddLambdaNode("publish_turn",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.PublishTurn(ctx, in, s.publisher)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node publish_turn: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			if in == nil {
				return "", fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
			}
			if in.Decision.Phase == contractx.PhaseExecute {
				return "run_executor", nil
			}
			return "assemble_decision", nil
		},
		map[string]bool{
			"run_executor":      true,
			"assemble_decision": true,
		},
	)

	if err := graph.AddBranch("analyze", branch); err != nil {
		return nil, fmt.Errorf("add phase branch: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "load_memory"},
		{"load_memory", "record_user_turn"},
		{"record_user_turn", "analyze"},
		{"run_executor", "persist_turn"},
		{"assemble_decision", "persist_turn"},
		{"persist_turn", "publish_turn"},
		{"publish_turn", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("pipeline.answer"))
	if err != nil {
		return nil, fmt.Errorf("compile answer graph: %w", err)
	}
	return runner, nil
}
