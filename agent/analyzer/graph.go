package analyzer

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// compileMessageGraph builds the single-model graph the analyzer invokes.
// Messages are assembled by the caller: the system prompt documents literal
// JSON shapes, so no template formatting may touch it. The raw message comes
// back unparsed so malformed output can be classified separately from a
// failed model call.
func compileMessageGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
) (compose.Runnable[[]*schema.Message, *schema.Message], error) {
	graph := compose.NewGraph[[]*schema.Message, *schema.Message]()
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add analyzer model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "model"); err != nil {
		return nil, fmt.Errorf("add analyzer edge start->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add analyzer edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("analyzer.model_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile analyzer graph: %w", err)
	}
	return runner, nil
}
