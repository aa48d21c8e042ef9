package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	catalogx "github.com/questline/questline-agent/agent/catalog"
	contractx "github.com/questline/questline-agent/agent/contract"
	logx "github.com/questline/questline-agent/pkg/logger"
)

// Handler is one statically registered tool implementation. It receives the
// already-validated argument object and reads fields by name.
type Handler func(ctx context.Context, actor string, args map[string]any) (any, error)

// Dispatcher maps tool names to handlers. The mapping is cross-checked
// against the contract catalog at construction, so a contract without a
// handler (or a handler without a contract) fails at startup instead of
// surfacing mid-conversation.
type Dispatcher struct {
	catalog  *catalogx.Catalog
	handlers map[string]Handler
}

var _ contractx.Dispatcher = (*Dispatcher)(nil)

func New(cat *catalogx.Catalog, handlers map[string]Handler) (*Dispatcher, error) {
	if cat == nil {
		return nil, errors.New("catalog is required")
	}

	for _, name := range cat.Names() {
		if handlers[name] == nil {
			return nil, fmt.Errorf("%w: contract %q has no registered handler", contractx.ErrDispatch, name)
		}
	}
	for name := range handlers {
		if _, ok := cat.Lookup(name); !ok {
			return nil, fmt.Errorf("%w: handler %q has no contract in the catalog", contractx.ErrDispatch, name)
		}
	}

	return &Dispatcher{
		catalog:  cat,
		handlers: handlers,
	}, nil
}

// Dispatch resolves toolName and invokes its handler with arguments decoded
// from the model's function-call payload. Unknown names are a config defect
// and propagate; argument and service failures are tool-execution errors the
// executor feeds back to the model.
func (d *Dispatcher) Dispatch(ctx context.Context, toolName string, rawArguments string, actor string) (any, error) {
	tc, ok := d.catalog.Lookup(strings.TrimSpace(toolName))
	if !ok {
		return nil, fmt.Errorf("%w: unknown tool %q", contractx.ErrDispatch, toolName)
	}

	handler := d.handlers[tc.Name]
	if handler == nil {
		return nil, fmt.Errorf("%w: no handler for tool %q", contractx.ErrDispatch, tc.Name)
	}

	args := map[string]any{}
	if trimmed := strings.TrimSpace(rawArguments); trimmed != "" {
		if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
			return nil, fmt.Errorf("%w: invalid arguments for tool=%s: %v", contractx.ErrToolExecution, tc.Name, err)
		}
	}

	if err := tc.Parameters.Validate(args); err != nil {
		return nil, fmt.Errorf("%w: arguments for tool=%s rejected: %v", contractx.ErrToolExecution, tc.Name, err)
	}

	logx.Debug().Str("tool", tc.Name).Str("actor", actor).Msg("dispatching tool call")

	out, err := handler(ctx, actor, args)
	if err != nil {
		if errors.Is(err, contractx.ErrDispatch) || errors.Is(err, contractx.ErrToolExecution) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: tool=%s: %v", contractx.ErrToolExecution, tc.Name, err)
	}
	return out, nil
}
