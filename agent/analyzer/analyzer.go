package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/questline/questline-agent/agent/contract"
	memoryx "github.com/questline/questline-agent/agent/memory"
	parserx "github.com/questline/questline-agent/agent/parsers"
)

// Service classifies one user message into an AnalyzerDecision with a single
// stateless model call. It never dispatches tools itself.
type Service struct {
	runner       compose.Runnable[[]*schema.Message, *schema.Message]
	systemPrompt string
}

var _ contractx.Analyzer = (*Service)(nil)

type analyzerLLMOutput struct {
	ID          string   `json:"id"`
	Phase       string   `json:"phase"`
	Tools       []string `json:"tools,omitempty"`
	Prompt      string   `json:"prompt,omitempty"`
	MemoryDelta string   `json:"memory_delta"`
	Summary     string   `json:"summary"`
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Service, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: analyzer prompt is empty", contractx.ErrConfiguration)
	}

	runner, err := compileMessageGraph(ctx, chatModel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	return &Service{runner: runner, systemPrompt: systemPrompt}, nil
}

func (s *Service) Analyze(ctx context.Context, req contractx.AnalyzeRequest) (contractx.AnalyzerDecision, error) {
	if strings.TrimSpace(req.UserMessage) == "" {
		return contractx.AnalyzerDecision{}, fmt.Errorf("%w: user message is required", contractx.ErrValidation)
	}

	payload := map[string]any{
		"user_message": req.UserMessage,
		"memory":       memoryx.Memory(req.Memory).Render(),
		"tool_catalog": req.CatalogSummary,
	}
	inputBytes, err := json.Marshal(payload)
	if err != nil {
		return contractx.AnalyzerDecision{}, fmt.Errorf("%w: marshal analyzer payload: %v", contractx.ErrValidation, err)
	}

	msg, err := s.runner.Invoke(ctx, []*schema.Message{
		schema.SystemMessage(s.systemPrompt),
		schema.UserMessage(string(inputBytes)),
	})
	if err != nil {
		return contractx.AnalyzerDecision{}, fmt.Errorf("%w: analyzer invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return contractx.AnalyzerDecision{}, fmt.Errorf("%w: empty analyzer response", contractx.ErrMalformedModelOutput)
	}

	out, err := parserx.DecodeStrict[analyzerLLMOutput](msg.Content)
	if err != nil {
		return contractx.AnalyzerDecision{}, err
	}

	decision := contractx.AnalyzerDecision{
		ID:          strings.TrimSpace(out.ID),
		Phase:       contractx.Phase(strings.TrimSpace(out.Phase)),
		Tools:       trimAll(out.Tools),
		Prompt:      strings.TrimSpace(out.Prompt),
		MemoryDelta: strings.TrimSpace(out.MemoryDelta),
		Summary:     strings.TrimSpace(out.Summary),
	}

	if err := validateDecision(decision); err != nil {
		return contractx.AnalyzerDecision{}, err
	}
	return decision, nil
}

// validateDecision enforces the structural invariants of a decision. The
// semantic call (was this really a confirmation?) stays with the model.
func validateDecision(d contractx.AnalyzerDecision) error {
	if !d.Phase.Valid() {
		return fmt.Errorf("%w: unsupported phase %q", contractx.ErrMalformedModelOutput, d.Phase)
	}

	// The delta is the only state that survives the turn. A confirm decision
	// without one leaves a proposal no later confirmation can recover.
	if d.MemoryDelta == "" {
		return fmt.Errorf("%w: phase %s has empty memory_delta", contractx.ErrMalformedModelOutput, d.Phase)
	}

	switch d.Phase {
	case contractx.PhaseExecute:
		if d.Prompt == "" {
			return fmt.Errorf("%w: execute decision has empty prompt", contractx.ErrMalformedModelOutput)
		}
	default:
		if len(d.Tools) > 0 {
			return fmt.Errorf("%w: phase %s must not select tools", contractx.ErrMalformedModelOutput, d.Phase)
		}
		if d.Prompt != "" {
			return fmt.Errorf("%w: phase %s must not carry a prompt", contractx.ErrMalformedModelOutput, d.Phase)
		}
		if d.Summary == "" {
			return fmt.Errorf("%w: phase %s requires a summary", contractx.ErrMalformedModelOutput, d.Phase)
		}
	}
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
