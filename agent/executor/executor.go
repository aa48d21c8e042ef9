package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	catalogx "github.com/questline/questline-agent/agent/catalog"
	contractx "github.com/questline/questline-agent/agent/contract"
	memoryx "github.com/questline/questline-agent/agent/memory"
	parserx "github.com/questline/questline-agent/agent/parsers"
	logx "github.com/questline/questline-agent/pkg/logger"
)

// DefaultMaxToolRounds bounds the tool loop. A safety valve against runaway
// recursion, nothing more; configurable per service.
const DefaultMaxToolRounds = 3

const stopAndReportInstruction = "A tool call failed; its result above starts with \"error:\". " +
	"Stop working on the task. Reply with the final JSON object explaining the failure to the user."

// Service runs a decided task through the bounded tool loop: call the model
// with the decision's tool subset enabled, dispatch every requested call,
// feed the results back, repeat until the model stops requesting calls or
// the round bound is hit.
type Service struct {
	model        einomodel.ToolCallingChatModel
	catalog      *catalogx.Catalog
	dispatcher   contractx.Dispatcher
	systemPrompt string
	maxRounds    int
}

var _ contractx.Executor = (*Service)(nil)

type executorLLMOutput struct {
	ID          string `json:"id"`
	MemoryDelta string `json:"memory_delta"`
	Message     string `json:"message"`
}

func New(
	chatModel einomodel.ToolCallingChatModel,
	cat *catalogx.Catalog,
	dispatcher contractx.Dispatcher,
	systemPrompt string,
	maxRounds int,
) (*Service, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: executor prompt is empty", contractx.ErrConfiguration)
	}
	if maxRounds <= 0 {
		maxRounds = DefaultMaxToolRounds
	}

	return &Service{
		model:        chatModel,
		catalog:      cat,
		dispatcher:   dispatcher,
		systemPrompt: systemPrompt,
		maxRounds:    maxRounds,
	}, nil
}

func (s *Service) Execute(ctx context.Context, req contractx.ExecuteRequest) (contractx.ExecutorResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return contractx.ExecutorResult{}, fmt.Errorf("%w: task prompt is required", contractx.ErrValidation)
	}

	chatModel := s.model
	if len(req.Tools) > 0 {
		infos, err := s.catalog.ToolInfos(req.Tools)
		if err != nil {
			return contractx.ExecutorResult{}, err
		}
		chatModel, err = s.model.WithTools(infos)
		if err != nil {
			return contractx.ExecutorResult{}, fmt.Errorf("%w: bind tools: %v", contractx.ErrModelInvoke, err)
		}
	}

	payload := map[string]any{
		"task":   req.Prompt,
		"actor":  req.Actor,
		"memory": memoryx.Memory(req.Memory).Render(),
	}
	inputBytes, err := json.Marshal(payload)
	if err != nil {
		return contractx.ExecutorResult{}, fmt.Errorf("%w: marshal executor payload: %v", contractx.ErrValidation, err)
	}

	messages := []*schema.Message{
		schema.SystemMessage(s.systemPrompt),
		schema.UserMessage(string(inputBytes)),
	}

	for round := 1; round <= s.maxRounds; round++ {
		msg, err := chatModel.Generate(ctx, messages)
		if err != nil {
			return contractx.ExecutorResult{}, fmt.Errorf("%w: executor invoke: %v", contractx.ErrModelInvoke, err)
		}
		if msg == nil {
			return contractx.ExecutorResult{}, fmt.Errorf("%w: empty executor response", contractx.ErrMalformedModelOutput)
		}

		if len(msg.ToolCalls) == 0 {
			return parseTerminal(msg.Content)
		}

		messages = append(messages, msg)

		anyFailed := false
		for _, call := range msg.ToolCalls {
			tcr := contractx.ToolCallRequest{
				CallID:       call.ID,
				ToolName:     strings.TrimSpace(call.Function.Name),
				RawArguments: call.Function.Arguments,
			}
			if tcr.ToolName == "" {
				return contractx.ExecutorResult{}, fmt.Errorf("%w: tool call without a name", contractx.ErrMalformedModelOutput)
			}

			result, failed, err := s.runToolCall(ctx, tcr, req.Actor)
			if err != nil {
				return contractx.ExecutorResult{}, err
			}
			anyFailed = anyFailed || failed

			messages = append(messages, schema.ToolMessage(result.OutputText, result.CallID))
		}

		if anyFailed {
			// Amend the running instruction so the model reports the failure
			// instead of blindly retrying the same call.
			messages = append(messages, schema.UserMessage(stopAndReportInstruction))
		}

		if round == s.maxRounds {
			// Round bound reached with calls still being requested: stop and
			// return whatever final text accompanied them, possibly empty.
			logx.Warn().Int("rounds", round).Msg("executor hit tool round bound")
			return contractx.ExecutorResult{Message: strings.TrimSpace(msg.Content)}, nil
		}
	}

	return contractx.ExecutorResult{}, fmt.Errorf("%w: executor loop exited without a result", contractx.ErrMalformedModelOutput)
}

// runToolCall dispatches one requested call. Tool-execution failures are
// recoverable: they become the call's output text so the model can react.
// Dispatch failures (unknown tool) are config defects and abort the turn.
func (s *Service) runToolCall(ctx context.Context, tcr contractx.ToolCallRequest, actor string) (result contractx.ToolCallResult, failed bool, err error) {
	result.CallID = tcr.CallID

	out, dispatchErr := s.dispatcher.Dispatch(ctx, tcr.ToolName, tcr.RawArguments, actor)
	if dispatchErr != nil {
		if !errors.Is(dispatchErr, contractx.ErrToolExecution) {
			return contractx.ToolCallResult{}, false, dispatchErr
		}
		logx.Warn().Str("tool", tcr.ToolName).Err(dispatchErr).Msg("tool call failed, feeding error back")
		result.OutputText = "error: " + dispatchErr.Error()
		return result, true, nil
	}

	encoded, marshalErr := json.Marshal(out)
	if marshalErr != nil {
		return contractx.ToolCallResult{}, false, fmt.Errorf("%w: serialize result of tool=%s: %v", contractx.ErrToolExecution, tcr.ToolName, marshalErr)
	}
	result.OutputText = string(encoded)
	return result, false, nil
}

func parseTerminal(content string) (contractx.ExecutorResult, error) {
	out, err := parserx.DecodeStrict[executorLLMOutput](content)
	if err != nil {
		return contractx.ExecutorResult{}, err
	}

	message := strings.TrimSpace(out.Message)
	if message == "" {
		return contractx.ExecutorResult{}, fmt.Errorf("%w: executor message is empty", contractx.ErrMalformedModelOutput)
	}

	// A terminal result must record what happened; only the round-bound exit
	// is allowed to come back without a delta.
	memoryDelta := strings.TrimSpace(out.MemoryDelta)
	if memoryDelta == "" {
		return contractx.ExecutorResult{}, fmt.Errorf("%w: executor memory_delta is empty", contractx.ErrMalformedModelOutput)
	}

	return contractx.ExecutorResult{
		ID:          strings.TrimSpace(out.ID),
		MemoryDelta: memoryDelta,
		Message:     message,
	}, nil
}
