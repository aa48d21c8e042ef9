package pipelinenode

import (
	"context"
	"fmt"

	contractx "github.com/questline/questline-agent/agent/contract"
	logx "github.com/questline/questline-agent/pkg/logger"
)

// PublishTurn forwards the persisted assistant turn. Publish failures are
// logged and swallowed so a flaky webhook cannot fail the whole turn.
func PublishTurn(ctx context.Context, in *GraphState, publisher contractx.TurnPublisher) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Turn == nil {
		return nil, fmt.Errorf("%w: assistant turn is missing", contractx.ErrValidation)
	}

	if err := publisher.Publish(ctx, in.Turn); err != nil {
		logx.Warn().Err(err).Str("conversation_id", in.ConversationID).Msg("publish assistant turn failed")
	}
	return in, nil
}
