package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/questline/questline-agent/agent/contract"
	nodex "github.com/questline/questline-agent/agent/nodes"
)

var (
	ErrInvalidMessage      = nodex.ErrInvalidMessage
	ErrInvalidConversation = nodex.ErrInvalidConversation
)

// AnswerInput is one inbound user message addressed to a conversation.
type AnswerInput struct {
	ConversationID string
	Actor          string
	Text           string
}

// AnswerOutput is the reply plus the memory state after this turn.
type AnswerOutput struct {
	Reply  string
	Memory []string
}

// Service runs the full turn pipeline: classify the message, either run the
// tool loop or reply directly, then persist and publish the assistant turn.
type Service struct {
	store     contractx.ConversationStore
	analyzer  contractx.Analyzer
	executor  contractx.Executor
	publisher contractx.TurnPublisher

	catalogSummary string

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

func New(
	store contractx.ConversationStore,
	analyzer contractx.Analyzer,
	executor contractx.Executor,
	publisher contractx.TurnPublisher,
	catalogSummary string,
) (*Service, error) {
	if store == nil {
		return nil, errors.New("conversation store is required")
	}
	if analyzer == nil {
		return nil, errors.New("analyzer is required")
	}
	if executor == nil {
		return nil, errors.New("executor is required")
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}

	s := &Service{
		store:          store,
		analyzer:       analyzer,
		executor:       executor,
		publisher:      publisher,
		catalogSummary: catalogSummary,
		now:            time.Now,
	}

	graphRunner, err := s.compileAnswerGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

func (s *Service) Answer(ctx context.Context, in AnswerInput) (AnswerOutput, error) {
	out, err := s.graphRunner.Invoke(ctx, nodex.GraphInput{
		ConversationID: in.ConversationID,
		Actor:          in.Actor,
		Text:           in.Text,
	})
	if err != nil {
		return AnswerOutput{}, err
	}
	return AnswerOutput{Reply: out.Reply, Memory: out.Memory}, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, *contractx.ConversationTurn) error {
	return nil
}
