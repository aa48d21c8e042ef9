package contract

import "context"

type Analyzer interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzerDecision, error)
}

type Executor interface {
	Execute(ctx context.Context, req ExecuteRequest) (ExecutorResult, error)
}

// Dispatcher resolves a tool name to a live domain-service method and invokes
// it with arguments extracted from the model's function-call payload.
type Dispatcher interface {
	Dispatch(ctx context.Context, toolName string, rawArguments string, actor string) (any, error)
}

// ConversationStore persists turns and exposes the memory snapshots needed to
// seed the analyzer on the next turn.
type ConversationStore interface {
	Append(ctx context.Context, turn *ConversationTurn) error
	ListTurns(ctx context.Context, conversationID string) ([]*ConversationTurn, error)
	ListMemories(ctx context.Context, conversationID string, role Role) ([]string, error)
	DeleteConversation(ctx context.Context, conversationID string) error
}

// TurnPublisher forwards persisted assistant turns to downstream consumers.
type TurnPublisher interface {
	Publish(ctx context.Context, turn *ConversationTurn) error
}
