package conversation

import (
	"context"
	"sync"

	contractx "github.com/questline/questline-agent/agent/contract"
)

// InMemoryStore keeps turns in process memory. Used by tests and as the
// default store when no persistence backend is configured.
type InMemoryStore struct {
	mu    sync.RWMutex
	turns map[string][]*contractx.ConversationTurn
}

var _ contractx.ConversationStore = (*InMemoryStore)(nil)

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		turns: make(map[string][]*contractx.ConversationTurn),
	}
}

func (s *InMemoryStore) Append(ctx context.Context, turn *contractx.ConversationTurn) error {
	if err := validateTurn(turn); err != nil {
		return err
	}

	copied := *turn
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[turn.ConversationID] = append(s.turns[turn.ConversationID], &copied)
	return nil
}

func (s *InMemoryStore) ListTurns(ctx context.Context, conversationID string) ([]*contractx.ConversationTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.turns[conversationID]
	out := make([]*contractx.ConversationTurn, 0, len(stored))
	for _, turn := range stored {
		copied := *turn
		out = append(out, &copied)
	}
	return out, nil
}

func (s *InMemoryStore) ListMemories(ctx context.Context, conversationID string, role contractx.Role) ([]string, error) {
	turns, err := s.ListTurns(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return memoriesOf(turns, role), nil
}

func (s *InMemoryStore) DeleteConversation(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turns, conversationID)
	return nil
}
