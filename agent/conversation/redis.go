package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	contractx "github.com/questline/questline-agent/agent/contract"
	"github.com/redis/go-redis/v9"
)

const defaultRedisTTL = 30 * 24 * time.Hour

// RedisStore keeps each conversation as a list of JSON-encoded turns.
// TTL is refreshed on every append so active conversations never expire.
type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

var _ contractx.ConversationStore = (*RedisStore)(nil)

func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultRedisTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) key(conversationID string) string {
	return fmt.Sprintf("conversation:%s:turns", conversationID)
}

func (s *RedisStore) Append(ctx context.Context, turn *contractx.ConversationTurn) error {
	if err := validateTurn(turn); err != nil {
		return err
	}

	encoded, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}

	key := s.key(turn.ConversationID)
	if err := s.rdb.RPush(ctx, key, encoded).Err(); err != nil {
		return fmt.Errorf("push turn: %w", err)
	}
	if err := s.rdb.Expire(ctx, key, s.ttl).Err(); err != nil {
		return fmt.Errorf("refresh ttl: %w", err)
	}
	return nil
}

func (s *RedisStore) ListTurns(ctx context.Context, conversationID string) ([]*contractx.ConversationTurn, error) {
	rows, err := s.rdb.LRange(ctx, s.key(conversationID), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*contractx.ConversationTurn{}, nil
		}
		return nil, fmt.Errorf("load turns: %w", err)
	}

	out := make([]*contractx.ConversationTurn, 0, len(rows))
	for i, row := range rows {
		var turn contractx.ConversationTurn
		if err := json.Unmarshal([]byte(row), &turn); err != nil {
			return nil, fmt.Errorf("unmarshal turn at index %d: %w", i, err)
		}
		out = append(out, &turn)
	}
	return out, nil
}

func (s *RedisStore) ListMemories(ctx context.Context, conversationID string, role contractx.Role) ([]string, error) {
	turns, err := s.ListTurns(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return memoriesOf(turns, role), nil
}

func (s *RedisStore) DeleteConversation(ctx context.Context, conversationID string) error {
	if err := s.rdb.Del(ctx, s.key(conversationID)).Err(); err != nil {
		return fmt.Errorf("delete turns: %w", err)
	}
	return nil
}
