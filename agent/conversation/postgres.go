package conversation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	contractx "github.com/questline/questline-agent/agent/contract"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type PostgresConfig struct {
	DSN string `envconfig:"DSN" split_words:"true" required:"true"`
}

func NewPostgresDB(cfg PostgresConfig) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	return bun.NewDB(sqldb, pgdialect.New())
}

type turnRow struct {
	bun.BaseModel `bun:"table:conversation_turns,alias:ct"`

	ID             string    `bun:"id,pk"`
	ConversationID string    `bun:"conversation_id,notnull"`
	Role           string    `bun:"role,notnull"`
	Content        string    `bun:"content,notnull"`
	Memory         string    `bun:"memory"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
}

// PostgresStore persists turns in a relational table. Rows are insert-only;
// DeleteConversation is the single hard-remove path.
type PostgresStore struct {
	db *bun.DB
}

var _ contractx.ConversationStore = (*PostgresStore)(nil)

func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the turns table when missing. Called once at startup.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*turnRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create conversation_turns table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, turn *contractx.ConversationTurn) error {
	if err := validateTurn(turn); err != nil {
		return err
	}

	row := &turnRow{
		ID:             turn.ID,
		ConversationID: turn.ConversationID,
		Role:           string(turn.Role),
		Content:        turn.Content,
		Memory:         turn.Memory,
		CreatedAt:      turn.CreatedAt.UTC(),
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert conversation turn: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListTurns(ctx context.Context, conversationID string) ([]*contractx.ConversationTurn, error) {
	var rows []turnRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("ct.conversation_id = ?", conversationID).
		Order("ct.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select conversation turns: %w", err)
	}

	out := make([]*contractx.ConversationTurn, 0, len(rows))
	for _, row := range rows {
		out = append(out, &contractx.ConversationTurn{
			ID:             row.ID,
			ConversationID: row.ConversationID,
			Role:           contractx.Role(row.Role),
			Content:        row.Content,
			Memory:         row.Memory,
			CreatedAt:      row.CreatedAt,
		})
	}
	return out, nil
}

func (s *PostgresStore) ListMemories(ctx context.Context, conversationID string, role contractx.Role) ([]string, error) {
	turns, err := s.ListTurns(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return memoriesOf(turns, role), nil
}

func (s *PostgresStore) DeleteConversation(ctx context.Context, conversationID string) error {
	_, err := s.db.NewDelete().
		Model((*turnRow)(nil)).
		Where("conversation_id = ?", conversationID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete conversation turns: %w", err)
	}
	return nil
}
