package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	contractx "github.com/questline/questline-agent/agent/contract"
)

func turn(convID string, role contractx.Role, content, memory string) *contractx.ConversationTurn {
	return &contractx.ConversationTurn{
		ID:             content,
		ConversationID: convID,
		Role:           role,
		Content:        content,
		Memory:         memory,
		CreatedAt:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestInMemoryStoreAppendAndList(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ctx := context.Background()

	if err := store.Append(ctx, turn("c1", contractx.RoleUser, "Crée une mission", "")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(ctx, turn("c1", contractx.RoleAssistant, "Je propose de créer la mission.", "proposal: create mission")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	turns, err := store.ListTurns(ctx, "c1")
	if err != nil {
		t.Fatalf("ListTurns() error = %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != contractx.RoleUser || turns[1].Role != contractx.RoleAssistant {
		t.Fatalf("append order must be preserved: %#v", turns)
	}
}

func TestInMemoryStoreIsolatesConversations(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ctx := context.Background()

	if err := store.Append(ctx, turn("c1", contractx.RoleUser, "bonjour", "")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	turns, err := store.ListTurns(ctx, "c2")
	if err != nil {
		t.Fatalf("ListTurns() error = %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected empty conversation, got %d turns", len(turns))
	}
}

func TestInMemoryStoreListMemoriesFiltersRoleAndBlank(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ctx := context.Background()

	seed := []*contractx.ConversationTurn{
		turn("c1", contractx.RoleUser, "Crée une mission", ""),
		turn("c1", contractx.RoleAssistant, "proposé", "proposal: create mission"),
		turn("c1", contractx.RoleUser, "oui vas-y", "user note that must not leak"),
		turn("c1", contractx.RoleAssistant, "créée", "mission created"),
		turn("c1", contractx.RoleAssistant, "ok", "   "),
	}
	for _, tr := range seed {
		if err := store.Append(ctx, tr); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	memories, err := store.ListMemories(ctx, "c1", contractx.RoleAssistant)
	if err != nil {
		t.Fatalf("ListMemories() error = %v", err)
	}
	if len(memories) != 2 {
		t.Fatalf("expected 2 memories, got %#v", memories)
	}
	if memories[0] != "proposal: create mission" || memories[1] != "mission created" {
		t.Fatalf("unexpected memory order: %#v", memories)
	}
}

func TestInMemoryStoreDeleteConversation(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ctx := context.Background()

	if err := store.Append(ctx, turn("c1", contractx.RoleUser, "bonjour", "")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.DeleteConversation(ctx, "c1"); err != nil {
		t.Fatalf("DeleteConversation() error = %v", err)
	}

	turns, err := store.ListTurns(ctx, "c1")
	if err != nil {
		t.Fatalf("ListTurns() error = %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected conversation gone, got %d turns", len(turns))
	}
}

func TestInMemoryStoreRejectsInvalidTurn(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ctx := context.Background()

	if err := store.Append(ctx, nil); !errors.Is(err, ErrNilTurn) {
		t.Fatalf("expected ErrNilTurn, got %v", err)
	}
	if err := store.Append(ctx, turn("   ", contractx.RoleUser, "x", "")); !errors.Is(err, ErrInvalidConversationID) {
		t.Fatalf("expected ErrInvalidConversationID, got %v", err)
	}
}

func TestInMemoryStoreReturnsCopies(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ctx := context.Background()

	if err := store.Append(ctx, turn("c1", contractx.RoleAssistant, "créée", "mission created")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	turns, err := store.ListTurns(ctx, "c1")
	if err != nil {
		t.Fatalf("ListTurns() error = %v", err)
	}
	turns[0].Memory = "mutated"

	memories, err := store.ListMemories(ctx, "c1", contractx.RoleAssistant)
	if err != nil {
		t.Fatalf("ListMemories() error = %v", err)
	}
	if memories[0] != "mission created" {
		t.Fatalf("stored turn must not alias returned copy, got %q", memories[0])
	}
}
