package dispatch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	catalogx "github.com/questline/questline-agent/agent/catalog"
	contractx "github.com/questline/questline-agent/agent/contract"
	domainx "github.com/questline/questline-agent/domain"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *domainx.Registry) {
	t.Helper()

	cat, err := catalogx.Default()
	if err != nil {
		t.Fatalf("catalog error = %v", err)
	}

	reg := domainx.NewInMemoryRegistry()
	d, err := New(cat, NewGamificationHandlers(reg))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d, reg
}

func TestNewRejectsContractWithoutHandler(t *testing.T) {
	t.Parallel()

	cat, err := catalogx.Default()
	if err != nil {
		t.Fatalf("catalog error = %v", err)
	}

	handlers := NewGamificationHandlers(domainx.NewInMemoryRegistry())
	delete(handlers, "missionService_create")

	_, err = New(cat, handlers)
	if !errors.Is(err, contractx.ErrDispatch) {
		t.Fatalf("expected ErrDispatch, got %v", err)
	}
}

func TestNewRejectsHandlerWithoutContract(t *testing.T) {
	t.Parallel()

	cat, err := catalogx.Default()
	if err != nil {
		t.Fatalf("catalog error = %v", err)
	}

	handlers := NewGamificationHandlers(domainx.NewInMemoryRegistry())
	handlers["ghostService_doThing"] = func(ctx context.Context, actor string, args map[string]any) (any, error) {
		return nil, nil
	}

	_, err = New(cat, handlers)
	if !errors.Is(err, contractx.ErrDispatch) {
		t.Fatalf("expected ErrDispatch, got %v", err)
	}
}

func TestDispatchRoundTrip(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	created, err := d.Dispatch(ctx, "missionService_create",
		`{"name":"Défi Tralala","description":"weekly challenge","team_count":4}`, "alice")
	if err != nil {
		t.Fatalf("Dispatch(create) error = %v", err)
	}

	mission, ok := created.(*domainx.Mission)
	if !ok {
		t.Fatalf("unexpected result type %T", created)
	}
	if mission.Name != "Défi Tralala" || mission.TeamCount != 4 {
		t.Fatalf("unexpected mission: %#v", mission)
	}
	if mission.CreatedBy != "alice" {
		t.Fatalf("expected actor attribution, got %q", mission.CreatedBy)
	}

	// Fetch it back through the dispatcher: the resolved method's return
	// value must come through unchanged.
	found, err := d.Dispatch(ctx, "missionService_findByUuid",
		fmt.Sprintf(`{"uuid":%q}`, mission.UUID), "alice")
	if err != nil {
		t.Fatalf("Dispatch(findByUuid) error = %v", err)
	}
	foundMission, ok := found.(*domainx.Mission)
	if !ok {
		t.Fatalf("unexpected result type %T", found)
	}
	if foundMission.UUID != mission.UUID || foundMission.Name != mission.Name {
		t.Fatalf("round trip mismatch: %#v vs %#v", foundMission, mission)
	}
}

func TestDispatchUnknownToolIsConfigDefect(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), "ghostService_doThing", `{}`, "alice")
	if !errors.Is(err, contractx.ErrDispatch) {
		t.Fatalf("expected ErrDispatch, got %v", err)
	}
	if errors.Is(err, contractx.ErrToolExecution) {
		t.Fatal("unknown tool must not be a recoverable tool failure")
	}
}

func TestDispatchInvalidJSONArguments(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), "missionService_create", `{"name":`, "alice")
	if !errors.Is(err, contractx.ErrToolExecution) {
		t.Fatalf("expected ErrToolExecution, got %v", err)
	}
}

func TestDispatchSchemaViolation(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)

	// name is required by the contract.
	_, err := d.Dispatch(context.Background(), "missionService_create", `{"team_count":3}`, "alice")
	if !errors.Is(err, contractx.ErrToolExecution) {
		t.Fatalf("expected ErrToolExecution, got %v", err)
	}
}

func TestDispatchServiceErrorIsToolExecution(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), "missionService_findByUuid",
		`{"uuid":"does-not-exist"}`, "alice")
	if !errors.Is(err, contractx.ErrToolExecution) {
		t.Fatalf("expected ErrToolExecution, got %v", err)
	}
}

func TestDispatchDeleteReportsOutcome(t *testing.T) {
	t.Parallel()

	d, reg := newTestDispatcher(t)
	ctx := context.Background()

	team, err := reg.Teams.Create(ctx, "alice", domainx.TeamInput{Name: "Rouge", Color: "red"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	out, err := d.Dispatch(ctx, "teamService_delete", fmt.Sprintf(`{"uuid":%q}`, team.UUID), "alice")
	if err != nil {
		t.Fatalf("Dispatch(delete) error = %v", err)
	}
	if out == nil {
		t.Fatal("expected a delete confirmation payload")
	}

	if _, err := reg.Teams.FindByUuid(ctx, team.UUID); !errors.Is(err, domainx.ErrNotFound) {
		t.Fatalf("expected team gone, got %v", err)
	}
}
