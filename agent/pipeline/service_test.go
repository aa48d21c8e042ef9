package pipeline

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/questline/questline-agent/agent/contract"
	conversationx "github.com/questline/questline-agent/agent/conversation"
)

type fakeAnalyzer struct {
	decision contractx.AnalyzerDecision
	err      error
	calls    int
	lastReq  contractx.AnalyzeRequest
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req contractx.AnalyzeRequest) (contractx.AnalyzerDecision, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return contractx.AnalyzerDecision{}, f.err
	}
	return f.decision, nil
}

type fakeExecutor struct {
	result  contractx.ExecutorResult
	err     error
	calls   int
	lastReq contractx.ExecuteRequest
}

func (f *fakeExecutor) Execute(ctx context.Context, req contractx.ExecuteRequest) (contractx.ExecutorResult, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return contractx.ExecutorResult{}, f.err
	}
	return f.result, nil
}

type fakePublisher struct {
	err       error
	published []*contractx.ConversationTurn
}

func (f *fakePublisher) Publish(ctx context.Context, turn *contractx.ConversationTurn) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, turn)
	return nil
}

func newTestService(t *testing.T, analyzer *fakeAnalyzer, executor *fakeExecutor, publisher contractx.TurnPublisher) (*Service, *conversationx.InMemoryStore) {
	t.Helper()

	store := conversationx.NewInMemoryStore()
	svc, err := New(store, analyzer, executor, publisher, "- missionService_create: Create a mission.")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return svc, store
}

func TestAnswerInvalidInput(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &fakeAnalyzer{}, &fakeExecutor{}, nil)

	_, err := svc.Answer(context.Background(), AnswerInput{ConversationID: "  ", Text: "bonjour"})
	if !errors.Is(err, ErrInvalidConversation) {
		t.Fatalf("expected ErrInvalidConversation, got %v", err)
	}

	_, err = svc.Answer(context.Background(), AnswerInput{ConversationID: "c1", Text: "   "})
	if !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}
}

func TestAnswerConfirmPath(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{
		decision: contractx.AnalyzerDecision{
			ID:          "d1",
			Phase:       contractx.PhaseConfirm,
			MemoryDelta: "proposal: create mission Défi Tralala",
			Summary:     "Je propose de créer la mission Défi Tralala. On y va ?",
		},
	}
	executor := &fakeExecutor{}
	svc, store := newTestService(t, analyzer, executor, nil)

	out, err := svc.Answer(context.Background(), AnswerInput{
		ConversationID: "c1",
		Actor:          "alice",
		Text:           "Crée une mission Défi Tralala",
	})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if out.Reply != "Je propose de créer la mission Défi Tralala. On y va ?" {
		t.Fatalf("unexpected reply: %q", out.Reply)
	}
	if executor.calls != 0 {
		t.Fatalf("confirm path must not reach the executor, got %d calls", executor.calls)
	}

	// Exactly one memory entry per turn.
	if len(out.Memory) != 1 || out.Memory[0] != "proposal: create mission Défi Tralala" {
		t.Fatalf("unexpected memory: %#v", out.Memory)
	}

	turns, err := store.ListTurns(context.Background(), "c1")
	if err != nil {
		t.Fatalf("ListTurns() error = %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected user plus assistant turn, got %d", len(turns))
	}
	if turns[0].Role != contractx.RoleUser || turns[1].Role != contractx.RoleAssistant {
		t.Fatalf("unexpected turn roles: %#v", turns)
	}
}

func TestAnswerExecutePathThreadsDecision(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{
		decision: contractx.AnalyzerDecision{
			ID:          "d2",
			Phase:       contractx.PhaseExecute,
			Tools:       []string{"missionService_create"},
			Prompt:      "Create the mission Défi Tralala with 4 teams.",
			MemoryDelta: "user confirmed",
		},
	}
	executor := &fakeExecutor{
		result: contractx.ExecutorResult{
			ID:          "r1",
			MemoryDelta: "mission Défi Tralala created",
			Message:     "La mission est créée.",
		},
	}
	svc, store := newTestService(t, analyzer, executor, nil)
	ctx := context.Background()

	// Seed prior memory the way an earlier confirm turn would have.
	if err := store.Append(ctx, &contractx.ConversationTurn{
		ID:             "t0",
		ConversationID: "c2",
		Role:           contractx.RoleAssistant,
		Content:        "Je propose de créer la mission.",
		Memory:         "proposal: create mission Défi Tralala with 4 teams",
	}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	out, err := svc.Answer(ctx, AnswerInput{
		ConversationID: "c2",
		Actor:          "alice",
		Text:           "oui vas-y",
	})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if out.Reply != "La mission est créée." {
		t.Fatalf("unexpected reply: %q", out.Reply)
	}

	if executor.calls != 1 {
		t.Fatalf("expected one executor call, got %d", executor.calls)
	}
	req := executor.lastReq
	if req.Prompt != "Create the mission Défi Tralala with 4 teams." {
		t.Fatalf("decision prompt not threaded: %q", req.Prompt)
	}
	if len(req.Tools) != 1 || req.Tools[0] != "missionService_create" {
		t.Fatalf("decision tools not threaded: %#v", req.Tools)
	}
	if req.Actor != "alice" {
		t.Fatalf("actor not threaded: %q", req.Actor)
	}
	if len(req.Memory) != 1 || req.Memory[0] != "proposal: create mission Défi Tralala with 4 teams" {
		t.Fatalf("memory not threaded: %#v", req.Memory)
	}

	// The executor's delta, not the analyzer's, is what the turn records.
	if len(out.Memory) != 2 || out.Memory[1] != "mission Défi Tralala created" {
		t.Fatalf("unexpected memory after execute: %#v", out.Memory)
	}

	// Analyzer saw the seeded memory, not the updated one.
	if len(analyzer.lastReq.Memory) != 1 {
		t.Fatalf("analyzer memory snapshot wrong: %#v", analyzer.lastReq.Memory)
	}
}

func TestAnswerCancelledPath(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{
		decision: contractx.AnalyzerDecision{
			ID:          "d3",
			Phase:       contractx.PhaseCancelled,
			MemoryDelta: "user cancelled the pending proposal",
			Summary:     "D'accord, j'annule.",
		},
	}
	executor := &fakeExecutor{}
	svc, _ := newTestService(t, analyzer, executor, nil)

	out, err := svc.Answer(context.Background(), AnswerInput{
		ConversationID: "c3",
		Text:           "non laisse tomber",
	})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if out.Reply != "D'accord, j'annule." {
		t.Fatalf("unexpected reply: %q", out.Reply)
	}
	if executor.calls != 0 {
		t.Fatalf("cancelled path must not reach the executor, got %d calls", executor.calls)
	}
}

func TestAnswerAnalyzerErrorPropagates(t *testing.T) {
	t.Parallel()

	analyzerErr := errors.New("analyzer down")
	svc, store := newTestService(t, &fakeAnalyzer{err: analyzerErr}, &fakeExecutor{}, nil)

	_, err := svc.Answer(context.Background(), AnswerInput{
		ConversationID: "c4",
		Text:           "bonjour",
	})
	if !errors.Is(err, analyzerErr) {
		t.Fatalf("expected analyzer error, got %v", err)
	}

	// The user turn is recorded before analysis, so it survives the failure.
	turns, listErr := store.ListTurns(context.Background(), "c4")
	if listErr != nil {
		t.Fatalf("ListTurns() error = %v", listErr)
	}
	if len(turns) != 1 || turns[0].Role != contractx.RoleUser {
		t.Fatalf("expected only the user turn persisted, got %#v", turns)
	}
}

func TestAnswerPublishesAssistantTurn(t *testing.T) {
	t.Parallel()

	publisher := &fakePublisher{}
	analyzer := &fakeAnalyzer{
		decision: contractx.AnalyzerDecision{
			Phase:       contractx.PhaseConfirm,
			MemoryDelta: "proposal recorded",
			Summary:     "On confirme ?",
		},
	}
	svc, _ := newTestService(t, analyzer, &fakeExecutor{}, publisher)

	if _, err := svc.Answer(context.Background(), AnswerInput{
		ConversationID: "c5",
		Text:           "Crée une mission",
	}); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	if len(publisher.published) != 1 {
		t.Fatalf("expected one published turn, got %d", len(publisher.published))
	}
	if publisher.published[0].Role != contractx.RoleAssistant {
		t.Fatalf("expected the assistant turn published, got %s", publisher.published[0].Role)
	}
}

func TestAnswerPublishFailureDoesNotFailTurn(t *testing.T) {
	t.Parallel()

	publisher := &fakePublisher{err: errors.New("webhook 503")}
	analyzer := &fakeAnalyzer{
		decision: contractx.AnalyzerDecision{
			Phase:       contractx.PhaseConfirm,
			MemoryDelta: "proposal recorded",
			Summary:     "On confirme ?",
		},
	}
	svc, _ := newTestService(t, analyzer, &fakeExecutor{}, publisher)

	out, err := svc.Answer(context.Background(), AnswerInput{
		ConversationID: "c6",
		Text:           "Crée une mission",
	})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if out.Reply == "" {
		t.Fatal("expected a reply despite publish failure")
	}
}
