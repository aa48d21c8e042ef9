package contract

import "time"

// Phase is the analyzer's classification of the current turn.
type Phase string

const (
	PhaseConfirm   Phase = "confirm"
	PhaseExecute   Phase = "execute"
	PhaseCancelled Phase = "cancelled"
)

func (p Phase) Valid() bool {
	switch p {
	case PhaseConfirm, PhaseExecute, PhaseCancelled:
		return true
	}
	return false
}

// AnalyzerDecision is the structured outcome of the classify step.
// Invariants: Phase != execute => Tools and Prompt are empty;
// Phase == execute => Prompt is non-empty.
type AnalyzerDecision struct {
	ID          string   `json:"id"`
	Phase       Phase    `json:"phase"`
	Tools       []string `json:"tools,omitempty"`
	Prompt      string   `json:"prompt,omitempty"`
	MemoryDelta string   `json:"memory_delta"`
	Summary     string   `json:"summary"`
}

// ToolCallRequest is a pending invocation requested by the model.
type ToolCallRequest struct {
	CallID       string `json:"call_id"`
	ToolName     string `json:"tool_name"`
	RawArguments string `json:"raw_arguments"`
}

// ToolCallResult is the outcome of a dispatched call, paired by CallID.
type ToolCallResult struct {
	CallID     string `json:"call_id"`
	OutputText string `json:"output_text"`
}

// ExecutorResult is the terminal output of the tool loop.
type ExecutorResult struct {
	ID          string `json:"id"`
	MemoryDelta string `json:"memory_delta"`
	Message     string `json:"message"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ConversationTurn is the persisted record of one side of an exchange.
// Turns are immutable after creation; deletion is a hard remove.
type ConversationTurn struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	Memory         string    `json:"memory,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// AnalyzeRequest carries one user message plus the replayed memory into the
// classify step. Memory may be empty on the first turn.
type AnalyzeRequest struct {
	UserMessage    string   `json:"user_message"`
	Memory         []string `json:"memory,omitempty"`
	CatalogSummary string   `json:"catalog_summary"`
}

// ExecuteRequest carries a decided task into the tool loop.
type ExecuteRequest struct {
	Prompt string   `json:"prompt"`
	Tools  []string `json:"tools"`
	Memory []string `json:"memory,omitempty"`
	Actor  string   `json:"actor"`
}
