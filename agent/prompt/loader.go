package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/analyzer.txt
	analyzerRaw string

	//go:embed template/executor.txt
	executorRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Analyzer string
	Executor string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// Safe to call concurrently; the embed is compile-time, trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Analyzer: strings.TrimSpace(analyzerRaw),
		Executor: strings.TrimSpace(executorRaw),
	}
}
