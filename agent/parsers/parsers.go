package parsers

import (
	"encoding/json"
	"fmt"
	"strings"

	contractx "github.com/questline/questline-agent/agent/contract"
)

// DecodeStrict parses raw model output as a single JSON object of type T.
// Markdown code fences are tolerated, prose outside the object is not.
func DecodeStrict[T any](raw string) (T, error) {
	var out T

	cleaned := stripFences(raw)
	if cleaned == "" {
		return out, fmt.Errorf("%w: empty model output", contractx.ErrMalformedModelOutput)
	}

	dec := json.NewDecoder(strings.NewReader(cleaned))
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("%w: %v", contractx.ErrMalformedModelOutput, err)
	}
	if dec.More() {
		return out, fmt.Errorf("%w: trailing content after JSON object", contractx.ErrMalformedModelOutput)
	}
	return out, nil
}

func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}

	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}
