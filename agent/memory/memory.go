package memory

import "strings"

// Memory is the ordered list of short facts accumulated across turns. It is
// the sole carrier of cross-turn state: the underlying model calls are
// stateless and every entry is replayed verbatim into each subsequent call.
// Grows by exactly one entry per turn and is never truncated or reordered.
type Memory []string

// Append returns a new Memory with fact added. The receiver is never mutated,
// so snapshots held by earlier turns stay valid.
func (m Memory) Append(fact string) Memory {
	fact = strings.TrimSpace(fact)
	out := make(Memory, 0, len(m)+1)
	out = append(out, m...)
	return append(out, fact)
}

// Facts returns a defensive copy of the entries.
func (m Memory) Facts() []string {
	out := make([]string, len(m))
	copy(out, m)
	return out
}

func (m Memory) Len() int {
	return len(m)
}

// Render builds the replay block injected into every model call.
func (m Memory) Render() string {
	var b strings.Builder
	b.WriteString("<memory_replay>\n")
	for _, fact := range m {
		if strings.TrimSpace(fact) == "" {
			continue
		}
		b.WriteString(fact)
		b.WriteString("\n")
	}
	b.WriteString("</memory_replay>")
	return b.String()
}
