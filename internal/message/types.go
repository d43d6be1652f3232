package message

import "github.com/sanspareilsmyn/latencylens/internal/timing"

// Message is the union of what can arrive on the report topic: either a
// completed timing window or arbitrary other text. Exactly one variant is
// the active one.
type Message struct {
	Stats *timing.GroupedTimingStatistics
	Raw   string
}

// IsStatistics reports whether the message carries a timing window.
func (m Message) IsStatistics() bool {
	return m.Stats != nil
}

// Value returns the active variant for consumers that take the message as
// an opaque log value.
func (m Message) Value() any {
	if m.Stats != nil {
		return *m.Stats
	}
	return m.Raw
}

// Snippet returns a truncated view of the raw payload, useful for logging.
func (m Message) Snippet(maxLength int) string {
	if maxLength <= 0 {
		return "..."
	}
	if len(m.Raw) > maxLength {
		return m.Raw[:maxLength] + "..."
	}
	return m.Raw
}
