package message

import (
	"encoding/json"

	"github.com/sanspareilsmyn/latencylens/internal/timing"
)

// Parse classifies a raw payload. A JSON object with window bounds and a
// per-tag statistics map is a timing window; everything else (including
// payloads that are not JSON at all) becomes the raw variant. This is a
// shape test, not an error path: Parse is total.
func Parse(data []byte) Message {
	var g timing.GroupedTimingStatistics
	if err := json.Unmarshal(data, &g); err != nil || !isWindow(g) {
		return Message{Raw: string(data)}
	}
	// Re-key through the constructor so each entry's Tag matches its map key
	// even when the producer omitted the field.
	normalized := timing.NewGroupedTimingStatistics(g.StartTime, g.StopTime, g.ByTag)
	return Message{Stats: &normalized, Raw: string(data)}
}

func isWindow(g timing.GroupedTimingStatistics) bool {
	return !g.StartTime.IsZero() && !g.StopTime.IsZero() && g.ByTag != nil
}
