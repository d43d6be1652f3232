package message

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanspareilsmyn/latencylens/internal/timing"
)

const windowJSON = `{
	"startTime": "2026-08-01T10:00:00Z",
	"stopTime": "2026-08-01T10:00:30Z",
	"statisticsByTag": {
		"dbQuery": {"count": 10, "mean": 2.5, "min": 1, "max": 5, "stdDev": 0.5}
	}
}`

func TestParse_TimingWindow(t *testing.T) {
	msg := Parse([]byte(windowJSON))
	require.True(t, msg.IsStatistics())

	g := msg.Stats
	assert.Equal(t, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), g.StartTime)
	assert.Equal(t, 30*time.Second, g.Duration())
	require.Contains(t, g.ByTag, "dbQuery")
	assert.Equal(t, int64(10), g.ByTag["dbQuery"].Count)
	// Tag is normalized from the map key even though the payload omitted it.
	assert.Equal(t, "dbQuery", g.ByTag["dbQuery"].Tag)
}

func TestParse_RoundTripFromDomainType(t *testing.T) {
	window := timing.NewGroupedTimingStatistics(
		time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 1, 10, 0, 30, 0, time.UTC),
		map[string]timing.TimingStatistics{
			"renderPage": {Count: 42, Mean: 12.5, Min: 3.0, Max: 80.0, StdDev: 9.1},
		},
	)
	payload, err := json.Marshal(window)
	require.NoError(t, err)

	msg := Parse(payload)
	require.True(t, msg.IsStatistics())
	assert.Equal(t, window, *msg.Stats)
}

func TestParse_NonStatisticsPayloads(t *testing.T) {
	payloads := []string{
		"plain text, not json",
		`"just a string"`,
		`42`,
		`{"foo": "bar"}`,
		`{"startTime": "2026-08-01T10:00:00Z"}`,
		`{}`,
		``,
	}
	for _, payload := range payloads {
		t.Run(payload, func(t *testing.T) {
			msg := Parse([]byte(payload))
			assert.False(t, msg.IsStatistics())
			assert.Equal(t, payload, msg.Raw)
			assert.Equal(t, payload, msg.Value())
		})
	}
}

func TestMessage_Value(t *testing.T) {
	msg := Parse([]byte(windowJSON))
	_, ok := msg.Value().(timing.GroupedTimingStatistics)
	assert.True(t, ok)
}

func TestMessage_Snippet(t *testing.T) {
	msg := Message{Raw: "abcdefghij"}
	assert.Equal(t, "abcde...", msg.Snippet(5))
	assert.Equal(t, "abcdefghij", msg.Snippet(50))
	assert.Equal(t, "...", msg.Snippet(0))
}
