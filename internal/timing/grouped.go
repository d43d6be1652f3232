package timing

import (
	"sort"
	"time"
)

// GroupedTimingStatistics represents one completed timing window: the window
// bounds plus the per-tag statistics collected inside it. The value is
// immutable after construction; the constructor copies the tag map so callers
// cannot mutate it afterwards.
type GroupedTimingStatistics struct {
	StartTime time.Time                   `json:"startTime"`
	StopTime  time.Time                   `json:"stopTime"`
	ByTag     map[string]TimingStatistics `json:"statisticsByTag"`
}

// NewGroupedTimingStatistics builds a window from its bounds and per-tag
// statistics. Each entry's Tag field is forced to its map key so the two can
// never disagree.
func NewGroupedTimingStatistics(start, stop time.Time, byTag map[string]TimingStatistics) GroupedTimingStatistics {
	copied := make(map[string]TimingStatistics, len(byTag))
	for tag, stats := range byTag {
		stats.Tag = tag
		copied[tag] = stats
	}
	return GroupedTimingStatistics{
		StartTime: start,
		StopTime:  stop,
		ByTag:     copied,
	}
}

// Tags returns the window's tag names in ascending alphabetical order. This
// is the deterministic iteration order used for all per-tag output.
func (g GroupedTimingStatistics) Tags() []string {
	tags := make([]string, 0, len(g.ByTag))
	for tag := range g.ByTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Duration returns the length of the timing window.
func (g GroupedTimingStatistics) Duration() time.Duration {
	return g.StopTime.Sub(g.StartTime)
}
