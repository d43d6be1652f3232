// Package csvlayout renders grouped timing statistics as comma-separated
// text. The column plan is resolved once from a spec string; formatting is
// then a pure function of the plan and the input window, so one Formatter
// can be shared by concurrent callers.
package csvlayout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sanspareilsmyn/latencylens/internal/timing"
)

// DefaultColumns is the canonical column ordering used when no spec is
// configured.
const DefaultColumns = "tag,start,stop,mean,min,max,stddev,count"

// Formatter turns GroupedTimingStatistics windows into CSV lines according
// to an immutable, pre-resolved column plan.
//
// In per-tag mode (pivot false) every tag in the window produces one line,
// in the window's deterministic tag order. In pivot mode the whole window
// produces exactly one line and dynamic columns select specific tags'
// statistics by name.
type Formatter struct {
	pivot              bool
	printNonStatistics bool
	columns            []Column
}

// New resolves the column spec and builds a Formatter. It fails only when
// the spec yields no columns at all; individual unrecognized tokens degrade
// to empty output fields instead.
func New(pivot bool, columns string, printNonStatistics bool) (*Formatter, error) {
	if columns == "" {
		columns = DefaultColumns
	}
	resolved, err := ResolveColumns(columns)
	if err != nil {
		return nil, err
	}
	return &Formatter{
		pivot:              pivot,
		printNonStatistics: printNonStatistics,
		columns:            resolved,
	}, nil
}

// Columns returns the number of resolved output columns.
func (f *Formatter) Columns() int {
	return len(f.columns)
}

// Format renders one timing window. Per-tag mode emits one terminated line
// per tag (none for an empty window); pivot mode always emits exactly one
// line. Format never fails.
func (f *Formatter) Format(g timing.GroupedTimingStatistics) string {
	var sb strings.Builder
	if f.pivot {
		f.writePivotLine(&sb, g)
		return sb.String()
	}
	for _, tag := range g.Tags() {
		f.writeTagLine(&sb, g, g.ByTag[tag])
	}
	return sb.String()
}

// FormatMessage renders an arbitrary log message. Grouped timing statistics
// go through Format; for anything else the message's string form is emitted
// as a single escaped line when printing non-statistics is enabled, and
// suppressed (empty string) otherwise.
func (f *Formatter) FormatMessage(v any) string {
	switch m := v.(type) {
	case timing.GroupedTimingStatistics:
		return f.Format(m)
	case *timing.GroupedTimingStatistics:
		if m != nil {
			return f.Format(*m)
		}
	}
	if !f.printNonStatistics {
		return ""
	}
	return EscapeField(fmt.Sprint(v)) + "\n"
}

func (f *Formatter) writeTagLine(sb *strings.Builder, g timing.GroupedTimingStatistics, stats timing.TimingStatistics) {
	for i, col := range f.columns {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(EscapeField(f.tagField(col, g, stats)))
	}
	sb.WriteByte('\n')
}

// tagField renders one column for a per-tag line. Dynamic columns ignore
// their embedded tag name here; the current tag is already fixed by the line.
func (f *Formatter) tagField(col Column, g timing.GroupedTimingStatistics, stats timing.TimingStatistics) string {
	switch col.Kind {
	case ColumnFixed:
		switch col.Fixed {
		case FixedTag:
			return stats.Tag
		case FixedStart:
			return formatInstant(g.StartTime)
		case FixedStop:
			return formatInstant(g.StopTime)
		case FixedMean:
			return statField(StatMean, stats, g.Duration())
		case FixedMin:
			return statField(StatMin, stats, g.Duration())
		case FixedMax:
			return statField(StatMax, stats, g.Duration())
		case FixedStdDev:
			return statField(StatStdDev, stats, g.Duration())
		case FixedCount:
			return statField(StatCount, stats, g.Duration())
		case FixedTps:
			return statField(StatTps, stats, g.Duration())
		}
	case ColumnDynamic:
		return statField(col.Stat, stats, g.Duration())
	}
	return ""
}

func (f *Formatter) writePivotLine(sb *strings.Builder, g timing.GroupedTimingStatistics) {
	for i, col := range f.columns {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(EscapeField(f.pivotField(col, g)))
	}
	sb.WriteByte('\n')
}

// pivotField renders one column for the single pivot line. Fixed per-tag
// columns (tag, mean, ...) have no single-tag meaning here and render empty;
// only start and stop keep their fixed meaning. Dynamic columns look the tag
// up by name and render empty when the window never saw it.
func (f *Formatter) pivotField(col Column, g timing.GroupedTimingStatistics) string {
	switch col.Kind {
	case ColumnFixed:
		switch col.Fixed {
		case FixedStart:
			return formatInstant(g.StartTime)
		case FixedStop:
			return formatInstant(g.StopTime)
		}
	case ColumnDynamic:
		if stats, ok := g.ByTag[col.TagName]; ok {
			return statField(col.Stat, stats, g.Duration())
		}
	}
	return ""
}

func statField(stat Stat, stats timing.TimingStatistics, window time.Duration) string {
	switch stat {
	case StatMean:
		return formatFloat(stats.Mean)
	case StatMin:
		return formatFloat(stats.Min)
	case StatMax:
		return formatFloat(stats.Max)
	case StatStdDev:
		return formatFloat(stats.StdDev)
	case StatCount:
		return strconv.FormatInt(stats.Count, 10)
	case StatTps:
		return formatFloat(transactionsPerSecond(stats.Count, window))
	}
	return ""
}

// transactionsPerSecond derives throughput for a tag over the window. A
// zero or negative window yields 0 rather than a division error.
func transactionsPerSecond(count int64, window time.Duration) float64 {
	secs := window.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(count) / secs
}

// formatInstant renders a window bound as epoch milliseconds. The format is
// deliberately numeric so standard CSV consumers can sort and diff windows
// without a date parser.
func formatInstant(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// formatFloat renders a statistic in its shortest decimal form with at
// least one fractional digit (2 -> "2.0", 1.5 -> "1.5") so integral means
// stay visually distinct from counts. NaN from empty windows renders "NaN".
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
