package csvlayout

import "strings"

// ColumnKind discriminates the variants of a resolved column.
type ColumnKind int

const (
	// ColumnFixed is one of the well-known column names (tag, start, ...).
	ColumnFixed ColumnKind = iota
	// ColumnDynamic selects a named tag's statistic, e.g. "codeBlock1Mean".
	// Only meaningful in pivot mode; per-tag output uses just the stat part.
	ColumnDynamic
	// ColumnLiteral is an unrecognized token. It always renders empty.
	ColumnLiteral
)

// FixedKind identifies a well-known column.
type FixedKind int

const (
	FixedTag FixedKind = iota
	FixedStart
	FixedStop
	FixedMean
	FixedMin
	FixedMax
	FixedStdDev
	FixedCount
	FixedTps
)

// Stat identifies one per-tag statistic referenced by a dynamic column.
type Stat int

const (
	StatMean Stat = iota
	StatMin
	StatMax
	StatStdDev
	StatCount
	StatTps
)

// Column is one resolved output column. The zero fields of the inactive
// variant are ignored.
type Column struct {
	Kind    ColumnKind
	Fixed   FixedKind // set when Kind == ColumnFixed
	TagName string    // set when Kind == ColumnDynamic
	Stat    Stat      // set when Kind == ColumnDynamic
}

var fixedByName = map[string]FixedKind{
	"tag":    FixedTag,
	"start":  FixedStart,
	"stop":   FixedStop,
	"mean":   FixedMean,
	"min":    FixedMin,
	"max":    FixedMax,
	"stddev": FixedStdDev,
	"count":  FixedCount,
	"tps":    FixedTps,
}

// statSuffixes is ordered longest-first so "fooStdDev" resolves as StdDev
// and never as a tag named "fooStdDe" with a trailing "v".
var statSuffixes = []struct {
	suffix string
	stat   Stat
}{
	{"StdDev", StatStdDev},
	{"Count", StatCount},
	{"Mean", StatMean},
	{"Min", StatMin},
	{"Max", StatMax},
	{"Tps", StatTps},
}

// ResolveColumns parses a comma-separated column spec into an ordered column
// plan. Tokens are trimmed and empty tokens skipped. A token matching one of
// the well-known names (case-insensitive) becomes a fixed column; otherwise
// a case-sensitive stat suffix (Mean, Min, Max, StdDev, Count, Tps) makes it
// a dynamic column whose tag name is the remaining prefix; anything else is
// kept as a literal column that renders empty. Resolution never fails per
// token; the only error is a spec with no usable columns at all.
func ResolveColumns(spec string) ([]Column, error) {
	var columns []Column
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		columns = append(columns, resolveToken(token))
	}
	if len(columns) == 0 {
		return nil, ErrEmptyColumnSpec
	}
	return columns, nil
}

func resolveToken(token string) Column {
	if fixed, ok := fixedByName[strings.ToLower(token)]; ok {
		return Column{Kind: ColumnFixed, Fixed: fixed}
	}
	for _, s := range statSuffixes {
		if tagName, ok := strings.CutSuffix(token, s.suffix); ok && tagName != "" {
			return Column{Kind: ColumnDynamic, TagName: tagName, Stat: s.stat}
		}
	}
	return Column{Kind: ColumnLiteral}
}
