package timing

import "math"

// TimingStatistics holds the aggregated measurements for a single tag within
// one timing window. Values are computed upstream by the collection side;
// this type only carries them. Instances are treated as immutable once
// constructed.
type TimingStatistics struct {
	Tag    string  `json:"tag"`
	Count  int64   `json:"count"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stdDev"`
}

// NewTimingStatistics creates statistics for a tag. A zero count yields NaN
// for the derived fields, mirroring what an empty window produces upstream.
func NewTimingStatistics(tag string, count int64, mean, min, max, stdDev float64) TimingStatistics {
	if count == 0 {
		return TimingStatistics{
			Tag:    tag,
			Mean:   math.NaN(),
			Min:    math.NaN(),
			Max:    math.NaN(),
			StdDev: math.NaN(),
		}
	}
	return TimingStatistics{
		Tag:    tag,
		Count:  count,
		Mean:   mean,
		Min:    min,
		Max:    max,
		StdDev: stdDev,
	}
}
