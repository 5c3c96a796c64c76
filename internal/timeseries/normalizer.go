package timeseries

import (
	"math"
	"time"
)

// Point is one raw observation from a provider.
type Point struct {
	Date  time.Time
	Value float64
}

// Window bounds normalization to a lookback range. StartYear is the first
// year admitted; Now anchors the current (in-progress) year.
type Window struct {
	StartYear int
	Now       time.Time
}

func (w Window) contains(year int) bool {
	return year >= w.StartYear && year <= w.Now.Year()
}

// usable filters out the provider's absent-value sentinels: NaN, infinities
// and exact zero all mean "no data" in these feeds, never a true zero.
func usable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v != 0
}

// BucketAnnual distributes each annual observation evenly over the four
// quarters of its year. The current year is always skipped: a full-year figure
// for an in-progress year is not final. Zero/NaN observations are discarded.
func BucketAnnual(points []Point, w Window) map[Key]float64 {
	out := make(map[Key]float64)
	for _, p := range points {
		year := p.Date.Year()
		if !usable(p.Value) || year >= w.Now.Year() || year < w.StartYear {
			continue
		}
		for q := 1; q <= 4; q++ {
			out[Key{Year: year, Quarter: q}] = p.Value / 4
		}
	}
	return out
}

// BucketQuarterly places each quarterly observation into the quarter
// containing its date. The current year is included. Zero/NaN observations
// are discarded.
func BucketQuarterly(points []Point, w Window) map[Key]float64 {
	out := make(map[Key]float64)
	for _, p := range points {
		if !usable(p.Value) || !w.contains(p.Date.Year()) {
			continue
		}
		out[KeyFor(p.Date)] = p.Value
	}
	return out
}

// Merge overlays quarterly values onto annual-derived ones. True quarterly
// figures always win over an evenly-divided annual estimate.
func Merge(annual, quarterly map[Key]float64) map[Key]float64 {
	out := make(map[Key]float64, len(annual)+len(quarterly))
	for k, v := range annual {
		out[k] = v
	}
	for k, v := range quarterly {
		out[k] = v
	}
	return out
}

// Normalize applies the full annual-split plus quarterly-override rule set.
func Normalize(annual, quarterly []Point, w Window) map[Key]float64 {
	return Merge(BucketAnnual(annual, w), BucketQuarterly(quarterly, w))
}

// MeanByQuarter computes the arithmetic mean of daily closing values per
// calendar quarter. A quarter with no usable observations is omitted, not
// zero-filled, so callers can tell "no trading data" from "zero price".
func MeanByQuarter(points []Point, w Window) map[Key]float64 {
	sums := make(map[Key]float64)
	counts := make(map[Key]int)
	for _, p := range points {
		if !usable(p.Value) || !w.contains(p.Date.Year()) {
			continue
		}
		k := KeyFor(p.Date)
		sums[k] += p.Value
		counts[k]++
	}

	out := make(map[Key]float64, len(sums))
	for k, sum := range sums {
		out[k] = sum / float64(counts[k])
	}
	return out
}
