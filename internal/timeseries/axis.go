package timeseries

import "time"

// Reporting-lag cutoffs: a quarter's results are not assumed published until
// roughly a month and a half after quarter end.
var reportingCutoffs = []struct {
	month   time.Month
	day     int
	quarter int
}{
	{time.November, 15, 3},
	{time.August, 15, 2},
	{time.May, 15, 1},
}

// MaxReportedQuarter returns the latest quarter of now's year assumed to have
// published results, or 0 when none have.
func MaxReportedQuarter(now time.Time) int {
	for _, c := range reportingCutoffs {
		cutoff := time.Date(now.Year(), c.month, c.day, 0, 0, 0, 0, now.Location())
		if !now.Before(cutoff) {
			return c.quarter
		}
	}
	return 0
}

// LabelAxis returns the ordered quarter labels a chart must display for a
// lookback of the given number of years ending at now. Years before the
// current one contribute all four quarters; the current year is truncated by
// the reporting lag. The axis is strictly increasing with no duplicates and is
// identical for every metric so chart series align point-for-point.
func LabelAxis(now time.Time, lookbackYears int) []string {
	startYear := now.Year() - (lookbackYears - 1)
	maxQuarter := MaxReportedQuarter(now)

	var labels []string
	for year := startYear; year <= now.Year(); year++ {
		last := 4
		if year == now.Year() {
			last = maxQuarter
		}
		for q := 1; q <= last; q++ {
			labels = append(labels, Key{Year: year, Quarter: q}.String())
		}
	}
	return labels
}

// WindowStartYear returns the first year included in a lookback window ending
// at now.
func WindowStartYear(now time.Time, lookbackYears int) int {
	return now.Year() - (lookbackYears - 1)
}
