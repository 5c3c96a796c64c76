package timeseries

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMaxReportedQuarter(t *testing.T) {
	cases := []struct {
		now  time.Time
		want int
	}{
		{date(2025, time.February, 1), 0},
		{date(2025, time.May, 14), 0},
		{date(2025, time.May, 15), 1},
		{date(2025, time.August, 14), 1},
		{date(2025, time.August, 15), 2},
		{date(2025, time.November, 14), 2},
		{date(2025, time.November, 15), 3},
		{date(2025, time.December, 31), 3},
	}
	for _, c := range cases {
		if got := MaxReportedQuarter(c.now); got != c.want {
			t.Errorf("MaxReportedQuarter(%s) = %d, want %d", c.now.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestLabelAxisFourYearLookback(t *testing.T) {
	// 2025-11-20 is past the Nov-15 cutoff, so Q1..Q3 of 2025 are reported.
	labels := LabelAxis(date(2025, time.November, 20), 4)

	if len(labels) != 19 {
		t.Fatalf("expected 19 labels (16 prior-year + 3 current), got %d: %v", len(labels), labels)
	}
	if labels[0] != "2022Q1" {
		t.Errorf("first label = %s, want 2022Q1", labels[0])
	}
	if labels[len(labels)-1] != "2025Q3" {
		t.Errorf("last label = %s, want 2025Q3", labels[len(labels)-1])
	}
}

func TestLabelAxisStrictlyIncreasing(t *testing.T) {
	labels := LabelAxis(date(2025, time.November, 20), 4)
	prev, err := ParseKey(labels[0])
	if err != nil {
		t.Fatal(err)
	}
	for _, label := range labels[1:] {
		k, err := ParseKey(label)
		if err != nil {
			t.Fatal(err)
		}
		if !prev.Before(k) {
			t.Errorf("axis not strictly increasing at %s -> %s", prev, k)
		}
		prev = k
	}
}

func TestLabelAxisEarlyYearExcludesCurrentYear(t *testing.T) {
	labels := LabelAxis(date(2025, time.March, 1), 4)
	if len(labels) != 16 {
		t.Fatalf("expected 16 labels before any current-year quarter reports, got %d", len(labels))
	}
	for _, label := range labels {
		k, _ := ParseKey(label)
		if k.Year == 2025 {
			t.Errorf("current year leaked into axis: %s", label)
		}
	}
}
