package timeseries

import (
	"math"
	"testing"
	"time"
)

func testWindow() Window {
	return Window{StartYear: 2022, Now: date(2025, time.November, 20)}
}

func TestBucketAnnualSplitsEvenly(t *testing.T) {
	points := []Point{{Date: date(2023, time.December, 31), Value: 1000}}
	got := BucketAnnual(points, testWindow())

	if len(got) != 4 {
		t.Fatalf("expected 4 quarters, got %d", len(got))
	}
	sum := 0.0
	for q := 1; q <= 4; q++ {
		v, ok := got[Key{Year: 2023, Quarter: q}]
		if !ok {
			t.Fatalf("missing 2023Q%d", q)
		}
		if v != 250 {
			t.Errorf("2023Q%d = %v, want 250", q, v)
		}
		sum += v
	}
	if sum != 1000 {
		t.Errorf("quarterly values sum to %v, want 1000", sum)
	}
}

func TestBucketAnnualSkipsCurrentYear(t *testing.T) {
	points := []Point{{Date: date(2025, time.December, 31), Value: 1000}}
	if got := BucketAnnual(points, testWindow()); len(got) != 0 {
		t.Errorf("in-progress year must not be annual-split, got %v", got)
	}
}

func TestBucketAnnualSkipsOutsideWindow(t *testing.T) {
	points := []Point{{Date: date(2019, time.December, 31), Value: 1000}}
	if got := BucketAnnual(points, testWindow()); len(got) != 0 {
		t.Errorf("year before window start must be dropped, got %v", got)
	}
}

func TestQuarterlyOverridesAnnual(t *testing.T) {
	annual := []Point{{Date: date(2023, time.December, 31), Value: 1000}}
	quarterly := []Point{{Date: date(2023, time.June, 30), Value: 300}}

	got := Normalize(annual, quarterly, testWindow())

	if got[Key{2023, 2}] != 300 {
		t.Errorf("2023Q2 = %v, want true quarterly value 300", got[Key{2023, 2}])
	}
	if got[Key{2023, 1}] != 250 {
		t.Errorf("2023Q1 = %v, want annual split 250", got[Key{2023, 1}])
	}
}

func TestQuarterlyIncludesCurrentYear(t *testing.T) {
	quarterly := []Point{{Date: date(2025, time.March, 31), Value: 42}}
	got := BucketQuarterly(quarterly, testWindow())
	if got[Key{2025, 1}] != 42 {
		t.Errorf("current-year quarterly observation dropped: %v", got)
	}
}

func TestZeroAndNaNDiscarded(t *testing.T) {
	points := []Point{
		{Date: date(2023, time.March, 31), Value: 0},
		{Date: date(2023, time.June, 30), Value: math.NaN()},
		{Date: date(2023, time.September, 30), Value: 7},
	}
	got := BucketQuarterly(points, testWindow())
	if len(got) != 1 {
		t.Fatalf("zero and NaN must be discarded, got %v", got)
	}
	if got[Key{2023, 3}] != 7 {
		t.Errorf("2023Q3 = %v, want 7", got[Key{2023, 3}])
	}
}

func TestMeanByQuarter(t *testing.T) {
	points := []Point{
		{Date: date(2024, time.January, 2), Value: 10},
		{Date: date(2024, time.February, 2), Value: 20},
		{Date: date(2024, time.March, 2), Value: 30},
		{Date: date(2024, time.April, 2), Value: 50},
	}
	got := MeanByQuarter(points, testWindow())

	if got[Key{2024, 1}] != 20 {
		t.Errorf("2024Q1 mean = %v, want 20", got[Key{2024, 1}])
	}
	if got[Key{2024, 2}] != 50 {
		t.Errorf("2024Q2 mean = %v, want 50", got[Key{2024, 2}])
	}
	if _, ok := got[Key{2024, 3}]; ok {
		t.Error("quarter with no observations must be omitted, not zero-filled")
	}
}

func TestMeanByQuarterIgnoresZeroCloses(t *testing.T) {
	points := []Point{
		{Date: date(2024, time.January, 2), Value: 10},
		{Date: date(2024, time.January, 3), Value: 0},
	}
	got := MeanByQuarter(points, testWindow())
	if got[Key{2024, 1}] != 10 {
		t.Errorf("zero close must not drag the mean: got %v", got[Key{2024, 1}])
	}
}
