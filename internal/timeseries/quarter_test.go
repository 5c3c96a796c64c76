package timeseries

import (
	"testing"
	"time"
)

func TestQuarterOf(t *testing.T) {
	cases := map[time.Month]int{
		time.January:   1,
		time.March:     1,
		time.April:     2,
		time.June:      2,
		time.July:      3,
		time.September: 3,
		time.October:   4,
		time.December:  4,
	}
	for month, want := range cases {
		if got := QuarterOf(month); got != want {
			t.Errorf("QuarterOf(%v) = %d, want %d", month, got, want)
		}
	}
}

func TestKeyString(t *testing.T) {
	k := Key{Year: 2024, Quarter: 3}
	if k.String() != "2024Q3" {
		t.Errorf("String() = %q, want 2024Q3", k.String())
	}
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("2024Q3")
	if err != nil {
		t.Fatalf("ParseKey failed: %v", err)
	}
	if k.Year != 2024 || k.Quarter != 3 {
		t.Errorf("ParseKey = %+v, want 2024Q3", k)
	}
}

func TestParseKeyRejectsBadInput(t *testing.T) {
	bad := []string{"", "2024", "2024Q", "2024Q5", "2024Q0", "Q3", "2024Q33", "2024q3", "20x4Q2", "-2024Q1"}
	for _, label := range bad {
		if _, err := ParseKey(label); err == nil {
			t.Errorf("ParseKey(%q) should fail", label)
		}
	}
}

func TestParseKeyRoundTrip(t *testing.T) {
	for year := 2020; year <= 2025; year++ {
		for q := 1; q <= 4; q++ {
			k := Key{Year: year, Quarter: q}
			parsed, err := ParseKey(k.String())
			if err != nil {
				t.Fatalf("ParseKey(%s) failed: %v", k, err)
			}
			if parsed != k {
				t.Errorf("round trip %s = %+v", k, parsed)
			}
		}
	}
}

func TestKeyBefore(t *testing.T) {
	if !(Key{2023, 4}).Before(Key{2024, 1}) {
		t.Error("2023Q4 should be before 2024Q1")
	}
	if (Key{2024, 2}).Before(Key{2024, 2}) {
		t.Error("a key is not before itself")
	}
}
