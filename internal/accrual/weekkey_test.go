package accrual

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func TestLegacyWeekKeyJanuaryFirst(t *testing.T) {
	got := LegacyWeekKey(date(2023, time.January, 1))
	if got != "week1year2023" {
		t.Errorf("expected week1year2023, got %s", got)
	}
}

func TestLegacyWeekKeyBoundaries(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{date(2023, time.January, 7), "week1year2023"},
		{date(2023, time.January, 8), "week2year2023"},
		{date(2023, time.December, 31), "week53year2023"},
		{date(2024, time.February, 29), "week9year2024"},
	}
	for _, tt := range tests {
		if got := LegacyWeekKey(tt.in); got != tt.want {
			t.Errorf("LegacyWeekKey(%s): expected %s, got %s", tt.in.Format(DateLayout), tt.want, got)
		}
	}
}

func TestISOWeekKeyYearBoundary(t *testing.T) {
	// Jan 1 2023 is a Sunday: under ISO numbering it still belongs to the
	// last week of 2022, so the key carries the previous year.
	got := ISOWeekKey(date(2023, time.January, 1))
	if got != "week52year2022" {
		t.Errorf("expected week52year2022, got %s", got)
	}

	// The legacy rule disagrees for the same calendar date.
	if legacy := LegacyWeekKey(date(2023, time.January, 1)); legacy == got {
		t.Errorf("expected legacy and ISO keys to differ at the year boundary, both were %s", got)
	}
}

func TestISOWeekKeyMidYearAgreesOnYear(t *testing.T) {
	got := ISOWeekKey(date(2024, time.July, 10))
	if got != "week28year2024" {
		t.Errorf("expected week28year2024, got %s", got)
	}
}

func TestWeekKeyForCutover(t *testing.T) {
	before := date(2024, time.August, 31)
	after := date(2024, time.September, 2)

	if got, want := WeekKeyFor(before), LegacyWeekKey(before); got != want {
		t.Errorf("before cutover: expected legacy key %s, got %s", want, got)
	}
	if got, want := WeekKeyFor(after), ISOWeekKey(after); got != want {
		t.Errorf("after cutover: expected ISO key %s, got %s", want, got)
	}
}

func TestWeekKeyForAtCutoverInstant(t *testing.T) {
	if got, want := WeekKeyFor(RuleCutover), ISOWeekKey(RuleCutover); got != want {
		t.Errorf("at cutover: expected ISO key %s, got %s", want, got)
	}
}
