package accrual

import (
	"fmt"
	"time"
)

// RuleCutover is the instant the app switched weekly bucketing from the
// legacy day-of-year rule to ISO-8601 week numbering. Buckets written under
// the legacy rule before this date are never migrated, so the selection must
// stay gated on wall-clock time rather than on the date being bucketed.
var RuleCutover = time.Date(2024, time.September, 1, 0, 0, 0, 0, time.Local)

// DateLayout is the calendar-day format used for completion entries.
const DateLayout = "2006-01-02"

// DateKey truncates t to its local calendar day.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// LegacyWeekKey buckets t with the original week rule: week N is
// ceil(dayOfYear/7), where dayOfYear comes from dividing the raw duration
// since local midnight Jan 1 by 24h. Around a DST shift that duration is not
// a whole number of days; the truncation below reproduces the historical
// behavior and must not be "fixed" to calendar-day arithmetic.
func LegacyWeekKey(t time.Time) string {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())

	dayOfYear := int(day.Sub(jan1)/(24*time.Hour)) + 1
	week := (dayOfYear + 6) / 7

	return formatWeekKey(week, t.Year())
}

// ISOWeekKey buckets t by standard ISO-8601 week numbering. The year in the
// key is the ISO week-year: the first days of January can land in the last
// week of the previous year.
func ISOWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return formatWeekKey(week, year)
}

// WeekKeyFor resolves the weekly bucket for now under whichever rule is
// active at now. The group-attendance flow does not go through this switch;
// it calls LegacyWeekKey directly.
func WeekKeyFor(now time.Time) string {
	if now.Before(RuleCutover) {
		return LegacyWeekKey(now)
	}
	return ISOWeekKey(now)
}

func formatWeekKey(week, year int) string {
	return fmt.Sprintf("week%dyear%d", week, year)
}
