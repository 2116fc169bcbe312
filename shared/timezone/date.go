package timezone

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = time.DateOnly

const secondsPerDay = 24 * 60 * 60

// Clock returns the current instant. Services take a Clock so "today" can be pinned in tests.
type Clock func() time.Time

// NewClock returns the application clock.
func NewClock() Clock {
	return Now
}

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

// Today is the calendar date of the clock in the application timezone.
func (c Clock) Today() time.Time {
	return DateOf(c())
}

// DateOf strips the time of day from t as seen in the application timezone.
// Calendar dates are represented at UTC midnight so day arithmetic never crosses a DST shift.
func DateOf(t time.Time) time.Time {
	local := ToAppTime(t)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", value, err)
	}

	return date, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return date.UTC().Format(DateLayout)
}

// DaysBetween counts calendar days from start to end, rounding partial days up.
// Counts Unix seconds, so ranges beyond the time.Duration limit stay exact.
func DaysBetween(start, end time.Time) int {
	diff := end.Unix() - start.Unix()
	days := diff / secondsPerDay

	if diff%secondsPerDay > 0 {
		days++
	}

	return int(days)
}
