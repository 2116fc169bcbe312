package model

import (
	"time"

	"hotel/shared/timezone"
)

// Stay is a half-open [CheckIn, CheckOut) range of calendar dates.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func NewStay(checkIn, checkOut time.Time) Stay {
	return Stay{
		CheckIn:  timezone.DateOf(checkIn),
		CheckOut: timezone.DateOf(checkOut),
	}
}

// ParseStay parses both ends as YYYY-MM-DD dates.
func ParseStay(checkIn, checkOut string) (Stay, error) {
	in, err := timezone.ParseDate(checkIn)
	if err != nil {
		return Stay{}, err //nolint:wrapcheck
	}

	out, err := timezone.ParseDate(checkOut)
	if err != nil {
		return Stay{}, err //nolint:wrapcheck
	}

	return Stay{CheckIn: in, CheckOut: out}, nil
}

// Overlaps is the single conflict predicate: a.in < b.out && b.in < a.out.
// A check-out on the day of another check-in does not overlap.
func (s Stay) Overlaps(other Stay) bool {
	return s.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(s.CheckOut)
}

// Nights counts calendar nights, rounding a partial day up.
func (s Stay) Nights() int {
	return timezone.DaysBetween(s.CheckIn, s.CheckOut)
}

func (s Stay) IsValid() bool {
	return s.CheckOut.After(s.CheckIn)
}

func (s Stay) StartsBefore(date time.Time) bool {
	return s.CheckIn.Before(date)
}
