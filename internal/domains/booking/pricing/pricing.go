// Package pricing derives the amount owed for a stay. Amounts are integer minor units.
package pricing

import (
	"errors"
	"math"

	"hotel/internal/domains/booking/model"
)

const (
	MaxNights = 365
	MaxRooms  = 50
)

var (
	ErrInvalidStay    = errors.New("check-out must be after check-in")
	ErrStayTooLong    = errors.New("stay exceeds the maximum number of nights")
	ErrInvalidRooms   = errors.New("room count out of range")
	ErrInvalidRate    = errors.New("nightly rate must not be negative")
	ErrAmountOverflow = errors.New("total amount does not fit in 64 bits")
)

type Quote struct {
	Nights        int   `json:"nights"`
	PricePerNight int64 `json:"price_per_night"`
	Rooms         int   `json:"rooms"`
	Total         int64 `json:"total"`
}

// Price computes rate x nights x rooms. Stays are capped at MaxNights and MaxRooms.
func Price(rate int64, stay model.Stay, rooms int) (Quote, error) {
	if rate < 0 {
		return Quote{}, ErrInvalidRate
	}

	nights := stay.Nights()
	if nights < 1 {
		return Quote{}, ErrInvalidStay
	}

	if nights > MaxNights {
		return Quote{}, ErrStayTooLong
	}

	if rooms < 1 || rooms > MaxRooms {
		return Quote{}, ErrInvalidRooms
	}

	units := int64(nights) * int64(rooms)
	if rate > math.MaxInt64/units {
		return Quote{}, ErrAmountOverflow
	}

	return Quote{
		Nights:        nights,
		PricePerNight: rate,
		Rooms:         rooms,
		Total:         rate * units,
	}, nil
}
