package model

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/pricing"
	roomModel "hotel/internal/domains/room/model"
)

const (
	ReasonRoomDisabled     = "room disabled"
	ReasonDatesUnavailable = "dates unavailable"
)

// Result is the outcome of evaluating a stay against one room.
type Result struct {
	Room      roomModel.Room
	Stay      bookingModel.Stay
	Available bool
	Reason    string
	Quote     pricing.Quote
}
