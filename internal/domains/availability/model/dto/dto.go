package dto

import (
	"strings"

	"hotel/internal/domains/availability/model"
)

const (
	FieldRoomID   = "room_id"
	FieldCheckIn  = "check_in"
	FieldCheckOut = "check_out"

	MsgAvailable        = "Room is available for your selected dates"
	MsgDatesUnavailable = "Room is not available for the selected dates"
	MsgRoomDisabled     = "Room is currently unavailable"
)

type CheckAvailabilityRequest struct {
	RoomID   string `json:"room_id"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Rooms    int    `json:"rooms"`
}

// MissingFields lists absent required fields in request order.
func (c *CheckAvailabilityRequest) MissingFields() []string {
	var missing []string

	for _, field := range []struct {
		name  string
		value string
	}{
		{FieldRoomID, c.RoomID},
		{FieldCheckIn, c.CheckIn},
		{FieldCheckOut, c.CheckOut},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}

	return missing
}

type CheckAvailabilityResponse struct {
	Available     bool   `json:"available"`
	RoomName      string `json:"room_name,omitempty"`
	PricePerNight int64  `json:"price_per_night"`
	Nights        int    `json:"nights"`
	Rooms         int    `json:"rooms"`
	TotalPrice    int64  `json:"total_price"`
	Reason        string `json:"reason,omitempty"`
	Message       string `json:"message"`
}

func (c *CheckAvailabilityResponse) FromResult(result model.Result) {
	c.Available = result.Available
	c.RoomName = result.Room.Name
	c.Reason = result.Reason

	if result.Reason != model.ReasonRoomDisabled {
		c.PricePerNight = result.Quote.PricePerNight
		c.Nights = result.Quote.Nights
		c.Rooms = result.Quote.Rooms
		c.TotalPrice = result.Quote.Total
	}

	switch result.Reason {
	case model.ReasonRoomDisabled:
		c.Message = MsgRoomDisabled
	case model.ReasonDatesUnavailable:
		c.Message = MsgDatesUnavailable
	default:
		c.Message = MsgAvailable
	}
}
