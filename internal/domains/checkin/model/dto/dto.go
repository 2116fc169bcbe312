package dto

import (
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"hotel/shared/timezone"
)

const MsgCheckedIn = "Guest checked in successfully"

type VerifyCheckInRequest struct {
	VerificationCode string `json:"verification_code"`
}

// GuestDetails is what the front desk sees after a successful check-in.
type GuestDetails struct {
	ID               string `json:"id"`
	GuestName        string `json:"guest_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	RoomName         string `json:"room_name"`
	RoomPrice        int64  `json:"room_price"`
	CheckIn          string `json:"check_in"`
	CheckOut         string `json:"check_out"`
	Adults           int    `json:"adults"`
	Children         int    `json:"children"`
	Rooms            int    `json:"rooms"`
	TotalAmount      int64  `json:"total_amount"`
	SpecialRequests  string `json:"special_requests"`
	CheckedInAt      string `json:"checked_in_at"`
	CheckedInBy      string `json:"checked_in_by"`
	VerificationCode string `json:"verification_code"`
}

type VerifyCheckInResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Booking GuestDetails `json:"booking"`
}

func (v *VerifyCheckInResponse) FromModel(detail model.BookingDetail) {
	v.Success = true
	v.Message = MsgCheckedIn
	v.Booking = GuestDetails{
		ID:               detail.ID,
		GuestName:        detail.GuestName(),
		Email:            detail.Email,
		Phone:            detail.Phone,
		RoomName:         detail.RoomName,
		RoomPrice:        detail.RoomPrice,
		CheckIn:          timezone.FormatDate(detail.CheckIn),
		CheckOut:         timezone.FormatDate(detail.CheckOut),
		Adults:           detail.Adults,
		Children:         detail.Children,
		Rooms:            detail.Rooms,
		TotalAmount:      detail.TotalAmount,
		SpecialRequests:  detail.SpecialRequests,
		VerificationCode: detail.Code(),
	}

	if detail.CheckedInAt != nil {
		v.Booking.CheckedInAt = timezone.Format(*detail.CheckedInAt, constant.DateFormat)
	}

	if detail.CheckedInBy != nil {
		v.Booking.CheckedInBy = *detail.CheckedInBy
	}
}
