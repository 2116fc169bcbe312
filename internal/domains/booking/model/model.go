package model

import (
	"strings"
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldRoomID           = "room_id"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldCheckIn          = "check_in"
	FieldCheckOut         = "check_out"
	FieldAdults           = "adults"
	FieldChildren         = "children"
	FieldRooms            = "rooms"
	FieldSpecialRequests  = "special_requests"
	FieldStatus           = "status"
	FieldTotalAmount      = "total_amount"
	FieldPaymentStatus    = "payment_status"
	FieldVerificationCode = "verification_code"
	FieldCheckedInAt      = "checked_in_at"
	FieldCheckedInBy      = "checked_in_by"
)

const (
	PaymentStatusPending = "pending"
)

type Booking struct {
	ID               string     `db:"id"`
	RoomID           string     `db:"room_id"`
	FirstName        string     `db:"first_name"`
	LastName         string     `db:"last_name"`
	Email            string     `db:"email"`
	Phone            string     `db:"phone"`
	CheckIn          time.Time  `db:"check_in"`
	CheckOut         time.Time  `db:"check_out"`
	Adults           int        `db:"adults"`
	Children         int        `db:"children"`
	Rooms            int        `db:"rooms"`
	SpecialRequests  string     `db:"special_requests"`
	Status           Status     `db:"status"`
	TotalAmount      int64      `db:"total_amount"`
	PaymentStatus    string     `db:"payment_status"`
	VerificationCode *string    `db:"verification_code"`
	CheckedInAt      *time.Time `db:"checked_in_at"`
	CheckedInBy      *string    `db:"checked_in_by"`
	model.Metadata
}

func (b Booking) Stay() Stay {
	return Stay{CheckIn: b.CheckIn.UTC(), CheckOut: b.CheckOut.UTC()}
}

func (b Booking) GuestName() string {
	return strings.TrimSpace(b.FirstName + " " + b.LastName)
}

func (b Booking) Code() string {
	if b.VerificationCode == nil {
		return ""
	}

	return *b.VerificationCode
}

func (b Booking) IsCheckedIn() bool {
	return b.CheckedInAt != nil
}

// BookingDetail is a booking joined with the room it reserves.
type BookingDetail struct {
	Booking
	RoomName  string `column:"name"  db:"room_name"  table:"rooms"`
	RoomPrice int64  `column:"price" db:"room_price" table:"rooms"`
}

func (BookingDetail) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = bookings.room_id"
}
