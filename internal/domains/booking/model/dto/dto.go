package dto

import (
	"strings"
	"time"

	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

const (
	MsgBookingCreated = "Booking created successfully. You will receive a confirmation email shortly."
	MsgStatusUpdated  = "Booking status updated successfully"
)

// CreateBookingRequest is the public reservation form.
type CreateBookingRequest struct {
	RoomID          string `json:"room_id"          validate:"required"`
	FirstName       string `json:"first_name"       validate:"required,max=100"`
	LastName        string `json:"last_name"        validate:"required,max=100"`
	Email           string `json:"email"            validate:"required,email,max=255"`
	Phone           string `json:"phone"            validate:"required,max=30"`
	CheckIn         string `json:"check_in"         validate:"required,calendardate"`
	CheckOut        string `json:"check_out"        validate:"required,calendardate"`
	Adults          int    `json:"adults"           validate:"required,min=1"`
	Children        int    `json:"children"         validate:"min=0"`
	Rooms           int    `json:"rooms"            validate:"required,min=1,max=50"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
}

func (c *CreateBookingRequest) Stay() (model.Stay, error) {
	return model.ParseStay(c.CheckIn, c.CheckOut)
}

func (c *CreateBookingRequest) ToModel(stay model.Stay, totalAmount int64, user string, now time.Time) model.Booking {
	return model.Booking{
		ID:              uuid.NewString(),
		RoomID:          c.RoomID,
		FirstName:       strings.TrimSpace(c.FirstName),
		LastName:        strings.TrimSpace(c.LastName),
		Email:           strings.TrimSpace(c.Email),
		Phone:           strings.TrimSpace(c.Phone),
		CheckIn:         stay.CheckIn,
		CheckOut:        stay.CheckOut,
		Adults:          c.Adults,
		Children:        c.Children,
		Rooms:           c.Rooms,
		SpecialRequests: c.SpecialRequests,
		Status:          model.StatusPending,
		TotalAmount:     totalAmount,
		PaymentStatus:   model.PaymentStatusPending,
		Metadata:        gModel.NewMetadata(now, user),
	}
}

type BookingSummary struct {
	ID          string `json:"id"`
	RoomName    string `json:"room_name"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	TotalAmount int64  `json:"total_amount"`
	Status      string `json:"status"`
}

type CreateBookingResponse struct {
	Success  bool           `json:"success"`
	Booking  BookingSummary `json:"booking"`
	Message  string         `json:"message"`
	Warnings []string       `json:"warnings,omitempty"`
}

func (c *CreateBookingResponse) FromModel(booking model.Booking, roomName string, warnings []string) {
	c.Success = true
	c.Booking = BookingSummary{
		ID:          booking.ID,
		RoomName:    roomName,
		CheckIn:     timezone.FormatDate(booking.CheckIn),
		CheckOut:    timezone.FormatDate(booking.CheckOut),
		TotalAmount: booking.TotalAmount,
		Status:      booking.Status.String(),
	}
	c.Message = MsgBookingCreated
	c.Warnings = warnings
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type UpdateStatusResponse struct {
	Booking  BookingResponse `json:"booking"`
	Message  string          `json:"message"`
	Warnings []string        `json:"warnings,omitempty"`
}

type BookingResponse struct {
	ID               string  `json:"id"`
	RoomID           string  `json:"room_id"`
	RoomName         string  `json:"room_name"`
	RoomPrice        int64   `json:"room_price"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	CheckIn          string  `json:"check_in"`
	CheckOut         string  `json:"check_out"`
	Nights           int     `json:"nights"`
	Adults           int     `json:"adults"`
	Children         int     `json:"children"`
	Rooms            int     `json:"rooms"`
	SpecialRequests  string  `json:"special_requests"`
	Status           string  `json:"status"`
	TotalAmount      int64   `json:"total_amount"`
	PaymentStatus    string  `json:"payment_status"`
	VerificationCode *string `json:"verification_code"`
	CheckedInAt      *string `json:"checked_in_at"`
	CheckedInBy      *string `json:"checked_in_by"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(detail model.BookingDetail) {
	b.ID = detail.ID
	b.RoomID = detail.RoomID
	b.RoomName = detail.RoomName
	b.RoomPrice = detail.RoomPrice
	b.FirstName = detail.FirstName
	b.LastName = detail.LastName
	b.Email = detail.Email
	b.Phone = detail.Phone
	b.CheckIn = timezone.FormatDate(detail.CheckIn)
	b.CheckOut = timezone.FormatDate(detail.CheckOut)
	b.Nights = detail.Stay().Nights()
	b.Adults = detail.Adults
	b.Children = detail.Children
	b.Rooms = detail.Rooms
	b.SpecialRequests = detail.SpecialRequests
	b.Status = detail.Status.String()
	b.TotalAmount = detail.TotalAmount
	b.PaymentStatus = detail.PaymentStatus
	b.VerificationCode = detail.VerificationCode
	b.CheckedInBy = detail.CheckedInBy

	if detail.CheckedInAt != nil {
		checkedInAt := timezone.Format(*detail.CheckedInAt, constant.DateFormat)
		b.CheckedInAt = &checkedInAt
	}

	b.Metadata.FromModel(detail.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetBookingsResponse) FromModels(models []model.BookingDetail, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		g.Bookings[i].FromModel(mod)
	}
}

// ListBookingsFilter narrows the back office listing.
type ListBookingsFilter struct {
	Status string `validate:"omitempty,oneof=pending confirmed cancelled completed"`
	RoomID string `validate:"omitempty,uuid"`
	Email  string `validate:"omitempty"`
}

func (l *ListBookingsFilter) ToFilterGroup() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if l.Status != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldStatus, Value: l.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	if l.RoomID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldRoomID, Value: l.RoomID, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	if l.Email != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldEmail, Value: l.Email, Operator: gDto.FilterOperatorLike, Table: model.TableName,
		})
	}

	return filter
}
