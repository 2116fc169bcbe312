package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel/infras/otel"
	"hotel/internal/domains/availability/model"
	"hotel/internal/domains/availability/model/dto"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/pricing"
	bookingRepository "hotel/internal/domains/booking/repository"
	roomRepository "hotel/internal/domains/room/repository"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	msgPastCheckIn   = "Check-in date cannot be in the past"
	msgInvalidRange  = "Check-out date must be after check-in date"
	msgRoomNotFound  = "Room not found"
	msgInvalidRooms  = "rooms must be between 1 and %d"
	msgStayTooLong   = "Stays are limited to %d nights"
	msgInvalidDate   = "%s must be a date in YYYY-MM-DD format"
	msgMissingFields = "Missing required fields: %s"
)

// Availability answers whether a room can take a stay. Every method is read-only.
type Availability interface {
	CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (dto.CheckAvailabilityResponse, error)
	ValidateStay(stay bookingModel.Stay) error
	Evaluate(ctx context.Context, roomID string, stay bookingModel.Stay, rooms int) (model.Result, error)
}

type serviceImpl struct {
	rooms    roomRepository.Room
	bookings bookingRepository.Booking
	otel     otel.Otel
	clock    timezone.Clock
}

func New(rooms roomRepository.Room, bookings bookingRepository.Booking, otel otel.Otel, clock timezone.Clock) Availability {
	return &serviceImpl{
		rooms:    rooms,
		bookings: bookings,
		otel:     otel,
		clock:    clock,
	}
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (res dto.CheckAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if missing := req.MissingFields(); len(missing) > 0 {
		return res, failure.Invalid(failure.KindMissingFields, fmt.Sprintf(msgMissingFields, strings.Join(missing, ", "))) // nolint:wrapcheck
	}

	stay, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	if err = s.ValidateStay(stay); err != nil {
		return res, err
	}

	rooms := req.Rooms
	if rooms == 0 {
		rooms = 1
	}

	result, err := s.Evaluate(ctx, req.RoomID, stay, rooms)
	if err != nil {
		return res, err
	}

	res.FromResult(result)

	return res, nil
}

// ValidateStay rejects stays starting before today and empty or inverted ranges.
func (s *serviceImpl) ValidateStay(stay bookingModel.Stay) error {
	if stay.StartsBefore(s.clock.Today()) {
		return failure.Invalid(failure.KindPastCheckIn, msgPastCheckIn) // nolint:wrapcheck
	}

	if !stay.IsValid() {
		return failure.Invalid(failure.KindInvalidRange, msgInvalidRange) // nolint:wrapcheck
	}

	if stay.Nights() > pricing.MaxNights {
		return failure.Invalid(failure.KindInvalidRange, fmt.Sprintf(msgStayTooLong, pricing.MaxNights)) // nolint:wrapcheck
	}

	return nil
}

// Evaluate looks the room up, runs the conflict check and prices the stay.
// A disabled room or an overlapping booking is a negative result, not an error.
func (s *serviceImpl) Evaluate(ctx context.Context, roomID string, stay bookingModel.Stay, rooms int) (res model.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Evaluate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if rooms < 1 || rooms > pricing.MaxRooms {
		return res, failure.Invalid(failure.KindInvalidInput, fmt.Sprintf(msgInvalidRooms, pricing.MaxRooms)) // nolint:wrapcheck
	}

	if !validator.IsID(roomID) {
		return res, failure.NotFoundKind(failure.KindRoomNotFound, msgRoomNotFound) // nolint:wrapcheck
	}

	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if !room.Exists() {
		return res, failure.NotFoundKind(failure.KindRoomNotFound, msgRoomNotFound) // nolint:wrapcheck
	}

	res.Room = room
	res.Stay = stay

	if !room.IsAvailable {
		res.Reason = model.ReasonRoomDisabled

		return res, nil
	}

	conflict, err := s.bookings.HasConflict(ctx, roomID, stay)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to check booking conflicts")

		return res, fmt.Errorf("failed to check booking conflicts: %w", err)
	}

	res.Quote, err = pricing.Price(room.Price, stay, rooms)
	if err != nil {
		return res, priceFailure(err)
	}

	if conflict {
		res.Reason = model.ReasonDatesUnavailable

		return res, nil
	}

	res.Available = true

	return res, nil
}

func parseStay(checkIn, checkOut string) (bookingModel.Stay, error) {
	in, err := timezone.ParseDate(checkIn)
	if err != nil {
		return bookingModel.Stay{}, failure.Invalid(failure.KindInvalidInput, fmt.Sprintf(msgInvalidDate, dto.FieldCheckIn)) // nolint:wrapcheck
	}

	out, err := timezone.ParseDate(checkOut)
	if err != nil {
		return bookingModel.Stay{}, failure.Invalid(failure.KindInvalidInput, fmt.Sprintf(msgInvalidDate, dto.FieldCheckOut)) // nolint:wrapcheck
	}

	return bookingModel.Stay{CheckIn: in, CheckOut: out}, nil
}

func priceFailure(err error) error {
	switch {
	case errors.Is(err, pricing.ErrInvalidStay):
		return failure.Invalid(failure.KindInvalidRange, msgInvalidRange) // nolint:wrapcheck
	case errors.Is(err, pricing.ErrStayTooLong):
		return failure.Invalid(failure.KindInvalidRange, fmt.Sprintf(msgStayTooLong, pricing.MaxNights)) // nolint:wrapcheck
	case errors.Is(err, pricing.ErrInvalidRooms):
		return failure.Invalid(failure.KindInvalidInput, fmt.Sprintf(msgInvalidRooms, pricing.MaxRooms)) // nolint:wrapcheck
	default:
		return fmt.Errorf("failed to price stay: %w", err)
	}
}
