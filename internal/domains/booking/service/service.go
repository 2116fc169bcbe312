package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	availabilityService "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/notification"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	msgBookingNotFound   = "Booking not found"
	msgRoomUnavailable   = "Room is not available for the selected dates"
	msgInvalidDates      = "check_in and check_out must be dates in YYYY-MM-DD format"
	msgInvalidStatus     = "Invalid booking status: %s"
	msgInvalidTransition = "Cannot change booking status from %s to %s"
	msgStaleTransition   = "Booking status was changed by another request, please reload"
	msgUpdateFailed      = "Failed to update booking status"
	msgCreateFailed      = "Failed to create booking"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ListBookingsFilter) (dto.GetBookingsResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.UpdateStatusResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	availability availabilityService.Availability
	sender       notification.Sender
	cfg          *config.Config
	otel         otel.Otel
	clock        timezone.Clock
	generateCode model.CodeGenerator
}

func New(
	repo repository.Booking,
	availability availabilityService.Availability,
	sender notification.Sender,
	cfg *config.Config,
	otel otel.Otel,
	clock timezone.Clock,
	generateCode model.CodeGenerator,
) Booking {
	return &serviceImpl{
		repo:         repo,
		availability: availability,
		sender:       sender,
		cfg:          cfg,
		otel:         otel,
		clock:        clock,
		generateCode: generateCode,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	stay, err := req.Stay()
	if err != nil {
		return res, failure.Invalid(failure.KindInvalidInput, msgInvalidDates) // nolint:wrapcheck
	}

	if err = s.availability.ValidateStay(stay); err != nil {
		return res, err //nolint:wrapcheck
	}

	// Early exit only. The bookings_no_overlap constraint decides at insert time.
	result, err := s.availability.Evaluate(ctx, req.RoomID, stay, req.Rooms)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !result.Available {
		return res, failure.ConflictKind(failure.KindRoomUnavailable, msgRoomUnavailable) // nolint:wrapcheck
	}

	booking := req.ToModel(stay, result.Quote.Total, shared.ActorFromContext(ctx), s.clock())

	err = s.repo.Create(ctx, booking)
	if errors.Is(err, repository.ErrRoomUnavailable) {
		log.Info().Str("room_id", booking.RoomID).Msg("booking rejected by overlap constraint")

		return res, failure.ConflictKind(failure.KindRoomUnavailable, msgRoomUnavailable) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("room_id", booking.RoomID).Msg("failed to create booking")

		return res, failure.Internal(failure.KindServerError, msgCreateFailed) // nolint:wrapcheck
	}

	warnings := notification.Dispatch(ctx, s.sender,
		notification.BookingConfirmation{
			To:          booking.Email,
			BookingID:   booking.ID,
			GuestName:   booking.GuestName(),
			RoomName:    result.Room.Name,
			CheckIn:     timezone.FormatDate(booking.CheckIn),
			CheckOut:    timezone.FormatDate(booking.CheckOut),
			Nights:      int64(result.Quote.Nights),
			Rooms:       booking.Rooms,
			TotalAmount: booking.TotalAmount,
		},
		notification.AdminAlert{
			To:              s.cfg.Notification.AdminEmail,
			BookingID:       booking.ID,
			GuestName:       booking.GuestName(),
			GuestEmail:      booking.Email,
			GuestPhone:      booking.Phone,
			RoomName:        result.Room.Name,
			CheckIn:         timezone.FormatDate(booking.CheckIn),
			CheckOut:        timezone.FormatDate(booking.CheckOut),
			Adults:          booking.Adults,
			Children:        booking.Children,
			TotalAmount:     booking.TotalAmount,
			SpecialRequests: booking.SpecialRequests,
		},
	)

	res.FromModel(booking, result.Room.Name, warnings)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	detail, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(detail)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ListBookingsFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&filter); err != nil {
		return res, err //nolint:wrapcheck
	}

	group := filter.ToFilterGroup()

	bookings, err := s.repo.GetAll(ctx, params, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	total, err := s.repo.Count(ctx, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	res.FromModels(bookings, total, params.Limit)

	return res, nil
}

// UpdateStatus moves the booking along the lifecycle. The write only lands while the stored
// status still equals the one the transition was validated against.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.UpdateStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	next, err := model.ParseStatus(req.Status)
	if err != nil {
		return res, failure.Invalid(failure.KindInvalidStatus, fmt.Sprintf(msgInvalidStatus, req.Status)) // nolint:wrapcheck
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !booking.Status.CanTransitionTo(next) {
		return res, failure.Invalid(failure.KindInvalidTransition, fmt.Sprintf(msgInvalidTransition, booking.Status, next)) // nolint:wrapcheck
	}

	user := shared.ActorFromContext(ctx)
	now := s.clock()

	mod := map[string]any{
		model.FieldStatus:        next,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	code, err := s.transition(ctx, booking.Booking, next, mod)
	if err != nil {
		return res, err
	}

	booking.Status = next
	booking.VerificationCode = code
	booking.ModifiedAt = now
	booking.ModifiedBy = user

	update := notification.BookingStatusUpdate{
		To:        booking.Email,
		BookingID: booking.ID,
		GuestName: booking.GuestName(),
		Status:    next.String(),
		RoomName:  booking.RoomName,
		CheckIn:   timezone.FormatDate(booking.CheckIn),
		CheckOut:  timezone.FormatDate(booking.CheckOut),
		Reason:    req.Reason,
	}

	if next == model.StatusConfirmed {
		update.VerificationCode = booking.Code()
	}

	res.Warnings = notification.Dispatch(ctx, s.sender, update)
	res.Booking.FromModel(booking)
	res.Message = dto.MsgStatusUpdated

	return res, nil
}

// transition applies mod with compare-and-set on the current status. Confirming a booking without
// a code issues one, drawing a fresh code when the unique index reports a collision.
func (s *serviceImpl) transition(ctx context.Context, booking model.Booking, next model.Status, mod map[string]any) (*string, error) {
	code := booking.VerificationCode
	issueCode := next == model.StatusConfirmed && code == nil

	attempts := 1
	if issueCode {
		attempts = max(s.cfg.Booking.VerificationCodeRetries, 1)
	}

	for range attempts {
		if issueCode {
			generated, err := s.generateCode()
			if err != nil {
				log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to generate verification code")

				return nil, failure.Internal(failure.KindUpdateFailed, msgUpdateFailed) // nolint:wrapcheck
			}

			mod[model.FieldVerificationCode] = generated
			code = &generated
		}

		ok, err := s.repo.Transition(ctx, booking.ID, booking.Status, mod)
		if issueCode && errors.Is(err, repository.ErrVerificationCodeTaken) {
			log.Warn().Str("booking_id", booking.ID).Msg("verification code collision, retrying")

			continue
		}

		if err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to update booking status")

			return nil, failure.Internal(failure.KindUpdateFailed, msgUpdateFailed) // nolint:wrapcheck
		}

		if !ok {
			return nil, failure.Invalid(failure.KindInvalidTransition, msgStaleTransition) // nolint:wrapcheck
		}

		return code, nil
	}

	log.Error().Str("booking_id", booking.ID).Int("attempts", attempts).Msg("exhausted verification code attempts")

	return nil, failure.Internal(failure.KindUpdateFailed, msgUpdateFailed) // nolint:wrapcheck
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.BookingDetail, error) {
	if !validator.IsID(id) {
		return model.BookingDetail{}, failure.NotFoundKind(failure.KindBookingNotFound, msgBookingNotFound) // nolint:wrapcheck
	}

	detail, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return detail, fmt.Errorf("failed to get booking: %w", err)
	}

	if detail.ID == constant.Empty {
		return detail, failure.NotFoundKind(failure.KindBookingNotFound, msgBookingNotFound) // nolint:wrapcheck
	}

	return detail, nil
}
