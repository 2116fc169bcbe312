package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepository "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/checkin/model/dto"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	msgInvalidInput     = "Please enter a valid verification code"
	msgInvalidFormat    = "Verification code must be 8 characters long"
	msgCodeNotFound     = "Invalid verification code. Please check the code and try again."
	msgPending          = "This booking is still pending confirmation. Please wait for confirmation email."
	msgCancelled        = "This booking has been cancelled and cannot be checked in."
	msgCompleted        = "This booking has already been completed."
	msgOtherStatus      = "This booking cannot be checked in. Status: %s"
	msgAlreadyCheckedIn = "This guest has already been checked in on %s"
	msgEarlyCheckIn     = "Check-in date is %s. Early check-in not allowed."
	msgUpdateFailed     = "Failed to complete check-in. Please try again."

	checkInDateLayout = "Mon, Jan 2, 2006"
	checkedInLayout   = "Jan 2, 2006 15:04"
)

type CheckIn interface {
	Verify(ctx context.Context, req dto.VerifyCheckInRequest, operatorID string) (dto.VerifyCheckInResponse, error)
}

type serviceImpl struct {
	repo  bookingRepository.Booking
	otel  otel.Otel
	clock timezone.Clock
}

func New(repo bookingRepository.Booking, otel otel.Otel, clock timezone.Clock) CheckIn {
	return &serviceImpl{
		repo:  repo,
		otel:  otel,
		clock: clock,
	}
}

// Verify redeems a verification code. Every rejection leaves the booking untouched and a
// repeated call after success reports ALREADY_CHECKED_IN.
func (s *serviceImpl) Verify(ctx context.Context, req dto.VerifyCheckInRequest, operatorID string) (res dto.VerifyCheckInResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".checkin.Verify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	code := strings.TrimSpace(req.VerificationCode)
	if code == constant.Empty {
		return res, failure.Invalid(failure.KindInvalidInput, msgInvalidInput) // nolint:wrapcheck
	}

	if utf8.RuneCountInString(code) != bookingModel.VerificationCodeLength {
		return res, failure.Invalid(failure.KindInvalidCodeFormat, msgInvalidFormat) // nolint:wrapcheck
	}

	booking, err := s.find(ctx, code)
	if err != nil {
		return res, err
	}

	now := s.clock()
	if err = precondition(booking.Booking, timezone.DateOf(now)); err != nil {
		return res, err
	}

	ok, err := s.repo.CheckIn(ctx, booking.ID, operatorID, now)
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to check in guest")

		return res, failure.Internal(failure.KindUpdateFailed, msgUpdateFailed) // nolint:wrapcheck
	}

	if !ok {
		// Lost a race with another desk; report what the winner left behind.
		current, findErr := s.find(ctx, code)
		if findErr != nil {
			return res, findErr
		}

		if err = precondition(current.Booking, timezone.DateOf(now)); err != nil {
			return res, err
		}

		return res, failure.Internal(failure.KindUpdateFailed, msgUpdateFailed) // nolint:wrapcheck
	}

	booking.CheckedInAt = &now
	booking.CheckedInBy = &operatorID
	booking.ModifiedAt = now
	booking.ModifiedBy = operatorID

	log.Info().Str("booking_id", booking.ID).Str("operator", operatorID).Msg("guest checked in")

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, code string) (bookingModel.BookingDetail, error) {
	booking, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("failed to find booking by verification code")

		return booking, fmt.Errorf("failed to find booking by verification code: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFoundKind(failure.KindCodeNotFound, msgCodeNotFound) // nolint:wrapcheck
	}

	return booking, nil
}

// precondition checks status, then prior check-in, then the scheduled date.
func precondition(booking bookingModel.Booking, today time.Time) error {
	if booking.Status != bookingModel.StatusConfirmed {
		return failure.Invalid(failure.KindInvalidStatus, statusMessage(booking.Status)) // nolint:wrapcheck
	}

	if booking.IsCheckedIn() {
		checkedIn := timezone.Format(*booking.CheckedInAt, checkedInLayout)

		return failure.Invalid(failure.KindAlreadyCheckedIn, fmt.Sprintf(msgAlreadyCheckedIn, checkedIn)) // nolint:wrapcheck
	}

	if booking.Stay().CheckIn.After(today) {
		scheduled := booking.Stay().CheckIn.Format(checkInDateLayout)

		return failure.Invalid(failure.KindEarlyCheckIn, fmt.Sprintf(msgEarlyCheckIn, scheduled)) // nolint:wrapcheck
	}

	return nil
}

func statusMessage(status bookingModel.Status) string {
	switch status {
	case bookingModel.StatusPending:
		return msgPending
	case bookingModel.StatusCancelled:
		return msgCancelled
	case bookingModel.StatusCompleted:
		return msgCompleted
	default:
		return fmt.Sprintf(msgOtherStatus, status)
	}
}
