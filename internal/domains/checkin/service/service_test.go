package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	otelMocks "hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/checkin/model/dto"
	"hotel/internal/domains/checkin/service"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2025, 12, 1, 14, 0, 0, 0, time.UTC)

func confirmedBooking(checkIn string) bookingModel.BookingDetail {
	stay, _ := bookingModel.ParseStay(checkIn, "2025-12-04")
	code := "ABCD1234"

	return bookingModel.BookingDetail{
		Booking: bookingModel.Booking{
			ID:               "booking-1",
			FirstName:        "Grace",
			LastName:         "Hopper",
			Email:            "grace@example.com",
			CheckIn:          stay.CheckIn,
			CheckOut:         stay.CheckOut,
			Adults:           1,
			Rooms:            1,
			Status:           bookingModel.StatusConfirmed,
			TotalAmount:      120000,
			VerificationCode: &code,
		},
		RoomName:  "Garden Suite",
		RoomPrice: 40000,
	}
}

func TestCheckInService_Verify_Rejections(t *testing.T) {
	checkedInAt := time.Date(2025, 12, 1, 9, 5, 0, 0, time.UTC)

	tests := []struct {
		name      string
		code      string
		setupMock func(repo *bookingMocks.MockBooking)
		wantKind  string
		wantMsg   string
	}{
		{
			name:     "blank code",
			code:     "   ",
			wantKind: failure.KindInvalidInput,
			wantMsg:  "Please enter a valid verification code",
		},
		{
			name:     "wrong length",
			code:     "ABC123",
			wantKind: failure.KindInvalidCodeFormat,
			wantMsg:  "Verification code must be 8 characters long",
		},
		{
			name: "unknown code",
			code: "ZZZZ9999",
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().FindByCode(gomock.Any(), "ZZZZ9999").Return(bookingModel.BookingDetail{}, nil)
			},
			wantKind: failure.KindCodeNotFound,
		},
		{
			name: "eight letters outside ascii are looked up",
			code: "ÄBCDÉ123",
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().FindByCode(gomock.Any(), "ÄBCDÉ123").Return(bookingModel.BookingDetail{}, nil)
			},
			wantKind: failure.KindCodeNotFound,
		},
		{
			name:     "nine characters",
			code:     "ÄBCDÉ1234",
			wantKind: failure.KindInvalidCodeFormat,
		},
		{
			name: "pending booking",
			code: "ABCD1234",
			setupMock: func(repo *bookingMocks.MockBooking) {
				booking := confirmedBooking("2025-12-01")
				booking.Status = bookingModel.StatusPending
				repo.EXPECT().FindByCode(gomock.Any(), "ABCD1234").Return(booking, nil)
			},
			wantKind: failure.KindInvalidStatus,
			wantMsg:  "This booking is still pending confirmation. Please wait for confirmation email.",
		},
		{
			name: "cancelled booking",
			code: "ABCD1234",
			setupMock: func(repo *bookingMocks.MockBooking) {
				booking := confirmedBooking("2025-12-01")
				booking.Status = bookingModel.StatusCancelled
				repo.EXPECT().FindByCode(gomock.Any(), "ABCD1234").Return(booking, nil)
			},
			wantKind: failure.KindInvalidStatus,
			wantMsg:  "This booking has been cancelled and cannot be checked in.",
		},
		{
			name: "completed booking",
			code: "ABCD1234",
			setupMock: func(repo *bookingMocks.MockBooking) {
				booking := confirmedBooking("2025-12-01")
				booking.Status = bookingModel.StatusCompleted
				repo.EXPECT().FindByCode(gomock.Any(), "ABCD1234").Return(booking, nil)
			},
			wantKind: failure.KindInvalidStatus,
			wantMsg:  "This booking has already been completed.",
		},
		{
			name: "already checked in",
			code: "ABCD1234",
			setupMock: func(repo *bookingMocks.MockBooking) {
				booking := confirmedBooking("2025-12-01")
				booking.CheckedInAt = &checkedInAt
				repo.EXPECT().FindByCode(gomock.Any(), "ABCD1234").Return(booking, nil)
			},
			wantKind: failure.KindAlreadyCheckedIn,
			wantMsg:  "This guest has already been checked in on Dec 1, 2025 09:05",
		},
		{
			name: "arrives a day early",
			code: "ABCD1234",
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().FindByCode(gomock.Any(), "ABCD1234").Return(confirmedBooking("2025-12-02"), nil)
			},
			wantKind: failure.KindEarlyCheckIn,
			wantMsg:  "Check-in date is Tue, Dec 2, 2025. Early check-in not allowed.",
		},
		{
			name: "store failure on lookup",
			code: "ABCD1234",
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().FindByCode(gomock.Any(), "ABCD1234").Return(bookingModel.BookingDetail{}, errors.New("timeout"))
			},
			wantKind: failure.KindServerError,
		},
		{
			name: "store failure on update",
			code: "ABCD1234",
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().FindByCode(gomock.Any(), "ABCD1234").Return(confirmedBooking("2025-12-01"), nil)
				repo.EXPECT().CheckIn(gomock.Any(), "booking-1", "staff-1", now).Return(false, errors.New("timeout"))
			},
			wantKind: failure.KindUpdateFailed,
			wantMsg:  "Failed to complete check-in. Please try again.",
		},
		{
			name: "another desk checked the guest in first",
			code: "ABCD1234",
			setupMock: func(repo *bookingMocks.MockBooking) {
				winner := confirmedBooking("2025-12-01")
				winner.CheckedInAt = &checkedInAt

				gomock.InOrder(
					repo.EXPECT().FindByCode(gomock.Any(), "ABCD1234").Return(confirmedBooking("2025-12-01"), nil),
					repo.EXPECT().CheckIn(gomock.Any(), "booking-1", "staff-1", now).Return(false, nil),
					repo.EXPECT().FindByCode(gomock.Any(), "ABCD1234").Return(winner, nil),
				)
			},
			wantKind: failure.KindAlreadyCheckedIn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bookingMocks.NewMockBooking(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := service.New(repo, otelMocks.NewOtel(), timezone.FixedClock(now))

			_, err := svc.Verify(context.Background(), dto.VerifyCheckInRequest{VerificationCode: tt.code}, "staff-1")

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, failure.GetKind(err))

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestCheckInService_Verify_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)

	repo.EXPECT().FindByCode(gomock.Any(), "ABCD1234").Return(confirmedBooking("2025-11-30"), nil)
	repo.EXPECT().CheckIn(gomock.Any(), "booking-1", "staff-1", now).Return(true, nil)

	svc := service.New(repo, otelMocks.NewOtel(), timezone.FixedClock(now))

	res, err := svc.Verify(context.Background(), dto.VerifyCheckInRequest{VerificationCode: " ABCD1234 "}, "staff-1")

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, dto.MsgCheckedIn, res.Message)
	assert.Equal(t, "Grace Hopper", res.Booking.GuestName)
	assert.Equal(t, "Garden Suite", res.Booking.RoomName)
	assert.Equal(t, "2025-11-30", res.Booking.CheckIn)
	assert.Equal(t, "staff-1", res.Booking.CheckedInBy)
	assert.Equal(t, "2025-12-01T14:00:00Z", res.Booking.CheckedInAt)
	assert.Equal(t, "ABCD1234", res.Booking.VerificationCode)
}
