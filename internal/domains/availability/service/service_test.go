package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/availability/model"
	"hotel/internal/domains/availability/model/dto"
	"hotel/internal/domains/availability/service"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	roomID        = "0b8f3a52-6c1d-4e2a-9f47-1d2c3b4a5e61"
	missingRoomID = "7d3e9c10-2a4b-4f6e-8b1c-5e6f7a8b9c02"
)

var today = time.Date(2025, 11, 15, 10, 30, 0, 0, time.UTC)

func date(value string) time.Time {
	parsed, _ := timezone.ParseDate(value)

	return parsed
}

func TestAvailabilityService_CheckAvailability(t *testing.T) {
	room := roomModel.Room{ID: roomID, Name: "Deluxe", Price: 40000, Capacity: 2, IsAvailable: true}

	tests := []struct {
		name      string
		req       dto.CheckAvailabilityRequest
		setupMock func(rooms *roomMocks.MockRoom, bookings *bookingMocks.MockBooking)
		wantKind  string
		wantMsg   string
		want      dto.CheckAvailabilityResponse
	}{
		{
			name:     "missing fields are listed together",
			req:      dto.CheckAvailabilityRequest{CheckOut: "2025-11-20"},
			wantKind: failure.KindMissingFields,
			wantMsg:  "Missing required fields: room_id, check_in",
		},
		{
			name:     "unparseable check in",
			req:      dto.CheckAvailabilityRequest{RoomID: roomID, CheckIn: "20/11/2025", CheckOut: "2025-11-23"},
			wantKind: failure.KindInvalidInput,
		},
		{
			name:     "past check in wins over an inverted range",
			req:      dto.CheckAvailabilityRequest{RoomID: roomID, CheckIn: "2025-11-14", CheckOut: "2025-11-10"},
			wantKind: failure.KindPastCheckIn,
		},
		{
			name:     "same day check out",
			req:      dto.CheckAvailabilityRequest{RoomID: roomID, CheckIn: "2025-11-20", CheckOut: "2025-11-20"},
			wantKind: failure.KindInvalidRange,
		},
		{
			name: "room not found",
			req:  dto.CheckAvailabilityRequest{RoomID: missingRoomID, CheckIn: "2025-11-20", CheckOut: "2025-11-23"},
			setupMock: func(rooms *roomMocks.MockRoom, _ *bookingMocks.MockBooking) {
				rooms.EXPECT().FindByID(gomock.Any(), missingRoomID).Return(roomModel.Room{}, nil)
			},
			wantKind: failure.KindRoomNotFound,
		},
		{
			name:     "too many rooms",
			req:      dto.CheckAvailabilityRequest{RoomID: roomID, CheckIn: "2025-11-20", CheckOut: "2025-11-23", Rooms: 51},
			wantKind: failure.KindInvalidInput,
			wantMsg:  "rooms must be between 1 and 50",
		},
		{
			name:     "malformed room id never reaches the store",
			req:      dto.CheckAvailabilityRequest{RoomID: "not-a-uuid", CheckIn: "2025-11-20", CheckOut: "2025-11-23"},
			wantKind: failure.KindRoomNotFound,
		},
		{
			name: "disabled room is a negative result",
			req:  dto.CheckAvailabilityRequest{RoomID: roomID, CheckIn: "2025-11-20", CheckOut: "2025-11-23"},
			setupMock: func(rooms *roomMocks.MockRoom, _ *bookingMocks.MockBooking) {
				disabled := room
				disabled.IsAvailable = false
				rooms.EXPECT().FindByID(gomock.Any(), roomID).Return(disabled, nil)
			},
			want: dto.CheckAvailabilityResponse{
				Available: false,
				RoomName:  "Deluxe",
				Reason:    model.ReasonRoomDisabled,
				Message:   dto.MsgRoomDisabled,
			},
		},
		{
			name: "overlapping booking",
			req:  dto.CheckAvailabilityRequest{RoomID: roomID, CheckIn: "2025-11-20", CheckOut: "2025-11-23"},
			setupMock: func(rooms *roomMocks.MockRoom, bookings *bookingMocks.MockBooking) {
				rooms.EXPECT().FindByID(gomock.Any(), roomID).Return(room, nil)
				bookings.EXPECT().HasConflict(gomock.Any(), roomID, gomock.Any()).Return(true, nil)
			},
			want: dto.CheckAvailabilityResponse{
				Available:     false,
				RoomName:      "Deluxe",
				PricePerNight: 40000,
				Nights:        3,
				Rooms:         1,
				TotalPrice:    120000,
				Reason:        model.ReasonDatesUnavailable,
				Message:       dto.MsgDatesUnavailable,
			},
		},
		{
			name: "available with room count default",
			req:  dto.CheckAvailabilityRequest{RoomID: roomID, CheckIn: "2025-11-20", CheckOut: "2025-11-23"},
			setupMock: func(rooms *roomMocks.MockRoom, bookings *bookingMocks.MockBooking) {
				rooms.EXPECT().FindByID(gomock.Any(), roomID).Return(room, nil)
				bookings.EXPECT().
					HasConflict(gomock.Any(), roomID, bookingModel.Stay{CheckIn: date("2025-11-20"), CheckOut: date("2025-11-23")}).
					Return(false, nil)
			},
			want: dto.CheckAvailabilityResponse{
				Available:     true,
				RoomName:      "Deluxe",
				PricePerNight: 40000,
				Nights:        3,
				Rooms:         1,
				TotalPrice:    120000,
				Message:       dto.MsgAvailable,
			},
		},
		{
			name: "check in today is allowed",
			req:  dto.CheckAvailabilityRequest{RoomID: roomID, CheckIn: "2025-11-15", CheckOut: "2025-11-16", Rooms: 2},
			setupMock: func(rooms *roomMocks.MockRoom, bookings *bookingMocks.MockBooking) {
				rooms.EXPECT().FindByID(gomock.Any(), roomID).Return(room, nil)
				bookings.EXPECT().HasConflict(gomock.Any(), roomID, gomock.Any()).Return(false, nil)
			},
			want: dto.CheckAvailabilityResponse{
				Available:     true,
				RoomName:      "Deluxe",
				PricePerNight: 40000,
				Nights:        1,
				Rooms:         2,
				TotalPrice:    80000,
				Message:       dto.MsgAvailable,
			},
		},
		{
			name:     "negative room count",
			req:      dto.CheckAvailabilityRequest{RoomID: roomID, CheckIn: "2025-11-20", CheckOut: "2025-11-23", Rooms: -1},
			wantKind: failure.KindInvalidInput,
		},
		{
			name: "conflict lookup failure",
			req:  dto.CheckAvailabilityRequest{RoomID: roomID, CheckIn: "2025-11-20", CheckOut: "2025-11-23"},
			setupMock: func(rooms *roomMocks.MockRoom, bookings *bookingMocks.MockBooking) {
				rooms.EXPECT().FindByID(gomock.Any(), roomID).Return(room, nil)
				bookings.EXPECT().HasConflict(gomock.Any(), roomID, gomock.Any()).Return(false, errors.New("db down"))
			},
			wantKind: failure.KindServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			rooms := roomMocks.NewMockRoom(ctrl)
			bookings := bookingMocks.NewMockBooking(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(rooms, bookings)
			}

			svc := service.New(rooms, bookings, otelMocks.NewOtel(), timezone.FixedClock(today))

			res, err := svc.CheckAvailability(context.Background(), tt.req)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, err.Error())
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestAvailabilityService_ValidateStay(t *testing.T) {
	svc := service.New(nil, nil, otelMocks.NewOtel(), timezone.FixedClock(today))

	tests := []struct {
		name     string
		stay     bookingModel.Stay
		wantKind string
	}{
		{"today to tomorrow", bookingModel.Stay{CheckIn: date("2025-11-15"), CheckOut: date("2025-11-16")}, ""},
		{"yesterday", bookingModel.Stay{CheckIn: date("2025-11-14"), CheckOut: date("2025-11-16")}, failure.KindPastCheckIn},
		{"inverted", bookingModel.Stay{CheckIn: date("2025-11-20"), CheckOut: date("2025-11-18")}, failure.KindInvalidRange},
		{"a full year", bookingModel.Stay{CheckIn: date("2025-11-15"), CheckOut: date("2026-11-15")}, ""},
		{"beyond a year", bookingModel.Stay{CheckIn: date("2025-11-15"), CheckOut: date("2026-11-16")}, failure.KindInvalidRange},
		{"until the end of the calendar", bookingModel.Stay{CheckIn: date("2025-11-20"), CheckOut: date("9999-12-31")}, failure.KindInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateStay(tt.stay)

			if tt.wantKind == "" {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantKind, failure.GetKind(err))
		})
	}
}
