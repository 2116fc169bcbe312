package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"hotel/config"
	"hotel/infras/kafka"
	kafkaMocks "hotel/infras/kafka/mocks"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/notification"
	"hotel/internal/domains/notification/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewEnvelope(t *testing.T) {
	tests := []struct {
		name string
		in   notification.Notification
		want notification.Type
	}{
		{"booking confirmation", notification.BookingConfirmation{To: "guest@example.com"}, notification.TypeBookingConfirmation},
		{"status update", notification.BookingStatusUpdate{To: "guest@example.com"}, notification.TypeBookingStatusUpdate},
		{"admin alert", notification.AdminAlert{To: "admin@example.com"}, notification.TypeAdminNotification},
		{"contact form", notification.ContactForm{To: "admin@example.com"}, notification.TypeContactForm},
		{"contact reply", notification.ContactFormReply{To: "visitor@example.com"}, notification.TypeContactFormReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope, err := notification.NewEnvelope(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, envelope.Type)
			assert.Equal(t, tt.in.Recipient(), envelope.To)
			assert.Equal(t, tt.in, envelope.Data)
		})
	}
}

func TestEnvelopeWireShape(t *testing.T) {
	envelope, err := notification.NewEnvelope(notification.BookingStatusUpdate{
		To:               "guest@example.com",
		BookingID:        "b-1",
		GuestName:        "Ada Lovelace",
		Status:           "confirmed",
		RoomName:         "Deluxe",
		CheckIn:          "2025-12-01",
		CheckOut:         "2025-12-04",
		VerificationCode: "AB12CD34",
	})
	require.NoError(t, err)

	raw, err := json.Marshal(envelope)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "booking_status_update",
		"to": "guest@example.com",
		"data": {
			"booking_id": "b-1",
			"guest_name": "Ada Lovelace",
			"status": "confirmed",
			"room_name": "Deluxe",
			"check_in": "2025-12-01",
			"check_out": "2025-12-04",
			"verification_code": "AB12CD34"
		}
	}`, string(raw))
}

func TestKafkaSender(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Notification.Driver = notification.DriverKafka
	cfg.Kafka.NotificationTopic = "hotel.notifications"

	sender := notification.New(cfg, client, otelMocks.NewOtel())

	t.Run("publishes envelope keyed by recipient", func(t *testing.T) {
		client.EXPECT().
			SendMessages(gomock.Any(), "hotel.notifications", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)
				assert.Equal(t, "guest@example.com", messages[0].Key)

				envelope, ok := messages[0].Value.(notification.Envelope)
				require.True(t, ok)
				assert.Equal(t, notification.TypeBookingConfirmation, envelope.Type)

				return nil
			})

		err := sender.Send(context.Background(), notification.BookingConfirmation{To: "guest@example.com", BookingID: "b-1"})
		assert.NoError(t, err)
	})

	t.Run("broker failure is returned", func(t *testing.T) {
		client.EXPECT().
			SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("broker down"))

		err := sender.Send(context.Background(), notification.AdminAlert{To: "admin@example.com"})
		assert.Error(t, err)
	})

	t.Run("missing recipient never reaches the broker", func(t *testing.T) {
		err := sender.Send(context.Background(), notification.ContactForm{})
		assert.ErrorIs(t, err, notification.ErrMissingRecipient)
	})
}

func TestLogSender(t *testing.T) {
	sender := notification.New(&config.Config{}, nil, otelMocks.NewOtel())

	assert.NoError(t, sender.Send(context.Background(), notification.ContactFormReply{To: "visitor@example.com"}))
	assert.ErrorIs(t, sender.Send(context.Background(), notification.ContactFormReply{}), notification.ErrMissingRecipient)
}

func TestDispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sender := mocks.NewMockSender(ctrl)

	guest := notification.BookingConfirmation{To: "guest@example.com"}
	admin := notification.AdminAlert{To: "admin@example.com"}

	sender.EXPECT().Send(gomock.Any(), guest).Return(nil)
	sender.EXPECT().Send(gomock.Any(), admin).Return(errors.New("smtp unavailable"))

	warnings := notification.Dispatch(context.Background(), sender, guest, admin)

	assert.Equal(t, []string{"admin_notification notification could not be sent"}, warnings)
}
