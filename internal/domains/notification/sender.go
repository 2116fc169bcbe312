package notification

//go:generate go run go.uber.org/mock/mockgen -source=./sender.go -destination=./mocks/sender_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	DriverKafka = "kafka"
	DriverLog   = "log"
)

var ErrMissingRecipient = errors.New("notification has no recipient")

type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// New picks the delivery driver from config. Anything other than kafka logs the envelope.
func New(config *config.Config, client kafka.Client, otel otel.Otel) Sender {
	if config.Notification.Driver == DriverKafka {
		return &kafkaSender{client: client, topic: config.Kafka.NotificationTopic, otel: otel}
	}

	return &logSender{}
}

type kafkaSender struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func (k *kafkaSender) Send(ctx context.Context, n Notification) (err error) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".notification.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	envelope, err := buildEnvelope(n)
	if err != nil {
		return err
	}

	scope.SetAttribute("notification.type", string(envelope.Type))

	err = k.client.SendMessages(ctx, k.topic, kafka.Message{Key: envelope.To, Value: envelope})
	if err != nil {
		return fmt.Errorf("failed to publish %s notification: %w", envelope.Type, err)
	}

	return nil
}

type logSender struct{}

func (l *logSender) Send(_ context.Context, n Notification) error {
	envelope, err := buildEnvelope(n)
	if err != nil {
		return err
	}

	log.Info().
		Str("type", string(envelope.Type)).
		Str("to", envelope.To).
		Interface("data", envelope.Data).
		Msg("notification")

	return nil
}

func buildEnvelope(n Notification) (Envelope, error) {
	envelope, err := NewEnvelope(n)
	if err != nil {
		return Envelope{}, err
	}

	if envelope.To == constant.Empty {
		return Envelope{}, fmt.Errorf("%w: %s", ErrMissingRecipient, envelope.Type)
	}

	return envelope, nil
}

// Dispatch sends every notification and turns failures into warnings.
// A failed delivery never fails the operation that triggered it.
func Dispatch(ctx context.Context, sender Sender, notifications ...Notification) []string {
	var warnings []string

	for _, n := range notifications {
		if err := sender.Send(ctx, n); err != nil {
			kind := kindOf(n)

			log.Warn().Err(err).Str("type", string(kind)).Msg("failed to send notification")

			warnings = append(warnings, fmt.Sprintf("%s notification could not be sent", kind))
		}
	}

	return warnings
}

func kindOf(n Notification) Type {
	envelope, err := NewEnvelope(n)
	if err != nil {
		return "unknown"
	}

	return envelope.Type
}
