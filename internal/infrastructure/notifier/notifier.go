// Package notifier delivers core events to external collaborators: the OTP
// delivery gateway and any audit consumers. Delivery is retried with
// exponential backoff so a transiently unavailable gateway does not drop
// events.
package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"securebank/internal/domain"
)

// Sink is the transport an event is handed to (SMS/email gateway, message
// broker). Implementations must be safe for concurrent use.
type Sink interface {
	Deliver(ctx context.Context, event domain.Event) error
}

// Notifier implements bank.Publisher on top of a Sink with retry.
type Notifier struct {
	sink   Sink
	logger zerolog.Logger

	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
}

// New creates a Notifier with default retry settings.
func New(sink Sink, logger zerolog.Logger) *Notifier {
	return &Notifier{
		sink:            sink,
		logger:          logger,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     1 * time.Second,
		maxElapsedTime:  10 * time.Second,
	}
}

// Publish delivers an event, retrying transient sink failures with
// exponential backoff until the context is cancelled or the retry budget is
// spent.
func (n *Notifier) Publish(ctx context.Context, event domain.Event) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = n.initialInterval
	b.MaxInterval = n.maxInterval
	b.MaxElapsedTime = n.maxElapsedTime

	attempt := 0

	return backoff.Retry(func() error {
		err := n.sink.Deliver(ctx, event)
		if err == nil {
			return nil
		}

		attempt++
		n.logger.Warn().
			Err(err).
			Str("event_type", event.Type).
			Int("attempt", attempt).
			Msg("event delivery failed, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

// LogSink is a stand-in delivery gateway that writes events to the log.
// Its output replaces the out-of-band channel, not the application log, so
// OTP codes appear in it in cleartext.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Deliver logs the event.
func (s *LogSink) Deliver(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("event_id", event.ID).
		Str("event_type", event.Type).
		RawJSON("payload", payload).
		Msg("event delivered")

	return nil
}
