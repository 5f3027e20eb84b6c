// Package service provides the domain event publisher.  Publishing is
// best-effort: failures are logged and returned so callers can ignore them
// without interrupting the request.
package service

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/stagebook/stagebook/internal/logging"
	"github.com/stagebook/stagebook/internal/metrics"
	"github.com/stagebook/stagebook/internal/queue"
)

// EventPublisher sends queue.Event values to RabbitMQ.  A disabled
// publisher only logs at debug level.
type EventPublisher struct {
	url     string
	service string
	enabled bool
	log     zerolog.Logger
}

// NewEventPublisher returns a publisher stamping events with service.
func NewEventPublisher(url, service string, enabled bool) *EventPublisher {
	return &EventPublisher{
		url:     url,
		service: service,
		enabled: enabled,
		log:     logging.WithComponent("publisher"),
	}
}

// Publish dials the broker, declares the events queue and sends ev as a
// persistent JSON message.  Service and OccurredAt are filled when empty.
func (p *EventPublisher) Publish(ctx context.Context, ev queue.Event) error {
	if ev.Service == "" {
		ev.Service = p.service
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	if !p.enabled {
		p.log.Debug().Str("type", ev.Type).Uint64("id", ev.EntityID).Msg("events disabled; skipping publish")
		return nil
	}
	err := p.send(ctx, ev)
	metrics.RecordEventPublish(ev.Type, err)
	return err
}

func (p *EventPublisher) send(ctx context.Context, ev queue.Event) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn().Err(err).Msg("dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn().Err(err).Msg("channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue.EventsQueue, true, false, false, false, nil); err != nil {
		p.log.Warn().Err(err).Msg("queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.OccurredAt,
		Type:         ev.Type,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.EventsQueue, false, false, pub); err != nil {
		p.log.Warn().Err(err).Str("type", ev.Type).Msg("publish failed")
		return err
	}
	return nil
}
