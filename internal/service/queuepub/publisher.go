// Package queuepub publishes domain events to RabbitMQ. Errors are logged and
// returned so callers can ignore failures without interrupting the request.
package queuepub

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/flmoreno/movie-recs-api/internal/queue"
)

// Publisher sends entity events to the broker. A Publisher with an empty URL
// is a no-op, so event publishing can be disabled by leaving RABBITMQ_URL
// unset.
type Publisher struct {
	url string
}

func New(url string) *Publisher {
	return &Publisher{url: url}
}

// Publish sends ev to the named queue with persistent delivery. The queue is
// declared durable on every publish, which is idempotent. Any failure is
// logged and returned; publishing never panics and never fails the caller's
// request.
func (p *Publisher) Publish(ctx context.Context, queueName string, ev queue.EntityEvent) error {
	if p == nil || p.url == "" {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Error().Err(err).Str("queue", queueName).Msg("amqp dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Error().Err(err).Str("queue", queueName).Msg("amqp channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Error().Err(err).Str("queue", queueName).Msg("amqp queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Error().Err(err).Str("queue", queueName).Msg("amqp publish failed")
		return err
	}
	return nil
}
