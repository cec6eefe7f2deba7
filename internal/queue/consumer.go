package queue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// StartEventsConsumer connects to the broker and drains the entity-event
// queues, appending each message to logs/events.log. It runs a reconnect
// loop with exponential backoff and never returns; malformed messages are
// rejected without requeue so the loop keeps moving.
func StartEventsConsumer(url string) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn().Err(err).Dur("retry_in", backoff).Msg("events-consumer: dial failed")
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn); err != nil {
			log.Warn().Err(err).Msg("events-consumer: loop ended, reconnecting")
		}
		_ = conn.Close()
		time.Sleep(2 * time.Second)
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	deliveries := make(chan amqp.Delivery)
	for _, name := range []string{RatingCreatedQueue, RecommendationCreatedQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare %s: %w", name, err)
		}
		msgs, err := ch.Consume(name, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consume %s: %w", name, err)
		}
		go func(q string, in <-chan amqp.Delivery) {
			for d := range in {
				deliveries <- d
			}
		}(name, msgs)
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case err := <-closed:
			return fmt.Errorf("connection closed: %w", err)
		case d := <-deliveries:
			if err := appendEventLog(d.RoutingKey, d.Body); err != nil {
				log.Warn().Err(err).Msg("events-consumer: write failed")
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func appendEventLog(queueName string, body []byte) error {
	var ev EntityEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join("logs", "events.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	line := fmt.Sprintf("%s %s record=%s user=%s movie=%s\n",
		time.Now().UTC().Format(time.RFC3339), queueName, ev.RecordID, ev.UserID, ev.MovieID)
	_, err = f.WriteString(line)
	return err
}
