// Package service wires the allocation engine to its collaborators:
// snapshot assembly from the repositories and domain event publishing
// to RabbitMQ.  Publish errors are logged and returned so callers can
// ignore failures without interrupting the main request flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/mintleaf/seating/internal/queue"
)

// PublishDayRunCompleted publishes a DayRunCompletedEvent to the
// allocation.day_completed queue.  The function never panics; any
// error is logged and returned so the caller can choose to ignore it.
// Messages are marked persistent.
func PublishDayRunCompleted(ctx context.Context, event q.DayRunCompletedEvent) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so events survive
	// broker restarts.
	if _, err := ch.QueueDeclare(
		"allocation.day_completed", // name
		true,                       // durable
		false,                      // autoDelete
		false,                      // exclusive
		false,                      // noWait
		nil,                        // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                         // default exchange
		"allocation.day_completed", // routing key = queue name
		false,                      // mandatory
		false,                      // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
