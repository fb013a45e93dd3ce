package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nattapong/restaurant-order-api/internal/queue"
)

// PublishOrderPlaced publishes an OrderPlacedEvent to the order.placed
// queue.  Errors are logged and swallowed: the order has already committed
// and a broker hiccup must not turn a placed order into a client error.
// Messages are marked persistent so they survive broker restarts.
func PublishOrderPlaced(ctx context.Context, ev queue.OrderPlacedEvent) {
	conn, err := amqp.Dial(queue.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare("order.placed", true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", "order.placed", false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
	}
}
