package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aryant0/mithila-bazaar/internal/model"

	amqp "github.com/rabbitmq/amqp091-go"
)

const OrderPlacedQueue = "order.placed"

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	ch channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare the queue so publish never fails due to missing infra
	if _, err := ch.QueueDeclare(OrderPlacedQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare %s: %w", OrderPlacedQueue, err)
	}

	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, o *model.OrderRecord) error {
	body, err := json.Marshal(NewOrderPlaced(o))
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced: %w", err)
	}
	return p.publishJSON(ctx, OrderPlacedQueue, o.ID, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey, messageID string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",         // default exchange
		routingKey, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
