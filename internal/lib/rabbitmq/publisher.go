package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// Channel часть amqp.Channel, нужная для публикации.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher публикует JSON-сообщения в exchange.
type Publisher struct {
	ch       Channel
	exchange string
	now      func() time.Time
}

// NewPublisher создаёт Publisher для указанного exchange.
func NewPublisher(ch Channel, exchange string) *Publisher {
	return &Publisher{
		ch:       ch,
		exchange: exchange,
		now:      time.Now,
	}
}

// Publish сериализует message в JSON и публикует его с ключом routingKey.
// Каждое сообщение получает уникальный MessageId.
func (p *Publisher) Publish(ctx context.Context, routingKey string, message any) error {
	const op = "rabbitmq.Publish"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    uuid.NewString(),
		Timestamp:    p.now(),
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// NopPublisher ничего не публикует. Используется, когда RabbitMQ не настроен.
type NopPublisher struct{}

// Publish ничего не делает.
func (NopPublisher) Publish(context.Context, string, any) error { return nil }
