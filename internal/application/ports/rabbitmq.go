package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"hospital-admin-api/internal/infrastructure/mq"
)

type RabbitMQ interface {
	EventPublisher
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetConn() *amqp091.Connection
}

// EventPublisher never blocks the caller; delivery is best-effort.
type EventPublisher interface {
	Publish(e mq.Event)
}
