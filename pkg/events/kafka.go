package events

import (
	"context"

	"marketplace/pkg/kafka"
	"marketplace/pkg/logger"
	"marketplace/pkg/middleware"
)

const (
	source        = "catalog"
	schemaVersion = "1"
)

type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	producer MessagePublisher
	log      *logger.Logger
}

func NewKafkaPublisher(producer MessagePublisher, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	msg, err := kafka.NewMessage().
		WithKey(event.Key()).
		WithEventID("").
		WithEventType(event.Type).
		WithSource(source).
		WithSchemaVersion(schemaVersion).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		WithValue(event).
		Build()
	if err != nil {
		p.log.Error("Failed to build event message",
			"event_type", event.Type,
			"entity_id", event.EntityID,
			"error", err,
		)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish event",
			"event_type", event.Type,
			"entity_id", event.EntityID,
			"event_id", msg.GetEventID(),
			"error", err,
		)
	}
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
