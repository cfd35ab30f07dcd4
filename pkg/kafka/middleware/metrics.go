package kafka_middleware

import (
	"context"
	"time"

	"marketplace/pkg/kafka"
	"marketplace/pkg/metrics"
)

// MetricsProducerMiddleware records publish counts and latency per event type.
func MetricsProducerMiddleware(m *metrics.Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		m.RecordEvent(msg.GetEventType(), time.Since(start), err)
		return err
	}
}
