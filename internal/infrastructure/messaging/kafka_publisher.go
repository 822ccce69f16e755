package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Nozima-Rustamova/credit-ML/pkg/events"
	pkgkafka "github.com/Nozima-Rustamova/credit-ML/pkg/kafka"
)

// DefaultTopic is where scoring domain events are published.
const DefaultTopic = "credit.scoring.events"

// KafkaPublisher implements port.EventPublisher using Kafka. Events are
// keyed by aggregate ID so all events for one credit request land on the
// same partition in order.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaPublisher creates a new Kafka event publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string, logger *slog.Logger) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka.
func (p *KafkaPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", evt.EventType()),
			slog.String("aggregate_id", evt.AggregateID().String()),
			slog.String("topic", p.topic),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}
	return nil
}
