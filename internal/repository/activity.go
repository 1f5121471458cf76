package repository

import (
	"context"

	"FXTracker/internal/domain/models"
	pkgkafka "FXTracker/pkg/kafka"
)

// KafkaActivityPublisher publishes accepted selection-state mutations to
// the activity topic, keyed by currency/pair code so one instrument's
// events stay ordered within a partition.
type KafkaActivityPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaActivityPublisher(producer *pkgkafka.Producer, topic string) *KafkaActivityPublisher {
	return &KafkaActivityPublisher{producer: producer, topic: topic}
}

func (p *KafkaActivityPublisher) Publish(ctx context.Context, ev models.ActivityEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.Code), ev)
}

func (p *KafkaActivityPublisher) Close() error {
	return p.producer.Close()
}

// PublishMessage adapts the producer to the logger collector's Publisher
// interface so aggregated error logs ride the same pipe.
func (p *KafkaActivityPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

// NopActivityPublisher is wired when no brokers are configured.
type NopActivityPublisher struct{}

func (NopActivityPublisher) Publish(context.Context, models.ActivityEvent) error { return nil }
func (NopActivityPublisher) Close() error                                        { return nil }
