package events

import (
	"context"
	"encoding/json"

	"github.com/Astemirdum/curator-library/library/internal/metrics"
	"github.com/Astemirdum/curator-library/library/internal/model"
	"github.com/IBM/sarama"
)

type Publisher interface {
	Publish(ctx context.Context, ev model.LendingEvent) error
}

func NewPublisher(producer sarama.SyncProducer, topic string) Publisher {
	return &publisher{
		producer: producer,
		topic:    topic,
	}
}

type publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// Publish keys messages by book so events for one book stay in order.
func (p *publisher) Publish(_ context.Context, ev model.LendingEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ev.BookID),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err = p.producer.SendMessage(msg); err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		return err
	}
	metrics.EventsPublished.WithLabelValues("ok").Inc()
	return nil
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.LendingEvent) error { return nil }
