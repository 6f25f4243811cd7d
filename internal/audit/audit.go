// Package audit records admin mutations. Events go to a Kafka topic keyed by
// resource id; consumption (compliance, analytics) is out of process.
package audit

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

type Event struct {
	Type       string    `json:"type"`
	Actor      string    `json:"actor"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resourceId"`
	Detail     string    `json:"detail,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ResourceID),
		Value: payload,
	})
}

// Noop serves tests and deployments without a broker. Publishes are logged
// and dropped.
type Noop struct{}

func (Noop) Publish(_ context.Context, event Event) error {
	log.Printf("[audit] %s %s/%s by %s", event.Type, event.Resource, event.ResourceID, event.Actor)
	return nil
}
