package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	interfaces "github.com/sheikh-saqib/session-account-ledger/internal/interfaces"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher sends events to a Kafka topic as JSON.
type Publisher struct {
	writer  messageWriter
	timeout time.Duration
}

// NewPublisher creates a publisher writing to topic on brokers. Each write
// is bounded by timeout when it is positive.
func NewPublisher(brokers []string, topic string, timeout time.Duration) *Publisher {
	return newPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: timeout,
	}, timeout)
}

func newPublisher(w messageWriter, timeout time.Duration) *Publisher {
	return &Publisher{
		writer:  w,
		timeout: timeout,
	}
}

// Publish writes event as JSON. Messages sharing a key land on the same
// partition, so one session's changes stay ordered.
func (p *Publisher) Publish(ctx context.Context, key string, event any) error {
	msg, err := encodeMessage(key, event)
	if err != nil {
		return err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}

	return nil
}

// Close flushes pending messages and releases the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func encodeMessage(key string, event any) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(key),
		Value: data,
	}, nil
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
