package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/domain/repository"
)

// Publisher emits order events and owns the underlying connection.
type Publisher interface {
	repository.EventPublisher
	Close() error
}

var _ Publisher = (*KafkaPublisher)(nil)

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, model.OrderEvent) error { return nil }
func (NoopPublisher) Close() error                                  { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// A single publish never outlives publishTimeout.
const (
	publishTimeout = 2 * time.Second
	batchTimeout   = 10 * time.Millisecond
)

// KafkaPublisher writes events keyed by order id.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
	logger  *slog.Logger
}

// NewKafkaPublisher creates a publisher for topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: batchTimeout,
			WriteTimeout: publishTimeout,
			MaxAttempts:  3,
		},
		timeout: publishTimeout,
		logger:  logger,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e model.OrderEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	msg := kafka.Message{Key: []byte(e.OrderID), Value: data, Time: e.Timestamp}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warn("publish order event failed", slog.String("type", e.Type), slog.String("order", e.OrderID), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
