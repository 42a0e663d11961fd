package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/segmentio/kafka-go"
)

// KafkaConfig holds the event stream settings
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// messageWriter is satisfied by *kafka.Writer
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes notifications as JSON events keyed by recipient,
// so one user's events stay ordered within a partition
type KafkaNotifier struct {
	writer messageWriter
}

var _ coreport.Notifier = (*KafkaNotifier)(nil)

// NewKafkaNotifier creates a synchronous producer that waits for all replicas
func NewKafkaNotifier(cfg KafkaConfig) *KafkaNotifier {
	return newKafkaNotifier(&kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	})
}

func newKafkaNotifier(writer messageWriter) *KafkaNotifier {
	return &KafkaNotifier{writer: writer}
}

// Notify publishes the notification
func (n *KafkaNotifier) Notify(ctx context.Context, notification coreport.Notification) error {
	value, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(notification.RecipientID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(notification.Kind)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", notification.Kind, err)
	}
	return nil
}

// Close flushes and closes the producer
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
