package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Consumer reads a topic inside a consumer group and hands each message to a
// MessageHandler. Handler failures are logged by the caller and the offset is
// committed regardless; the notifier is a best-effort sink, not a pipeline.
type Consumer struct {
	reader *kafkago.Reader
	mu     sync.Mutex
	closed bool
}

func NewConsumer(brokers []string, topic, groupID string) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if groupID == "" {
		return nil, fmt.Errorf("group ID cannot be empty")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10 * 1024 * 1024,
		MaxWait:        1 * time.Second,
		CommitInterval: time.Second,
		StartOffset:    kafkago.FirstOffset,
	})

	return &Consumer{reader: reader}, nil
}

// Run consumes until ctx is canceled or the consumer is closed.
func (c *Consumer) Run(ctx context.Context, handler MessageHandler) error {
	for {
		kafkaMsg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()
			if closed {
				return ErrConsumerClosed
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		msg := Message{
			Key:       string(kafkaMsg.Key),
			Value:     kafkaMsg.Value,
			Headers:   make(map[string]string, len(kafkaMsg.Headers)),
			Timestamp: kafkaMsg.Time,
		}
		for _, h := range kafkaMsg.Headers {
			msg.Headers[h.Key] = string(h.Value)
		}

		// Errors are the handler's problem to report; consumption continues.
		_ = handler(ctx, msg)
	}
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.reader.Close()
}
