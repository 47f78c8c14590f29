package kafka_infra

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageHandler processes one Kafka message. A non-nil error leaves the offset uncommitted.
type MessageHandler func(ctx context.Context, msg kafka.Message) error

type Consumer interface {
	Start(ctx context.Context, handler MessageHandler) error
	Stop()
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaConsumer struct {
	reader     messageReader
	logger     *zap.Logger
	topic      string
	groupID    string
	retryDelay time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewConsumer(brokerURLs []string, topic, groupID string, logger *zap.Logger) Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:                brokerURLs,
		GroupID:                groupID,
		Topic:                  topic,
		MinBytes:               10e3,
		MaxBytes:               10e6,
		ReadBatchTimeout:       1 * time.Second,
		Logger:                 kafka.LoggerFunc(func(msg string, args ...interface{}) { logger.Debug(fmt.Sprintf(msg, args...)) }),
		ErrorLogger:            kafka.LoggerFunc(func(msg string, args ...interface{}) { logger.Error(fmt.Sprintf(msg, args...)) }),
		HeartbeatInterval:      3 * time.Second,
		CommitInterval:         time.Second,
		PartitionWatchInterval: 5 * time.Second,
		MaxAttempts:            3,
	})

	return newConsumer(reader, topic, groupID, logger)
}

func newConsumer(reader messageReader, topic, groupID string, logger *zap.Logger) *kafkaConsumer {
	return &kafkaConsumer{
		reader:     reader,
		logger:     logger,
		topic:      topic,
		groupID:    groupID,
		retryDelay: time.Second,
	}
}

// Start consumes messages one at a time until ctx is cancelled or Stop is called.
func (c *kafkaConsumer) Start(ctx context.Context, handler MessageHandler) error {
	consumerCtx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	c.logger.Info("Kafka consumer starting", zap.String("topic", c.topic), zap.String("group_id", c.groupID))

	for {
		msg, err := c.reader.FetchMessage(consumerCtx)
		if err != nil {
			if consumerCtx.Err() != nil || errors.Is(err, context.Canceled) {
				c.logger.Info("Kafka consumer context cancelled, stopping reader.")
				return c.reader.Close()
			}
			c.logger.Error("Failed to fetch message from Kafka", zap.Error(err))
			select {
			case <-consumerCtx.Done():
			case <-time.After(c.retryDelay):
			}
			continue
		}

		if handlerErr := handler(consumerCtx, msg); handlerErr != nil {
			c.logger.Error("Error handling Kafka message, will not commit offset",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(handlerErr),
			)
			continue
		}

		if commitErr := c.reader.CommitMessages(consumerCtx, msg); commitErr != nil {
			c.logger.Error("Failed to commit offset for Kafka message",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(commitErr),
			)
			continue
		}
		c.logger.Debug("Kafka message offset committed",
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
		)
	}
}

func (c *kafkaConsumer) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	c.logger.Info("Kafka consumer stop signal sent.")
}
