package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Josepharis/siparis/internal/app/notifications"
	"github.com/Josepharis/siparis/internal/domain/event"
	kafka_infra "github.com/Josepharis/siparis/internal/infrastructure/kafka"
)

// OrderChangeMessageHandler routes order change events to the dispatcher. It always
// returns nil: a failed notification is logged and the offset is committed anyway,
// so a bad event can never be redelivered in a loop.
func OrderChangeMessageHandler(dispatcher notifications.Dispatcher, logger *zap.Logger) kafka_infra.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Recovered panic while handling order change event",
					zap.String("topic", msg.Topic),
					zap.Int("partition", msg.Partition),
					zap.Int64("offset", msg.Offset),
					zap.Any("panic", r),
				)
				err = nil
			}
		}()

		logger.Debug("Received order change event",
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.String("key", string(msg.Key)),
		)

		var change event.OrderChangeEvent
		if err := json.Unmarshal(msg.Value, &change); err != nil {
			logger.Error("Failed to unmarshal Kafka message value to OrderChangeEvent",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
			)
			return nil
		}

		orderID := change.OrderID
		if orderID == "" {
			orderID = string(msg.Key)
		}

		var out notifications.Outcome
		switch change.Op {
		case event.OpCreate:
			if change.After == nil {
				logger.Warn("Create event without order image, ignoring", zap.String("order_id", orderID))
				return nil
			}
			out = dispatcher.OrderCreated(ctx, orderID, change.After)
		case event.OpUpdate:
			if change.Before == nil || change.After == nil {
				logger.Warn("Update event without before/after images, ignoring", zap.String("order_id", orderID))
				return nil
			}
			out = dispatcher.OrderStatusChanged(ctx, orderID, change.Before, change.After)
		default:
			logger.Debug("Ignoring order change event", zap.String("order_id", orderID), zap.String("op", string(change.Op)))
			return nil
		}

		switch out.Result {
		case notifications.ResultFailed:
			logger.Error("Order notification failed",
				zap.String("order_id", orderID),
				zap.String("op", string(change.Op)),
				zap.Error(out.Err),
			)
		case notifications.ResultSkipped:
			logger.Debug("Order notification skipped",
				zap.String("order_id", orderID),
				zap.String("reason", string(out.Reason)),
			)
		}
		return nil
	}
}
