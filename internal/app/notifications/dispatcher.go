package notifications

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Josepharis/siparis/internal/domain"
)

// Dispatcher decides, for one order write, whether a push goes out, to whom and with what content.
type Dispatcher interface {
	OrderCreated(ctx context.Context, orderID string, order *domain.Order) Outcome
	OrderStatusChanged(ctx context.Context, orderID string, before, after *domain.Order) Outcome
}

type dispatcher struct {
	users  UserStore
	push   PushTransport
	logger *zap.Logger
}

func NewDispatcher(users UserStore, push PushTransport, logger *zap.Logger) Dispatcher {
	return &dispatcher{
		users:  users,
		push:   push,
		logger: logger,
	}
}

func (d *dispatcher) OrderCreated(ctx context.Context, orderID string, order *domain.Order) Outcome {
	companyID := order.ProducerCompanyID
	customerName := order.CustomerName()

	d.logger.Info("New order created",
		zap.String("order_id", orderID),
		zap.String("company_id", companyID),
		zap.String("customer_name", customerName),
	)

	if companyID == "" {
		d.logger.Warn("Order has no producer company, no notification will be sent", zap.String("order_id", orderID))
		return skipped(ReasonMissingCompany)
	}

	producers, err := d.users.ListByCompanyAndRole(ctx, companyID, domain.RoleProducer)
	if err != nil {
		return failed(fmt.Errorf("failed to look up producers of company %s: %w", companyID, err))
	}
	if len(producers) == 0 {
		d.logger.Warn("No producers found for company", zap.String("order_id", orderID), zap.String("company_id", companyID))
		return skipped(ReasonNoProducers)
	}

	tokens := domain.DeviceTokens(producers)
	if len(tokens) == 0 {
		d.logger.Warn("No producer has a device token",
			zap.String("order_id", orderID),
			zap.String("company_id", companyID),
			zap.Int("producers", len(producers)),
		)
		return skipped(ReasonNoProducerTokens)
	}

	n := domain.Notification{
		Title: domain.NewOrderTitle,
		Body:  domain.NewOrderBody(customerName),
		Data: map[string]string{
			domain.DataOrderID:      orderID,
			domain.DataType:         domain.TypeNewOrder,
			domain.DataCustomerName: customerName,
			domain.DataCompanyID:    companyID,
		},
		Hints: domain.OrderUpdateHints(),
	}

	d.logger.Info("Sending new order notification to producers",
		zap.String("order_id", orderID),
		zap.Int("recipients", len(tokens)),
	)
	res, err := d.push.SendMulticast(ctx, tokens, n)
	if err != nil {
		return failed(fmt.Errorf("failed to send new order notification for order %s: %w", orderID, err))
	}

	d.logger.Info("New order notification sent to producers",
		zap.String("order_id", orderID),
		zap.Int("success_count", res.SuccessCount),
		zap.Int("failure_count", res.FailureCount),
	)
	return Outcome{Result: ResultSent, Recipients: len(tokens), Batch: res}
}

func (d *dispatcher) OrderStatusChanged(ctx context.Context, orderID string, before, after *domain.Order) Outcome {
	if before.Status == after.Status {
		d.logger.Info("Order status unchanged, no notification will be sent",
			zap.String("order_id", orderID),
			zap.Int("status", int(after.Status)),
		)
		return skipped(ReasonStatusUnchanged)
	}

	customerID := after.CustomerID
	d.logger.Info("Order status changed",
		zap.String("order_id", orderID),
		zap.String("customer_id", customerID),
		zap.Int("old_status", int(before.Status)),
		zap.Int("new_status", int(after.Status)),
	)

	status, ok := after.Status.Name()
	if !ok {
		d.logger.Warn("Unknown order status code", zap.String("order_id", orderID), zap.Int("status", int(after.Status)))
		return skipped(ReasonUnknownStatus)
	}

	if status == domain.StatusWaiting {
		d.logger.Info("Order is waiting, customer is not notified", zap.String("order_id", orderID))
		return skipped(ReasonWaitingStatus)
	}

	customer, err := d.users.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			d.logger.Error("Customer not found", zap.String("order_id", orderID), zap.String("customer_id", customerID))
			return skipped(ReasonCustomerNotFound)
		}
		return failed(fmt.Errorf("failed to look up customer %s: %w", customerID, err))
	}

	if !customer.HasDeviceToken() {
		d.logger.Warn("Customer has no device token", zap.String("order_id", orderID), zap.String("customer_id", customerID))
		return skipped(ReasonNoDeviceToken)
	}

	content, ok := domain.ContentFor(status)
	if !ok {
		d.logger.Warn("No notification content for status",
			zap.String("order_id", orderID),
			zap.Int("status", int(after.Status)),
			zap.String("status_name", string(status)),
		)
		return skipped(ReasonNoContent)
	}

	n := domain.Notification{
		Title: content.Title,
		Body:  domain.StatusUpdateBody(content, orderID),
		Data: map[string]string{
			domain.DataOrderID:    orderID,
			domain.DataStatus:     string(status),
			domain.DataType:       domain.TypeOrderStatusUpdate,
			domain.DataCustomerID: customerID,
		},
		Hints: domain.OrderUpdateHints(),
	}

	d.logger.Info("Sending order status notification to customer",
		zap.String("order_id", orderID),
		zap.String("customer_id", customerID),
		zap.String("title", n.Title),
	)
	messageID, err := d.push.Send(ctx, customer.FCMToken, n)
	if err != nil {
		return failed(fmt.Errorf("failed to send status notification for order %s: %w", orderID, err))
	}

	d.logger.Info("Order status notification sent",
		zap.String("order_id", orderID),
		zap.String("customer_id", customerID),
		zap.String("status", string(status)),
		zap.String("message_id", messageID),
	)
	return Outcome{Result: ResultSent, MessageID: messageID, Recipients: 1, Batch: domain.BatchResult{SuccessCount: 1}}
}
