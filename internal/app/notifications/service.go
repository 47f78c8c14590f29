package notifications

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Josepharis/siparis/internal/domain"
)

type TestNotificationRequest struct {
	UserID string
	Title  string
	Body   string
}

type BulkNotificationRequest struct {
	Title    string
	Body     string
	UserRole domain.Role
}

type BulkNotificationResult struct {
	SuccessCount int
	FailureCount int
	TotalTokens  int
	Batches      int
}

// NotificationService serves the manually invoked notification operations. Unlike
// the Dispatcher, every failure is returned to the caller.
type NotificationService interface {
	SendTestNotification(ctx context.Context, req TestNotificationRequest) (string, error)
	SendBulkNotification(ctx context.Context, req BulkNotificationRequest) (*BulkNotificationResult, error)
}

type notificationService struct {
	users     UserStore
	push      PushTransport
	batchSize int
	logger    *zap.Logger
}

func NewNotificationService(users UserStore, push PushTransport, logger *zap.Logger) NotificationService {
	return &notificationService{
		users:     users,
		push:      push,
		batchSize: domain.MulticastBatchLimit,
		logger:    logger,
	}
}

func (s *notificationService) SendTestNotification(ctx context.Context, req TestNotificationRequest) (string, error) {
	messageID, err := s.sendTestNotification(ctx, req)
	if err != nil {
		s.logger.Error("Test notification failed", zap.String("user_id", req.UserID), zap.Error(err))
		return "", fmt.Errorf("failed to send test notification: %w", err)
	}
	s.logger.Info("Test notification sent", zap.String("user_id", req.UserID), zap.String("message_id", messageID))
	return messageID, nil
}

func (s *notificationService) sendTestNotification(ctx context.Context, req TestNotificationRequest) (string, error) {
	if req.UserID == "" || req.Title == "" || req.Body == "" {
		return "", fmt.Errorf("%w: userId, title and body are required", domain.ErrInvalidArgument)
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", err
		}
		return "", fmt.Errorf("failed to look up user %s: %w", req.UserID, err)
	}
	if !user.HasDeviceToken() {
		return "", domain.ErrNoDeviceToken
	}

	n := domain.Notification{
		Title: req.Title,
		Body:  req.Body,
		Data:  map[string]string{domain.DataType: domain.TypeTestNotification},
	}
	return s.push.Send(ctx, user.FCMToken, n)
}

func (s *notificationService) SendBulkNotification(ctx context.Context, req BulkNotificationRequest) (*BulkNotificationResult, error) {
	if req.UserRole == "" {
		req.UserRole = domain.RoleCustomer
	}
	res, err := s.sendBulkNotification(ctx, req)
	if err != nil {
		s.logger.Error("Bulk notification failed", zap.String("role", string(req.UserRole)), zap.Error(err))
		return nil, fmt.Errorf("failed to send bulk notification: %w", err)
	}
	s.logger.Info("Bulk notification sent",
		zap.String("role", string(req.UserRole)),
		zap.Int("batches", res.Batches),
		zap.Int("total_tokens", res.TotalTokens),
		zap.Int("success_count", res.SuccessCount),
		zap.Int("failure_count", res.FailureCount),
	)
	return res, nil
}

func (s *notificationService) sendBulkNotification(ctx context.Context, req BulkNotificationRequest) (*BulkNotificationResult, error) {
	if req.Title == "" || req.Body == "" {
		return nil, fmt.Errorf("%w: title and body are required", domain.ErrInvalidArgument)
	}

	users, err := s.users.ListByRole(ctx, req.UserRole)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with role %s: %w", req.UserRole, err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: no users with role %s", domain.ErrNoRecipients, req.UserRole)
	}

	tokens := domain.DeviceTokens(users)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no users with a device token", domain.ErrNoRecipients)
	}

	n := domain.Notification{
		Title: req.Title,
		Body:  req.Body,
		Data:  map[string]string{domain.DataType: domain.TypeBulkNotification},
	}

	var total domain.BatchResult
	batches := domain.SplitBatches(tokens, s.batchSize)
	for i, batch := range batches {
		res, err := s.push.SendMulticast(ctx, batch, n)
		if err != nil {
			return nil, fmt.Errorf("batch %d of %d: %w", i+1, len(batches), err)
		}
		s.logger.Debug("Bulk notification batch sent",
			zap.Int("batch", i+1),
			zap.Int("tokens", len(batch)),
			zap.Int("success_count", res.SuccessCount),
			zap.Int("failure_count", res.FailureCount),
		)
		total = total.Add(res)
	}

	return &BulkNotificationResult{
		SuccessCount: total.SuccessCount,
		FailureCount: total.FailureCount,
		TotalTokens:  len(tokens),
		Batches:      len(batches),
	}, nil
}
