package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/Josepharis/siparis/internal/domain"
)

type fcmClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// FCMTransport delivers notifications through Firebase Cloud Messaging.
type FCMTransport struct {
	client fcmClient
	logger *zap.Logger
}

// NewFCMTransport initialises a Firebase app. With an empty credentialsFile the SDK
// falls back to Application Default Credentials.
func NewFCMTransport(ctx context.Context, projectID, credentialsFile string, logger *zap.Logger) (*FCMTransport, error) {
	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging client: %w", err)
	}
	return &FCMTransport{client: client, logger: logger}, nil
}

func (t *FCMTransport) Send(ctx context.Context, token string, n domain.Notification) (string, error) {
	id, err := t.client.Send(ctx, buildMessage(token, n))
	if err != nil {
		return "", fmt.Errorf("fcm send failed: %w", err)
	}
	return id, nil
}

func (t *FCMTransport) SendMulticast(ctx context.Context, tokens []string, n domain.Notification) (domain.BatchResult, error) {
	if len(tokens) == 0 {
		return domain.BatchResult{}, domain.ErrNoRecipients
	}
	if len(tokens) > domain.MulticastBatchLimit {
		return domain.BatchResult{}, domain.ErrBatchTooLarge
	}

	resp, err := t.client.SendEachForMulticast(ctx, buildMulticastMessage(tokens, n))
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("fcm multicast failed: %w", err)
	}
	for i, r := range resp.Responses {
		if r != nil && !r.Success {
			t.logger.Debug("FCM delivery failed for token", zap.Int("index", i), zap.Error(r.Error))
		}
	}
	return domain.BatchResult{SuccessCount: resp.SuccessCount, FailureCount: resp.FailureCount}, nil
}

func buildMessage(token string, n domain.Notification) *messaging.Message {
	return &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: n.Title, Body: n.Body},
		Data:         n.Data,
		Android:      androidConfig(n.Hints),
		APNS:         apnsConfig(n.Hints),
	}
}

func buildMulticastMessage(tokens []string, n domain.Notification) *messaging.MulticastMessage {
	return &messaging.MulticastMessage{
		Tokens:       tokens,
		Notification: &messaging.Notification{Title: n.Title, Body: n.Body},
		Data:         n.Data,
		Android:      androidConfig(n.Hints),
		APNS:         apnsConfig(n.Hints),
	}
}

func androidConfig(h *domain.PlatformHints) *messaging.AndroidConfig {
	if h == nil {
		return nil
	}
	return &messaging.AndroidConfig{
		Notification: &messaging.AndroidNotification{
			ChannelID: h.AndroidChannelID,
			Priority:  androidPriority(h.AndroidPriority),
			Sound:     h.Sound,
		},
	}
}

func androidPriority(p string) messaging.AndroidNotificationPriority {
	switch p {
	case "min":
		return messaging.PriorityMin
	case "low":
		return messaging.PriorityLow
	case "high":
		return messaging.PriorityHigh
	case "max":
		return messaging.PriorityMax
	default:
		return messaging.PriorityDefault
	}
}

func apnsConfig(h *domain.PlatformHints) *messaging.APNSConfig {
	if h == nil {
		return nil
	}
	badge := h.Badge
	return &messaging.APNSConfig{
		Payload: &messaging.APNSPayload{
			Aps: &messaging.Aps{
				Sound: h.Sound,
				Badge: &badge,
			},
		},
	}
}
