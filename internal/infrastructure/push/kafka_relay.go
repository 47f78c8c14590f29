package push

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Josepharis/siparis/internal/domain"
	kafka_infra "github.com/Josepharis/siparis/internal/infrastructure/kafka"
	"github.com/Josepharis/siparis/internal/util"
)

// RelayEnvelope is what the relay publishes for a push gateway to deliver.
type RelayEnvelope struct {
	DispatchID string            `json:"dispatch_id"`
	Tokens     []string          `json:"tokens"`
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Data       map[string]string `json:"data,omitempty"`
	Hints      *RelayHints       `json:"hints,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

type RelayHints struct {
	AndroidChannelID string `json:"android_channel_id,omitempty"`
	AndroidPriority  string `json:"android_priority,omitempty"`
	Sound            string `json:"sound,omitempty"`
	Badge            int    `json:"badge,omitempty"`
}

// KafkaRelayTransport hands notifications to a push gateway over Kafka. A call counts
// as delivered for every token once the write is acknowledged.
type KafkaRelayTransport struct {
	producer kafka_infra.Producer
	topic    string
	logger   *zap.Logger
}

func NewKafkaRelayTransport(producer kafka_infra.Producer, topic string, logger *zap.Logger) *KafkaRelayTransport {
	return &KafkaRelayTransport{producer: producer, topic: topic, logger: logger}
}

func (t *KafkaRelayTransport) Send(ctx context.Context, token string, n domain.Notification) (string, error) {
	return t.publish(ctx, []string{token}, n)
}

func (t *KafkaRelayTransport) SendMulticast(ctx context.Context, tokens []string, n domain.Notification) (domain.BatchResult, error) {
	if len(tokens) == 0 {
		return domain.BatchResult{}, domain.ErrNoRecipients
	}
	if len(tokens) > domain.MulticastBatchLimit {
		return domain.BatchResult{}, domain.ErrBatchTooLarge
	}
	if _, err := t.publish(ctx, tokens, n); err != nil {
		return domain.BatchResult{}, err
	}
	return domain.BatchResult{SuccessCount: len(tokens)}, nil
}

func (t *KafkaRelayTransport) publish(ctx context.Context, tokens []string, n domain.Notification) (string, error) {
	env := RelayEnvelope{
		DispatchID: util.GenerateUUID(),
		Tokens:     tokens,
		Title:      n.Title,
		Body:       n.Body,
		Data:       n.Data,
		CreatedAt:  time.Now().UTC(),
	}
	if h := n.Hints; h != nil {
		env.Hints = &RelayHints{
			AndroidChannelID: h.AndroidChannelID,
			AndroidPriority:  h.AndroidPriority,
			Sound:            h.Sound,
			Badge:            h.Badge,
		}
	}

	payload, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("failed to marshal relay envelope: %w", err)
	}
	if err := t.producer.Produce(ctx, env.DispatchID, t.topic, payload); err != nil {
		return "", fmt.Errorf("failed to relay notification %s: %w", env.DispatchID, err)
	}

	t.logger.Debug("Notification relayed",
		zap.String("dispatch_id", env.DispatchID),
		zap.String("topic", t.topic),
		zap.Int("tokens", len(tokens)),
	)
	return env.DispatchID, nil
}
