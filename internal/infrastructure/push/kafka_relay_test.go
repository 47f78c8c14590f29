package push

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Josepharis/siparis/internal/domain"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Produce(ctx context.Context, key, topic string, value []byte) error {
	args := m.Called(ctx, key, topic, value)
	return args.Error(0)
}

func (m *MockProducer) Close() error {
	return m.Called().Error(0)
}

func TestKafkaRelayTransport_Send(t *testing.T) {
	producer := new(MockProducer)
	tr := NewKafkaRelayTransport(producer, "push_notifications", zap.NewNop())
	producer.On("Produce", mock.Anything, mock.Anything, "push_notifications", mock.Anything).Return(nil)

	id, err := tr.Send(context.Background(), "tok", statusNotification())
	require.NoError(t, err)

	call := producer.Calls[0]
	assert.Equal(t, id, call.Arguments.String(1))

	var env RelayEnvelope
	require.NoError(t, json.Unmarshal(call.Arguments.Get(3).([]byte), &env))
	assert.Equal(t, id, env.DispatchID)
	assert.Equal(t, []string{"tok"}, env.Tokens)
	assert.Equal(t, "Completed", env.Title)
	assert.Equal(t, "abcdefghij", env.Data["orderId"])
	require.NotNil(t, env.Hints)
	assert.Equal(t, "order_updates", env.Hints.AndroidChannelID)
}

func TestKafkaRelayTransport_SendMulticast(t *testing.T) {
	producer := new(MockProducer)
	tr := NewKafkaRelayTransport(producer, "push_notifications", zap.NewNop())
	producer.On("Produce", mock.Anything, mock.Anything, "push_notifications", mock.Anything).Return(nil).Once()

	res, err := tr.SendMulticast(context.Background(), []string{"a", "b", "c"}, domain.Notification{Title: "t", Body: "b"})

	require.NoError(t, err)
	assert.Equal(t, domain.BatchResult{SuccessCount: 3}, res)
	producer.AssertNumberOfCalls(t, "Produce", 1)
}

func TestKafkaRelayTransport_ProduceError(t *testing.T) {
	producer := new(MockProducer)
	tr := NewKafkaRelayTransport(producer, "push_notifications", zap.NewNop())
	producer.On("Produce", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("leader not available"))

	_, err := tr.SendMulticast(context.Background(), []string{"a"}, domain.Notification{Title: "t", Body: "b"})

	assert.ErrorContains(t, err, "leader not available")
}
