package push

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Josepharis/siparis/internal/domain"
)

type MockFCMClient struct {
	mock.Mock
}

func (m *MockFCMClient) Send(ctx context.Context, message *messaging.Message) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

func (m *MockFCMClient) SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.BatchResponse), args.Error(1)
}

func statusNotification() domain.Notification {
	return domain.Notification{
		Title: "Completed",
		Body:  "Your order is complete. Enjoy! (Order #abcdefgh)",
		Data:  map[string]string{"orderId": "abcdefghij", "type": "order_status_update"},
		Hints: domain.OrderUpdateHints(),
	}
}

func TestBuildMessage_WithHints(t *testing.T) {
	msg := buildMessage("tok", statusNotification())

	assert.Equal(t, "tok", msg.Token)
	assert.Equal(t, "Completed", msg.Notification.Title)
	assert.Equal(t, "order_status_update", msg.Data["type"])
	require.NotNil(t, msg.Android)
	assert.Equal(t, "order_updates", msg.Android.Notification.ChannelID)
	assert.Equal(t, messaging.PriorityHigh, msg.Android.Notification.Priority)
	assert.Equal(t, "default", msg.Android.Notification.Sound)
	require.NotNil(t, msg.APNS)
	assert.Equal(t, "default", msg.APNS.Payload.Aps.Sound)
	assert.Equal(t, 1, *msg.APNS.Payload.Aps.Badge)
}

func TestBuildMessage_WithoutHints(t *testing.T) {
	msg := buildMulticastMessage([]string{"a", "b"}, domain.Notification{Title: "t", Body: "b"})

	assert.Equal(t, []string{"a", "b"}, msg.Tokens)
	assert.Nil(t, msg.Android)
	assert.Nil(t, msg.APNS)
}

func TestFCMTransport_SendMulticast(t *testing.T) {
	client := new(MockFCMClient)
	tr := &FCMTransport{client: client, logger: zap.NewNop()}
	ctx := context.Background()

	client.On("SendEachForMulticast", ctx, mock.Anything).Return(&messaging.BatchResponse{
		SuccessCount: 2,
		FailureCount: 1,
		Responses: []*messaging.SendResponse{
			{Success: true, MessageID: "1"},
			{Success: false, Error: errors.New("unregistered")},
			{Success: true, MessageID: "3"},
		},
	}, nil)

	res, err := tr.SendMulticast(ctx, []string{"a", "b", "c"}, statusNotification())

	require.NoError(t, err)
	assert.Equal(t, domain.BatchResult{SuccessCount: 2, FailureCount: 1}, res)
}

func TestFCMTransport_SendMulticast_Limits(t *testing.T) {
	client := new(MockFCMClient)
	tr := &FCMTransport{client: client, logger: zap.NewNop()}

	_, err := tr.SendMulticast(context.Background(), nil, statusNotification())
	assert.ErrorIs(t, err, domain.ErrNoRecipients)

	_, err = tr.SendMulticast(context.Background(), make([]string, 501), statusNotification())
	assert.ErrorIs(t, err, domain.ErrBatchTooLarge)

	client.AssertNotCalled(t, "SendEachForMulticast", mock.Anything, mock.Anything)
}

func TestFCMTransport_Send_Error(t *testing.T) {
	client := new(MockFCMClient)
	tr := &FCMTransport{client: client, logger: zap.NewNop()}
	client.On("Send", mock.Anything, mock.Anything).Return("", errors.New("invalid token"))

	_, err := tr.Send(context.Background(), "tok", statusNotification())

	assert.ErrorContains(t, err, "invalid token")
}
