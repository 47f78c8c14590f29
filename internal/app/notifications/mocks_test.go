package notifications

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Josepharis/siparis/internal/domain"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) ListByCompanyAndRole(ctx context.Context, companyID string, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, companyID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserStore) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type MockPushTransport struct {
	mock.Mock
}

func (m *MockPushTransport) Send(ctx context.Context, token string, n domain.Notification) (string, error) {
	args := m.Called(ctx, token, n)
	return args.String(0), args.Error(1)
}

func (m *MockPushTransport) SendMulticast(ctx context.Context, tokens []string, n domain.Notification) (domain.BatchResult, error) {
	args := m.Called(ctx, tokens, n)
	return args.Get(0).(domain.BatchResult), args.Error(1)
}
