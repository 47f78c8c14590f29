package notifications

import (
	"context"

	"github.com/Josepharis/siparis/internal/domain"
)

// UserStore is the record-store collaborator. GetByID returns domain.ErrUserNotFound
// when no user has the id.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListByCompanyAndRole(ctx context.Context, companyID string, role domain.Role) ([]domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}

// PushTransport delivers notifications to device tokens. SendMulticast accepts at
// most domain.MulticastBatchLimit tokens.
type PushTransport interface {
	Send(ctx context.Context, token string, n domain.Notification) (string, error)
	SendMulticast(ctx context.Context, tokens []string, n domain.Notification) (domain.BatchResult, error)
}
