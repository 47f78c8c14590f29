package users_repo

import (
	"context"

	"github.com/Josepharis/siparis/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListByCompanyAndRole(ctx context.Context, companyID string, role domain.Role) ([]domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}
