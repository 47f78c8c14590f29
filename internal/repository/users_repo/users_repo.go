package users_repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Josepharis/siparis/internal/domain"
)

var _ UserRepository = (*userRepository)(nil)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

const selectUsers = `SELECT id, role, company_id, fcm_token FROM users`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u         domain.User
		role      string
		companyID sql.NullString
		fcmToken  sql.NullString
	)
	if err := row.Scan(&u.ID, &role, &companyID, &fcmToken); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.CompanyID = companyID.String
	u.FCMToken = fcmToken.String
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, selectUsers+` WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

func (r *userRepository) ListByCompanyAndRole(ctx context.Context, companyID string, role domain.Role) ([]domain.User, error) {
	users, err := r.list(ctx, selectUsers+` WHERE company_id = $1 AND role = $2 ORDER BY id`, companyID, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to list users of company %s with role %s: %w", companyID, role, err)
	}
	return users, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	users, err := r.list(ctx, selectUsers+` WHERE role = $1 ORDER BY id`, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to list users with role %s: %w", role, err)
	}
	return users, nil
}

func (r *userRepository) list(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
