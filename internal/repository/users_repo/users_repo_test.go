package users_repo

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Josepharis/siparis/internal/domain"
)

var userColumns = []string{"id", "role", "company_id", "fcm_token"}

func newMockRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(db), mock
}

func TestUserRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUsers + ` WHERE id = $1`)).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("c1", "customer", nil, "token-1"))

	user, err := repo.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, &domain.User{ID: "c1", Role: domain.RoleCustomer, FCMToken: "token-1"}, user)
	assert.True(t, user.HasDeviceToken())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUsers + ` WHERE id = $1`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.GetByID(context.Background(), "missing")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUsers + ` WHERE id = $1`)).
		WithArgs("c1").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByID(context.Background(), "c1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorContains(t, err, "failed to get user c1")
}

func TestUserRepository_GetByID_NullToken(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUsers + ` WHERE id = $1`)).
		WithArgs("c2").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("c2", "customer", nil, nil))

	user, err := repo.GetByID(context.Background(), "c2")
	require.NoError(t, err)
	assert.Empty(t, user.CompanyID)
	assert.Empty(t, user.FCMToken)
	assert.False(t, user.HasDeviceToken())
}

func TestUserRepository_ListByCompanyAndRole(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUsers + ` WHERE company_id = $1 AND role = $2 ORDER BY id`)).
		WithArgs("company-1", "producer").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("p1", "producer", "company-1", "token-1").
			AddRow("p2", "producer", "company-1", nil))

	users, err := repo.ListByCompanyAndRole(context.Background(), "company-1", domain.RoleProducer)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, []string{"token-1"}, domain.DeviceTokens(users))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListByRole(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUsers + ` WHERE role = $1 ORDER BY id`)).
		WithArgs("customer").
		WillReturnRows(sqlmock.NewRows(userColumns))

	users, err := repo.ListByRole(context.Background(), domain.RoleCustomer)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListByRole_RowError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUsers + ` WHERE role = $1 ORDER BY id`)).
		WithArgs("customer").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("c1", "customer", nil, "t1").
			RowError(0, errors.New("broken row")))

	_, err := repo.ListByRole(context.Background(), domain.RoleCustomer)
	assert.ErrorContains(t, err, "failed to list users with role customer")
}
