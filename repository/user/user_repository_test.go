package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/placemarkhq/placemark/model"
	userrepo "github.com/placemarkhq/placemark/repository/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (userrepo.UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return userrepo.NewUserRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestUserRepository_Create_LowercasesEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO user (first_name, last_name, email, password_hash, admin, created_at) VALUES (?, ?, ?, ?, ?, NOW())").
		WithArgs("Homer", "Simpson", "homer@simpson.com", "hashed", false).
		WillReturnResult(sqlmock.NewResult(1, 1))

	got, err := repo.Create(context.Background(), &model.UserEntity{
		FirstName:    "Homer",
		LastName:     "Simpson",
		Email:        "Homer@Simpson.COM",
		PasswordHash: "hashed",
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), got.ID)
	assert.Equal(t, "homer@simpson.com", got.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Get_ByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	createdAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, first_name, last_name, email, password_hash, admin, created_at, updated_at FROM user WHERE true AND email = ?").
		WithArgs("homer@simpson.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "password_hash", "admin", "created_at", "updated_at"}).
			AddRow(1, "Homer", "Simpson", "homer@simpson.com", "hashed", true, createdAt, createdAt))

	// lookup is case-insensitive: the filter email is lowercased to match storage
	got, err := repo.Get(context.Background(), &model.UserFilter{Email: "Homer@Simpson.COM"})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, uint64(1), got.ID)
	assert.Equal(t, "homer@simpson.com", got.Email)
	assert.True(t, got.Admin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Get_Missing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, first_name, last_name, email, password_hash, admin, created_at, updated_at FROM user WHERE true AND id = ?").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := repo.Get(context.Background(), &model.UserFilter{ID: 404})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List_OmitsPasswordHash(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COUNT(*) FROM user").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT id, first_name, last_name, email, admin, created_at, updated_at FROM user ORDER BY first_name, last_name, id LIMIT 25 OFFSET 0").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "admin", "created_at", "updated_at"}).
			AddRow(1, "Homer", "Simpson", "homer@simpson.com", false, time.Now(), time.Now()))

	res, err := repo.List(context.Background(), model.ListRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.Total)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Homer", res.Data[0].FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
