package user

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/placemarkhq/placemark/core/query"
	"github.com/placemarkhq/placemark/model"
)

type SQL struct {
	conn *sqlx.DB
	list *query.Repo[model.UserEntity, model.UserDTO]
}

type UserRepository interface {
	Create(ctx context.Context, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.UserDTO, error)
	List(ctx context.Context, req model.ListRequest) (*model.PaginatedResponse[model.UserDTO], error)
	CountOwnedTx(ctx context.Context, tx *sqlx.Tx, userID uint64) (categories int64, placemarks int64, err error)
	DeleteTx(ctx context.Context, tx *sqlx.Tx, id uint64) error
}

// userDescriptor projects the user table into its public DTO. The password
// hash is not part of the projection, so no read path can leak it. Listings
// sort by first then last name, id as tiebreak.
var userDescriptor = query.Descriptor[model.UserEntity, model.UserDTO]{
	Table:    "user",
	Columns:  []string{"id", "first_name", "last_name", "email", "admin", "created_at", "updated_at"},
	OrderBy:  []string{"first_name", "last_name"},
	IDColumn: "id",
	Transform: func(e model.UserEntity) model.UserDTO {
		return model.UserDTO{
			ID:        e.ID,
			FirstName: e.FirstName,
			LastName:  e.LastName,
			Email:     e.Email,
			Admin:     e.Admin,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		}
	},
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{
		conn: conn,
		list: query.NewRepo(conn, userDescriptor),
	}
}

const (
	insertUserQuery      = `INSERT INTO user (first_name, last_name, email, password_hash, admin, created_at) VALUES (?, ?, ?, ?, ?, NOW())`
	getUserBase          = `SELECT id, first_name, last_name, email, password_hash, admin, created_at, updated_at FROM user WHERE true`
	countOwnedCategories = `SELECT COUNT(*) FROM category WHERE created_by = ?`
	countOwnedPlacemarks = `SELECT COUNT(*) FROM placemark WHERE created_by = ?`
	deleteUserQuery      = `DELETE FROM user WHERE id = ?`
)

// Create inserts a user. Emails are stored lowercased so the email lookup
// can rely on exact-match indexing.
func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	data.Email = strings.ToLower(data.Email)

	result, err := s.conn.ExecContext(ctx, insertUserQuery, data.FirstName, data.LastName, data.Email, data.PasswordHash, data.Admin)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	return data, nil
}

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 2)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, strings.ToLower(filter.Email))
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.UserDTO, error) {
	return s.list.GetByID(ctx, id)
}

func (s *SQL) List(ctx context.Context, req model.ListRequest) (*model.PaginatedResponse[model.UserDTO], error) {
	return s.list.Get(ctx, req)
}

// CountOwnedTx reports how many categories and placemarks the user still
// owns, within the caller's transaction.
func (s *SQL) CountOwnedTx(ctx context.Context, tx *sqlx.Tx, userID uint64) (int64, int64, error) {
	var categories int64
	if err := tx.GetContext(ctx, &categories, countOwnedCategories, userID); err != nil {
		return 0, 0, err
	}
	var placemarks int64
	if err := tx.GetContext(ctx, &placemarks, countOwnedPlacemarks, userID); err != nil {
		return 0, 0, err
	}
	return categories, placemarks, nil
}

// DeleteTx removes the row if present. Deleting a missing id is a no-op.
func (s *SQL) DeleteTx(ctx context.Context, tx *sqlx.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, deleteUserQuery, id)
	return err
}
