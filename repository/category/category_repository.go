package category

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/placemarkhq/placemark/core/query"
	"github.com/placemarkhq/placemark/model"
)

type SQL struct {
	conn *sqlx.DB
	list *query.Repo[model.CategoryRow, model.CategoryDTO]
}

type CategoryRepository interface {
	Create(ctx context.Context, req *model.CreateCategoryRequest) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*model.CategoryDTO, error)
	Exists(ctx context.Context, id uint64) (bool, error)
	List(ctx context.Context, req model.ListRequest) (*model.PaginatedResponse[model.CategoryDTO], error)
	CountPlaceMarksTx(ctx context.Context, tx *sqlx.Tx, categoryID uint64) (int64, error)
	DeleteTx(ctx context.Context, tx *sqlx.Tx, id uint64) error
}

// categoryDescriptor projects the category table plus the creator lookup.
// The lookup pulls exactly {id, designation} of the owning user, one level
// deep. Listings sort by designation, id as tiebreak.
var categoryDescriptor = query.Descriptor[model.CategoryRow, model.CategoryDTO]{
	Table: "category c",
	Columns: []string{
		"c.id", "c.designation", "c.created_at", "c.updated_at",
		"u.id AS created_by_id",
		"CONCAT(u.first_name, ' ', u.last_name) AS created_by_name",
	},
	Joins:    []query.Join{{Table: "user u", On: "u.id = c.created_by"}},
	OrderBy:  []string{"c.designation"},
	IDColumn: "c.id",
	Transform: func(r model.CategoryRow) model.CategoryDTO {
		return model.CategoryDTO{
			ID:          r.ID,
			Designation: r.Designation,
			CreatedBy:   model.Lookup{ID: r.CreatedByID, Designation: r.CreatedByName},
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		}
	},
}

func NewCategoryRepository(conn *sqlx.DB) CategoryRepository {
	return &SQL{
		conn: conn,
		list: query.NewRepo(conn, categoryDescriptor),
	}
}

const (
	insertCategoryQuery     = `INSERT INTO category (designation, created_by, created_at) VALUES (?, ?, NOW())`
	countCategoryPlacemarks = `SELECT COUNT(*) FROM placemark WHERE category_id = ?`
	deleteCategoryQuery     = `DELETE FROM category WHERE id = ?`
	existsCategoryQuery     = `SELECT COUNT(*) FROM category WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, req *model.CreateCategoryRequest) (uint64, error) {
	result, err := s.conn.ExecContext(ctx, insertCategoryQuery, req.Designation, req.CreatedBy)
	if err != nil {
		return 0, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(lastID), nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.CategoryDTO, error) {
	return s.list.GetByID(ctx, id)
}

func (s *SQL) Exists(ctx context.Context, id uint64) (bool, error) {
	var n int64
	if err := s.conn.GetContext(ctx, &n, existsCategoryQuery, id); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQL) List(ctx context.Context, req model.ListRequest) (*model.PaginatedResponse[model.CategoryDTO], error) {
	return s.list.Get(ctx, req)
}

// CountPlaceMarksTx reports how many placemarks still reference the
// category, within the caller's transaction.
func (s *SQL) CountPlaceMarksTx(ctx context.Context, tx *sqlx.Tx, categoryID uint64) (int64, error) {
	var n int64
	if err := tx.GetContext(ctx, &n, countCategoryPlacemarks, categoryID); err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteTx removes the row if present. Deleting a missing id is a no-op.
func (s *SQL) DeleteTx(ctx context.Context, tx *sqlx.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, deleteCategoryQuery, id)
	return err
}
