package placemark

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/placemarkhq/placemark/core/query"
	"github.com/placemarkhq/placemark/model"
)

type SQL struct {
	conn *sqlx.DB
	list *query.Repo[model.PlaceMarkRow, model.PlaceMarkDTO]
}

type PlaceMarkRepository interface {
	Create(ctx context.Context, req *model.CreatePlaceMarkRequest) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*model.PlaceMarkDTO, error)
	List(ctx context.Context, req model.ListRequest) (*model.PaginatedResponse[model.PlaceMarkDTO], error)
	ListByCategory(ctx context.Context, req model.ListRequest, categoryID uint64) (*model.PaginatedResponse[model.PlaceMarkDTO], error)
	DeleteByID(ctx context.Context, id uint64) error
}

// placemarkDescriptor projects the placemark table plus its two lookups:
// the owning category and the creating user. Listings sort by designation,
// id as tiebreak.
var placemarkDescriptor = query.Descriptor[model.PlaceMarkRow, model.PlaceMarkDTO]{
	Table: "placemark pm",
	Columns: []string{
		"pm.id", "pm.designation", "pm.description", "pm.latitude", "pm.longitude",
		"pm.created_at", "pm.updated_at",
		"c.id AS category_id",
		"c.designation AS category_designation",
		"u.id AS created_by_id",
		"CONCAT(u.first_name, ' ', u.last_name) AS created_by_name",
	},
	Joins: []query.Join{
		{Table: "category c", On: "c.id = pm.category_id"},
		{Table: "user u", On: "u.id = pm.created_by"},
	},
	OrderBy:  []string{"pm.designation"},
	IDColumn: "pm.id",
	Transform: func(r model.PlaceMarkRow) model.PlaceMarkDTO {
		dto := model.PlaceMarkDTO{
			ID:          r.ID,
			Designation: r.Designation,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			Category:    model.Lookup{ID: r.CategoryID, Designation: r.CategoryDesignation},
			CreatedBy:   model.Lookup{ID: r.CreatedByID, Designation: r.CreatedByName},
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		}
		if r.Description != nil {
			dto.Description = *r.Description
		}
		return dto
	},
}

func NewPlaceMarkRepository(conn *sqlx.DB) PlaceMarkRepository {
	return &SQL{
		conn: conn,
		list: query.NewRepo(conn, placemarkDescriptor),
	}
}

const (
	insertPlacemarkQuery = `INSERT INTO placemark (designation, description, latitude, longitude, category_id, created_by, created_at) VALUES (?, ?, ?, ?, ?, ?, NOW())`
	deletePlacemarkQuery = `DELETE FROM placemark WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, req *model.CreatePlaceMarkRequest) (uint64, error) {
	var description any
	if req.Description != "" {
		description = req.Description
	}

	result, err := s.conn.ExecContext(ctx, insertPlacemarkQuery,
		req.Designation, description, req.Latitude, req.Longitude, req.CategoryID, req.CreatedBy)
	if err != nil {
		return 0, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(lastID), nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.PlaceMarkDTO, error) {
	return s.list.GetByID(ctx, id)
}

func (s *SQL) List(ctx context.Context, req model.ListRequest) (*model.PaginatedResponse[model.PlaceMarkDTO], error) {
	return s.list.Get(ctx, req)
}

func (s *SQL) ListByCategory(ctx context.Context, req model.ListRequest, categoryID uint64) (*model.PaginatedResponse[model.PlaceMarkDTO], error) {
	return s.list.Get(ctx, req, squirrel.Eq{"pm.category_id": categoryID})
}

// DeleteByID removes the row if present. Deleting a missing id is a no-op.
func (s *SQL) DeleteByID(ctx context.Context, id uint64) error {
	_, err := s.conn.ExecContext(ctx, deletePlacemarkQuery, id)
	return err
}
