package query

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/placemarkhq/placemark/model"
)

// Repo is a paginated repository over one storage collection, parameterized
// by one descriptor. It owns sort order and total-count semantics; callers
// supply only the skip/take window and an optional filter.
type Repo[R any, D any] struct {
	db   *sqlx.DB
	desc Descriptor[R, D]
}

func NewRepo[R any, D any](db *sqlx.DB, desc Descriptor[R, D]) *Repo[R, D] {
	return &Repo[R, D]{db: db, desc: desc}
}

func (r *Repo[R, D]) selectBase() squirrel.SelectBuilder {
	b := squirrel.Select(r.desc.Columns...).From(r.desc.Table)
	for _, j := range r.desc.Joins {
		b = b.Join(j.Table + " ON " + j.On)
	}
	return b
}

func (r *Repo[R, D]) countBase() squirrel.SelectBuilder {
	b := squirrel.Select("COUNT(*)").From(r.desc.Table)
	for _, j := range r.desc.Joins {
		b = b.Join(j.Table + " ON " + j.On)
	}
	return b
}

// Get returns one window of the globally ordered result set plus the full
// matching count. Count and window are built from the same filter so both
// reflect the same logical read. A skip past the end yields an empty window
// and the correct total.
func (r *Repo[R, D]) Get(ctx context.Context, req model.ListRequest, filter ...squirrel.Sqlizer) (*model.PaginatedResponse[D], error) {
	req = req.Normalize()

	countQ := r.countBase()
	listQ := r.selectBase()
	for _, f := range filter {
		countQ = countQ.Where(f)
		listQ = listQ.Where(f)
	}

	order := append([]string{}, r.desc.OrderBy...)
	order = append(order, r.desc.IDColumn)
	listQ = listQ.OrderBy(order...).Limit(req.Take).Offset(req.Skip)

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, err
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, err
	}

	listSQL, listArgs, err := listQ.ToSql()
	if err != nil {
		return nil, err
	}
	var rows []R
	if err := r.db.SelectContext(ctx, &rows, listSQL, listArgs...); err != nil {
		return nil, err
	}

	data := make([]D, 0, len(rows))
	for _, row := range rows {
		data = append(data, r.desc.Transform(row))
	}

	return &model.PaginatedResponse[D]{Total: total, Data: data}, nil
}

// GetByID resolves one record to its DTO. Unknown ids are a nil result,
// never an error.
func (r *Repo[R, D]) GetByID(ctx context.Context, id uint64) (*D, error) {
	q := r.selectBase().Where(squirrel.Eq{r.desc.IDColumn: id})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var row R
	if err := r.db.GetContext(ctx, &row, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	dto := r.desc.Transform(row)
	return &dto, nil
}

// Exists reports whether a record with the given id is present. Used by
// repositories to validate referenced owners before inserting dependents.
func (r *Repo[R, D]) Exists(ctx context.Context, id uint64) (bool, error) {
	q := squirrel.Select("COUNT(*)").From(r.desc.Table).Where(squirrel.Eq{r.desc.IDColumn: id})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return false, err
	}
	var n int64
	if err := r.db.GetContext(ctx, &n, sqlStr, args...); err != nil {
		return false, err
	}
	return n > 0, nil
}
