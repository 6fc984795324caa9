package model

import "time"

// CategoryRow is the storage row shape the category projection yields,
// including the one-level creator lookup columns.
type CategoryRow struct {
	ID            uint64     `db:"id"`
	Designation   string     `db:"designation"`
	CreatedByID   uint64     `db:"created_by_id"`
	CreatedByName string     `db:"created_by_name"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at"`
}

// CategoryDTO is the public read view of a category.
type CategoryDTO struct {
	ID          uint64     `json:"id"`
	Designation string     `json:"designation"`
	CreatedBy   Lookup     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// CreateCategoryRequest for creating a category
type CreateCategoryRequest struct {
	Designation string `json:"designation" validate:"required,max=100"`
	CreatedBy   uint64 `json:"-"`
}
