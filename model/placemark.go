package model

import "time"

// PlaceMarkRow is the storage row shape the placemark projection yields,
// including the one-level category and creator lookup columns.
type PlaceMarkRow struct {
	ID                  uint64     `db:"id"`
	Designation         string     `db:"designation"`
	Description         *string    `db:"description"`
	Latitude            float64    `db:"latitude"`
	Longitude           float64    `db:"longitude"`
	CategoryID          uint64     `db:"category_id"`
	CategoryDesignation string     `db:"category_designation"`
	CreatedByID         uint64     `db:"created_by_id"`
	CreatedByName       string     `db:"created_by_name"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           *time.Time `db:"updated_at"`
}

// PlaceMarkDTO is the public read view of a placemark.
type PlaceMarkDTO struct {
	ID          uint64     `json:"id"`
	Designation string     `json:"designation"`
	Description string     `json:"description,omitempty"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Category    Lookup     `json:"category"`
	CreatedBy   Lookup     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// CreatePlaceMarkRequest for creating a placemark
type CreatePlaceMarkRequest struct {
	Designation string  `json:"designation" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Latitude    float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude   float64 `json:"longitude" validate:"min=-180,max=180"`
	CategoryID  uint64  `json:"categoryId" validate:"required"`
	CreatedBy   uint64  `json:"-"`
}
