package model

import "time"

// UserEntity represents the user table entity
type UserEntity struct {
	ID           uint64     `db:"id" json:"id"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Admin        bool       `db:"admin" json:"admin"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// UserDTO is the public read view of a user. The password hash never
// crosses this boundary.
type UserDTO struct {
	ID        uint64     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Admin     bool       `json:"admin"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// UserFilter for querying users
type UserFilter struct {
	ID    uint64
	Email string
}

// SignupRequest for user registration (HTML form and API create)
type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

// AuthRequest for credential checks
type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Principal is the identity attached to a request after validation.
type Principal struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// AuthResponse is the result of an authenticate call. Success=false carries
// no user and no token.
type AuthResponse struct {
	Success bool       `json:"success"`
	User    *Principal `json:"user,omitempty"`
	Token   string     `json:"token,omitempty"`
}
