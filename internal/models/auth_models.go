package models

import "time"

// Roles recognised by the authorization middleware.
const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
)

// User represents an account that can operate the warehouse backend.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // '-' means don't send in JSON response
	Role         string    `json:"role" db:"role"`       // e.g. "Admin", "Staff"
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
