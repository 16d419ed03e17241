package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a service provider owned by exactly one user. All reads and
// writes are scoped by the owning user id; a supplier is invisible to
// everyone else.
type Supplier struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	BusinessName string    `json:"business_name" db:"business_name"`
	Description  string    `json:"description" db:"description"`
	Image        string    `json:"image" db:"image"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
