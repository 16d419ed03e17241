package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. Every appointment starts as pending regardless of
// client input; transitions happen only through the status-update endpoint.
const (
	StatusPending   = "pending"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is an allowed appointment status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a booking against a supplier. Two parties have access: the
// user who created it and the owner of the referenced supplier.
type Appointment struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	SupplierID uuid.UUID `json:"supplier_id" db:"supplier_id"`
	Date       time.Time `json:"date" db:"date"`
	Time       string    `json:"time" db:"time"`
	Status     string    `json:"status" db:"status"`
	Notes      string    `json:"notes" db:"notes"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
