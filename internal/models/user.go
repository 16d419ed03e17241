package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountType distinguishes normal users from business users who register
// suppliers. It is carried on the identity record and in token scopes but
// does not gate authorization decisions.
type AccountType string

const (
	AccountTypeNormal   AccountType = "normal"
	AccountTypeBusiness AccountType = "business"
)

// ValidAccountType reports whether s is a recognized account type.
func ValidAccountType(s string) bool {
	switch AccountType(s) {
	case AccountTypeNormal, AccountTypeBusiness:
		return true
	}
	return false
}

// User represents an authenticated actor.
type User struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	Email        string      `json:"email" db:"email"`
	PasswordHash string      `json:"-" db:"password_hash"`
	FullName     *string     `json:"full_name,omitempty" db:"full_name"`
	Type         AccountType `json:"type" db:"account_type"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}
