package common

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// UserIDKey carries the authenticated user's id through the request context.
// It is set once by the auth middleware and read-only afterwards.
const UserIDKey contextKey = "user_id"

// GetUserIDFromContext extracts the authenticated user id from the request
// context. The second return is false when the request never passed the auth
// middleware.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
