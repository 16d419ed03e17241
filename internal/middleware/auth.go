package middleware

import (
	"context"
	"net/http"
	"strings"

	"schedulerapi/internal/common"
	"schedulerapi/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware authenticates requests from the Authorization header.
type AuthMiddleware struct {
	authSvc services.AuthService
}

func NewAuthMiddleware(authSvc services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// Authenticate extracts and validates the bearer token. Header problems are
// rejected before the token service is ever invoked; validation failures all
// surface as the same 401. On success the resolved user id rides the request
// context for the rest of the pipeline.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
		}

		const prefix = "Bearer "
		if len(authHeader) < len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token format")
		}

		token := strings.TrimSpace(authHeader[len(prefix):])
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
		}

		userID, err := m.authSvc.ValidateToken(c.Request().Context(), token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}

		ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
