package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"schedulerapi/internal/common"
	"schedulerapi/internal/models"
	"schedulerapi/internal/repositories"
	"schedulerapi/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthHandlers handles signup, signin and signout.
type AuthHandlers struct {
	authService services.AuthService
	userRepo    repositories.UserRepository
}

func NewAuthHandlers(authService services.AuthService, userRepo repositories.UserRepository) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		userRepo:    userRepo,
	}
}

// SignupRequest represents the signup request payload
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Type     string `json:"type"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup registers a new identity and issues its first token.
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Email == "" || req.Password == "" {
		return common.SendValidationError(c, "email", "email and password are required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return common.SendValidationError(c, "email", "invalid email address")
	}
	if len(req.Password) < 6 {
		return common.SendValidationError(c, "password", "password must be at least 6 characters")
	}

	accountType := models.AccountTypeNormal
	if req.Type != "" {
		if !models.ValidAccountType(req.Type) {
			return common.SendValidationError(c, "type", "account type must be normal or business")
		}
		accountType = models.AccountType(req.Type)
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to process credentials")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Type:         accountType,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if req.FullName != "" {
		user.FullName = &req.FullName
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return c.JSON(http.StatusConflict, common.CreateErrorResponse("CONFLICT", "Email already in use", nil))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to issue token")
	}

	return c.JSON(http.StatusCreated, TokenResponse{Token: token, User: user})
}

// SigninRequest represents the signin request payload
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signin verifies credentials and issues a token. Unknown email and wrong
// password produce the same answer.
func (h *AuthHandlers) Signin(c echo.Context) error {
	ctx := c.Request().Context()

	var req SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return common.SendValidationError(c, "email", "email and password are required")
	}

	user, err := h.userRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	if !h.authService.VerifyPassword(req.Password, user.PasswordHash) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to issue token")
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token, User: user})
}

// Signout puts the presented token on the denylist for the rest of its
// lifetime. Runs behind the auth middleware, so the token is known valid.
func (h *AuthHandlers) Signout(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	token := strings.TrimSpace(authHeader[len("Bearer "):])

	if err := h.authService.RevokeToken(c.Request().Context(), token); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to revoke token")
	}
	return c.NoContent(http.StatusNoContent)
}
