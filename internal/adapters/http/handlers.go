package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/joinboard/api/internal/application/services"
	"github.com/joinboard/api/internal/domain/entities"
	"github.com/joinboard/api/internal/infrastructure/logger"
)

// Context keys set by the auth middleware.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req services.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusBadRequest, "email: already registered")
		case errors.Is(err, entities.ErrUsernameTaken):
			return echo.NewHTTPError(http.StatusBadRequest, "username: already registered")
		}
		h.logger.Errorw("Registration failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Registration failed")
	}

	return c.JSON(http.StatusCreated, user)
}

// Login handles user login
func (h *AuthHandler) Login(c echo.Context) error {
	var req services.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidCredentials) {
			// One message for unknown email and wrong password alike.
			h.logger.LogSecurityEvent("login_failed", c.RealIP(), nil)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
		}
		h.logger.Errorw("Login failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Login failed")
	}

	return c.JSON(http.StatusOK, response)
}

// Logout handles user logout
func (h *AuthHandler) Logout(c echo.Context) error {
	userID := GetUserID(c)

	if err := h.authService.Logout(c.Request().Context(), userID); err != nil {
		h.logger.Errorw("Logout failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Logout failed")
	}

	return c.NoContent(http.StatusNoContent)
}

// UserHandler handles user read requests
type UserHandler struct {
	userService *services.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers handles listing users
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List users failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve users")
	}

	return c.JSON(http.StatusOK, users)
}

// GetUser handles getting user by ID
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		h.logger.Errorw("Get user failed", "error", err, "user_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve user")
	}

	return c.JSON(http.StatusOK, user)
}

// GetUserID returns the authenticated user's ID set by the auth middleware.
func GetUserID(c echo.Context) int64 {
	v := c.Get(ContextKeyUserID)
	if v == nil {
		return 0
	}

	if id, ok := v.(int64); ok {
		return id
	}

	return 0
}

func parseID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
