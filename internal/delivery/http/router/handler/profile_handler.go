package handler

import (
	"net/http"
	"time"

	"pulseboard/internal/delivery/http/response"
	"pulseboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for authenticated user endpoints.
type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// userIDFromContext reads the user ID set by the authentication middleware.
func userIDFromContext(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get("userID").(uuid.UUID)

	return userID, ok
}

// GetProfile handles the request to get the current user's profile.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserView(user), "Profile retrieved successfully")
}

// GetDashboard returns the protected dashboard payload. The stats are static
// placeholders until real aggregation lands.
func (h *ProfileHandler) GetDashboard(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	displayName := user.FirstName
	if displayName == "" {
		displayName = user.Email
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"message":   "Welcome back, " + displayName + "!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"stats": map[string]any{
			"users":       1234,
			"sessions":    567,
			"revenue":     12345,
			"performance": 98.5,
		},
	}, "Dashboard retrieved successfully")
}
