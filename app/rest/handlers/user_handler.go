package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/peitrae/tandain-auth/app/port"
	"github.com/peitrae/tandain-auth/app/rest/middleware"
	apperrors "github.com/peitrae/tandain-auth/app/utils/errors"
)

// UserHandler handles user HTTP requests
type UserHandler struct {
	userUsecase port.UserUsecase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase port.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		logger:      logger.With("component", "user_handler"),
	}
}

// GetMe handles GET /v1/users/me. The auth middleware has already
// verified the credential and stored its claims on the context.
func (h *UserHandler) GetMe(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    string(apperrors.ErrCodeUnauthorized),
			Message: "authentication required",
		})
	}

	user, err := h.userUsecase.GetUserByID(c.Request().Context(), claims.Subject)
	if err != nil {
		appErr, ok := apperrors.AsAppError(err)
		if !ok {
			h.logger.Error("failed to load user", "user_id", claims.Subject, "error", err)
			return c.JSON(http.StatusInternalServerError, ErrorResponse{
				Code:    string(apperrors.ErrCodeInternalError),
				Message: genericServerMessage,
			})
		}

		message := appErr.Message
		if appErr.StatusCode >= http.StatusInternalServerError {
			message = genericServerMessage
		}
		return c.JSON(appErr.StatusCode, ErrorResponse{
			Code:    string(appErr.Code),
			Message: message,
		})
	}

	return c.JSON(http.StatusOK, user)
}
