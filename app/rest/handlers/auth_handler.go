package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/peitrae/tandain-auth/app/port"
	apperrors "github.com/peitrae/tandain-auth/app/utils/errors"
	"github.com/peitrae/tandain-auth/app/utils/validator"
)

// ErrorResponse is the uniform error body returned by every handler.
type ErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

// genericServerMessage replaces internal fault messages at the HTTP
// boundary. The code stays specific so callers can still branch.
const genericServerMessage = "Something went wrong, please try again later"

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authUsecase port.AuthUsecase
	validator   *validator.Validator
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase port.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator.New(),
		logger:      logger.With("component", "auth_handler"),
	}
}

// LoginWithGoogleRequest is the login request body
type LoginWithGoogleRequest struct {
	Code        string `json:"code" validate:"required"`
	RedirectURI string `json:"redirect_uri" validate:"required,url"`
}

// AuthURLResponse carries the Google consent URL and the state token
// the client must send back with the callback.
type AuthURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// LoginWithGoogle handles POST /v1/auth/login/google
func (h *AuthHandler) LoginWithGoogle(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginWithGoogleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    string(apperrors.ErrCodeValidationFailed),
			Message: "request body must be valid JSON",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    string(apperrors.ErrCodeValidationFailed),
			Message: err.Error(),
		})
	}

	result, err := h.authUsecase.LoginWithGoogle(ctx, req.Code, req.RedirectURI)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// InitiateGoogleLogin handles GET /v1/auth/login/google/url
func (h *AuthHandler) InitiateGoogleLogin(c echo.Context) error {
	redirectURI := c.QueryParam("redirect_uri")
	if redirectURI == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    string(apperrors.ErrCodeValidationFailed),
			Message: "redirect_uri query parameter is required",
		})
	}

	state := uuid.NewString()

	return c.JSON(http.StatusOK, AuthURLResponse{
		URL:   h.authUsecase.AuthCodeURL(state, redirectURI),
		State: state,
	})
}

// writeError renders an AppError. Upstream and system faults keep their
// code but get a generic message; caller-attributable errors are
// returned as-is since their messages are stable and displayable.
func (h *AuthHandler) writeError(c echo.Context, err error) error {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		h.logger.Error("unclassified error reached handler", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    string(apperrors.ErrCodeInternalError),
			Message: genericServerMessage,
		})
	}

	h.logger.Error("login failed",
		"code", appErr.Code,
		"location", appErr.Location,
		"error", appErr)

	message := appErr.Message
	if appErr.StatusCode >= http.StatusInternalServerError {
		message = genericServerMessage
	}

	return c.JSON(appErr.StatusCode, ErrorResponse{
		Code:     string(appErr.Code),
		Message:  message,
		Location: appErr.Location,
	})
}
