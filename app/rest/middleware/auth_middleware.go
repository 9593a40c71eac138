package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/peitrae/tandain-auth/app/domain"
	"github.com/peitrae/tandain-auth/app/port"
)

const claimsContextKey = "session_claims"

// AuthMiddleware verifies the bearer session credential on protected
// routes and stores its claims on the request context.
type AuthMiddleware struct {
	tokens port.TokenIssuer
	logger *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens port.TokenIssuer, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		logger: logger.With("component", "auth_middleware"),
	}
}

// RequireAuth rejects requests without a valid bearer credential.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"code":    "UNAUTHORIZED",
					"message": "missing bearer credential",
				})
			}

			claims, err := m.tokens.Parse(token)
			if err != nil {
				m.logger.Warn("rejected credential", "error", err, "ip", c.RealIP())
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"code":    "UNAUTHORIZED",
					"message": "session credential is invalid or expired",
				})
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// ClaimsFromContext returns the verified session claims, if any.
func ClaimsFromContext(c echo.Context) (*domain.SessionClaims, bool) {
	claims, ok := c.Get(claimsContextKey).(*domain.SessionClaims)
	return claims, ok
}
