package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/peitrae/tandain-auth/app/port"
	"github.com/peitrae/tandain-auth/app/rest/handlers"
	custommw "github.com/peitrae/tandain-auth/app/rest/middleware"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger      *slog.Logger
	AuthUsecase port.AuthUsecase
	UserUsecase port.UserUsecase
	TokenIssuer port.TokenIssuer
	DB          handlers.DependencyChecker
	EnableDebug bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = config.EnableDebug

	authHandler := handlers.NewAuthHandler(config.AuthUsecase, config.Logger)
	userHandler := handlers.NewUserHandler(config.UserUsecase, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.DB, config.Logger)

	authMiddleware := custommw.NewAuthMiddleware(config.TokenIssuer, config.Logger)

	// Global middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.DefaultCORS())
	e.Use(custommw.SecurityHeaders())

	v1 := e.Group("/v1")

	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)

	auth := v1.Group("/auth")
	auth.GET("/login/google/url", authHandler.InitiateGoogleLogin)
	auth.POST("/login/google", authHandler.LoginWithGoogle)

	users := v1.Group("/users", authMiddleware.RequireAuth())
	users.GET("/me", userHandler.GetMe)

	return e
}
