package di

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/peitrae/tandain-auth/app/config"
	"github.com/peitrae/tandain-auth/app/driver/google"
	"github.com/peitrae/tandain-auth/app/driver/postgres"
	"github.com/peitrae/tandain-auth/app/driver/token"
	"github.com/peitrae/tandain-auth/app/gateway"
	"github.com/peitrae/tandain-auth/app/port"
	"github.com/peitrae/tandain-auth/app/rest"
	"github.com/peitrae/tandain-auth/app/usecase"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB          *postgres.DB
	OAuthClient *google.Client
	TokenIssuer port.TokenIssuer

	// Usecases
	AuthUsecase port.AuthUsecase
	UserUsecase port.UserUsecase
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error
	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container.TokenIssuer, err = token.NewIssuer(cfg.JWTSecret)
	if err != nil {
		container.DB.Close()
		return nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	container.OAuthClient = google.NewClient(cfg, logger)
	peopleClient := google.NewPeopleClient(logger)

	userRepository := postgres.NewUserRepository(container.DB.Pool(), logger)
	userGateway := gateway.NewUserGateway(userRepository, logger)

	container.AuthUsecase = usecase.NewAuthUseCase(
		container.OAuthClient,
		peopleClient,
		userGateway,
		container.TokenIssuer,
		cfg.PublicHost,
		logger,
	)
	container.UserUsecase = usecase.NewUserUseCase(userGateway, logger)

	logger.Info("container initialized")

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	return rest.NewRouter(rest.RouterConfig{
		Logger:      c.Logger,
		AuthUsecase: c.AuthUsecase,
		UserUsecase: c.UserUsecase,
		TokenIssuer: c.TokenIssuer,
		DB:          c.DB,
		EnableDebug: c.Config.LogLevel == "debug",
	})
}

// Close releases container resources
func (c *Container) Close() {
	if c.DB != nil {
		c.DB.Close()
	}
}
