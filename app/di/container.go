package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"tenant-auth-service/app/config"
	"tenant-auth-service/app/driver/kratos"
	"tenant-auth-service/app/driver/postgres"
	"tenant-auth-service/app/driver/redisstore"
	"tenant-auth-service/app/gateway"
	"tenant-auth-service/app/port"
	"tenant-auth-service/app/rest"
	"tenant-auth-service/app/rest/handlers"
	"tenant-auth-service/app/usecase"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB           *postgres.DB
	Redis        *redis.Client
	KratosClient *kratos.Client

	// Ports
	Credentials  port.CredentialRepository
	SessionStore port.SessionStore
	Provider     port.IdentityProvider

	// Usecases
	AuthUsecase port.AuthUsecase
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

	container.Redis = redisstore.NewClient(redisstore.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	container.KratosClient, err = kratos.NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Kratos client: %w", err)
	}

	container.Credentials = postgres.NewCredentialRepository(container.DB.Pool(), logger)
	container.SessionStore = redisstore.NewSessionStore(container.Redis, cfg.SessionSlotKey, logger)

	kratosAdapter := kratos.NewClientAdapter(container.KratosClient, logger)
	container.Provider = gateway.NewProviderGateway(kratosAdapter, logger)

	allocator := usecase.NewHandleAllocator(container.Credentials, logger)

	container.AuthUsecase = usecase.NewAuthUseCase(usecase.AuthUseCaseOptions{
		Credentials: container.Credentials,
		Sessions:    container.SessionStore,
		Provider:    container.Provider,
		Allocator:   allocator,
		AdminDomain: cfg.NormalizedAdminDomain(),
		BcryptCost:  cfg.BcryptCost,
	}, logger)

	logger.Info("Container initialized with full dependency stack")

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	routerConfig := rest.RouterConfig{
		Logger:       c.Logger,
		AuthUsecase:  c.AuthUsecase,
		HealthChecks: c.healthChecks(),
		EnableDebug:  c.Config.LogLevel == "debug",
	}

	router := rest.NewRouter(routerConfig)

	c.Logger.Info("Full API router created")
	return router
}

// healthChecks names the dependency probes used by the readiness
// endpoint.
func (c *Container) healthChecks() map[string]handlers.CheckFunc {
	return map[string]handlers.CheckFunc{
		"database": c.DB.HealthCheck,
		"redis": func(ctx context.Context) error {
			return c.Redis.Ping(ctx).Err()
		},
		"kratos": c.KratosClient.HealthCheck,
	}
}

// Close closes all resources
func (c *Container) Close() error {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("failed to close redis client", "error", err)
		}
	}

	c.Logger.Info("Container closed successfully")
	return nil
}
