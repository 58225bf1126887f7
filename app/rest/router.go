package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tenant-auth-service/app/domain"
	"tenant-auth-service/app/port"
	"tenant-auth-service/app/rest/handlers"
	custommw "tenant-auth-service/app/rest/middleware"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger       *slog.Logger
	AuthUsecase  port.AuthUsecase
	HealthChecks map[string]handlers.CheckFunc
	EnableDebug  bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.Debug = config.EnableDebug

	authHandler := handlers.NewAuthHandler(config.AuthUsecase, config.Logger)
	accountHandler := handlers.NewAccountHandler(config.AuthUsecase, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.HealthChecks, config.Logger)

	access := custommw.NewAccessMiddleware(config.AuthUsecase, config.Logger)
	rateLimiter := custommw.NewRateLimiter()

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.DefaultCORS())
	e.Use(custommw.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
	}))

	// API versioning
	v1 := e.Group("/v1")

	// Health endpoints (no auth required)
	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)
	v1.GET("/live", healthHandler.LivenessCheck)

	// Authentication endpoints
	auth := v1.Group("/auth")
	auth.POST("/admin/login", authHandler.AdminLogin)
	auth.POST("/login", authHandler.Login)
	auth.POST("/restore", authHandler.Restore)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", authHandler.CurrentSession, access.RequireSession())
	auth.POST("/access", authHandler.CheckAccess)

	// Account provisioning: owners manage their own delegated staff,
	// administrators may provision on an owner's behalf.
	accounts := v1.Group("/accounts")
	accountGate := access.Require(domain.AccessSpec{
		OwnerOnly: true,
		AdminOnly: true,
	})
	accounts.POST("/managers", accountHandler.ProvisionManager, accountGate)
	accounts.PATCH("/managers/:id/status", accountHandler.SetManagerStatus, accountGate)

	return e
}
