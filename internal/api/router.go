package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/recipebox/recipe-api/docs"
	"github.com/recipebox/recipe-api/internal/api/handler"
	"github.com/recipebox/recipe-api/internal/api/middleware"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Users  ports.UserService
	Auth   ports.AuthService
	Tags   ports.TagService
	Health []handler.DependencyCheck
	Logger zerolog.Logger

	// Registry receives the HTTP request metrics. A fresh registry is used
	// when nil. /metrics serves it together with the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "recipe",
		Subsystem:                 "http",
		Registerer:                registry,
		DoNotUseRequestPathFor404: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	userHandler := handler.NewUserHandler(deps.Users, deps.Auth)
	tagHandler := handler.NewTagHandler(deps.Tags)
	healthHandler := handler.NewHealthHandler(deps.Health...)
	authn := middleware.Auth(deps.Auth)

	// --- Users ---
	users := e.Group("/users")
	users.POST("", userHandler.Create)
	users.POST("/token", userHandler.Token)
	users.GET("/me", userHandler.Me, authn)
	users.PATCH("/me", userHandler.UpdateMe, authn)

	// --- Tags ---
	e.GET("/tags", tagHandler.List, authn)
	e.POST("/tags", tagHandler.Create, authn)

	// --- Admin ---
	e.GET("/admin/users", userHandler.ListUsers, authn, middleware.RequireStaff())

	// --- Operational ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, registry},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
