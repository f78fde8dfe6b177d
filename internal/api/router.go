package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/cereza/orderdesk/internal/api/handler"
	"github.com/cereza/orderdesk/internal/api/middleware"
	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/service"
	"github.com/cereza/orderdesk/internal/infrastructure/http/handlers"

	_ "github.com/cereza/orderdesk/docs"
)

// Dependencies are the services and probes the router mounts.
type Dependencies struct {
	Sessions  *service.SessionLoader
	Login     *service.LoginService
	Orders    *service.OrderService
	Dashboard *service.DashboardService
	Checks    map[string]handlers.Check
	Log       zerolog.Logger

	// Registry and Gatherer default to the global Prometheus registry.
	Registry prometheus.Registerer
	Gatherer prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	if deps.Registry == nil {
		deps.Registry = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "orderdesk",
		Registerer: deps.Registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	}))

	// --- Infrastructure routes (no session) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(deps.Checks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	sessionHandler := handler.NewSessionHandler(deps.Login)
	cartHandler := handler.NewCartHandler(deps.Orders)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	adminHandler := handler.NewAdminHandler(deps.Dashboard)

	v1 := e.Group("/v1", middleware.Session(deps.Sessions, deps.Log))

	// --- Session routes ---
	v1.GET("/session", sessionHandler.Get)
	v1.POST("/session/login", sessionHandler.Login)
	v1.POST("/session/elevate", sessionHandler.Elevate)
	v1.POST("/session/leave-admin", sessionHandler.LeaveAdmin)
	v1.POST("/session/logout", sessionHandler.Logout)

	// --- Cart and order routes (any identity) ---
	requireIdentity := middleware.RequireIdentity()
	v1.GET("/cart", cartHandler.Get, requireIdentity)
	v1.POST("/cart/items", cartHandler.AddItem, requireIdentity)
	v1.DELETE("/cart", cartHandler.Clear, requireIdentity)
	v1.POST("/orders", orderHandler.Submit, requireIdentity)

	// --- Operator routes ---
	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/orders", adminHandler.Orders)
	admin.GET("/orders/export", adminHandler.Export)
	admin.GET("/clients", adminHandler.Clients)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
