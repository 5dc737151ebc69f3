package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/showroom/vehicle-catalog/docs"
	"github.com/showroom/vehicle-catalog/internal/api/handler"
	"github.com/showroom/vehicle-catalog/internal/api/middleware"
	"github.com/showroom/vehicle-catalog/internal/api/view"
	"github.com/showroom/vehicle-catalog/internal/core/domain"
	"github.com/showroom/vehicle-catalog/internal/core/ports"
	"github.com/showroom/vehicle-catalog/internal/infrastructure/http/handlers"
	"github.com/showroom/vehicle-catalog/internal/session"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Accounts ports.AccountService
	Vehicles ports.VehicleService
	Sessions *session.Manager
	Cookie   session.CookieOptions
	// Readiness maps a dependency name to its health check.
	Readiness map[string]handlers.Check
	Log       zerolog.Logger
	// Metrics enables request metrics and GET /metrics. The collectors live in
	// the default registry, so only one router per process may enable it.
	Metrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("build renderer: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	if d.Metrics {
		e.Use(echoprometheus.NewMiddleware("showroom"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}
	e.Use(middleware.Session(d.Sessions, d.Cookie))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Accounts, d.Sessions, d.Cookie)
	adminHandler := handler.NewAdminHandler(d.Accounts)
	vehicleHandler := handler.NewVehicleHandler(d.Vehicles)

	anonymousOnly := middleware.Chain(middleware.NotAuthenticated())
	signedIn := middleware.Chain(middleware.Authenticated())
	adminOnly := middleware.Chain(middleware.Authenticated(), middleware.HasRole(domain.RoleAdmin))

	// --- Auth routes ---
	e.GET("/", authHandler.Root, anonymousOnly)
	e.GET("/login", authHandler.ShowLogin, anonymousOnly)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/register", authHandler.ShowRegister)
	e.POST("/register", authHandler.Register)
	e.GET("/dashboard", authHandler.Dashboard, signedIn)

	// --- Admin routes ---
	e.GET("/admin", adminHandler.Panel, adminOnly)
	e.POST("/admin/edituser", adminHandler.EditUser, adminOnly)

	// --- Catalog routes ---
	e.GET("/overview", vehicleHandler.Overview)
	e.GET("/detail/:id", vehicleHandler.Detail)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
