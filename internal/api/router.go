package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/99minutos/catalog-api/docs"
	"github.com/99minutos/catalog-api/internal/api/handler"
	"github.com/99minutos/catalog-api/internal/api/middleware"
	"github.com/99minutos/catalog-api/internal/core/ports"
	"github.com/99minutos/catalog-api/internal/infrastructure/http/handlers"
)

const (
	apiPrefix = "/api/v1"
	docsURL   = "/docs/index.html"
)

// Config holds the router settings taken from the process configuration.
type Config struct {
	AppName            string
	AppVersion         string
	Debug              bool
	CORSAllowedOrigins []string
	// RateLimitRequests per RateLimitPeriod per client IP; 0 disables limiting.
	RateLimitRequests int
	RateLimitPeriod   time.Duration
	OptionalInactive  middleware.InactivePolicy
}

// Deps are the services the routes call into.
type Deps struct {
	Auth   ports.AuthService
	Users  ports.UserService
	Items  ports.ItemService
	Probes map[string]handlers.Probe
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg Config, deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, cfg.Debug)

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.ProcessTime())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{middleware.HeaderProcessTime, echo.HeaderXRequestID},
		AllowCredentials: true,
	}))
	e.Use(prometheusMiddleware(deps.Registry))
	if cfg.RateLimitRequests > 0 {
		e.Use(rateLimiter(cfg.RateLimitRequests, cfg.RateLimitPeriod))
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	itemHandler := handler.NewItemHandler(deps.Items)
	requireAuth := middleware.Auth(deps.Auth)
	optionalAuth := middleware.OptionalAuth(deps.Auth, cfg.OptionalInactive)
	superuser := middleware.Superuser()

	v1 := e.Group(apiPrefix)

	// --- User routes ---
	users := v1.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/me", userHandler.Me, requireAuth)
	users.PUT("/me", userHandler.UpdateMe, requireAuth)
	users.GET("", userHandler.List, requireAuth, superuser)
	users.GET("/:id", userHandler.Get, requireAuth, superuser)
	users.PUT("/:id", userHandler.Update, requireAuth, superuser)
	users.DELETE("/:id", userHandler.Delete, requireAuth, superuser)

	// --- Item routes ---
	items := v1.Group("/items")
	items.POST("", itemHandler.Create, requireAuth)
	items.GET("", itemHandler.List, optionalAuth)
	items.GET("/my-items", itemHandler.Mine, requireAuth)
	items.GET("/:id", itemHandler.Get)
	items.PUT("/:id", itemHandler.Update, requireAuth)
	items.DELETE("/:id", itemHandler.Delete, requireAuth)
	items.PATCH("/:id/status", itemHandler.UpdateStatus, requireAuth)

	// --- Health probes, docs and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler(handlers.AppInfo{Name: cfg.AppName, Version: cfg.AppVersion, DocsURL: docsURL})
	readinessHandler := handlers.NewReadinessHandler(deps.Probes)

	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – stores and hash pool
	e.GET("/docs/*", echoSwagger.WrapHandler)
	e.GET("/metrics", metricsHandler(deps.Registry))

	return e
}

func prometheusMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{
		Namespace: "catalog",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

func rateLimiter(requests int, period time.Duration) echo.MiddlewareFunc {
	if period <= 0 {
		period = time.Minute
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(requests) / period.Seconds()),
		Burst:     requests,
		ExpiresIn: 3 * period,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health" || c.Path() == "/health/ready"
		},
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
	})
}
