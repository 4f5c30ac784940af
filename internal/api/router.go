package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/Sirpyerre/book-reviews/docs"
	"github.com/Sirpyerre/book-reviews/internal/api/handler"
	"github.com/Sirpyerre/book-reviews/internal/api/middleware"
	"github.com/Sirpyerre/book-reviews/internal/core/ports"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Catalog  ports.CatalogService
	Reviews  ports.ReviewService
	Auth     ports.AuthService
	Activity ports.ReviewEventService

	// Checks are pinged by the readiness probe, keyed by dependency name.
	Checks map[string]handler.Pinger

	Logger zerolog.Logger

	// LoginRateLimit is the per-IP requests/second allowed on /customer/login.
	// Zero disables the limiter.
	LoginRateLimit float64
	SecureCookies  bool

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(metricsMiddleware(deps.Registry))

	bookHandler := handler.NewBookHandler(deps.Catalog, deps.Activity)
	reviewHandler := handler.NewReviewHandler(deps.Reviews)
	authHandler := handler.NewAuthHandler(deps.Auth, deps.SecureCookies)

	// --- Public catalog routes ---
	e.GET("/", bookHandler.List)
	e.GET("/isbn/:isbn", bookHandler.GetByISBN)
	e.GET("/author/:author", bookHandler.ByAuthor)
	e.GET("/title/:title", bookHandler.ByTitle)
	e.GET("/review/:isbn", bookHandler.Reviews)
	e.GET("/review/:isbn/history", bookHandler.History)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)

	customer := e.Group("/customer")
	loginMiddleware := []echo.MiddlewareFunc{}
	if deps.LoginRateLimit > 0 {
		store := echomiddleware.NewRateLimiterMemoryStore(rate.Limit(deps.LoginRateLimit))
		loginMiddleware = append(loginMiddleware, echomiddleware.RateLimiter(store))
	}
	customer.POST("/login", authHandler.Login, loginMiddleware...)

	// The session gate runs only where an identity is needed; reads stay
	// independent of the session store.
	session := middleware.Session(deps.Auth)
	customer.POST("/logout", authHandler.Logout, session)

	// --- Review mutations ---
	authed := customer.Group("/auth", session)
	authed.PUT("/review/:isbn", reviewHandler.Upsert)
	authed.DELETE("/review/:isbn", reviewHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{Subsystem: "bookreviews"}
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

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
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
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
