package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/freelancehub/marketplace/docs"
	"github.com/freelancehub/marketplace/internal/api/handler"
	"github.com/freelancehub/marketplace/internal/api/middleware"
	"github.com/freelancehub/marketplace/internal/core/service"
	authmongo "github.com/freelancehub/marketplace/internal/infrastructure/db/mongo"
	authredis "github.com/freelancehub/marketplace/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))
	// The storefront calls this API from the browser; the session token
	// travels in a custom header, so it must be allowed through CORS.
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Session-Token"},
		MaxAge:       86400,
	}))

	// --- Dependencies ---
	userRepo := authmongo.NewUserRepository(db)
	profileRepo := authmongo.NewProfileRepository(db)
	sessionRepo := authmongo.NewSessionRepository(db)
	sessionCache := authredis.NewSessionCache(rdb)
	authService := service.NewAuthService(userRepo, profileRepo, sessionRepo, sessionCache, log)
	authHandler := handler.NewAuthHandler(authService)

	// --- Auth endpoint (single URL, POST action envelope + GET session check) ---
	e.POST("/auth", authHandler.Handle)
	e.GET("/auth", authHandler.Session, middleware.Session(authService))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
