package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agenciapet/petpal-manager/internal/api/handler"
	"github.com/agenciapet/petpal-manager/internal/api/middleware"
	"github.com/agenciapet/petpal-manager/internal/core/domain"
	"github.com/agenciapet/petpal-manager/internal/core/ports"
	"github.com/agenciapet/petpal-manager/internal/core/service"
	mongodb "github.com/agenciapet/petpal-manager/internal/infrastructure/db/mongo"
	redisdb "github.com/agenciapet/petpal-manager/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	codec ports.TokenCodec,
	hasher ports.PasswordHasher,
	notifier ports.ResetNotifier,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("petpal"))

	// --- Dependencies ---
	users := mongodb.NewUserDirectory(db)
	resets := redisdb.NewResetTokenStore(rdb)
	authService := service.NewAuthService(users, codec, hasher, resets, notifier, log)
	authHandler := handler.NewAuthHandler(authService)

	// --- Public auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/reset-password", authHandler.ResetPassword)

	// --- Protected routes ---
	authed := e.Group("", middleware.Auth(codec))
	authed.GET("/auth/profile", authHandler.Profile)

	admin := authed.Group("/admin", middleware.RequireRoles(domain.RoleAdmin))
	admin.GET("/users/:id", authHandler.GetUser)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
