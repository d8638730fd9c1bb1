package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/codesprint-backend/internal/config"
	"github.com/stemsi/codesprint-backend/internal/handler"
	"github.com/stemsi/codesprint-backend/internal/middleware"
	"github.com/stemsi/codesprint-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Registration *handler.RegistrationHandler
	Auth         *handler.AuthHandler
	Registrant   *handler.RegistrantHandler
	Health       *handler.HealthHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	verifier middleware.TokenVerifier,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// Only listed proxies may set the client IP the rate limiters key on.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn().Err(err).Strs("trusted_proxies", cfg.TrustedProxies).Msg("Invalid TRUSTED_PROXIES, trusting none")
		_ = router.SetTrustedProxies(nil)
	}

	// Request ID first so the logger and every envelope can see it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
	}))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "RateLimit-Limit", "RateLimit-Remaining", "RateLimit-Reset", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.NoRoute(func(c *gin.Context) {
		response.FailWithMessage(c, http.StatusNotFound, response.ErrNotFound, "Route not found.")
	})

	// Health checks sit outside /api and its rate limits.
	router.GET("/health", handlers.Health.Live)
	router.GET("/health/ready", handlers.Health.Ready)

	rl := cfg.RateLimit
	globalLimiter := middleware.NewRateLimiter(rl.Global, rl.Window)
	registerLimiter := middleware.NewRateLimiter(rl.Register, rl.RegisterWindow)
	loginLimiter := middleware.NewRateLimiter(rl.Login, rl.Window)

	api := router.Group("/api")
	api.Use(globalLimiter.Middleware())

	// ─── 1. Registration Group (Public) ────────────────────────────────
	registration := api.Group("/registration")
	{
		registration.POST("/register", registerLimiter.Middleware(), handlers.Registration.Register)
		registration.GET("/count", handlers.Registration.Count)
		registration.GET("/check/:email", handlers.Registration.CheckEmail)
		registration.GET("/branches", middleware.CacheControl(3600), handlers.Registration.Branches)
	}

	// ─── 2. Admin Group ────────────────────────────────────────────────
	admin := api.Group("/admin")
	admin.Use(middleware.NoStore(), middleware.Brotli())
	{
		admin.POST("/login", loginLimiter.Middleware(), handlers.Auth.AdminLogin)

		// Everything below requires a valid admin session token.
		authed := admin.Group("")
		authed.Use(middleware.RequireAdminJWT(verifier))
		{
			authed.GET("/verify", handlers.Auth.Verify)
			authed.GET("/users", handlers.Registrant.ListRegistrants)
			authed.PUT("/users/:id", handlers.Registrant.UpdateRegistrant)
			authed.DELETE("/users/:id", handlers.Registrant.DeleteRegistrant)
		}
	}

	return router
}
