package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/candipilot/candipilot-api/internal/api/handler"
	"github.com/candipilot/candipilot-api/internal/api/middleware"
	"github.com/candipilot/candipilot-api/internal/core/service"
	"github.com/candipilot/candipilot-api/internal/infrastructure/ai"
	"github.com/candipilot/candipilot-api/internal/infrastructure/billing"
	mongodb "github.com/candipilot/candipilot-api/internal/infrastructure/db/mongo"
	redisdb "github.com/candipilot/candipilot-api/internal/infrastructure/db/redis"
	"github.com/candipilot/candipilot-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("candipilot"))

	// --- Repositories ---
	applicationRepo := mongodb.NewApplicationRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	webhookDedup := redisdb.NewWebhookDedup(rdb)

	// --- External collaborators ---
	generator := ai.NewGenerator(cfg.Groq.APIKey, cfg.Groq.Model, log)
	stripeClient := billing.NewStripeClient(billing.Config{
		SecretKey:     cfg.Stripe.SecretKey,
		PriceID:       cfg.Stripe.PriceID,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		AppURL:        cfg.AppURL,
	}, log)

	// --- Services ---
	authService := service.NewAuthService(profileRepo, cfg.JWTSecret, 24*time.Hour)
	applicationService := service.NewApplicationService(applicationRepo, profileRepo, log)
	followupService := service.NewFollowupService(profileRepo, generator, log)
	exportService := service.NewExportService(applicationRepo, profileRepo, log)
	billingService := service.NewBillingService(profileRepo, stripeClient, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	followupHandler := handler.NewFollowupHandler(followupService)
	exportHandler := handler.NewExportHandler(exportService)
	billingHandler := handler.NewBillingHandler(billingService, stripeClient, webhookDedup, log)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// Webhook trust comes from the provider signature, not a JWT.
	e.POST("/v1/billing/webhook", billingHandler.Webhook)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))

	v1.GET("/applications", applicationHandler.List)
	v1.POST("/applications", applicationHandler.Create)
	v1.GET("/applications/quota", applicationHandler.Quota)
	v1.GET("/applications/:id", applicationHandler.Get)
	v1.PATCH("/applications/:id", applicationHandler.Update)
	v1.DELETE("/applications/:id", applicationHandler.Delete)

	v1.POST("/ai/followup", followupHandler.Generate)
	v1.GET("/export/csv", exportHandler.CSV)
	v1.GET("/stats/overview", applicationHandler.Stats)
	v1.POST("/billing/checkout", billingHandler.Checkout)

	return e
}
