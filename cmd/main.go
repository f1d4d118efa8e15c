package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/handler"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/middleware"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/model"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/notify"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/onboarding"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/storage"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/pkg/config"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/pkg/database"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/pkg/jwtutil"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/pkg/logger"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/prometheus"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found or error loading: %v\n", err)
	}

	// Load configuration
	conf, err := config.Load("onboarding")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: conf.ServiceName,
	})
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()

	// Initialize database connection
	db, err := database.InitDB(&conf.DB)
	if err != nil {
		log.Fatal("Failed to initialize database")
	}

	// Run migrations for onboarding models
	if err := database.MigrateModels(&model.Company{}, &model.Document{}, &model.RequiredDocumentType{}); err != nil {
		log.Fatal("Failed to migrate database models")
	}

	// Seed the requirement registry from configuration
	if err := onboarding.SeedRequiredTypes(db, conf.Registry.RequiredTypes); err != nil {
		log.Fatal("Failed to seed required document types")
	}

	// Initialize JWT utility
	jwtConfig := &jwtutil.JWTConfig{
		SigningKey:      conf.JWT.SigningKey,
		ExpirationHours: conf.JWT.ExpirationHours,
	}
	jwt := jwtutil.NewJWTUtil(jwtConfig)

	// Initialize the upload storage presigner
	presigner, err := storage.NewS3Presigner(context.Background(), &conf.Storage)
	if err != nil {
		log.Fatal("Failed to initialize storage presigner")
	}

	// Initialize the outbound notifier
	notifier := notify.NewNotifier(conf.Notify.WebhookURL, log)

	handler.Init(presigner, notifier)

	// Initialize Echo framework
	e := echo.New()

	// Apply middleware
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	// Public routes
	e.GET("/health", handler.HealthCheck)

	// Secured routes - require authentication
	companies := e.Group("/companies")
	companies.Use(middleware.JWTAuthMiddleware(jwt))

	companies.POST("", handler.RegisterCompany)
	companies.GET("/:id", handler.GetCompany)
	companies.GET("/:id/compliance", handler.GetCompliance)
	companies.GET("/:id/onboarding", handler.GetOnboardingState)
	companies.GET("/:id/documents", handler.ListDocuments)
	companies.POST("/:id/documents/upload-slot", handler.RequestUploadSlot)

	// Administrator routes
	admin := e.Group("")
	admin.Use(middleware.JWTAuthMiddleware(jwt))
	admin.Use(middleware.AdminOnlyMiddleware())

	admin.GET("/companies", handler.ListCompanies)
	admin.PATCH("/companies/:id", handler.UpdateCompany)
	admin.POST("/documents/:id/review", handler.ReviewDocument)

	// Start server
	log.Info("Starting onboarding-service on port " + conf.Server.Port)
	e.Logger.Fatal(e.Start(":" + conf.Server.Port))
}
