package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/federaltalks/iq-backend/internal/config"
	"github.com/federaltalks/iq-backend/internal/db"
	"github.com/federaltalks/iq-backend/internal/handlers"
	"github.com/federaltalks/iq-backend/internal/middleware"
	"github.com/federaltalks/iq-backend/internal/observability"
	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/repos"
	"github.com/federaltalks/iq-backend/internal/server"
	"github.com/federaltalks/iq-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := config.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := config.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	authMode := config.GetEnv("AUTH_MODE", "store", log)
	environment := config.GetEnv("ENVIRONMENT", "development", log)

	// Tracing
	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "iq-backend",
		Environment: environment,
	})
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			log.Warn("OTel shutdown failed", "error", err)
		}
	}()

	// Database
	var dbService *db.Service
	if config.GetEnv("DB_DRIVER", "postgres", log) == "sqlite" {
		dbService, err = db.NewSqliteService(log)
	} else {
		dbService, err = db.NewPostgresService(log)
	}
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = dbService.AutoMigrateAll(); err != nil {
		log.Warn("Auto migration failed", "error", err)
	}
	thePG := dbService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	contractRepo := repos.NewContractRepo(thePG, log)
	contactRepo := repos.NewContactRepo(thePG, log)
	uploadLogRepo := repos.NewUploadLogRepo(thePG, log)
	pipelineRepo := repos.NewPipelineRepo(thePG, log)
	favoriteRepo := repos.NewFavoriteRepo(thePG, log)
	demoRequestRepo := repos.NewDemoRequestRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	var authenticator services.Authenticator
	if authMode == "demo" {
		demoEmail := config.GetEnv("DEMO_ADMIN_EMAIL", "", log)
		demoPassword := config.GetEnv("DEMO_ADMIN_PASSWORD", "", log)
		if demoEmail == "" || demoPassword == "" {
			log.Error("AUTH_MODE=demo requires DEMO_ADMIN_EMAIL and DEMO_ADMIN_PASSWORD")
			os.Exit(1)
		}
		authenticator = services.NewDemoAuthenticator(demoEmail, demoPassword, log)
	} else {
		authenticator = services.NewStoreAuthenticator(userRepo, log)
	}
	authService := services.NewAuthService(thePG, log, userRepo, authenticator, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	contractService := services.NewContractService(thePG, log, contractRepo)
	contactService := services.NewContactService(thePG, log, contactRepo)
	searchService := services.NewSearchService(thePG, log, contractRepo)
	uploadService := services.NewUploadService(thePG, log, contractRepo, contactRepo, uploadLogRepo)
	reportGenerator := services.NewStubReportGenerator(log)
	pipelineService := services.NewPipelineService(thePG, log, pipelineRepo)
	favoriteService := services.NewFavoriteService(thePG, log, favoriteRepo)
	userService := services.NewUserService(thePG, log, userRepo)
	demoRequestService := services.NewDemoRequestService(thePG, log, demoRequestRepo)
	dashboardService := services.NewDashboardService(thePG, log, contractRepo, contactRepo, uploadLogRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	contractHandler := handlers.NewContractHandler(contractService)
	contactHandler := handlers.NewContactHandler(contactService)
	searchHandler := handlers.NewSearchHandler(searchService)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	templateHandler := handlers.NewTemplateHandler()
	reportHandler := handlers.NewReportHandler(contractService, reportGenerator)
	pipelineHandler := handlers.NewPipelineHandler(pipelineService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	demoRequestHandler := handlers.NewDemoRequestHandler(demoRequestService)
	adminHandler := handlers.NewAdminHandler(userService, demoRequestService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)
	rateLimit := config.GetEnvAsInt("RATE_LIMIT_PER_MINUTE", 120, log)
	var rateLimiter middleware.RateLimiter
	if redisAddr := config.GetEnv("REDIS_ADDR", "", log); redisAddr != "" {
		rateLimiter, err = middleware.NewRedisRateLimiter(redisAddr, rateLimit, time.Minute)
		if err != nil {
			log.Warn("Redis rate limiter init failed, falling back to in-memory", "error", err)
			rateLimiter = middleware.NewMemoryRateLimiter(rateLimit, time.Minute)
		}
	} else {
		rateLimiter = middleware.NewMemoryRateLimiter(rateLimit, time.Minute)
	}

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:         log,
		RateLimiter: rateLimiter,

		AuthMiddleware: authMiddleware,

		AuthHandler:        authHandler,
		ContractHandler:    contractHandler,
		ContactHandler:     contactHandler,
		SearchHandler:      searchHandler,
		UploadHandler:      uploadHandler,
		TemplateHandler:    templateHandler,
		ReportHandler:      reportHandler,
		PipelineHandler:    pipelineHandler,
		FavoriteHandler:    favoriteHandler,
		DashboardHandler:   dashboardHandler,
		DemoRequestHandler: demoRequestHandler,
		AdminHandler:       adminHandler,
	})

	port := config.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
