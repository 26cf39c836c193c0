package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/federaltalks/iq-backend/internal/handlers"
	"github.com/federaltalks/iq-backend/internal/middleware"
	"github.com/federaltalks/iq-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	RateLimiter middleware.RateLimiter

	AuthMiddleware *middleware.AuthMiddleware

	AuthHandler        *handlers.AuthHandler
	ContractHandler    *handlers.ContractHandler
	ContactHandler     *handlers.ContactHandler
	SearchHandler      *handlers.SearchHandler
	UploadHandler      *handlers.UploadHandler
	TemplateHandler    *handlers.TemplateHandler
	ReportHandler      *handlers.ReportHandler
	PipelineHandler    *handlers.PipelineHandler
	FavoriteHandler    *handlers.FavoriteHandler
	DashboardHandler   *handlers.DashboardHandler
	DemoRequestHandler *handlers.DemoRequestHandler
	AdminHandler       *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.Recovery(cfg.Log))
	router.Use(otelgin.Middleware("iq-backend"))
	if cfg.RateLimiter != nil {
		router.Use(middleware.RateLimit(cfg.Log, cfg.RateLimiter))
	}

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/demo-requests", cfg.DemoRequestHandler.Submit)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.GET("/me", cfg.AuthHandler.Me)
	// Contracts (read + search)
	protected.GET("/contracts", cfg.ContractHandler.List)
	protected.GET("/contracts/search", cfg.SearchHandler.Search)
	protected.GET("/contracts/:id", cfg.ContractHandler.Get)
	protected.GET("/contracts/:id/report", cfg.ReportHandler.Download)
	// Contacts (read)
	protected.GET("/contacts", cfg.ContactHandler.List)
	protected.GET("/contacts/:id", cfg.ContactHandler.Get)
	// Pipeline
	protected.GET("/pipeline/stages", cfg.PipelineHandler.ListStages)
	protected.POST("/pipeline/stages", cfg.PipelineHandler.CreateStage)
	protected.DELETE("/pipeline/stages/:id", cfg.PipelineHandler.DeleteStage)
	protected.GET("/pipeline/contracts", cfg.PipelineHandler.ListPlacements)
	protected.POST("/pipeline/contracts", cfg.PipelineHandler.PlaceContract)
	protected.PATCH("/pipeline/contracts/:id", cfg.PipelineHandler.MoveToStage)
	protected.DELETE("/pipeline/contracts/:id", cfg.PipelineHandler.RemovePlacement)
	// Favorites
	protected.GET("/favorites", cfg.FavoriteHandler.List)
	protected.POST("/favorites/:contract_id", cfg.FavoriteHandler.Add)
	protected.DELETE("/favorites/:contract_id", cfg.FavoriteHandler.Remove)
	// Dashboard
	protected.GET("/dashboard/stats", cfg.DashboardHandler.Stats)

	// ===============
	// || Admin     ||
	// ===============
	admin := router.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	// Contract + contact mutation
	admin.POST("/contracts", cfg.ContractHandler.Create)
	admin.PUT("/contracts/:id", cfg.ContractHandler.Update)
	admin.PATCH("/contracts/:id/status", cfg.ContractHandler.UpdateStatus)
	admin.DELETE("/contracts/:id", cfg.ContractHandler.Delete)
	admin.POST("/contacts", cfg.ContactHandler.Create)
	admin.PUT("/contacts/:id", cfg.ContactHandler.Update)
	admin.DELETE("/contacts/:id", cfg.ContactHandler.Delete)
	// Bulk upload
	admin.POST("/uploads", cfg.UploadHandler.BulkUpload)
	admin.GET("/uploads", cfg.UploadHandler.History)
	admin.GET("/templates/:kind", cfg.TemplateHandler.Download)
	// Accounts + demo queue
	admin.GET("/users", cfg.AdminHandler.ListUsers)
	admin.PATCH("/users/:id", cfg.AdminHandler.UpdateUser)
	admin.GET("/demo-requests", cfg.AdminHandler.ListDemoRequests)
	admin.PATCH("/demo-requests/:id", cfg.AdminHandler.UpdateDemoRequestStatus)

	return router
}
