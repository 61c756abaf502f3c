package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"choubo/internal/config"
	"choubo/internal/handler"
	"choubo/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	interpretH *handler.InterpretHandler,
	documentH *handler.DocumentHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(&cfg.JWT))

	// Interpretation
	protected.POST("/interpret", interpretH.Interpret)

	// Document routes
	documents := protected.Group("/documents")
	documents.GET("", documentH.List)
	documents.GET("/export/csv", documentH.ExportCSV)
	documents.GET("/export/xlsx", documentH.ExportXLSX)
	documents.GET("/:id", documentH.GetByID)
	documents.GET("/:id/image", documentH.GetImageURL)
	documents.PUT("/:id", documentH.Update)
	documents.DELETE("/:id", documentH.Delete)

	return r
}
