package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "claimcheck/docs"
	"claimcheck/internal/config"
	"claimcheck/internal/handler"
	"claimcheck/internal/middleware"
	"claimcheck/web"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	batchH *handler.BatchHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Embedded single-page UI
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexPage)
	})

	v1 := r.Group("/api/v1")

	batches := v1.Group("/batches")
	batches.POST("", batchH.Process)
	batches.GET("/status", batchH.Status)
	batches.GET("/:id", batchH.GetByID)
	batches.GET("/:id/report", batchH.Report)

	return r
}
