package main

import (
	"net/http"
	"time"

	"gameportal-backend/internal/shared/middleware"
	"gameportal-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

// NewRouter registers all routes.
//
// Public routes serve the portal pages; /api/v1/admin is gated by JWT auth
// plus the admin role check.
func NewRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	router.MaxMultipartMemory = 16 << 20

	// Thumbnails resolved by the importer are served from here.
	router.Static("/uploads", c.Config.Upload.Dir)

	router.GET("/health", func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"database": "ok", "redis": "ok"}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["database"] = err.Error()
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["redis"] = err.Error()
		}

		ctx.JSON(status, gin.H{
			"status": http.StatusText(status),
			"time":   time.Now().UTC(),
			"checks": checks,
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", c.UserHandler.Login)

		games := v1.Group("/games")
		{
			games.GET("", c.GameHandler.List)
			games.GET("/popular", c.GameHandler.Popular)
			games.GET("/new", c.GameHandler.Newest)
			games.GET("/:slug", c.GameHandler.GetBySlug)
			games.POST("/:slug/play", c.AnalyticsHandler.RecordPlay)
		}

		v1.GET("/categories", c.CategoryHandler.List)
		v1.GET("/categories/:slug", c.CategoryHandler.GetBySlug)
		v1.GET("/tags", c.TagHandler.List)

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
		{
			admin.GET("/users", c.UserHandler.List)

			admin.POST("/games", c.GameHandler.Create)
			admin.PUT("/games/:id", c.GameHandler.Update)
			admin.DELETE("/games/:id", c.GameHandler.Delete)

			admin.POST("/games/bulk-import", c.BulkImportHandler.ImportGames)
			admin.GET("/games/bulk-import/template", c.BulkImportHandler.DownloadTemplate)

			admin.POST("/categories", c.CategoryHandler.Create)
			admin.PUT("/categories/:id", c.CategoryHandler.Update)
			admin.DELETE("/categories/:id", c.CategoryHandler.Delete)

			admin.POST("/tags", c.TagHandler.Create)
			admin.DELETE("/tags/:id", c.TagHandler.Delete)

			admin.GET("/analytics/summary", c.AnalyticsHandler.Summary)
		}
	}

	return router
}
