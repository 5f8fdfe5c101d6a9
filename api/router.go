package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/romshelf-go/api/handlers"
	"github.com/yourusername/romshelf-go/api/middleware"
	"github.com/yourusername/romshelf-go/internal/app"
	"github.com/yourusername/romshelf-go/internal/infrastructure"
)

// SetupRouter sets up the HTTP router
func SetupRouter(
	store *app.CatalogStore,
	loader *app.CatalogLoader,
	tracker *app.SessionTracker,
	ranker *app.Ranker,
	notifier *infrastructure.StatusNotifier,
	log *zap.Logger,
) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(store, loader)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Catalog endpoints
		catalogHandler := handlers.NewCatalogHandler(store, loader, tracker, ranker, notifier, log)
		catalog := v1.Group("/catalog")
		{
			catalog.GET("", catalogHandler.GetCatalog)
			catalog.GET("/filters", catalogHandler.GetFilters)
			catalog.GET("/stats", catalogHandler.GetStats)
			catalog.POST("/reload", catalogHandler.Reload)
		}

		// Session download tracking endpoints
		downloadHandler := handlers.NewDownloadHandler(tracker, log)
		downloads := v1.Group("/downloads")
		{
			downloads.POST("", downloadHandler.MarkDownloaded)
			downloads.GET("", downloadHandler.ListDownloads)
			downloads.GET("/count", downloadHandler.GetCount)
			downloads.GET("/check", downloadHandler.CheckDownloaded)
		}
	}

	return router
}
