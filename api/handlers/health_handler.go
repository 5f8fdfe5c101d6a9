package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/romshelf-go/internal/app"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	store  *app.CatalogStore
	loader *app.CatalogLoader
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store *app.CatalogStore, loader *app.CatalogLoader) *HealthHandler {
	return &HealthHandler{
		store:  store,
		loader: loader,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Catalog struct {
		Loaded  bool `json:"loaded"`
		Loading bool `json:"loading"`
	} `json:"catalog"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}
	response.Catalog.Loaded = h.store.Loaded()
	response.Catalog.Loading = h.loader.Loading()

	c.JSON(http.StatusOK, response)
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if !h.store.Loaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "catalog not loaded",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
