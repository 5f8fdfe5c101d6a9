package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/romshelf-go/internal/app"
	"github.com/yourusername/romshelf-go/internal/domain"
	"github.com/yourusername/romshelf-go/internal/infrastructure"
	"go.uber.org/zap"
)

// CatalogHandler handles catalog browsing HTTP requests
type CatalogHandler struct {
	store    *app.CatalogStore
	loader   *app.CatalogLoader
	tracker  *app.SessionTracker
	ranker   *app.Ranker
	notifier *infrastructure.StatusNotifier
	logger   *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	store *app.CatalogStore,
	loader *app.CatalogLoader,
	tracker *app.SessionTracker,
	ranker *app.Ranker,
	notifier *infrastructure.StatusNotifier,
	logger *zap.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		store:    store,
		loader:   loader,
		tracker:  tracker,
		ranker:   ranker,
		notifier: notifier,
		logger:   logger,
	}
}

// ItemView is an item decorated with per-session display flags
type ItemView struct {
	domain.Item
	Popular    bool `json:"popular"`
	Downloaded bool `json:"downloaded"`
}

// CatalogResponse is one page of the current view
type CatalogResponse struct {
	Items        []ItemView `json:"items"`
	TotalItems   int        `json:"total_items"`
	TotalPages   int        `json:"total_pages"`
	CurrentPage  int        `json:"current_page"`
	PageControls []string   `json:"page_controls"`
}

// GetCatalog handles GET /api/v1/catalog.
// Filter params (q, platform, region) re-run the query and reset the
// page to 1; a page param then navigates within the resulting view.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	if !h.ensureLoaded(c) {
		return
	}

	params := c.Request.URL.Query()
	_, hasText := params["q"]
	_, hasPlatform := params["platform"]
	_, hasRegion := params["region"]

	var page app.Page
	if hasText || hasPlatform || hasRegion {
		page = h.store.Query(app.Filter{
			Text:     c.Query("q"),
			Platform: c.Query("platform"),
			Region:   c.Query("region"),
		})
	} else {
		page = h.store.CurrentPage()
	}

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page number"})
			return
		}
		page, err = h.store.GoToPage(n)
		if errors.Is(err, domain.ErrPageOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":       "page out of range",
				"total_pages": page.TotalPages,
			})
			return
		}
	}

	c.JSON(http.StatusOK, h.toResponse(page))
}

// GetFilters handles GET /api/v1/catalog/filters
func (h *CatalogHandler) GetFilters(c *gin.Context) {
	if !h.ensureLoaded(c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"platforms": h.store.Platforms(),
		"regions":   h.store.Regions(),
	})
}

// GetStats handles GET /api/v1/catalog/stats
func (h *CatalogHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"loaded":           h.store.Loaded(),
		"loading":          h.loader.Loading(),
		"total_items":      h.store.Len(),
		"view_items":       h.store.ViewLen(),
		"downloaded_count": h.tracker.Count(),
		"session_id":       h.tracker.SessionID(),
		"last_status":      h.notifier.LastStatus(),
	})
}

// Reload handles POST /api/v1/catalog/reload. This backs both the
// manual retry action and connectivity-restored reloads.
func (h *CatalogHandler) Reload(c *gin.Context) {
	items, err := h.loader.Load(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrLoadInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "a catalog load is already in progress"})
			return
		}
		h.logger.Error("Catalog reload failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": loadErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "catalog reloaded", "items": len(items)})
}

// ensureLoaded replies 503 with the current load state when no catalog
// is available yet
func (h *CatalogHandler) ensureLoaded(c *gin.Context) bool {
	if h.store.Loaded() {
		return true
	}

	resp := gin.H{
		"error":   domain.ErrCatalogNotLoaded.Error(),
		"loading": h.loader.Loading(),
		"status":  h.notifier.LastStatus(),
	}
	if err := h.loader.LastError(); err != nil {
		resp["reason"] = loadErrorMessage(err)
	}
	c.JSON(http.StatusServiceUnavailable, resp)
	return false
}

func (h *CatalogHandler) toResponse(page app.Page) CatalogResponse {
	items := make([]ItemView, len(page.Items))
	for i, it := range page.Items {
		items[i] = ItemView{
			Item:       it,
			Popular:    h.ranker.IsPopular(it.Title),
			Downloaded: h.tracker.IsDownloaded(it),
		}
	}
	return CatalogResponse{
		Items:        items,
		TotalItems:   page.TotalItems,
		TotalPages:   page.TotalPages,
		CurrentPage:  page.CurrentPage,
		PageControls: app.PageControls(page.TotalPages, page.CurrentPage),
	}
}

func loadErrorMessage(err error) string {
	if le := domain.AsLoadError(err); le != nil {
		return le.Message()
	}
	return err.Error()
}
