package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/romshelf-go/internal/app"
	"github.com/yourusername/romshelf-go/internal/domain"
	"go.uber.org/zap"
)

// DownloadHandler handles session download tracking HTTP requests
type DownloadHandler struct {
	tracker *app.SessionTracker
	logger  *zap.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(tracker *app.SessionTracker, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		tracker: tracker,
		logger:  logger,
	}
}

// MarkDownloaded handles POST /api/v1/downloads. The body is the item
// the user triggered a download for; marking is idempotent. A storage
// fault is reported but never fails the request.
func (h *DownloadHandler) MarkDownloaded(c *gin.Context) {
	var item domain.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !item.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item requires title, platform and thumbnail"})
		return
	}

	record, persisted := h.tracker.MarkDownloaded(item)
	c.JSON(http.StatusCreated, gin.H{
		"record":    record,
		"persisted": persisted,
	})
}

// ListDownloads handles GET /api/v1/downloads
func (h *DownloadHandler) ListDownloads(c *gin.Context) {
	records, err := h.tracker.Records()
	if err != nil {
		h.logger.Error("Failed to list download records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetCount handles GET /api/v1/downloads/count
func (h *DownloadHandler) GetCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.tracker.Count()})
}

// CheckDownloaded handles GET /api/v1/downloads/check. Identity is
// derived the same way as on marking: download_link wins, title is the
// fallback.
func (h *DownloadHandler) CheckDownloaded(c *gin.Context) {
	item := domain.Item{
		Title:        c.Query("title"),
		DownloadLink: c.Query("download_link"),
	}
	if item.Identity() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title or download_link required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"identity":   item.Identity(),
		"downloaded": h.tracker.IsDownloaded(item),
	})
}
