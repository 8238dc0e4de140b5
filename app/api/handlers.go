package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/feedshelf/app/config"
	"github.com/lysyi3m/feedshelf/app/feed"
)

// NewHandler builds the HTTP handlers. stats may be nil when no background importer runs.
func NewHandler(library LibraryService, stats StatsProvider, version string) *Handler {
	return &Handler{
		library: library,
		stats:   stats,
		version: version,
	}
}

func (h *Handler) AddFeed(c *gin.Context) {
	var req feedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	sub, err := h.library.AddFeed(c.Request.Context(), req.URL, req.Category)
	if err != nil {
		h.failFeed(c, "add_feed", err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) ListFeeds(c *gin.Context) {
	subs, err := h.library.ListFeeds(c.Request.Context())
	if err != nil {
		slog.Error("Database error", "operation", "list_feeds", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching feeds"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

func (h *Handler) FilterFeeds(c *gin.Context) {
	category, ok := c.GetQuery("category")
	if !ok || strings.TrimSpace(category) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category parameter"})
		return
	}

	subs, err := h.library.FilterByCategory(c.Request.Context(), category)
	if err != nil {
		slog.Error("Database error", "operation", "filter_feeds", "category", category, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error filtering feeds"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

func (h *Handler) UpdateFeed(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req feedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	sub, err := h.library.UpdateFeed(c.Request.Context(), id, req.URL, req.Category)
	if err != nil {
		h.failFeed(c, "update_feed", err)
		return
	}

	if sub == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *Handler) DeleteFeed(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.library.DeleteFeed(c.Request.Context(), id)
	if err != nil {
		slog.Error("Database error", "operation", "delete_feed", "feed_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting feed"})
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListFavorites(c *gin.Context) {
	subs, err := h.library.ListFavorites(c.Request.Context())
	if err != nil {
		slog.Error("Database error", "operation", "list_favorites", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving favorite items"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

func (h *Handler) SetFavorite(c *gin.Context) {
	feedID, ok := idParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := idParam(c, "itemId")
	if !ok {
		return
	}

	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	entry, err := h.library.SetFavorite(c.Request.Context(), feedID, itemID, *req.Favorite)
	if err != nil {
		slog.Error("Database error", "operation", "set_favorite", "feed_id", feedID, "item_id", itemID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating favorite status"})
		return
	}

	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *Handler) PreviewFeed(c *gin.Context) {
	url := strings.TrimSpace(c.Query("url"))
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing url parameter"})
		return
	}

	parsed, err := h.library.Preview(c.Request.Context(), url)
	if err != nil {
		h.failFeed(c, "preview_feed", err)
		return
	}

	c.JSON(http.StatusOK, parsed)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	}

	if feedCount, err := h.library.FeedCount(c.Request.Context()); err == nil {
		health["feeds"] = feedCount
	}

	if h.stats != nil {
		health["imports"] = h.stats.GetStats()
	}

	c.JSON(http.StatusOK, health)
}

// ImportFeeds adds every listed subscription not stored yet. The body is a subscriptions
// document in JSON or YAML, depending on Content-Type.
func (h *Handler) ImportFeeds(c *gin.Context) {
	var file config.SubscriptionsFile
	if err := c.ShouldBind(&file); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	subs, err := config.Normalize(file.Feeds)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscriptions", "details": err.Error()})
		return
	}

	imported, err := h.library.ImportSubscriptions(c.Request.Context(), subs)
	if err != nil {
		slog.Error("Database error", "operation", "import_feeds", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error importing feeds"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listed":   len(subs),
		"imported": imported,
	})
}

// failFeed answers 502 when the feed itself could not be fetched or parsed and 500 otherwise.
func (h *Handler) failFeed(c *gin.Context, operation string, err error) {
	var parseErr *feed.FetchOrParseError
	if errors.As(err, &parseErr) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": parseErr.Error(),
			"kind":  parseErr.Kind,
		})
		return
	}

	slog.Error("Database error", "operation", operation, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing feed"})
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return id, true
}
