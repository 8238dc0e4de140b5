package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	apiKeyHeader    = "X-API-Key"
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(requestIDMiddleware())

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\" %v\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
				param.Keys[requestIDKey],
			)
		},
		SkipPaths: []string{"/favicon.ico"},
	}))

	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiAccessKey)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	r.GET("/health", handler.GetHealth)

	api := r.Group("/api")
	if apiAccessKey != "" {
		api.Use(authMiddleware(apiAccessKey))
		slog.Info("API authentication enabled", "header", apiKeyHeader)
	} else {
		slog.Warn("API authentication disabled (API_ACCESS_KEY not set)")
	}
	{
		api.POST("/addfeed", handler.AddFeed)
		api.GET("/myfeeds", handler.ListFeeds)
		api.GET("/myfeeds/filter", handler.FilterFeeds)
		api.PUT("/updatefeed/:id", handler.UpdateFeed)
		api.DELETE("/deletefeed/:id", handler.DeleteFeed)
		api.GET("/favorites", handler.ListFavorites)
		api.PUT("/feeds/:id/items/:itemId/favorite", handler.SetFavorite)
		api.GET("/preview", handler.PreviewFeed)
		api.POST("/import", handler.ImportFeeds)
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":     "Feedshelf",
			"version":     handler.version,
			"description": "RSS/Atom subscription library with categories and favorites",
			"endpoints": gin.H{
				"health":    "/health",
				"add":       "/api/addfeed (POST)",
				"list":      "/api/myfeeds",
				"filter":    "/api/myfeeds/filter?category=<name>",
				"update":    "/api/updatefeed/<id> (PUT)",
				"delete":    "/api/deletefeed/<id> (DELETE)",
				"favorites": "/api/favorites",
				"favorite":  "/api/feeds/<id>/items/<itemId>/favorite (PUT)",
				"preview":   "/api/preview?url=<feed url>",
				"import":    "/api/import (POST)",
			},
			"api_status": gin.H{
				"auth_required": apiAccessKey != "",
				"header":        apiKeyHeader,
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(apiKeyHeader) != apiAccessKey {
			slog.Debug("Rejected API request", "path", c.Request.URL.Path, "request_id", c.GetString(requestIDKey))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		c.Next()
	}
}

// requestIDMiddleware tags every request with an id, reusing the client's when it sends one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		c.Next()
	}
}
