package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	handlers "vibedezine_server/internal/api"
)

// RouteOptions configures the cross-cutting middleware around the routes.
type RouteOptions struct {
	// AllowedOrigins lists CORS origins. "*" allows any; empty disables CORS.
	AllowedOrigins []string

	// RateLimitRPS limits generation requests per client IP. Zero disables it.
	RateLimitRPS   float64
	RateLimitBurst int

	// SitesPath and SitesDir serve published sites read-only when both are set.
	SitesPath string
	SitesDir  string
}

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *handlers.APIHandler, opts RouteOptions) {
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	}

	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if opts.RateLimitRPS > 0 {
		limit = NewClientLimiter(opts.RateLimitRPS, opts.RateLimitBurst).Middleware()
	}

	apiGroup := router.Group("/api")
	{
		// Generation endpoints call the completion service and are rate limited.
		apiGroup.POST("/analyze-url", limit, h.AnalyzeURL)
		apiGroup.POST("/generate", limit, h.GenerateCopy)
		apiGroup.POST("/generate/page", limit, h.GeneratePage)

		apiGroup.POST("/export", h.Export)
		apiGroup.POST("/export/publish", h.Publish)

		interviewGroup := apiGroup.Group("/interview")
		interviewGroup.POST("/chat", limit, h.InterviewChat)
		interviewGroup.GET("/chat", h.GetInterview)
		interviewGroup.POST("/extract", limit, h.ExtractInterview)
	}

	if opts.SitesPath != "" && opts.SitesDir != "" {
		router.Static(opts.SitesPath, opts.SitesDir)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	config.MaxAge = 12 * time.Hour

	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			config.AllowAllOrigins = true
			return config
		}
	}
	config.AllowOrigins = origins
	return config
}
