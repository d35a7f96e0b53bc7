// Package api wires the HTTP surface: routes, auth and rate limiting.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dredding8/malibu-ui-private/api/handler"
	"github.com/dredding8/malibu-ui-private/api/middleware"
	"github.com/dredding8/malibu-ui-private/cache"
	"github.com/dredding8/malibu-ui-private/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	runs := &handler.Runs{}

	var mapCache *cache.Cache
	if cfg.Inspect.CacheEntries > 0 {
		mapCache = cache.New(cfg.Inspect.CacheEntries, cfg.Inspect.CacheTTL)
	}

	v1 := r.Group("/api/v1")

	// Health probe, unauthenticated.
	v1.GET("/health", handler.Health(runs, startTime))

	// Protected group: auth, then rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Live audit (owns a browser for the duration of the request).
	protected.POST("/audit", handler.Audit(cfg, runs))

	// Static snapshot mapping.
	protected.POST("/map", handler.Map(cfg, mapCache))

	return r
}
