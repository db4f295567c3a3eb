package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rahmasleam/NexusMenaV2/internal/middleware"
	aimod "github.com/rahmasleam/NexusMenaV2/internal/modules/ai"
	authmod "github.com/rahmasleam/NexusMenaV2/internal/modules/auth"
	contentmod "github.com/rahmasleam/NexusMenaV2/internal/modules/content"
	marketmod "github.com/rahmasleam/NexusMenaV2/internal/modules/market"
	rendermod "github.com/rahmasleam/NexusMenaV2/internal/modules/render"
	pkgredis "github.com/rahmasleam/NexusMenaV2/internal/pkg/redis"
	"github.com/rahmasleam/NexusMenaV2/internal/pkg/response"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(rc *pkgredis.Client, contentSvc *contentmod.Service, marketSvc *marketmod.Service) {
	r := a.router

	authMW := middleware.Auth(a.sessions)
	adminMW := []gin.HandlerFunc{authMW, middleware.RequireAdmin(a.authSvc.IsAdmin)}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":     a.cfg.AppName,
		"version":  "1.0.0",
		"homepage": "https://github.com/rahmasleam/NexusMenaV2",
	}

	// Optional auth runs first so the limiter and cache see the user;
	// rate limiting and idempotence cover every route (requires Redis).
	r.Use(middleware.OptionalAuth(a.sessions))
	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw()))

	// WebSocket gateway lives outside the versioned prefix.
	a.hub.RegisterRoutes(r.Group(""))

	// Versioned API
	api := r.Group(apiPrefix)
	api.Use(middleware.HTTPCache(rc.Raw(), middleware.HTTPCacheOptions{
		TTL:             a.cfg.CacheTTL(),
		EnableCDNHeader: a.cfg.Cache.EnableCDNHeader,
		Disable:         a.cfg.Cache.Disable || !a.cfg.IsProduction(),
		SkipPaths:       httpCacheSkipPaths(apiPrefix, a.cfg.Cache.SkipPaths),
	}))

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/info", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		uptimeMs := time.Since(processStart).Milliseconds()
		c.JSON(http.StatusOK, gin.H{
			"timestamp": uptimeMs,
			"humanize":  humanizeDuration(time.Duration(uptimeMs) * time.Millisecond),
		})
	})

	api.GET("/clean_cache", append(adminMW, func(c *gin.Context) {
		deleted, err := middleware.PurgeHTTPCache(c.Request.Context(), rc.Raw())
		if err != nil {
			response.InternalError(c, err)
			return
		}
		response.OK(c, gin.H{"deleted": deleted})
	})...)

	// Auth & accounts
	authmod.NewHandler(a.authSvc).RegisterRoutes(api, authMW)

	// AI gateway
	aimod.NewHandler(a.aiSvc).RegisterRoutes(api, adminMW...)

	// Content collections
	contentmod.NewHandler(contentSvc).RegisterRoutes(api, adminMW...)

	// Market board
	marketmod.NewHandler(marketSvc).RegisterRoutes(api)

	// Article rendering
	rendermod.NewHandler(a.store, a.aiSvc).RegisterRoutes(api, adminMW...)

	// Scheduled jobs (admin)
	jobs := api.Group("/jobs", adminMW...)
	jobs.GET("", func(c *gin.Context) {
		response.OK(c, a.sched.List())
	})
	jobs.GET("/:name", func(c *gin.Context) {
		task, err := a.sched.GetTask(c.Param("name"))
		if err != nil {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.OK(c, task)
	})
	jobs.POST("/:name/run", func(c *gin.Context) {
		if err := a.sched.Run(c.Request.Context(), c.Param("name")); err != nil {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.NoContent(c)
	})
}

func httpCacheSkipPaths(prefix string, extra []string) []string {
	p := strings.TrimSuffix(strings.TrimSpace(prefix), "/")
	paths := []string{
		p + "/uptime",
		p + "/clean_cache",
		p + "/auth/me",
		p + "/auth/sessions",
		p + "/auth/favorites",
		p + "/ai/status",
		p + "/jobs",
	}
	for _, extraPath := range extra {
		extraPath = strings.TrimSpace(extraPath)
		if extraPath == "" {
			continue
		}
		if !strings.HasPrefix(extraPath, "/") {
			extraPath = "/" + extraPath
		}
		paths = append(paths, p+extraPath)
	}
	return paths
}
