package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/oatlas/oatlas/internal/middleware"
	"github.com/oatlas/oatlas/internal/models"
	"github.com/oatlas/oatlas/internal/store"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Store       *store.Store
	Entities    EntityRepository
	Search      SearchRepository
	Download    DownloadRepository
	DB          Pinger
	Cache       Pinger
	CORSOrigins []string
	AllowAll    bool
	Version     string
	Build       string
}

// Router-level limits. The API is read-only, so nothing should carry a body.
const (
	maxBodySize = 1 << 20 // 1 MB
	rateLimit   = 100     // requests per second per IP
	rateBurst   = 200     // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       1 * time.Hour,
	}
	if deps.AllowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = deps.CORSOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.Prometheus())

	// Metrics endpoint (outside the API group, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Store, deps.DB, deps.Cache, log, deps.Version, deps.Build)
	entities := NewEntityHandler(deps.Entities, deps.Build, log)
	search := NewSearchHandler(deps.Search, deps.Build, log)
	download := NewDownloadHandler(deps.Download, log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// Single entities.
	api.GET("/country/:id", entities.Get(models.TypeCountry))
	api.GET("/institution/:id", entities.Get(models.TypeInstitution))

	// List queries.
	api.GET("/countries", entities.List(models.TypeCountry))
	api.GET("/institutions", entities.List(models.TypeInstitution))

	// Search.
	api.GET("/search/:text", search.Search)

	// Download archives.
	api.GET("/download/country/:id", download.Download(models.TypeCountry))
	api.GET("/download/institution/:id", download.Download(models.TypeInstitution))

	// Live search over websocket.
	api.GET("/ws", wsSearchHandler(ctx, log, deps.Search, deps.CORSOrigins))
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	// Anything else is an unknown route or entity type.
	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, ErrCodeInvalidRequest,
			"unknown route: entity type must be country or institution")
	})

	return r
}
