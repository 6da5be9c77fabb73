package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oatlas/oatlas/internal/models"
	"github.com/oatlas/oatlas/internal/store"
)

// Pinger is an optional dependency probed by the readiness endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	store     *store.Store
	db        Pinger
	cache     Pinger
	log       *logrus.Logger
	version   string
	build     string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler. db and cache may be nil when the
// corresponding backend is not configured.
func NewHealthHandler(st *store.Store, db, cache Pinger, log *logrus.Logger, version, build string) *HealthHandler {
	return &HealthHandler{
		store:     st,
		db:        db,
		cache:     cache,
		log:       log,
		version:   version,
		build:     build,
		startTime: time.Now(),
	}
}

// healthResponse is the JSON payload returned by the liveness endpoint.
type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Build         string  `json:"build"`
	Countries     int     `json:"countries"`
	Institutions  int     `json:"institutions"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// readinessResponse is the JSON payload returned by the readiness endpoint.
type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Liveness handles GET /health.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		Build:         h.build,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	if snap, err := h.store.Snapshot(); err == nil {
		resp.Countries = len(snap.Entities(models.TypeCountry))
		resp.Institutions = len(snap.Entities(models.TypeInstitution))
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /ready. The service is ready once the snapshot is
// loaded and any configured backends respond.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := map[string]string{"snapshot": "ok"}
	status := "ready"
	statusCode := http.StatusOK

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if _, err := h.store.Snapshot(); err != nil {
		checks["snapshot"] = "not loaded"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	if h.db != nil {
		checks["database"] = "ok"
		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = err.Error()
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
		}
	}

	if h.cache != nil {
		checks["cache"] = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			// A failing cache does not block readiness.
			checks["cache"] = err.Error()
		}
	}

	c.JSON(statusCode, readinessResponse{Status: status, Checks: checks})
}
