// Package api provides HTTP handlers for the atlas API.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oatlas/oatlas/internal/models"
	"github.com/oatlas/oatlas/internal/query"
)

// EntityHandler serves single-entity and list endpoints.
type EntityHandler struct {
	repo  EntityRepository
	build string
	log   *logrus.Logger
}

// NewEntityHandler creates an EntityHandler. build is the dataset build token
// echoed on list responses.
func NewEntityHandler(repo EntityRepository, build string, log *logrus.Logger) *EntityHandler {
	return &EntityHandler{repo: repo, build: build, log: log}
}

// Get handles GET /:entityType/:id for a single entity.
func (h *EntityHandler) Get(t models.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := validatePathID(id); err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

			return
		}

		e, err := h.repo.Get(c.Request.Context(), t, id)
		if err != nil {
			h.respondGetError(c, t, id, err)

			return
		}

		setCacheHeaders(c, h.build)
		c.JSON(http.StatusOK, e)
	}
}

// List handles GET /countries and GET /institutions. Malformed query
// parameters never fail the request; they are normalized to defaults.
func (h *EntityHandler) List(t models.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := query.Normalize(c.Request.URL.Query())

		result, err := h.repo.List(c.Request.Context(), t, q)
		if err != nil {
			h.respondListError(c, t, err)

			return
		}

		result.Build = h.build

		h.log.WithFields(logrus.Fields{
			"action":      "entity.list",
			"entity_type": t,
			"n_items":     result.NItems,
			"page":        q.Page,
		}).Debug("list query served")

		setCacheHeaders(c, h.build)
		c.JSON(http.StatusOK, result)
	}
}

func (h *EntityHandler) respondGetError(c *gin.Context, t models.EntityType, id string, err error) {
	switch {
	case errors.Is(err, models.ErrEntityNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, string(t)+" not found")
	case errors.Is(err, models.ErrSnapshotUnavailable):
		respondError(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "entity data not loaded")
	default:
		h.log.WithError(err).WithField("id", id).Error("getting entity")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}

func (h *EntityHandler) respondListError(c *gin.Context, t models.EntityType, err error) {
	if errors.Is(err, models.ErrSnapshotUnavailable) {
		respondError(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "entity data not loaded")

		return
	}

	h.log.WithError(err).WithField("entity_type", t).Error("listing entities")
	respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}
