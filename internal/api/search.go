package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oatlas/oatlas/internal/models"
	"github.com/oatlas/oatlas/internal/query"
)

// maxSearchTextLen caps the length of search text.
const maxSearchTextLen = 500

// SearchHandler serves the text search endpoint.
type SearchHandler struct {
	repo  SearchRepository
	build string
	log   *logrus.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(repo SearchRepository, build string, log *logrus.Logger) *SearchHandler {
	return &SearchHandler{repo: repo, build: build, log: log}
}

// Search handles GET /search/:text. An optional entityType parameter narrows
// results to one collection; page and limit follow list-query semantics. An
// acronym parameter is accepted and ignored: acronym mode is detected from
// the query text itself.
func (h *SearchHandler) Search(c *gin.Context) {
	text := c.Param("text")
	if len(text) > maxSearchTextLen {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "search text exceeds maximum length")

		return
	}

	var entityType models.EntityType
	if raw := c.Query("entityType"); raw != "" {
		t, err := models.ParseEntityType(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

			return
		}
		entityType = t
	}

	q := query.Normalize(c.Request.URL.Query())

	result, err := h.repo.Search(c.Request.Context(), text, entityType, q.Page, q.Limit)
	if err != nil {
		if errors.Is(err, models.ErrSnapshotUnavailable) {
			respondError(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "search index not loaded")

			return
		}

		h.log.WithError(err).Error("search")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	result.Build = h.build

	h.log.WithFields(logrus.Fields{
		"action":  "search",
		"n_items": result.NItems,
	}).Debug("search served")

	setCacheHeaders(c, h.build)
	c.JSON(http.StatusOK, result)
}
