package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oatlas/oatlas/internal/models"
)

// DownloadHandler serves zip archives of one entity's statistics.
type DownloadHandler struct {
	repo DownloadRepository
	log  *logrus.Logger
}

// NewDownloadHandler creates a DownloadHandler.
func NewDownloadHandler(repo DownloadRepository, log *logrus.Logger) *DownloadHandler {
	return &DownloadHandler{repo: repo, log: log}
}

// Download handles GET /download/:entityType/:id.
func (h *DownloadHandler) Download(t models.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := validatePathID(id); err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

			return
		}

		data, filename, err := h.repo.Archive(c.Request.Context(), t, id)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrEntityNotFound):
				respondError(c, http.StatusNotFound, ErrCodeNotFound, string(t)+" not found")
			case errors.Is(err, models.ErrSnapshotUnavailable):
				respondError(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "entity data not loaded")
			default:
				h.log.WithError(err).WithField("id", id).Error("building archive")
				respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
			}

			return
		}

		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/zip", data)
	}
}
