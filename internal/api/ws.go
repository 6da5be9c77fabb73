package api

import (
	"context"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oatlas/oatlas/internal/models"
)

// wsSearchRequest is one search-as-you-type message from the client.
type wsSearchRequest struct {
	Text       string `json:"text"`
	EntityType string `json:"entityType,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// wsSearchResponse echoes the query text so the client can discard responses
// for queries it has already superseded.
type wsSearchResponse struct {
	Text   string              `json:"text"`
	Result *models.QueryResult `json:"result"`
}

// wsSearchHandler serves the live-search websocket. Each incoming message
// cancels the previous in-flight search, so a superseded search-as-you-type
// request stops computing and sends no response.
func wsSearchHandler(appCtx context.Context, log *logrus.Logger, repo SearchRepository, corsOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts := &websocket.AcceptOptions{
			CompressionMode: websocket.CompressionContextTakeover,
		}
		if len(corsOrigins) > 0 {
			opts.OriginPatterns = corsOrigins
		}

		conn, err := websocket.Accept(c.Writer, c.Request, opts)
		if err != nil {
			log.WithError(err).Error("websocket accept failed")

			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "") //nolint:errcheck // best-effort close.

		// Cancel when either the server shuts down or the request ends.
		ctx, cancel := context.WithCancel(appCtx)
		defer cancel()
		go func() {
			select {
			case <-c.Request.Context().Done():
				cancel()
			case <-ctx.Done():
			}
		}()

		var writeMu sync.Mutex
		cancelPrev := func() {}

		for {
			var req wsSearchRequest
			if err := wsjson.Read(ctx, conn, &req); err != nil {
				cancelPrev()

				return
			}

			cancelPrev()
			searchCtx, cancelSearch := context.WithCancel(ctx)
			cancelPrev = cancelSearch

			go func(req wsSearchRequest, searchCtx context.Context) {
				// An unknown entity type falls back to searching everything.
				entityType, _ := models.ParseEntityType(req.EntityType)

				limit := req.Limit
				if limit < 1 || limit > models.MaxLimit {
					limit = models.DefaultLimit
				}

				result, err := repo.Search(searchCtx, req.Text, entityType, 0, limit)
				if err != nil {
					// Cancelled by a newer query, or the snapshot is gone.
					return
				}

				writeMu.Lock()
				defer writeMu.Unlock()

				if searchCtx.Err() != nil {
					return
				}

				if err := wsjson.Write(searchCtx, conn, wsSearchResponse{Text: req.Text, Result: result}); err != nil {
					log.WithError(err).Debug("websocket write failed")
				}
			}(req, searchCtx)
		}
	}
}
