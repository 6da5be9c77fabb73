package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oatlas/oatlas/internal/middleware"
)

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid, exists := c.Get(middleware.RequestIDKey); exists {
			fields["request_id"] = rid
		}
		log.WithFields(fields).Info("request")
	}
}

// validatePathID checks that a path parameter ID is non-empty and within
// length limits.
func validatePathID(id string) error {
	if id == "" {
		return fmt.Errorf("id must not be empty")
	}
	if len(id) > 255 {
		return fmt.Errorf("id exceeds maximum length of 255")
	}
	return nil
}

// setCacheHeaders marks the response edge-cacheable and stamps it with the
// dataset build token. Clients vary cache keys on the token, so a data
// refresh bypasses stale edge entries without purging anything else.
func setCacheHeaders(c *gin.Context, build string) {
	c.Header("Cache-Control", "public, max-age=600")
	c.Header("X-Build", build)
}
