package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oatlas/oatlas/internal/middleware"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return log
}

func TestRequestID_GeneratesUUID(t *testing.T) {
	var gotID string
	r := gin.New()
	r.Use(middleware.RequestID(quietLogger()))
	r.GET("/test", func(c *gin.Context) {
		v, _ := c.Get(middleware.RequestIDKey)
		gotID, _ = v.(string)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	if _, err := uuid.Parse(gotID); err != nil {
		t.Fatalf("context request ID %q is not a UUID: %v", gotID, err)
	}
	if header := w.Header().Get(middleware.RequestIDHeader); header != gotID {
		t.Errorf("response header %q != context ID %q", header, gotID)
	}
}

func TestRequestID_ClientIDNotTrusted(t *testing.T) {
	var gotID, gotClientID string
	r := gin.New()
	r.Use(middleware.RequestID(quietLogger()))
	r.GET("/test", func(c *gin.Context) {
		v, _ := c.Get(middleware.RequestIDKey)
		gotID, _ = v.(string)
		cv, _ := c.Get("client_request_id")
		gotClientID, _ = cv.(string)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(middleware.RequestIDHeader, "attacker-chosen-id")
	r.ServeHTTP(w, req)

	if gotID == "attacker-chosen-id" {
		t.Fatal("client-provided ID must not become the canonical request ID")
	}
	if gotClientID != "attacker-chosen-id" {
		t.Errorf("client ID should be kept as separate field, got %q", gotClientID)
	}
}
