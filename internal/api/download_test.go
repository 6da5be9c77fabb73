package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/oatlas/oatlas/internal/api"
	"github.com/oatlas/oatlas/internal/models"
)

func TestDownload_Valid(t *testing.T) {
	t.Parallel()

	payload := []byte("PK\x03\x04fake-zip-bytes")
	repo := &mockDownloadRepo{
		archiveFn: func(_ context.Context, entityType models.EntityType, id string) ([]byte, string, error) {
			if entityType != models.TypeInstitution || id != "curtin" {
				t.Errorf("repo called with type=%q id=%q", entityType, id)
			}
			return payload, "institution_curtin.zip", nil
		},
	}

	r := newTestRouter()
	h := api.NewDownloadHandler(repo, testLogger())
	r.GET("/download/institution/:id", h.Download(models.TypeInstitution))

	w := doRequest(r, "/download/institution/curtin")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("Content-Type: %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, `institution_curtin.zip`) {
		t.Errorf("Content-Disposition: %q", cd)
	}
	if w.Body.String() != string(payload) {
		t.Errorf("body does not match archive bytes")
	}
}

func TestDownload_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockDownloadRepo{
		archiveFn: func(_ context.Context, _ models.EntityType, _ string) ([]byte, string, error) {
			return nil, "", models.ErrEntityNotFound
		},
	}

	r := newTestRouter()
	h := api.NewDownloadHandler(repo, testLogger())
	r.GET("/download/country/:id", h.Download(models.TypeCountry))

	w := doRequest(r, "/download/country/XXX")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "not_found") {
		t.Errorf("body: %s", w.Body.String())
	}
}

func TestDownload_SnapshotUnavailable(t *testing.T) {
	t.Parallel()

	repo := &mockDownloadRepo{
		archiveFn: func(_ context.Context, _ models.EntityType, _ string) ([]byte, string, error) {
			return nil, "", models.ErrSnapshotUnavailable
		},
	}

	r := newTestRouter()
	h := api.NewDownloadHandler(repo, testLogger())
	r.GET("/download/country/:id", h.Download(models.TypeCountry))

	w := doRequest(r, "/download/country/NZL")

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDownload_IDTooLong(t *testing.T) {
	t.Parallel()

	called := false
	repo := &mockDownloadRepo{
		archiveFn: func(_ context.Context, _ models.EntityType, _ string) ([]byte, string, error) {
			called = true
			return nil, "", nil
		},
	}

	r := newTestRouter()
	h := api.NewDownloadHandler(repo, testLogger())
	r.GET("/download/institution/:id", h.Download(models.TypeInstitution))

	w := doRequest(r, "/download/institution/"+strings.Repeat("x", 300))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if called {
		t.Error("repo should not be called for an invalid id")
	}
}
