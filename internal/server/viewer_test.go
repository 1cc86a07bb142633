package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
	"github.com/KaparthyReddy/ai-design-studio/internal/tasks"
	tu "github.com/KaparthyReddy/ai-design-studio/internal/testing"
)

func newViewer(t *testing.T, gateway *tu.MockGateway) *BasicRouter {
	t.Helper()

	logger := shared.NewLogger(io.Discard)
	gallery := tasks.NewGalleryManager(gateway, nil, logger)

	router := NewBasicRouter()
	router.Handler(NewViewerHandler(gallery, gateway, logger))
	return router
}

func TestViewerHandler(t *testing.T) {
	t.Run("page", func(t *testing.T) {
		t.Run("renders the gallery grid", func(t *testing.T) {
			gateway := &tu.MockGateway{GalleryEntries: []models.GalleryEntry{
				{Filename: "styled_001.png", CreatedAt: time.Now(), SizeBytes: 2048},
			}}
			router := newViewer(t, gateway)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("unexpected content type %q", ct)
			}
			body := rec.Body.String()
			if !strings.Contains(body, "styled_001.png") {
				t.Errorf("expected entry in page, got %q", body)
			}
			if !strings.Contains(body, `/image/styled_001.png`) {
				t.Errorf("expected image link, got %q", body)
			}
		})

		t.Run("empty gallery shows a hint", func(t *testing.T) {
			router := newViewer(t, &tu.MockGateway{})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if !strings.Contains(rec.Body.String(), "No images yet") {
				t.Errorf("expected empty state, got %q", rec.Body.String())
			}
		})

		t.Run("backend failure becomes 502", func(t *testing.T) {
			router := newViewer(t, &tu.MockGateway{GalleryErr: shared.ErrNetwork})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if rec.Code != http.StatusBadGateway {
				t.Errorf("expected 502, got %d", rec.Code)
			}
		})
	})

	t.Run("image proxy", func(t *testing.T) {
		t.Run("streams the image bytes", func(t *testing.T) {
			png := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 64)...)
			router := newViewer(t, &tu.MockGateway{ImageData: png})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/image/styled_001.png", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
				t.Errorf("expected sniffed png type, got %q", ct)
			}
			if rec.Body.Len() != len(png) {
				t.Errorf("expected %d bytes, got %d", len(png), rec.Body.Len())
			}
		})

		t.Run("missing image is 404", func(t *testing.T) {
			router := newViewer(t, &tu.MockGateway{FetchErr: shared.ErrImageNotFound})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/image/ghost.png", nil))

			if rec.Code != http.StatusNotFound {
				t.Errorf("expected 404, got %d", rec.Code)
			}
		})

		t.Run("other fetch failures are 502", func(t *testing.T) {
			router := newViewer(t, &tu.MockGateway{FetchErr: shared.ErrNetwork})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/image/styled_001.png", nil))

			if rec.Code != http.StatusBadGateway {
				t.Errorf("expected 502, got %d", rec.Code)
			}
		})
	})

	t.Run("healthz", func(t *testing.T) {
		t.Run("healthy backend is ok", func(t *testing.T) {
			router := newViewer(t, &tu.MockGateway{
				HealthResult: &models.HealthStatus{Status: "healthy", Device: "cuda"},
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != http.StatusOK {
				t.Errorf("expected 200, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `"device":"cuda"`) {
				t.Errorf("expected device in body, got %q", rec.Body.String())
			}
		})

		t.Run("unreachable backend is 503", func(t *testing.T) {
			router := newViewer(t, &tu.MockGateway{HealthErr: shared.ErrNetwork})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != http.StatusServiceUnavailable {
				t.Errorf("expected 503, got %d", rec.Code)
			}
		})

		t.Run("unhealthy status is 503", func(t *testing.T) {
			router := newViewer(t, &tu.MockGateway{
				HealthResult: &models.HealthStatus{Status: "degraded"},
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != http.StatusServiceUnavailable {
				t.Errorf("expected 503, got %d", rec.Code)
			}
		})
	})
}
