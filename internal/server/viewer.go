package server

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
	"github.com/KaparthyReddy/ai-design-studio/internal/services"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
	"github.com/KaparthyReddy/ai-design-studio/internal/tasks"
)

const galleryPage = `<!DOCTYPE html>
<html>
<head>
    <title>AI Design Studio Gallery</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               margin: 0; padding: 2rem; background: #f5f5f5; }
        h1 { color: #333; }
        .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1rem; }
        .card { background: white; border-radius: 8px; padding: 0.75rem;
                box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .card img { width: 100%; border-radius: 4px; }
        .meta { color: #666; font-size: 0.85rem; margin-top: 0.5rem; }
        .empty { color: #666; }
    </style>
</head>
<body>
    <h1>Gallery ({{len .Entries}} images)</h1>
    {{if .Entries}}
    <div class="grid">
        {{range .Entries}}
        <div class="card">
            <a href="/image/{{.Filename}}"><img src="/image/{{.Filename}}" alt="{{.Filename}}" loading="lazy"></a>
            <div class="meta">{{.Filename}}<br>{{.CreatedAt.Format "2006-01-02 15:04"}} &middot; {{.Size}}</div>
        </div>
        {{end}}
    </div>
    {{else}}
    <p class="empty">No images yet. Run a transfer first.</p>
    {{end}}
</body>
</html>
`

var galleryTemplate = template.Must(template.New("gallery").Parse(galleryPage))

// ViewerHandler serves a read-only HTML view of the gallery, proxying
// image bytes from the backend so the page works without exposing the
// backend's address to the browser.
type ViewerHandler struct {
	gallery *tasks.GalleryManager
	gateway services.Gateway
	logger  *log.Logger
}

// NewViewerHandler creates a handler backed by the given gallery manager and gateway.
func NewViewerHandler(gallery *tasks.GalleryManager, gateway services.Gateway, logger *log.Logger) *ViewerHandler {
	return &ViewerHandler{gallery: gallery, gateway: gateway, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *ViewerHandler) Routes() []string {
	return []string{"GET /{$}", "GET /image/{filename}", "GET /healthz"}
}

// ServeHTTP dispatches to the page, image proxy, or health endpoint.
func (h *ViewerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/healthz":
		h.serveHealth(w, r)
	case r.PathValue("filename") != "":
		h.serveImage(w, r)
	default:
		h.servePage(w, r)
	}
}

type viewerEntry struct {
	models.GalleryEntry
	Size string
}

func (h *ViewerHandler) servePage(w http.ResponseWriter, r *http.Request) {
	entries, err := h.gallery.Entries(r.Context())
	if err != nil {
		h.logger.Error("failed to load gallery", "error", err)
		http.Error(w, "Failed to load gallery", http.StatusBadGateway)
		return
	}

	view := make([]viewerEntry, 0, len(entries))
	for _, entry := range entries {
		view = append(view, viewerEntry{GalleryEntry: entry, Size: shared.FormatSize(entry.SizeBytes)})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := galleryTemplate.Execute(w, map[string]any{"Entries": view}); err != nil {
		h.logger.Error("failed to render gallery page", "error", err)
	}
}

func (h *ViewerHandler) serveImage(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")

	data, err := h.gateway.FetchImage(r.Context(), filename)
	if err != nil {
		if errors.Is(err, shared.ErrImageNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("failed to fetch image", "filename", filename, "error", err)
		http.Error(w, "Failed to fetch image", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	if _, err := w.Write(data); err != nil {
		h.logger.Debug("image write aborted", "filename", filename, "error", err)
	}
}

func (h *ViewerHandler) serveHealth(w http.ResponseWriter, r *http.Request) {
	status, err := h.gateway.Health(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if err != nil || status == nil || !status.Healthy() {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, `{"status":"unhealthy"}`)
		return
	}
	fmt.Fprintf(w, `{"status":"ok","device":%q}`, status.Device)
}
