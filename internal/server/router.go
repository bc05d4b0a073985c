// Package server implements the HTTP server and routing logic.
package server

import (
	"embed"
	"io"
	"io/fs"
	"net/http"

	"github.com/callumalpass/inkwell-sub004/frontend"
	"github.com/callumalpass/inkwell-sub004/internal/server/handlers"
	"github.com/callumalpass/inkwell-sub004/internal/server/ratelimit"
)

// NewRouter creates and configures the HTTP router.
// Serves API endpoints at /api/* and the embedded canvas frontend at /.
// limits may be nil to disable rate limiting (tests).
func NewRouter(svc *handlers.Services, cfg *handlers.Config, limits *ratelimit.Config) http.Handler {
	mux := &http.ServeMux{}

	nh := &handlers.NotebookHandler{Svc: svc, Cfg: cfg}
	ph := &handlers.PageHandler{Svc: svc}
	sh := &handlers.SettingsHandler{Svc: svc}
	hh := handlers.NewHealthHandler(cfg.Version)

	// Health check
	mux.Handle("/api/health", Wrap(hh.Health, cfg, limits))

	// Settings endpoints
	mux.Handle("GET /api/settings", Wrap(sh.GetSettings, cfg, limits))
	mux.Handle("PUT /api/settings", Wrap(sh.UpdateSettings, cfg, limits))
	mux.Handle("GET /api/settings/schema", Wrap(sh.GetSettingsSchema, cfg, limits))

	// Notebook endpoints
	mux.Handle("GET /api/notebooks", Wrap(nh.ListNotebooks, cfg, limits))
	mux.Handle("POST /api/notebooks", Wrap(nh.CreateNotebook, cfg, limits))
	mux.Handle("POST /api/notebooks/import", limitRaw(limits, nh.ImportNotebookHandler))
	mux.Handle("GET /api/notebooks/{id}", Wrap(nh.GetNotebook, cfg, limits))
	mux.Handle("PUT /api/notebooks/{id}", Wrap(nh.UpdateNotebook, cfg, limits))
	mux.Handle("DELETE /api/notebooks/{id}", Wrap(nh.DeleteNotebook, cfg, limits))
	mux.Handle("GET /api/notebooks/{id}/history", Wrap(nh.NotebookHistory, cfg, limits))
	mux.Handle("GET /api/notebooks/{id}/export", limitRaw(limits, nh.ExportNotebookHandler))

	// Page endpoints
	mux.Handle("GET /api/notebooks/{id}/pages", Wrap(ph.ListPages, cfg, limits))
	mux.Handle("POST /api/notebooks/{id}/pages", Wrap(ph.CreatePage, cfg, limits))
	mux.Handle("GET /api/pages/{id}", Wrap(ph.GetPage, cfg, limits))
	mux.Handle("DELETE /api/pages/{id}", Wrap(ph.DeletePage, cfg, limits))
	mux.Handle("GET /api/pages/{id}/strokes", Wrap(ph.GetStrokes, cfg, limits))
	mux.Handle("PUT /api/pages/{id}/strokes", Wrap(ph.SaveStrokes, cfg, limits))

	// Serve the embedded canvas frontend with SPA fallback
	mux.Handle("/", NewEmbeddedSPAHandler(frontend.Files))

	return mux
}

// limitRaw applies rate limiting to raw handlers that bypass Wrap.
func limitRaw(limits *ratelimit.Config, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limits != nil {
			if tier := limits.Match(r.Method, r.URL.Path); tier != nil {
				var ok bool
				w, ok = checkRateLimit(w, tier, GetClientIP(r))
				if !ok {
					return
				}
			}
		}
		h(w, r)
	})
}

// EmbeddedSPAHandler serves an embedded single-page application with fallback to index.html.
type EmbeddedSPAHandler struct {
	fs embed.FS
}

// NewEmbeddedSPAHandler creates a handler for the embedded frontend.
func NewEmbeddedSPAHandler(f embed.FS) *EmbeddedSPAHandler {
	return &EmbeddedSPAHandler{fs: f}
}

// ServeHTTP implements http.Handler for embedded SPA routing.
func (h *EmbeddedSPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Try to serve the exact file from dist/
	path := "dist" + r.URL.Path
	f, err := h.fs.Open(path)
	if err == nil {
		_ = f.Close()
		fsys, _ := fs.Sub(h.fs, "dist")
		fileServer := http.FileServer(http.FS(fsys))
		// Set cache headers for static assets with extensions
		if containsDot(r.URL.Path) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		fileServer.ServeHTTP(w, r)
		return
	}

	// File not found - fall back to index.html for SPA routing
	indexFile, err := h.fs.Open("dist/index.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer func() { _ = indexFile.Close() }()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	_, _ = io.Copy(w, indexFile)
}

// containsDot checks if a path contains a dot (file extension).
func containsDot(path string) bool {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return false
		}
		if path[i] == '.' {
			return true
		}
	}
	return false
}
