// Package site serves the student-facing signup page and its assets.
package site

import (
	"context"
	"net/http"
)

// Register attaches the signup site routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// The file server bounces explicit /static/index.html requests back to
	// the directory, so serve the page directly and let the root redirect
	// resolve in one hop.
	mux.HandleFunc("/static/index.html", serveIndex)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(FS())))

	// Everything not claimed by another route falls through to the root
	// handler.
	mux.HandleFunc("/", NewRootHandler().HandleRoot)
}

func serveIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// RootHandler redirects the bare root to the signup page.
type RootHandler struct{}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests with a temporary redirect to the signup
// page. Any other path that reached the fallback route is unknown.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}
