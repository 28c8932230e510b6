// Package site serves the embedded browser front-end: a roster checklist
// that posts the owned set to /recommendations on every change.
package site

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ErrServe is returned when the embedded page cannot be read.
var ErrServe = errors.New("site serve failed")

// Register attaches the front-end routes to r.
// Routes:
//
//	GET /           -> index.html
//	GET /assets/*   -> scripts and styles
func Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	h := NewRootHandler()
	r.Get("/", h.HandleRoot)
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(FS())))
}

// RootHandler serves the index page.
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / and writes the embedded index page.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, ErrServe.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}
