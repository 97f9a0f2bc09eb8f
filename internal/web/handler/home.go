package handler

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/match"
	"github.com/mcoot/hockeytracker/internal/web/middleware"
	"github.com/mcoot/hockeytracker/internal/web/templates/layout"
	"github.com/mcoot/hockeytracker/internal/web/templates/pages"
)

// HomeHandler handles the match picker
type HomeHandler struct {
	matches match.ControllerInterface
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(matches match.ControllerInterface) *HomeHandler {
	return &HomeHandler{matches: matches}
}

// Home renders the match list with the current match highlighted
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matches.ListMatches(r.Context(), "")
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pages.HomeData{
		PageData: layout.PageData{
			Title: "Matches",
			Flash: middleware.GetFlash(r.Context()),
		},
		Matches: matches,
	}

	current, err := h.matches.CurrentMatch(r.Context())
	switch {
	case err == nil:
		data.CurrentMatchID = &current.ID
	case !errors.Is(err, model.ErrMatchNotFound):
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	render(w, r, http.StatusOK, pages.Home(data))
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = c.Render(r.Context(), w)
}

// WritePanic answers a page request whose handler panicked with the error page
func WritePanic(w http.ResponseWriter, r *http.Request, _ any) {
	render(w, r, http.StatusInternalServerError, layout.ErrorPage())
}

// isHTMX reports whether the request came from an htmx swap
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
