package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/hockeytracker/internal/api/apierr"
	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/eventlog"
	"github.com/mcoot/hockeytracker/internal/services/match"
	"github.com/mcoot/hockeytracker/internal/web/middleware"
	"github.com/mcoot/hockeytracker/internal/web/templates/components"
	"github.com/mcoot/hockeytracker/internal/web/templates/layout"
	"github.com/mcoot/hockeytracker/internal/web/templates/pages"
)

// BoardHandler serves the bench board for one match
type BoardHandler struct {
	matches match.ControllerInterface
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(matches match.ControllerInterface) *BoardHandler {
	return &BoardHandler{matches: matches}
}

func matchID(r *http.Request) model.MatchID {
	return model.MatchID(mux.Vars(r)["match_id"])
}

// load reads the match and its snapshot at the same instant
func (h *BoardHandler) load(ctx context.Context, id model.MatchID) (pages.MatchData, error) {
	m, err := h.matches.GetMatch(ctx, id)
	if err != nil {
		return pages.MatchData{}, err
	}
	snap, err := h.matches.Snapshot(ctx, id)
	if err != nil {
		return pages.MatchData{}, err
	}

	names := eventlog.NamesFor(m)
	rows := make([]components.EventRow, len(m.Events))
	for i, ev := range m.Events {
		label, detail := eventlog.Describe(ev, names)
		rows[i] = components.EventRow{Elapsed: ev.ElapsedTime, Label: label, Detail: detail}
	}

	return pages.MatchData{
		PageData: layout.PageData{Title: m.Name},
		Snapshot: *snap,
		Events:   rows,
	}, nil
}

// View renders the full bench board page
func (h *BoardHandler) View(w http.ResponseWriter, r *http.Request) {
	data, err := h.load(r.Context(), matchID(r))
	if err != nil {
		if errors.Is(err, model.ErrMatchNotFound) {
			middleware.SetFlash(w, "error", "Match not found")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data.Flash = middleware.GetFlash(r.Context())
	render(w, r, http.StatusOK, pages.Match(data))
}

// Board renders only the board fragment for htmx refreshes
func (h *BoardHandler) Board(w http.ResponseWriter, r *http.Request) {
	data, err := h.load(r.Context(), matchID(r))
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		return
	}
	render(w, r, http.StatusOK, components.Board(data.Snapshot, data.Events))
}

// Toggle puts a player on or off the ice
func (h *BoardHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])
	h.act(w, r, func(ctx context.Context, id model.MatchID) (*model.Match, error) {
		return h.matches.ToggleOnIce(ctx, id, playerID)
	})
}

// StartClock starts the clock
func (h *BoardHandler) StartClock(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.matches.StartClock)
}

// PauseClock pauses the clock
func (h *BoardHandler) PauseClock(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.matches.PauseClock)
}

// Goal records a goal for the side in the path. The scorer's number comes
// from the goal form; assists are optional.
func (h *BoardHandler) Goal(w http.ResponseWriter, r *http.Request) {
	side := model.SideUs
	if mux.Vars(r)["side"] == "them" {
		side = model.SideThem
	}
	in := match.GoalInput{
		Scorer:        side,
		ScorerNumber:  strings.TrimSpace(r.FormValue("scorer_number")),
		Assist1Number: strings.TrimSpace(r.FormValue("assist1_number")),
		Assist2Number: strings.TrimSpace(r.FormValue("assist2_number")),
	}
	h.act(w, r, func(ctx context.Context, id model.MatchID) (*model.Match, error) {
		return h.matches.RecordGoal(ctx, id, in)
	})
}

// Undo reverts the last goal
func (h *BoardHandler) Undo(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.matches.UndoLast)
}

// act runs a board action. htmx callers get the new board fragment; plain
// form posts are redirected back to the page, with a flash on failure.
func (h *BoardHandler) act(w http.ResponseWriter, r *http.Request, fn func(context.Context, model.MatchID) (*model.Match, error)) {
	id := matchID(r)
	_, err := fn(r.Context(), id)

	if !isHTMX(r) {
		if err != nil {
			middleware.SetFlash(w, "error", err.Error())
		}
		http.Redirect(w, r, components.MatchURL(id), http.StatusSeeOther)
		return
	}

	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		return
	}
	h.Board(w, r)
}
