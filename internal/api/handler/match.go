package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/hockeytracker/internal/api/apierr"
	"github.com/mcoot/hockeytracker/internal/api/request"
	"github.com/mcoot/hockeytracker/internal/api/response"
	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/match"
)

// MatchHandler handles match lifecycle and in-match endpoints
type MatchHandler struct {
	matches match.ControllerInterface
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matches match.ControllerInterface) *MatchHandler {
	return &MatchHandler{matches: matches}
}

func matchID(r *http.Request) model.MatchID {
	return model.MatchID(mux.Vars(r)["match_id"])
}

func playerID(r *http.Request) model.PlayerID {
	return model.PlayerID(mux.Vars(r)["player_id"])
}

// writeMatch finishes a mutating request with the new snapshot
func (h *MatchHandler) writeMatch(w http.ResponseWriter, r *http.Request, m *model.Match, err error) {
	if err != nil {
		WriteError(w, err)
		return
	}
	snap, err := h.matches.Snapshot(r.Context(), m.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snap)
}

// List handles GET /api/v1/matches?team_id=
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matches.ListMatches(r.Context(), model.TeamID(r.URL.Query().Get("team_id")))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MatchSummariesFromModel(matches))
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMatchRequest
	if err := decodeBody(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.matches.CreateMatch(r.Context(), model.TeamID(req.TeamID), req.Name, req.OurTeamName, req.OpponentTeamName)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, m)
}

// Current handles GET /api/v1/matches/current
func (h *MatchHandler) Current(w http.ResponseWriter, r *http.Request) {
	m, err := h.matches.CurrentMatch(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, m)
}

// End handles POST /api/v1/matches/current/end
func (h *MatchHandler) End(w http.ResponseWriter, r *http.Request) {
	if err := h.matches.EndMatch(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Get handles GET /api/v1/matches/{match_id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.matches.GetMatch(r.Context(), matchID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, m)
}

// Select handles POST /api/v1/matches/{match_id}/select
func (h *MatchHandler) Select(w http.ResponseWriter, r *http.Request) {
	if err := h.matches.SelectMatch(r.Context(), matchID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Snapshot handles GET /api/v1/matches/{match_id}/snapshot
func (h *MatchHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.matches.Snapshot(r.Context(), matchID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snap)
}

// StartClock handles POST /api/v1/matches/{match_id}/clock/start
func (h *MatchHandler) StartClock(w http.ResponseWriter, r *http.Request) {
	m, err := h.matches.StartClock(r.Context(), matchID(r))
	h.writeMatch(w, r, m, err)
}

// PauseClock handles POST /api/v1/matches/{match_id}/clock/pause
func (h *MatchHandler) PauseClock(w http.ResponseWriter, r *http.Request) {
	m, err := h.matches.PauseClock(r.Context(), matchID(r))
	h.writeMatch(w, r, m, err)
}

// ResetClock handles POST /api/v1/matches/{match_id}/clock/reset
func (h *MatchHandler) ResetClock(w http.ResponseWriter, r *http.Request) {
	m, err := h.matches.ResetClockAndMatch(r.Context(), matchID(r))
	h.writeMatch(w, r, m, err)
}

// NewPeriod handles POST /api/v1/matches/{match_id}/clock/new-period
func (h *MatchHandler) NewPeriod(w http.ResponseWriter, r *http.Request) {
	m, err := h.matches.NewPeriod(r.Context(), matchID(r))
	h.writeMatch(w, r, m, err)
}

// SetCountdown handles PUT /api/v1/matches/{match_id}/clock/countdown
func (h *MatchHandler) SetCountdown(w http.ResponseWriter, r *http.Request) {
	var req request.CountdownRequest
	if err := decodeBody(r, &req, true); err != nil {
		WriteError(w, err)
		return
	}
	m, err := h.matches.SetCountdown(r.Context(), matchID(r), req.DurationMs)
	h.writeMatch(w, r, m, err)
}

// ToggleOnIce handles POST /api/v1/matches/{match_id}/players/{player_id}/toggle
func (h *MatchHandler) ToggleOnIce(w http.ResponseWriter, r *http.Request) {
	m, err := h.matches.ToggleOnIce(r.Context(), matchID(r), playerID(r))
	h.writeMatch(w, r, m, err)
}

// BenchAll handles POST /api/v1/matches/{match_id}/bench-all
func (h *MatchHandler) BenchAll(w http.ResponseWriter, r *http.Request) {
	m, err := h.matches.BenchAll(r.Context(), matchID(r))
	h.writeMatch(w, r, m, err)
}

// UpdateStat handles POST /api/v1/matches/{match_id}/players/{player_id}/stats
func (h *MatchHandler) UpdateStat(w http.ResponseWriter, r *http.Request) {
	var req request.StatRequest
	if err := decodeBody(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}
	if req.Delta == 0 {
		WriteError(w, apierr.NewInvalidRequestError("delta must be non-zero"))
		return
	}
	m, err := h.matches.UpdateStat(r.Context(), matchID(r), playerID(r), req.Stat, req.Delta)
	h.writeMatch(w, r, m, err)
}

// ToggleFocus handles POST /api/v1/matches/{match_id}/players/{player_id}/focus
func (h *MatchHandler) ToggleFocus(w http.ResponseWriter, r *http.Request) {
	m, err := h.matches.ToggleMyPlayer(r.Context(), matchID(r), playerID(r))
	h.writeMatch(w, r, m, err)
}

// AddPenalty handles POST /api/v1/matches/{match_id}/penalties
func (h *MatchHandler) AddPenalty(w http.ResponseWriter, r *http.Request) {
	var req request.PenaltyRequest
	if err := decodeBody(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}
	m, err := h.matches.AddPenalty(r.Context(), matchID(r), match.PenaltyInput{
		Team:         req.Team,
		PlayerNumber: req.PlayerNumber,
		Type:         req.Type,
		Infraction:   req.Infraction,
	})
	h.writeMatch(w, r, m, err)
}

// RemovePenalty handles DELETE /api/v1/matches/{match_id}/penalties/{penalty_id}
func (h *MatchHandler) RemovePenalty(w http.ResponseWriter, r *http.Request) {
	m, err := h.matches.RemovePenalty(r.Context(), matchID(r), model.PenaltyID(mux.Vars(r)["penalty_id"]))
	h.writeMatch(w, r, m, err)
}

// EarlyRelease handles POST /api/v1/matches/{match_id}/penalties/{penalty_id}/release
func (h *MatchHandler) EarlyRelease(w http.ResponseWriter, r *http.Request) {
	m, err := h.matches.EarlyRelease(r.Context(), matchID(r), model.PenaltyID(mux.Vars(r)["penalty_id"]))
	h.writeMatch(w, r, m, err)
}

// RecordGoal handles POST /api/v1/matches/{match_id}/goals
func (h *MatchHandler) RecordGoal(w http.ResponseWriter, r *http.Request) {
	var req request.GoalRequest
	if err := decodeBody(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}
	m, err := h.matches.RecordGoal(r.Context(), matchID(r), match.GoalInput{
		Scorer:        req.Scorer,
		ScorerNumber:  req.ScorerNumber,
		Assist1Number: req.Assist1Number,
		Assist2Number: req.Assist2Number,
	})
	h.writeMatch(w, r, m, err)
}

// Undo handles POST /api/v1/matches/{match_id}/undo
func (h *MatchHandler) Undo(w http.ResponseWriter, r *http.Request) {
	m, err := h.matches.UndoLast(r.Context(), matchID(r))
	h.writeMatch(w, r, m, err)
}

// Events handles GET /api/v1/matches/{match_id}/events
func (h *MatchHandler) Events(w http.ResponseWriter, r *http.Request) {
	m, err := h.matches.GetMatch(r.Context(), matchID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.EventLinesFromModel(m))
}

// Timeline handles GET /api/v1/matches/{match_id}/players/{player_id}/timeline
func (h *MatchHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.matches.Timeline(r.Context(), matchID(r), playerID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Timeline{PlayerID: playerID(r), Shifts: shifts})
}

// Leaderboard handles GET /api/v1/matches/{match_id}/leaderboard?stat=&limit=
func (h *MatchHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stat := model.StatKey(q.Get("stat"))
	if stat == "" {
		stat = model.StatPlusMinus
	}
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, apierr.NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	players, err := h.matches.Leaderboard(r.Context(), matchID(r), stat, limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(stat, players))
}

// Export handles GET /api/v1/matches/{match_id}/export
func (h *MatchHandler) Export(w http.ResponseWriter, r *http.Request) {
	filename, data, err := h.matches.ExportCSV(r.Context(), matchID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.CSV(w, filename, data)
}
