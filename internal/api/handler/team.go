package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/hockeytracker/internal/api/request"
	"github.com/mcoot/hockeytracker/internal/api/response"
	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/team"
)

// TeamHandler handles team registry and navigation endpoints
type TeamHandler struct {
	teams team.ControllerInterface
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teams team.ControllerInterface) *TeamHandler {
	return &TeamHandler{teams: teams}
}

func teamInput(req request.TeamRequest) team.Input {
	players := make([]team.PlayerInput, len(req.Players))
	for i, p := range req.Players {
		players[i] = playerInput(p)
	}
	return team.Input{Name: req.Name, OnIceCap: req.OnIceCap, Players: players}
}

func playerInput(p request.PlayerRequest) team.PlayerInput {
	return team.PlayerInput{
		ID:       model.PlayerID(p.ID),
		Number:   p.Number,
		Name:     p.Name,
		IsGoalie: p.IsGoalie,
	}
}

// List handles GET /api/v1/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.ListTeams(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, teams)
}

// Create handles POST /api/v1/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.TeamRequest
	if err := decodeBody(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}

	t, err := h.teams.CreateTeam(r.Context(), teamInput(req))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, t)
}

// Get handles GET /api/v1/teams/{team_id}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.teams.GetTeam(r.Context(), model.TeamID(mux.Vars(r)["team_id"]))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, t)
}

// Update handles PUT /api/v1/teams/{team_id}
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.TeamRequest
	if err := decodeBody(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}

	t, err := h.teams.UpdateTeam(r.Context(), model.TeamID(mux.Vars(r)["team_id"]), teamInput(req))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, t)
}

// Select handles POST /api/v1/teams/{team_id}/select
func (h *TeamHandler) Select(w http.ResponseWriter, r *http.Request) {
	if err := h.teams.SelectTeam(r.Context(), model.TeamID(mux.Vars(r)["team_id"])); err != nil {
		WriteError(w, err)
		return
	}
	h.writeNavigation(w, r)
}

// AddPlayer handles POST /api/v1/teams/{team_id}/players
func (h *TeamHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var req request.PlayerRequest
	if err := decodeBody(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}

	t, err := h.teams.AddPlayer(r.Context(), model.TeamID(mux.Vars(r)["team_id"]), playerInput(req))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, t)
}

// RemovePlayer handles DELETE /api/v1/teams/{team_id}/players/{player_id}
func (h *TeamHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	t, err := h.teams.RemovePlayer(r.Context(), model.TeamID(vars["team_id"]), model.PlayerID(vars["player_id"]))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, t)
}

// Navigation handles GET /api/v1/navigation
func (h *TeamHandler) Navigation(w http.ResponseWriter, r *http.Request) {
	h.writeNavigation(w, r)
}

// BackToTeams handles POST /api/v1/navigation/teams
func (h *TeamHandler) BackToTeams(w http.ResponseWriter, r *http.Request) {
	if err := h.teams.BackToTeams(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	h.writeNavigation(w, r)
}

func (h *TeamHandler) writeNavigation(w http.ResponseWriter, r *http.Request) {
	nav, err := h.teams.Navigation(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, nav)
}
