// Package team manages roster templates and the operator's navigation phase.
package team

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mcoot/hockeytracker/internal/dependencies/ids"
	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/store"
)

// PlayerInput describes a roster entry. ID is kept when set, generated otherwise.
type PlayerInput struct {
	ID       model.PlayerID `json:"id,omitempty"`
	Number   string         `json:"number"`
	Name     string         `json:"name"`
	IsGoalie bool           `json:"isGoalie"`
}

// Input describes a team to create or replace
type Input struct {
	Name     string        `json:"name"`
	OnIceCap int           `json:"onIceCap,omitempty"`
	Players  []PlayerInput `json:"players"`
}

// Navigation is where the operator currently is in the workflow
type Navigation struct {
	CurrentTeamID  *model.TeamID  `json:"currentTeamId"`
	CurrentMatchID *model.MatchID `json:"currentMatchId"`
	AppPhase       model.AppPhase `json:"appPhase"`
}

// Controller manages teams through the store
type Controller struct {
	store  *store.Store
	ids    ids.Generator
	logger *slog.Logger
}

// NewController creates a new team Controller
func NewController(store *store.Store, ids ids.Generator, logger *slog.Logger) *Controller {
	return &Controller{
		store:  store,
		ids:    ids,
		logger: logger,
	}
}

func (c *Controller) newPlayer(in PlayerInput) (model.Player, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Player{}, model.ErrNameRequired
	}
	id := in.ID
	if id == "" {
		id = model.PlayerID(c.ids.NewID())
	}
	return model.Player{
		ID:       id,
		Number:   strings.TrimSpace(in.Number),
		Name:     name,
		Initials: model.Initials(name),
		IsGoalie: in.IsGoalie,
	}, nil
}

func (c *Controller) buildTeam(id model.TeamID, in Input) (model.Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Team{}, model.ErrNameRequired
	}
	if len(in.Players) == 0 {
		return model.Team{}, model.ErrNoPlayers
	}

	t := model.Team{
		ID:       id,
		Name:     name,
		OnIceCap: in.OnIceCap,
		Players:  make([]model.Player, 0, len(in.Players)),
	}
	if t.OnIceCap <= 0 {
		t.OnIceCap = model.DefaultOnIceCap
	}
	for _, pin := range in.Players {
		p, err := c.newPlayer(pin)
		if err != nil {
			return model.Team{}, err
		}
		t.Players = append(t.Players, p)
	}
	return t, nil
}

// CreateTeam saves a new team and moves on to match selection for it
func (c *Controller) CreateTeam(ctx context.Context, in Input) (*model.Team, error) {
	t, err := c.buildTeam(model.TeamID(c.ids.NewID()), in)
	if err != nil {
		return nil, err
	}

	err = c.store.Update(ctx, func(state *model.AppState) error {
		state.Teams = append(state.Teams, t)
		state.CurrentTeamID = &t.ID
		state.AppPhase = model.PhaseMatchSelection
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("team created",
		slog.String("team_id", string(t.ID)),
		slog.String("name", t.Name),
		slog.Int("player_count", len(t.Players)),
	)
	return &t, nil
}

// UpdateTeam replaces a team's name, cap and roster. Existing matches keep their snapshot.
func (c *Controller) UpdateTeam(ctx context.Context, id model.TeamID, in Input) (*model.Team, error) {
	t, err := c.buildTeam(id, in)
	if err != nil {
		return nil, err
	}

	err = c.store.Update(ctx, func(state *model.AppState) error {
		existing := state.GetTeam(id)
		if existing == nil {
			return model.ErrTeamNotFound
		}
		*existing = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AddPlayer appends a player to a team's roster
func (c *Controller) AddPlayer(ctx context.Context, teamID model.TeamID, in PlayerInput) (*model.Team, error) {
	p, err := c.newPlayer(in)
	if err != nil {
		return nil, err
	}
	return c.mutate(ctx, teamID, func(t *model.Team) error {
		t.Players = append(t.Players, p)
		return nil
	})
}

// RemovePlayer drops a player from a team's roster. The last player cannot be removed.
func (c *Controller) RemovePlayer(ctx context.Context, teamID model.TeamID, playerID model.PlayerID) (*model.Team, error) {
	return c.mutate(ctx, teamID, func(t *model.Team) error {
		for i := range t.Players {
			if t.Players[i].ID == playerID {
				if len(t.Players) == 1 {
					return model.ErrNoPlayers
				}
				t.Players = append(t.Players[:i], t.Players[i+1:]...)
				return nil
			}
		}
		return model.ErrPlayerNotFound
	})
}

func (c *Controller) mutate(ctx context.Context, id model.TeamID, fn func(t *model.Team) error) (*model.Team, error) {
	var out model.Team
	err := c.store.Update(ctx, func(state *model.AppState) error {
		t := state.GetTeam(id)
		if t == nil {
			return model.ErrTeamNotFound
		}
		if err := fn(t); err != nil {
			return err
		}
		out = t.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTeam returns a copy of the team
func (c *Controller) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	var out model.Team
	err := c.store.View(ctx, func(state *model.AppState) error {
		t := state.GetTeam(id)
		if t == nil {
			return model.ErrTeamNotFound
		}
		out = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTeams returns every team
func (c *Controller) ListTeams(ctx context.Context) ([]model.Team, error) {
	var out []model.Team
	err := c.store.View(ctx, func(state *model.AppState) error {
		out = state.Teams
		return nil
	})
	return out, err
}

// SelectTeam makes a team current and moves to match selection
func (c *Controller) SelectTeam(ctx context.Context, id model.TeamID) error {
	return c.store.Update(ctx, func(state *model.AppState) error {
		t := state.GetTeam(id)
		if t == nil {
			return model.ErrTeamNotFound
		}
		state.CurrentTeamID = &t.ID
		state.AppPhase = model.PhaseMatchSelection
		return nil
	})
}

// BackToTeams clears the current team and returns to team selection
func (c *Controller) BackToTeams(ctx context.Context) error {
	return c.store.Update(ctx, func(state *model.AppState) error {
		state.CurrentTeamID = nil
		state.AppPhase = model.PhaseTeamSelection
		return nil
	})
}

// Navigation returns the current phase and selections
func (c *Controller) Navigation(ctx context.Context) (*Navigation, error) {
	var out Navigation
	err := c.store.View(ctx, func(state *model.AppState) error {
		out = Navigation{
			CurrentTeamID:  state.CurrentTeamID,
			CurrentMatchID: state.CurrentMatchID,
			AppPhase:       state.AppPhase,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateTeam(ctx context.Context, in Input) (*model.Team, error)
	UpdateTeam(ctx context.Context, id model.TeamID, in Input) (*model.Team, error)
	AddPlayer(ctx context.Context, teamID model.TeamID, in PlayerInput) (*model.Team, error)
	RemovePlayer(ctx context.Context, teamID model.TeamID, playerID model.PlayerID) (*model.Team, error)
	GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error)
	ListTeams(ctx context.Context) ([]model.Team, error)
	SelectTeam(ctx context.Context, id model.TeamID) error
	BackToTeams(ctx context.Context) error
	Navigation(ctx context.Context) (*Navigation, error)
}

var _ ControllerInterface = (*Controller)(nil)
