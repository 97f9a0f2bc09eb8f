// Package match implements the match aggregate: every operation that touches
// the clock, roster, penalties and event log of one match as a unit.
package match

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/hockeytracker/internal/dependencies/clock"
	"github.com/mcoot/hockeytracker/internal/dependencies/ids"
	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/eventlog"
	"github.com/mcoot/hockeytracker/internal/services/export"
	"github.com/mcoot/hockeytracker/internal/services/gameclock"
	"github.com/mcoot/hockeytracker/internal/services/penalty"
	"github.com/mcoot/hockeytracker/internal/services/roster"
	"github.com/mcoot/hockeytracker/internal/services/scoreboard"
	"github.com/mcoot/hockeytracker/internal/store"
)

// Notifier is told about every committed match change
type Notifier interface {
	MatchChanged(ctx context.Context, change model.MatchChange)
}

// GoalInput carries the jersey numbers recorded with a goal. The scorer's
// number is required; assists are optional.
type GoalInput struct {
	Scorer        model.Side
	ScorerNumber  string
	Assist1Number string
	Assist2Number string
}

// PenaltyInput describes a penalty to assess
type PenaltyInput struct {
	Team         model.Side
	PlayerNumber string
	Type         model.PenaltyType
	Infraction   string
}

// Controller manages match state through the store
type Controller struct {
	// commitMu orders notifications the same way as the commits they report
	commitMu  sync.Mutex
	store     *store.Store
	clock     clock.Clock
	ids       ids.Generator
	notifiers []Notifier
	logger    *slog.Logger
}

// NewController creates a new match Controller
func NewController(
	store *store.Store,
	clock clock.Clock,
	ids ids.Generator,
	logger *slog.Logger,
	notifiers ...Notifier,
) *Controller {
	return &Controller{
		store:     store,
		clock:     clock,
		ids:       ids,
		notifiers: notifiers,
		logger:    logger,
	}
}

// AddNotifier registers another change listener
func (c *Controller) AddNotifier(n Notifier) {
	c.notifiers = append(c.notifiers, n)
}

// mutate applies fn to a copy of the match and commits it. fn may return
// store.ErrNoChange to leave everything untouched.
func (c *Controller) mutate(ctx context.Context, id model.MatchID, action string, fn func(m *model.Match, now int64) error) (*model.Match, error) {
	c.commitMu.Lock()
	defer c.commitMu.Unlock()

	now := clock.NowMs(c.clock)

	var result model.Match
	var appended []model.Event
	changed := false

	err := c.store.Update(ctx, func(state *model.AppState) error {
		m := state.GetMatch(id)
		if m == nil {
			return model.ErrMatchNotFound
		}
		before := len(m.Events)

		ferr := fn(m, now)
		if ferr != nil && !errors.Is(ferr, store.ErrNoChange) {
			return ferr
		}

		result = m.Clone()
		if len(m.Events) > before {
			appended = result.Events[before:]
		}
		changed = ferr == nil
		return ferr
	})
	if err != nil {
		c.logger.Warn("match operation failed",
			slog.String("match_id", string(id)),
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if changed {
		c.logger.Debug("match updated",
			slog.String("match_id", string(id)),
			slog.String("action", action),
			slog.Int("events_appended", len(appended)),
		)
		c.notify(ctx, model.MatchChange{Match: result, Appended: appended, Action: action})
	}
	return &result, nil
}

func (c *Controller) notify(ctx context.Context, change model.MatchChange) {
	for _, n := range c.notifiers {
		n.MatchChanged(ctx, change)
	}
}

// appendEvent stamps and appends one event to the match log
func (c *Controller) appendEvent(m *model.Match, now int64, payload model.EventPayload) {
	ev := eventlog.NewEvent(model.EventID(c.ids.NewID()), m.Clock, now, payload)
	m.Events = append(m.Events, ev)
}

func (c *Controller) appendTransitions(m *model.Match, now int64, transitions []roster.Transition) {
	for _, t := range transitions {
		c.appendEvent(m, now, model.OnIceChangePayload{PlayerID: t.PlayerID, OnIce: t.OnIce})
	}
}

// Lifecycle

// CreateMatch snapshots the team's roster into a new match and makes it current
func (c *Controller) CreateMatch(ctx context.Context, teamID model.TeamID, name, ourTeamName, opponentTeamName string) (*model.Match, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrNameRequired
	}

	now := clock.NowMs(c.clock)
	var created model.Match

	err := c.store.Update(ctx, func(state *model.AppState) error {
		team := state.GetTeam(teamID)
		if team == nil {
			return model.ErrTeamNotFound
		}

		players := team.Clone().Players
		roster.ResetAll(players)

		m := model.Match{
			ID:               model.MatchID(c.ids.NewID()),
			Name:             name,
			TeamID:           team.ID,
			OurTeamName:      defaultString(ourTeamName, defaultString(team.Name, model.DefaultOurTeamName)),
			OpponentTeamName: defaultString(opponentTeamName, model.DefaultOpponentTeamName),
			StartedAt:        now,
			OnIceCap:         team.OnIceCap,
			Players:          players,
			Penalties:        []model.Penalty{},
			Events:           []model.Event{},
			MyPlayerIDs:      []model.PlayerID{},
		}
		if m.OnIceCap <= 0 {
			m.OnIceCap = model.DefaultOnIceCap
		}

		state.Matches = append(state.Matches, m)
		state.CurrentTeamID = &m.TeamID
		state.CurrentMatchID = &m.ID
		state.AppPhase = model.PhaseMatch

		created = m.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("match created",
		slog.String("match_id", string(created.ID)),
		slog.String("team_id", string(teamID)),
		slog.Int("player_count", len(created.Players)),
	)
	return &created, nil
}

// GetMatch returns a copy of the match
func (c *Controller) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	var out model.Match
	err := c.store.View(ctx, func(state *model.AppState) error {
		m := state.GetMatch(id)
		if m == nil {
			return model.ErrMatchNotFound
		}
		out = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMatches returns the matches of a team, or every match if teamID is empty
func (c *Controller) ListMatches(ctx context.Context, teamID model.TeamID) ([]model.Match, error) {
	out := []model.Match{}
	err := c.store.View(ctx, func(state *model.AppState) error {
		for _, m := range state.Matches {
			if teamID == "" || m.TeamID == teamID {
				out = append(out, m)
			}
		}
		return nil
	})
	return out, err
}

// CurrentMatch returns the match currently selected, if any
func (c *Controller) CurrentMatch(ctx context.Context) (*model.Match, error) {
	var out *model.Match
	err := c.store.View(ctx, func(state *model.AppState) error {
		if state.CurrentMatchID == nil {
			return model.ErrMatchNotFound
		}
		m := state.GetMatch(*state.CurrentMatchID)
		if m == nil {
			return model.ErrMatchNotFound
		}
		out = m
		return nil
	})
	return out, err
}

// SelectMatch makes a match current and moves to the match phase
func (c *Controller) SelectMatch(ctx context.Context, id model.MatchID) error {
	return c.store.Update(ctx, func(state *model.AppState) error {
		m := state.GetMatch(id)
		if m == nil {
			return model.ErrMatchNotFound
		}
		state.CurrentTeamID = &m.TeamID
		state.CurrentMatchID = &m.ID
		state.AppPhase = model.PhaseMatch
		return nil
	})
}

// EndMatch leaves the current match and returns to match selection
func (c *Controller) EndMatch(ctx context.Context) error {
	return c.store.Update(ctx, func(state *model.AppState) error {
		state.CurrentMatchID = nil
		state.AppPhase = model.PhaseMatchSelection
		return nil
	})
}

// Clock

// StartClock starts the clock and opens a shift for every on-ice player
func (c *Controller) StartClock(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return c.mutate(ctx, id, model.ActionStart, func(m *model.Match, now int64) error {
		if !gameclock.Start(&m.Clock, now) {
			return store.ErrNoChange
		}
		roster.StartShifts(m.Players, now)
		return nil
	})
}

// PauseClock stops the clock and accrues every open shift
func (c *Controller) PauseClock(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return c.mutate(ctx, id, model.ActionPause, func(m *model.Match, now int64) error {
		if !pause(m, now) {
			return store.ErrNoChange
		}
		return nil
	})
}

func pause(m *model.Match, now int64) bool {
	if !gameclock.Pause(&m.Clock, now) {
		return false
	}
	roster.EndShifts(m.Players, now)
	return true
}

// ResetClockAndMatch wipes all match progress, keeping the roster and countdown
func (c *Controller) ResetClockAndMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return c.mutate(ctx, id, model.ActionReset, func(m *model.Match, now int64) error {
		gameclock.Reset(&m.Clock)
		roster.ResetAll(m.Players)
		m.Events = []model.Event{}
		m.MyPlayerIDs = []model.PlayerID{}
		return nil
	})
}

// SetCountdown sets the period length; nil or non-positive clears it
func (c *Controller) SetCountdown(ctx context.Context, id model.MatchID, durationMs *int64) (*model.Match, error) {
	return c.mutate(ctx, id, model.ActionCountdown, func(m *model.Match, now int64) error {
		gameclock.SetCountdown(&m.Clock, durationMs)
		return nil
	})
}

// NewPeriod benches everyone and zeroes the clock. Stats and events carry
// over; active penalties keep the time they had left.
func (c *Controller) NewPeriod(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return c.mutate(ctx, id, model.ActionNewPeriod, func(m *model.Match, now int64) error {
		transitions := roster.BenchAll(m.Players, now)
		c.appendTransitions(m, now, transitions)
		penalty.CarryOver(m.Penalties, gameclock.LiveElapsedMs(m.Clock, now))
		gameclock.Reset(&m.Clock)
		return nil
	})
}

// Roster

// ToggleOnIce flips a player's on-ice state, auto-benching a second goalie
func (c *Controller) ToggleOnIce(ctx context.Context, id model.MatchID, playerID model.PlayerID) (*model.Match, error) {
	return c.mutate(ctx, id, model.ActionToggleOnIce, func(m *model.Match, now int64) error {
		transitions, err := roster.Toggle(m.Players, playerID, m.Clock.Running, now)
		if err != nil {
			return err
		}
		c.appendTransitions(m, now, transitions)
		return nil
	})
}

// BenchAll takes every player off the ice
func (c *Controller) BenchAll(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return c.mutate(ctx, id, model.ActionBenchAll, func(m *model.Match, now int64) error {
		transitions := roster.BenchAll(m.Players, now)
		if len(transitions) == 0 {
			return store.ErrNoChange
		}
		c.appendTransitions(m, now, transitions)
		return nil
	})
}

// UpdateStat adjusts a counting stat and logs the change
func (c *Controller) UpdateStat(ctx context.Context, id model.MatchID, playerID model.PlayerID, stat model.StatKey, delta int) (*model.Match, error) {
	return c.mutate(ctx, id, model.ActionStat, func(m *model.Match, now int64) error {
		value, err := roster.UpdateStat(m.Players, playerID, stat, delta)
		if err != nil {
			return err
		}
		c.appendEvent(m, now, model.StatChangePayload{PlayerID: playerID, Stat: stat, Value: value, Delta: delta})
		return nil
	})
}

// ToggleMyPlayer adds or removes a player from the focus set
func (c *Controller) ToggleMyPlayer(ctx context.Context, id model.MatchID, playerID model.PlayerID) (*model.Match, error) {
	return c.mutate(ctx, id, model.ActionFocus, func(m *model.Match, now int64) error {
		if m.GetPlayer(playerID) == nil {
			return model.ErrPlayerNotFound
		}
		for i, pid := range m.MyPlayerIDs {
			if pid == playerID {
				m.MyPlayerIDs = append(m.MyPlayerIDs[:i], m.MyPlayerIDs[i+1:]...)
				return nil
			}
		}
		m.MyPlayerIDs = append(m.MyPlayerIDs, playerID)
		return nil
	})
}

// Penalties

// AddPenalty assesses a penalty at the current clock elapsed. Coincident
// penalties are resolved first; a strength penalty on one of our on-ice
// players then sends that player to the box.
func (c *Controller) AddPenalty(ctx context.Context, id model.MatchID, in PenaltyInput) (*model.Match, error) {
	return c.mutate(ctx, id, model.ActionPenalty, func(m *model.Match, now int64) error {
		p, err := penalty.New(
			model.PenaltyID(c.ids.NewID()),
			in.Team,
			in.PlayerNumber,
			in.Type,
			in.Infraction,
			gameclock.LiveElapsedMs(m.Clock, now),
		)
		if err != nil {
			return err
		}

		var stored model.Penalty
		m.Penalties, stored = penalty.Add(m.Penalties, p)

		if stored.AffectsStrength && stored.Team == model.SideUs {
			if player := m.GetPlayerByNumber(stored.PlayerNumber); player != nil && roster.Bench(player, now) {
				c.appendEvent(m, now, model.OnIceChangePayload{PlayerID: player.ID, OnIce: false})
			}
		}
		return nil
	})
}

// RemovePenalty marks a penalty served. Removing a served penalty again
// succeeds without saving or notifying.
func (c *Controller) RemovePenalty(ctx context.Context, id model.MatchID, penaltyID model.PenaltyID) (*model.Match, error) {
	return c.mutate(ctx, id, model.ActionRemovePenalty, func(m *model.Match, now int64) error {
		err := penalty.Remove(m.Penalties, penaltyID)
		if errors.Is(err, model.ErrPenaltyServed) {
			return store.ErrNoChange
		}
		return err
	})
}

// EarlyRelease ends a minor penalty before it expires
func (c *Controller) EarlyRelease(ctx context.Context, id model.MatchID, penaltyID model.PenaltyID) (*model.Match, error) {
	return c.mutate(ctx, id, model.ActionEarlyRelease, func(m *model.Match, now int64) error {
		return penalty.EarlyRelease(m.Penalties, penaltyID)
	})
}

// Goals

// RecordGoal applies plus/minus to our on-ice players, charges a goal against
// to our goalie when the opponent scores, releases one minor of the scoring
// side and logs the goal.
func (c *Controller) RecordGoal(ctx context.Context, id model.MatchID, in GoalInput) (*model.Match, error) {
	if !in.Scorer.Valid() {
		return nil, model.ErrInvalidSide
	}
	if strings.TrimSpace(in.ScorerNumber) == "" {
		return nil, model.ErrScorerNumberRequired
	}
	return c.mutate(ctx, id, model.ActionGoal, func(m *model.Match, now int64) error {
		onIce := roster.OnIceIDs(m.Players)
		roster.ApplyGoal(m.Players, onIce, in.Scorer)

		if released := penalty.ReleaseOnGoal(m.Penalties, in.Scorer); released != "" {
			c.logger.Info("penalty released on goal",
				slog.String("match_id", string(m.ID)),
				slog.String("penalty_id", string(released)),
			)
		}

		c.appendEvent(m, now, model.GoalPayload{
			Scorer:        in.Scorer,
			OurOnIceIDs:   onIce,
			ScorerNumber:  strings.TrimSpace(in.ScorerNumber),
			Assist1Number: strings.TrimSpace(in.Assist1Number),
			Assist2Number: strings.TrimSpace(in.Assist2Number),
		})
		return nil
	})
}

// UndoLast reverses the most recent event if it is a goal. Any penalty the
// goal released stays released. Otherwise it does nothing.
func (c *Controller) UndoLast(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return c.mutate(ctx, id, model.ActionUndo, func(m *model.Match, now int64) error {
		rest, goal, ok := eventlog.PopGoal(m.Events)
		if !ok {
			return store.ErrNoChange
		}
		roster.RevertGoal(m.Players, goal.OurOnIceIDs, goal.Scorer)
		m.Events = rest
		return nil
	})
}

// Scheduled

// Tick runs the time-driven transitions: auto-pause at the end of a countdown
// and penalty expiry. Nothing is saved unless something changed.
func (c *Controller) Tick(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return c.mutate(ctx, id, model.ActionTick, func(m *model.Match, now int64) error {
		if !m.Clock.Running {
			return store.ErrNoChange
		}
		changed := false

		if len(penalty.Expire(m.Penalties, gameclock.LiveElapsedMs(m.Clock, now))) > 0 {
			changed = true
		}
		if gameclock.Expired(m.Clock, now) {
			pause(m, now)
			changed = true
		}

		if !changed {
			return store.ErrNoChange
		}
		return nil
	})
}

// RunningMatchIDs returns the matches whose clock is running
func (c *Controller) RunningMatchIDs(ctx context.Context) ([]model.MatchID, error) {
	var out []model.MatchID
	err := c.store.View(ctx, func(state *model.AppState) error {
		for _, m := range state.Matches {
			if m.Clock.Running {
				out = append(out, m.ID)
			}
		}
		return nil
	})
	return out, err
}

// Views

// Snapshot returns the derived scoreboard view at the current time
func (c *Controller) Snapshot(ctx context.Context, id model.MatchID) (*scoreboard.Snapshot, error) {
	m, err := c.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	snap := scoreboard.Build(*m, clock.NowMs(c.clock))
	return &snap, nil
}

// Events returns the match log in order
func (c *Controller) Events(ctx context.Context, id model.MatchID) ([]model.Event, error) {
	m, err := c.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.Events, nil
}

// Timeline replays the log into one player's shifts
func (c *Controller) Timeline(ctx context.Context, id model.MatchID, playerID model.PlayerID) ([]eventlog.Shift, error) {
	m, err := c.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	p := m.GetPlayer(playerID)
	if p == nil {
		return nil, model.ErrPlayerNotFound
	}
	return eventlog.Timeline(m.Events, *p), nil
}

// Leaderboard ranks the match roster by a stat
func (c *Controller) Leaderboard(ctx context.Context, id model.MatchID, stat model.StatKey, limit int) ([]model.Player, error) {
	m, err := c.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = roster.DefaultLeaderboardSize
	}
	return roster.Leaderboard(m.Players, stat, limit), nil
}

// ExportCSV renders the match's player stats and the suggested file name
func (c *Controller) ExportCSV(ctx context.Context, id model.MatchID) (filename string, data []byte, err error) {
	var m model.Match
	teamName := ""
	err = c.store.View(ctx, func(state *model.AppState) error {
		found := state.GetMatch(id)
		if found == nil {
			return model.ErrMatchNotFound
		}
		m = *found
		teamName = m.OurTeamName
		if t := state.GetTeam(m.TeamID); t != nil {
			teamName = t.Name
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	now := c.clock.Now()
	data, err = export.CSV(m, teamName, now.UnixMilli())
	if err != nil {
		return "", nil, err
	}
	return export.Filename(m.Name, now), data, nil
}

func defaultString(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateMatch(ctx context.Context, teamID model.TeamID, name, ourTeamName, opponentTeamName string) (*model.Match, error)
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	ListMatches(ctx context.Context, teamID model.TeamID) ([]model.Match, error)
	CurrentMatch(ctx context.Context) (*model.Match, error)
	SelectMatch(ctx context.Context, id model.MatchID) error
	EndMatch(ctx context.Context) error
	StartClock(ctx context.Context, id model.MatchID) (*model.Match, error)
	PauseClock(ctx context.Context, id model.MatchID) (*model.Match, error)
	ResetClockAndMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	SetCountdown(ctx context.Context, id model.MatchID, durationMs *int64) (*model.Match, error)
	NewPeriod(ctx context.Context, id model.MatchID) (*model.Match, error)
	ToggleOnIce(ctx context.Context, id model.MatchID, playerID model.PlayerID) (*model.Match, error)
	BenchAll(ctx context.Context, id model.MatchID) (*model.Match, error)
	UpdateStat(ctx context.Context, id model.MatchID, playerID model.PlayerID, stat model.StatKey, delta int) (*model.Match, error)
	ToggleMyPlayer(ctx context.Context, id model.MatchID, playerID model.PlayerID) (*model.Match, error)
	AddPenalty(ctx context.Context, id model.MatchID, in PenaltyInput) (*model.Match, error)
	RemovePenalty(ctx context.Context, id model.MatchID, penaltyID model.PenaltyID) (*model.Match, error)
	EarlyRelease(ctx context.Context, id model.MatchID, penaltyID model.PenaltyID) (*model.Match, error)
	RecordGoal(ctx context.Context, id model.MatchID, in GoalInput) (*model.Match, error)
	UndoLast(ctx context.Context, id model.MatchID) (*model.Match, error)
	Tick(ctx context.Context, id model.MatchID) (*model.Match, error)
	Snapshot(ctx context.Context, id model.MatchID) (*scoreboard.Snapshot, error)
	Events(ctx context.Context, id model.MatchID) ([]model.Event, error)
	Timeline(ctx context.Context, id model.MatchID, playerID model.PlayerID) ([]eventlog.Shift, error)
	Leaderboard(ctx context.Context, id model.MatchID, stat model.StatKey, limit int) ([]model.Player, error)
	ExportCSV(ctx context.Context, id model.MatchID) (string, []byte, error)
}

var _ ControllerInterface = (*Controller)(nil)
