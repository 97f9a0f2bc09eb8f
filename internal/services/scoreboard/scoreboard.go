// Package scoreboard derives the read-only view of a match from one clock sample.
package scoreboard

import (
	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/eventlog"
	"github.com/mcoot/hockeytracker/internal/services/gameclock"
	"github.com/mcoot/hockeytracker/internal/services/penalty"
	"github.com/mcoot/hockeytracker/internal/services/roster"
)

// PlayerLine is a player with live derived values
type PlayerLine struct {
	model.Player
	LiveTOISeconds int    `json:"liveToiSeconds"`
	TOI            string `json:"toi"`
	InBox          bool   `json:"inBox"`
	Focused        bool   `json:"focused"`
}

// PenaltyLine is an active penalty with its display countdown
type PenaltyLine struct {
	model.Penalty
	RemainingSeconds int    `json:"remainingSeconds"`
	Remaining        string `json:"remaining"`
}

// Snapshot is everything a view needs to render the current match
type Snapshot struct {
	MatchID          model.MatchID `json:"matchId"`
	Name             string        `json:"name"`
	OurTeamName      string        `json:"ourTeamName"`
	OpponentTeamName string        `json:"opponentTeamName"`

	Running     bool   `json:"running"`
	ElapsedMs   int64  `json:"elapsedMs"`
	Elapsed     string `json:"elapsed"`
	RemainingMs *int64 `json:"remainingMs"`
	Remaining   string `json:"remaining,omitempty"`

	ScoreUs   int    `json:"scoreUs"`
	ScoreThem int    `json:"scoreThem"`
	Situation string `json:"situation"`

	OnIceCount   int  `json:"onIceCount"`
	OnIceCap     int  `json:"onIceCap"`
	EffectiveCap int  `json:"effectiveCap"`
	OverCap      bool `json:"overCap"` // advisory only

	Players         []PlayerLine     `json:"players"`
	FocusPlayers    []PlayerLine     `json:"focusPlayers"`
	ActivePenalties []PenaltyLine    `json:"activePenalties"`
	InBox           []string         `json:"inBox"`
	CanUndo         bool             `json:"canUndo"`
	EventCount      int              `json:"eventCount"`
	LastEvent       *model.Event     `json:"lastEvent,omitempty"`
	FocusPlayerIDs  []model.PlayerID `json:"focusPlayerIds"`
}

// Build computes the snapshot of m at now
func Build(m model.Match, now int64) Snapshot {
	elapsed := gameclock.LiveElapsedMs(m.Clock, now)
	us, them := m.Score()

	s := Snapshot{
		MatchID:          m.ID,
		Name:             m.Name,
		OurTeamName:      m.OurTeamName,
		OpponentTeamName: m.OpponentTeamName,
		Running:          m.Clock.Running,
		ElapsedMs:        elapsed,
		Elapsed:          gameclock.FormatElapsed(elapsed),
		ScoreUs:          us,
		ScoreThem:        them,
		Situation:        penalty.Situation(m.Penalties),
		OnIceCount:       roster.OnIceCount(m.Players),
		OnIceCap:         m.OnIceCap,
		EffectiveCap:     penalty.EffectiveCap(m.Penalties, model.SideUs, m.OnIceCap),
		InBox:            penalty.InBox(m.Penalties, model.SideUs),
		EventCount:       len(m.Events),
		Players:          []PlayerLine{},
		FocusPlayers:     []PlayerLine{},
		ActivePenalties:  []PenaltyLine{},
		FocusPlayerIDs:   append([]model.PlayerID{}, m.MyPlayerIDs...),
	}
	s.OverCap = s.OnIceCount > s.EffectiveCap

	if remaining, ok := gameclock.RemainingMs(m.Clock, now); ok {
		s.RemainingMs = &remaining
		s.Remaining = gameclock.FormatRemaining(remaining)
	}

	boxed := make(map[string]bool, len(s.InBox))
	for _, n := range s.InBox {
		boxed[n] = true
	}

	for _, p := range m.Players {
		toi := roster.LiveTOI(p, m.Clock.Running, now)
		line := PlayerLine{
			Player:         p.Clone(),
			LiveTOISeconds: toi,
			TOI:            gameclock.FormatSeconds(toi),
			InBox:          boxed[p.Number],
			Focused:        m.IsFocused(p.ID),
		}
		s.Players = append(s.Players, line)
		if line.Focused {
			s.FocusPlayers = append(s.FocusPlayers, line)
		}
	}

	for _, p := range penalty.Active(m.Penalties) {
		secs := penalty.RemainingSeconds(p, elapsed)
		s.ActivePenalties = append(s.ActivePenalties, PenaltyLine{
			Penalty:          p,
			RemainingSeconds: secs,
			Remaining:        gameclock.FormatSeconds(secs),
		})
	}

	if len(m.Events) > 0 {
		last := m.Events[len(m.Events)-1].Clone()
		s.LastEvent = &last
		_, _, s.CanUndo = eventlog.PopGoal(m.Events)
	}

	return s
}
