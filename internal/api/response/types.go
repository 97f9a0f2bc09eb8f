package response

import (
	"time"

	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/eventlog"
)

// MatchSummary is a match as listed in the match picker
type MatchSummary struct {
	ID               model.MatchID `json:"id"`
	Name             string        `json:"name"`
	TeamID           model.TeamID  `json:"teamId"`
	OurTeamName      string        `json:"ourTeamName"`
	OpponentTeamName string        `json:"opponentTeamName"`
	StartedAt        time.Time     `json:"startedAt"`
	Running          bool          `json:"running"`
	ScoreUs          int           `json:"scoreUs"`
	ScoreThem        int           `json:"scoreThem"`
	EventCount       int           `json:"eventCount"`
}

// MatchSummaryFromModel converts model.Match
func MatchSummaryFromModel(m *model.Match) MatchSummary {
	us, them := m.Score()
	return MatchSummary{
		ID:               m.ID,
		Name:             m.Name,
		TeamID:           m.TeamID,
		OurTeamName:      m.OurTeamName,
		OpponentTeamName: m.OpponentTeamName,
		StartedAt:        time.UnixMilli(m.StartedAt).UTC(),
		Running:          m.Clock.Running,
		ScoreUs:          us,
		ScoreThem:        them,
		EventCount:       len(m.Events),
	}
}

// MatchSummariesFromModel converts a slice of matches
func MatchSummariesFromModel(matches []model.Match) []MatchSummary {
	out := make([]MatchSummary, len(matches))
	for i := range matches {
		out[i] = MatchSummaryFromModel(&matches[i])
	}
	return out
}

// EventLine is a log entry with its rendered description
type EventLine struct {
	model.Event
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

// MarshalJSON merges the flat event form with the description fields
func (e EventLine) MarshalJSON() ([]byte, error) {
	return mergeJSON(e.Event, struct {
		Label  string `json:"label"`
		Detail string `json:"detail"`
	}{e.Label, e.Detail})
}

// EventLinesFromModel describes each event using the match's names
func EventLinesFromModel(m *model.Match) []EventLine {
	names := eventlog.NamesFor(m)
	out := make([]EventLine, len(m.Events))
	for i, ev := range m.Events {
		label, detail := eventlog.Describe(ev, names)
		out[i] = EventLine{Event: ev, Label: label, Detail: detail}
	}
	return out
}

// Timeline is one player's replayed shifts
type Timeline struct {
	PlayerID model.PlayerID   `json:"playerId"`
	Shifts   []eventlog.Shift `json:"shifts"`
}

// Leaderboard ranks players by one stat
type Leaderboard struct {
	Stat    model.StatKey    `json:"stat"`
	Players []LeaderboardRow `json:"players"`
}

// LeaderboardRow is one ranked player
type LeaderboardRow struct {
	Rank     int            `json:"rank"`
	PlayerID model.PlayerID `json:"playerId"`
	Number   string         `json:"number"`
	Name     string         `json:"name"`
	Value    int            `json:"value"`
}

// LeaderboardFromModel builds rows in ranked order
func LeaderboardFromModel(stat model.StatKey, players []model.Player) Leaderboard {
	rows := make([]LeaderboardRow, len(players))
	for i := range players {
		rows[i] = LeaderboardRow{
			Rank:     i + 1,
			PlayerID: players[i].ID,
			Number:   players[i].Number,
			Name:     players[i].Name,
			Value:    players[i].Stat(stat),
		}
	}
	return Leaderboard{Stat: stat, Players: rows}
}

// Health is the health check body
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}
