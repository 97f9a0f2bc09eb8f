// Package components holds the bench board fragments that htmx swaps in place.
package components

import (
	"fmt"
	"strings"

	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/scoreboard"
)

// EventRow is one described log entry
type EventRow struct {
	Elapsed string
	Label   string
	Detail  string
}

// MatchURL is the bench board page of a match
func MatchURL(id model.MatchID) string {
	return "/matches/" + string(id)
}

// ActionURL is a path below the match page, e.g. "clock/start"
func ActionURL(id model.MatchID, action string) string {
	return MatchURL(id) + "/" + action
}

// StreamURL is the API event stream the board listens on
func StreamURL(id model.MatchID) string {
	return "/api/v1/matches/" + string(id) + "/stream"
}

func toggleLabel(p scoreboard.PlayerLine) string {
	if p.OnIce {
		return "Off"
	}
	return "On"
}

func penaltyLabel(p scoreboard.PenaltyLine) string {
	parts := []string{string(p.Team), "#" + p.PlayerNumber, string(p.Type)}
	if p.Infraction != "" && p.Infraction != string(p.Type) {
		parts = append(parts, p.Infraction)
	}
	return strings.Join(parts, " ") + " " + p.Remaining
}

func overCapWarning(s scoreboard.Snapshot) string {
	return fmt.Sprintf("%d on ice, limit is %d", s.OnIceCount, s.EffectiveCap)
}
