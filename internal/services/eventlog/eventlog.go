// Package eventlog builds, describes and replays match events.
package eventlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/gameclock"
)

// NewEvent stamps a payload with wall time and the clock's elapsed/remaining at now
func NewEvent(id model.EventID, c model.GameClock, now int64, payload model.EventPayload) model.Event {
	elapsed, remaining := gameclock.Stamps(c, now)
	return model.Event{
		ID:            id,
		Time:          time.UnixMilli(now).UTC(),
		ElapsedTime:   elapsed,
		RemainingTime: remaining,
		Payload:       payload,
	}
}

// PopGoal removes the last event if it is a goal.
// ok is false, and events is returned unchanged, otherwise.
func PopGoal(events []model.Event) (rest []model.Event, goal model.GoalPayload, ok bool) {
	if len(events) == 0 {
		return events, model.GoalPayload{}, false
	}
	goal, ok = events[len(events)-1].Payload.(model.GoalPayload)
	if !ok {
		return events, model.GoalPayload{}, false
	}
	return events[:len(events)-1], goal, true
}

// Names resolves display names when describing events
type Names struct {
	Our      string
	Opponent string
	Players  []model.Player
}

// NamesFor takes the names from a match
func NamesFor(m *model.Match) Names {
	return Names{Our: m.OurTeamName, Opponent: m.OpponentTeamName, Players: m.Players}
}

func (n Names) player(id model.PlayerID) string {
	for _, p := range n.Players {
		if p.ID == id {
			number := p.Number
			if number == "" {
				number = "?"
			}
			return number + " - " + p.Name
		}
	}
	return string(id)
}

func (n Names) side(s model.Side) string {
	if s == model.SideUs {
		return n.Our
	}
	return n.Opponent
}

var statLabels = map[model.StatKey]string{
	model.StatShots:        "Shot",
	model.StatZoneEntries:  "Zone Entry",
	model.StatBlockedShots: "Block",
	model.StatHits:         "Hit",
	model.StatTakeaways:    "Takeaway",
	model.StatGiveaways:    "Giveaway",
	model.StatSaves:        "Save",
	model.StatGoalsAgainst: "Goal Against",
	model.StatShutouts:     "Shutout",
}

// StatLabel returns the display label for a stat key
func StatLabel(key model.StatKey) string {
	if label, ok := statLabels[key]; ok {
		return label
	}
	return string(key)
}

// Describe renders a one-line label and detail for an event
func Describe(ev model.Event, names Names) (label, detail string) {
	switch p := ev.Payload.(type) {
	case model.GoalPayload:
		label = "Goal: " + names.side(p.Scorer)
		detail = fmt.Sprintf("On ice: %d", len(p.OurOnIceIDs))
		if p.Scorer == model.SideUs && p.ScorerNumber != "" {
			detail = "Goal: #" + p.ScorerNumber
			var assists []string
			for _, a := range []string{p.Assist1Number, p.Assist2Number} {
				if a != "" {
					assists = append(assists, "A: "+a)
				}
			}
			if len(assists) > 0 {
				detail += " (" + strings.Join(assists, ", ") + ")"
			}
		}
	case model.StatChangePayload:
		label = fmt.Sprintf("%s: %d", StatLabel(p.Stat), p.Value)
		detail = names.player(p.PlayerID)
	case model.OnIceChangePayload:
		label = "Benched"
		if p.OnIce {
			label = "Put on ice"
		}
		detail = names.player(p.PlayerID)
	default:
		label = "Event"
	}
	return label, detail
}

// Involves reports whether an event concerns the given player
func Involves(ev model.Event, id model.PlayerID) bool {
	switch p := ev.Payload.(type) {
	case model.GoalPayload:
		for _, pid := range p.OurOnIceIDs {
			if pid == id {
				return true
			}
		}
		return false
	case model.StatChangePayload:
		return p.PlayerID == id
	case model.OnIceChangePayload:
		return p.PlayerID == id
	default:
		return false
	}
}
