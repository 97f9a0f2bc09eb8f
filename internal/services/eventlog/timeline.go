package eventlog

import (
	"time"

	"github.com/mcoot/hockeytracker/internal/model"
)

// Shift is one reconstructed span of a player's match, on ice or on the bench
type Shift struct {
	Start          time.Time     `json:"start"`
	End            time.Time     `json:"end"`
	StartElapsed   string        `json:"startElapsed"`
	EndElapsed     string        `json:"endElapsed"`
	FromMatchStart bool          `json:"fromMatchStart"` // began before the first logged event
	Open           bool          `json:"open"`           // still in progress
	Bench          bool          `json:"bench"`
	Events         []model.Event `json:"events"`
}

// Duration returns the wall-clock length of a closed shift with a known start
func (s Shift) Duration() (time.Duration, bool) {
	if s.Open || s.FromMatchStart {
		return 0, false
	}
	return s.End.Sub(s.Start), true
}

// Timeline replays the log into the player's shifts. Goals and stat changes
// are attached to the shift they fell in; a goal always implies being on ice.
func Timeline(events []model.Event, player model.Player) []Shift {
	var own []model.Event
	for _, ev := range events {
		if Involves(ev, player.ID) {
			own = append(own, ev)
		}
	}
	if len(own) == 0 {
		return []Shift{}
	}

	shifts := []Shift{}
	var current *Shift
	open := func(ev model.Event) {
		current = &Shift{Start: ev.Time, StartElapsed: ev.ElapsedTime, Events: []model.Event{}}
	}
	closeAt := func(ev model.Event) {
		current.End = ev.Time
		current.EndElapsed = ev.ElapsedTime
		shifts = append(shifts, *current)
		current = nil
	}

	startedOnIce := false
	switch p := own[0].Payload.(type) {
	case model.GoalPayload:
		startedOnIce = true
	case model.StatChangePayload:
		startedOnIce = player.OnIce || hasOnIceEntry(own)
	case model.OnIceChangePayload:
		if !p.OnIce {
			startedOnIce = true
			current = &Shift{FromMatchStart: true, Events: []model.Event{}}
		}
	}

	for _, ev := range own {
		switch p := ev.Payload.(type) {
		case model.OnIceChangePayload:
			if p.OnIce {
				if current != nil {
					closeAt(ev)
				}
				open(ev)
			} else if current != nil {
				closeAt(ev)
			}
		case model.GoalPayload, model.StatChangePayload:
			if current != nil {
				current.Events = append(current.Events, ev)
				continue
			}
			_, isGoal := p.(model.GoalPayload)
			if isGoal || startedOnIce || player.OnIce {
				open(ev)
				current.Events = append(current.Events, ev)
				continue
			}
			shifts = append(shifts, Shift{
				Start:        ev.Time,
				End:          ev.Time,
				StartElapsed: ev.ElapsedTime,
				EndElapsed:   ev.ElapsedTime,
				Bench:        true,
				Events:       []model.Event{ev},
			})
		}
	}

	if current != nil {
		current.Open = true
		shifts = append(shifts, *current)
	}
	return shifts
}

func hasOnIceEntry(events []model.Event) bool {
	for _, ev := range events {
		if p, ok := ev.Payload.(model.OnIceChangePayload); ok && p.OnIce {
			return true
		}
	}
	return false
}
