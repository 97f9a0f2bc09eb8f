package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventID uniquely identifies an event within a match log
type EventID string

// EventType identifies the type of event
type EventType string

const (
	EventGoal        EventType = "GOAL"
	EventStatChange  EventType = "STAT_CHANGE"
	EventOnIceChange EventType = "ON_ICE_CHANGE"
)

// Event is an immutable entry in a match's event log.
// Payload is one of GoalPayload, StatChangePayload or OnIceChangePayload.
type Event struct {
	ID            EventID
	Time          time.Time // wall clock
	ElapsedTime   string    // mm:ss of clock elapsed
	RemainingTime string    // mm:ss of countdown remaining, empty without a countdown
	Payload       EventPayload
}

// Type returns the discriminator of the event's payload
func (e *Event) Type() EventType {
	if e.Payload == nil {
		return ""
	}
	return e.Payload.EventType()
}

// Clone returns a copy of the event that shares no slices with e
func (e Event) Clone() Event {
	if g, ok := e.Payload.(GoalPayload); ok {
		ids := make([]PlayerID, len(g.OurOnIceIDs))
		copy(ids, g.OurOnIceIDs)
		g.OurOnIceIDs = ids
		e.Payload = g
	}
	return e
}

// EventPayload is implemented only by the payload types in this package
type EventPayload interface {
	EventType() EventType
	isEventPayload()
}

// GoalPayload records a goal and which of our players were on the ice for it
type GoalPayload struct {
	Scorer        Side
	OurOnIceIDs   []PlayerID
	ScorerNumber  string // optional, empty if not recorded
	Assist1Number string
	Assist2Number string
}

func (GoalPayload) EventType() EventType { return EventGoal }
func (GoalPayload) isEventPayload()      {}

// StatChangePayload records a counting stat update
type StatChangePayload struct {
	PlayerID PlayerID
	Stat     StatKey
	Value    int // resulting absolute value
	Delta    int
}

func (StatChangePayload) EventType() EventType { return EventStatChange }
func (StatChangePayload) isEventPayload()      {}

// OnIceChangePayload records a player going on or off the ice
type OnIceChangePayload struct {
	PlayerID PlayerID
	OnIce    bool
}

func (OnIceChangePayload) EventType() EventType { return EventOnIceChange }
func (OnIceChangePayload) isEventPayload()      {}

// eventWire is the flat persisted form shared by all event types
type eventWire struct {
	ID            EventID   `json:"id"`
	Time          string    `json:"time"`
	ElapsedTime   string    `json:"elapsedTime"`
	RemainingTime *string   `json:"remainingTime"`
	Type          EventType `json:"type"`

	Scorer        Side       `json:"scorer,omitempty"`
	OurOnIceIDs   []PlayerID `json:"ourOnIceIds,omitempty"`
	ScorerNumber  *string    `json:"scorerNumber,omitempty"`
	Assist1Number *string    `json:"assist1Number,omitempty"`
	Assist2Number *string    `json:"assist2Number,omitempty"`

	PlayerID PlayerID `json:"playerId,omitempty"`
	Stat     StatKey  `json:"stat,omitempty"`
	Value    *int     `json:"value,omitempty"`
	Delta    *int     `json:"delta,omitempty"`
	OnIce    *bool    `json:"onIce,omitempty"`
}

// Layouts accepted for the wall-clock time, newest first
var eventTimeLayouts = []string{
	time.RFC3339Nano,
	"15:04:05",
	"03:04:05 PM",
	"3:04:05 PM",
}

// MarshalJSON writes the flat wire form
func (e Event) MarshalJSON() ([]byte, error) {
	w := eventWire{
		ID:          e.ID,
		Time:        e.Time.Format(time.RFC3339Nano),
		ElapsedTime: e.ElapsedTime,
		Type:        e.Type(),
	}
	if e.RemainingTime != "" {
		w.RemainingTime = &e.RemainingTime
	}

	switch p := e.Payload.(type) {
	case GoalPayload:
		w.Scorer = p.Scorer
		w.OurOnIceIDs = p.OurOnIceIDs
		if w.OurOnIceIDs == nil {
			w.OurOnIceIDs = []PlayerID{}
		}
		w.ScorerNumber = optionalString(p.ScorerNumber)
		w.Assist1Number = optionalString(p.Assist1Number)
		w.Assist2Number = optionalString(p.Assist2Number)
	case StatChangePayload:
		w.PlayerID = p.PlayerID
		w.Stat = p.Stat
		w.Value = &p.Value
		w.Delta = &p.Delta
	case OnIceChangePayload:
		w.PlayerID = p.PlayerID
		w.OnIce = &p.OnIce
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownEventType, e.Payload)
	}

	return json.Marshal(w)
}

// UnmarshalJSON reads the flat wire form
func (e *Event) UnmarshalJSON(data []byte) error {
	var w eventWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	e.ID = w.ID
	e.Time = parseEventTime(w.Time)
	e.ElapsedTime = w.ElapsedTime
	e.RemainingTime = ""
	if w.RemainingTime != nil {
		e.RemainingTime = *w.RemainingTime
	}

	switch w.Type {
	case EventGoal:
		ids := w.OurOnIceIDs
		if ids == nil {
			ids = []PlayerID{}
		}
		e.Payload = GoalPayload{
			Scorer:        w.Scorer,
			OurOnIceIDs:   ids,
			ScorerNumber:  derefString(w.ScorerNumber),
			Assist1Number: derefString(w.Assist1Number),
			Assist2Number: derefString(w.Assist2Number),
		}
	case EventStatChange:
		p := StatChangePayload{PlayerID: w.PlayerID, Stat: w.Stat}
		if w.Value != nil {
			p.Value = *w.Value
		}
		if w.Delta != nil {
			p.Delta = *w.Delta
		}
		e.Payload = p
	case EventOnIceChange:
		p := OnIceChangePayload{PlayerID: w.PlayerID}
		if w.OnIce != nil {
			p.OnIce = *w.OnIce
		}
		e.Payload = p
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventType, w.Type)
	}

	return nil
}

func parseEventTime(s string) time.Time {
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
