package model

import "time"

// PenaltyID uniquely identifies a penalty within a match
type PenaltyID string

// Side distinguishes our team from the opponent
type Side string

const (
	SideUs   Side = "US"
	SideThem Side = "THEM"
)

// Valid returns true for the two known sides
func (s Side) Valid() bool {
	return s == SideUs || s == SideThem
}

// Opponent returns the other side
func (s Side) Opponent() Side {
	if s == SideUs {
		return SideThem
	}
	return SideUs
}

// PenaltyType is the penalty category as recorded by the official
type PenaltyType string

const (
	PenaltyMinor       PenaltyType = "Minor"
	PenaltyDoubleMinor PenaltyType = "Double Minor"
	PenaltyMajor       PenaltyType = "Major"
	PenaltyMisconduct  PenaltyType = "Misconduct"
	PenaltyMatch       PenaltyType = "Match Penalty"
)

// PenaltyTypes returns every penalty type in display order
func PenaltyTypes() []PenaltyType {
	return []PenaltyType{PenaltyMinor, PenaltyDoubleMinor, PenaltyMajor, PenaltyMisconduct, PenaltyMatch}
}

// Duration returns the time to serve. Match penalties are administrative (0).
func (t PenaltyType) Duration() time.Duration {
	switch t {
	case PenaltyMinor:
		return 2 * time.Minute
	case PenaltyDoubleMinor:
		return 4 * time.Minute
	case PenaltyMajor:
		return 5 * time.Minute
	case PenaltyMisconduct:
		return 10 * time.Minute
	default:
		return 0
	}
}

// Valid returns true for known penalty types
func (t PenaltyType) Valid() bool {
	for _, pt := range PenaltyTypes() {
		if pt == t {
			return true
		}
	}
	return false
}

// AffectsStrength returns false for misconducts and match penalties
func (t PenaltyType) AffectsStrength() bool {
	return t != PenaltyMisconduct && t != PenaltyMatch
}

// Penalty is one penalty assessed during a match
type Penalty struct {
	ID              PenaltyID   `json:"id"`
	PlayerNumber    string      `json:"playerNumber"`
	Team            Side        `json:"team"`
	Type            PenaltyType `json:"type"`
	Infraction      string      `json:"infraction"`
	DurationMs      int64       `json:"durationMs"`
	StartTimeMs     int64       `json:"startTimeMs"` // clock elapsed when assessed, negative once carried into a later period
	Served          bool        `json:"served"`
	AffectsStrength bool        `json:"affectsStrength"`
	Coincident      bool        `json:"coincident"`
}

// ReducesStrength returns true while the penalty takes a skater off the ice
func (p *Penalty) ReducesStrength() bool {
	return p.AffectsStrength && !p.Served
}

// RemainingMs returns the time left to serve at the given clock elapsed, floored at 0
func (p *Penalty) RemainingMs(elapsedMs int64) int64 {
	remaining := p.DurationMs - (elapsedMs - p.StartTimeMs)
	return max(0, min(remaining, p.DurationMs))
}
