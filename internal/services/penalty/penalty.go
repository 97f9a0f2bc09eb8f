// Package penalty tracks penalties for both sides: strength reduction,
// coincident detection, early release and expiry against the match clock.
package penalty

import (
	"fmt"
	"strings"

	"github.com/mcoot/hockeytracker/internal/model"
)

const (
	// CoincidentWindowMs is how close two penalties must start to cancel out
	CoincidentWindowMs = 10000

	// MinOnIceCap is the floor for a shorthanded team's on-ice cap
	MinOnIceCap = 3

	// FullStrengthSkaters is the skater count per side with no penalties
	FullStrengthSkaters = 5
)

// New builds an unserved penalty assessed at the given clock elapsed
func New(id model.PenaltyID, side model.Side, playerNumber string, typ model.PenaltyType, infraction string, elapsedMs int64) (model.Penalty, error) {
	if !side.Valid() {
		return model.Penalty{}, model.ErrInvalidSide
	}
	playerNumber = strings.TrimSpace(playerNumber)
	if playerNumber == "" {
		return model.Penalty{}, model.ErrPlayerNumberRequired
	}
	if !typ.Valid() {
		return model.Penalty{}, fmt.Errorf("%w: %q", model.ErrInvalidPenaltyType, typ)
	}
	infraction = strings.TrimSpace(infraction)
	if infraction == "" {
		infraction = string(typ)
	}
	return model.Penalty{
		ID:              id,
		PlayerNumber:    playerNumber,
		Team:            side,
		Type:            typ,
		Infraction:      infraction,
		DurationMs:      typ.Duration().Milliseconds(),
		StartTimeMs:     elapsedMs,
		AffectsStrength: typ.AffectsStrength(),
	}, nil
}

// Add appends p. If an unserved penalty of the opposite side with the same
// duration started within the coincident window, both are marked coincident
// and stop affecting strength. The stored form of p is returned.
func Add(penalties []model.Penalty, p model.Penalty) ([]model.Penalty, model.Penalty) {
	match := -1
	for i := range penalties {
		other := &penalties[i]
		if other.Served || other.Team == p.Team || other.DurationMs != p.DurationMs {
			continue
		}
		if abs(other.StartTimeMs-p.StartTimeMs) < CoincidentWindowMs {
			match = i
			break
		}
	}
	if match >= 0 {
		penalties[match].Coincident = true
		penalties[match].AffectsStrength = false
		p.Coincident = true
		p.AffectsStrength = false
	}
	return append(penalties, p), p
}

// Remove marks a penalty served. A penalty already served is left alone and
// reported with ErrPenaltyServed.
func Remove(penalties []model.Penalty, id model.PenaltyID) error {
	p := find(penalties, id)
	if p == nil {
		return model.ErrPenaltyNotFound
	}
	if p.Served {
		return model.ErrPenaltyServed
	}
	p.Served = true
	return nil
}

// EarlyRelease marks an unserved Minor served before its natural expiry
func EarlyRelease(penalties []model.Penalty, id model.PenaltyID) error {
	p := find(penalties, id)
	if p == nil {
		return model.ErrPenaltyNotFound
	}
	if p.Type != model.PenaltyMinor {
		return model.ErrNotMinorPenalty
	}
	if p.Served {
		return model.ErrPenaltyServed
	}
	p.Served = true
	return nil
}

// ReleaseOnGoal marks the first unserved Minor of the scoring side served.
// Returns the released penalty's id, or "" if none matched.
func ReleaseOnGoal(penalties []model.Penalty, scorer model.Side) model.PenaltyID {
	for i := range penalties {
		p := &penalties[i]
		if p.Team == scorer && p.Type == model.PenaltyMinor && !p.Served {
			p.Served = true
			return p.ID
		}
	}
	return ""
}

// Expire marks every penalty whose time has run out at elapsedMs served and
// returns their ids. Expiry never changes on-ice state.
func Expire(penalties []model.Penalty, elapsedMs int64) []model.PenaltyID {
	var expired []model.PenaltyID
	for i := range penalties {
		p := &penalties[i]
		if !p.Served && elapsedMs-p.StartTimeMs >= p.DurationMs {
			p.Served = true
			expired = append(expired, p.ID)
		}
	}
	return expired
}

// CarryOver moves unserved penalties into a new period whose clock starts at
// zero. periodElapsedMs is the elapsed time the previous period ended on, so
// each penalty keeps exactly the time it had left.
func CarryOver(penalties []model.Penalty, periodElapsedMs int64) {
	for i := range penalties {
		if !penalties[i].Served {
			penalties[i].StartTimeMs -= periodElapsedMs
		}
	}
}

// StrengthCount returns the number of unserved strength penalties for a side
func StrengthCount(penalties []model.Penalty, side model.Side) int {
	n := 0
	for i := range penalties {
		if penalties[i].Team == side && penalties[i].ReducesStrength() {
			n++
		}
	}
	return n
}

// EffectiveCap returns the side's on-ice cap after penalties, never below MinOnIceCap
func EffectiveCap(penalties []model.Penalty, side model.Side, nominalCap int) int {
	return max(MinOnIceCap, nominalCap-StrengthCount(penalties, side))
}

// Skaters returns the skater count for a side after penalties
func Skaters(penalties []model.Penalty, side model.Side) int {
	return max(MinOnIceCap, FullStrengthSkaters-StrengthCount(penalties, side))
}

// Situation renders the strength situation from our perspective, e.g. "5vs4"
func Situation(penalties []model.Penalty) string {
	return fmt.Sprintf("%dvs%d", Skaters(penalties, model.SideUs), Skaters(penalties, model.SideThem))
}

// RemainingSeconds returns the display countdown for a penalty, rounded up
func RemainingSeconds(p model.Penalty, elapsedMs int64) int {
	return int((p.RemainingMs(elapsedMs) + 999) / 1000)
}

// Active returns the unserved penalties in assessment order
func Active(penalties []model.Penalty) []model.Penalty {
	out := []model.Penalty{}
	for _, p := range penalties {
		if !p.Served {
			out = append(out, p)
		}
	}
	return out
}

// InBox returns the jersey numbers of a side's players serving strength penalties
func InBox(penalties []model.Penalty, side model.Side) []string {
	numbers := []string{}
	for i := range penalties {
		if penalties[i].Team == side && penalties[i].ReducesStrength() {
			numbers = append(numbers, penalties[i].PlayerNumber)
		}
	}
	return numbers
}

func find(penalties []model.Penalty, id model.PenaltyID) *model.Penalty {
	for i := range penalties {
		if penalties[i].ID == id {
			return &penalties[i]
		}
	}
	return nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
