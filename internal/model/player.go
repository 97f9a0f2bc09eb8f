package model

import "strings"

// PlayerID uniquely identifies a player within a team or match roster
type PlayerID string

// StatKey names a counting stat on a player
type StatKey string

const (
	// Skater stats
	StatShots        StatKey = "shots"
	StatZoneEntries  StatKey = "breakaways" // persisted under the legacy name
	StatBlockedShots StatKey = "blockedShots"
	StatHits         StatKey = "hits"
	StatTakeaways    StatKey = "takeaways"
	StatGiveaways    StatKey = "giveaways"

	// Goalie stats
	StatSaves        StatKey = "saves"
	StatGoalsAgainst StatKey = "goalsAgainst"
	StatShutouts     StatKey = "shutouts"

	// StatPlusMinus is sortable on the leaderboard but never updated directly
	StatPlusMinus StatKey = "plusMinus"
)

// SkaterStats returns the stat keys a skater may record, in display order
func SkaterStats() []StatKey {
	return []StatKey{StatShots, StatZoneEntries, StatBlockedShots, StatHits, StatTakeaways, StatGiveaways}
}

// GoalieStats returns the stat keys a goalie may record, in display order
func GoalieStats() []StatKey {
	return []StatKey{StatSaves, StatGoalsAgainst, StatShutouts}
}

// Player is one roster entry. Inside a match it also carries live state.
type Player struct {
	ID       PlayerID `json:"id"`
	Number   string   `json:"number"`
	Name     string   `json:"name"`
	Initials string   `json:"initials"`
	IsGoalie bool     `json:"isGoalie"`

	// Live status. EnteredAt (epoch ms) is set only while on ice with the clock running.
	OnIce      bool   `json:"onIce"`
	EnteredAt  *int64 `json:"enteredAt"`
	TOISeconds int    `json:"toiSeconds"`
	PlusMinus  int    `json:"plusMinus"`

	Shots        int `json:"shots"`
	ZoneEntries  int `json:"breakaways"`
	BlockedShots int `json:"blockedShots"`
	Hits         int `json:"hits"`
	Takeaways    int `json:"takeaways"`
	Giveaways    int `json:"giveaways"`

	Saves        int `json:"saves"`
	GoalsAgainst int `json:"goalsAgainst"`
	Shutouts     int `json:"shutouts"`
}

// AllowsStat reports whether the stat can be recorded for this player's role
func (p *Player) AllowsStat(key StatKey) bool {
	keys := SkaterStats()
	if p.IsGoalie {
		keys = GoalieStats()
	}
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// Stat returns the current value of a counting stat (0 for unknown keys)
func (p *Player) Stat(key StatKey) int {
	if ptr := p.statField(key); ptr != nil {
		return *ptr
	}
	if key == StatPlusMinus {
		return p.PlusMinus
	}
	return 0
}

// SetStat overwrites a counting stat. Unknown keys are ignored.
func (p *Player) SetStat(key StatKey, value int) {
	if ptr := p.statField(key); ptr != nil {
		*ptr = value
	}
}

func (p *Player) statField(key StatKey) *int {
	switch key {
	case StatShots:
		return &p.Shots
	case StatZoneEntries:
		return &p.ZoneEntries
	case StatBlockedShots:
		return &p.BlockedShots
	case StatHits:
		return &p.Hits
	case StatTakeaways:
		return &p.Takeaways
	case StatGiveaways:
		return &p.Giveaways
	case StatSaves:
		return &p.Saves
	case StatGoalsAgainst:
		return &p.GoalsAgainst
	case StatShutouts:
		return &p.Shutouts
	default:
		return nil
	}
}

// ClearLive resets on-ice state, TOI, plus/minus and every counting stat
func (p *Player) ClearLive() {
	identity := Player{
		ID:       p.ID,
		Number:   p.Number,
		Name:     p.Name,
		Initials: p.Initials,
		IsGoalie: p.IsGoalie,
	}
	*p = identity
}

// Clone returns a copy that shares no pointers with p
func (p Player) Clone() Player {
	if p.EnteredAt != nil {
		v := *p.EnteredAt
		p.EnteredAt = &v
	}
	return p
}

// Initials derives up to two upper-case initials from a display name
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) > 2 {
		words = words[:2]
	}
	var b strings.Builder
	for _, w := range words {
		for _, r := range w {
			b.WriteRune(r)
			break
		}
	}
	return strings.ToUpper(b.String())
}
