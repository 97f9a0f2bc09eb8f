// Package roster implements on-ice occupancy, time-on-ice accounting and
// counting stats over a match's player list.
package roster

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mcoot/hockeytracker/internal/model"
)

// DefaultLeaderboardSize is the number of players shown on the leaderboard
const DefaultLeaderboardSize = 10

// Transition is one player's on-ice state change
type Transition struct {
	PlayerID model.PlayerID
	OnIce    bool
}

// StartShifts stamps every on-ice player as entering now
func StartShifts(players []model.Player, now int64) {
	for i := range players {
		if players[i].OnIce {
			entered := now
			players[i].EnteredAt = &entered
		}
	}
}

// EndShifts accrues the open shift of every on-ice player
func EndShifts(players []model.Player, now int64) {
	for i := range players {
		accrue(&players[i], now)
	}
}

// accrue folds an open shift into TOISeconds, flooring per interval
func accrue(p *model.Player, now int64) {
	if p.EnteredAt == nil {
		return
	}
	if delta := (now - *p.EnteredAt) / 1000; delta > 0 {
		p.TOISeconds += int(delta)
	}
	p.EnteredAt = nil
}

// Bench takes one player off the ice, accruing TOI. Returns false if already benched.
func Bench(p *model.Player, now int64) bool {
	accrue(p, now)
	if !p.OnIce {
		return false
	}
	p.OnIce = false
	return true
}

// BenchAll takes everyone off the ice and returns the players that changed
func BenchAll(players []model.Player, now int64) []Transition {
	var out []Transition
	for i := range players {
		if Bench(&players[i], now) {
			out = append(out, Transition{PlayerID: players[i].ID})
		}
	}
	return out
}

// Toggle flips a player's on-ice flag. Placing a goalie on the ice benches any
// other on-ice goalie first; the returned transitions are in that order.
func Toggle(players []model.Player, id model.PlayerID, running bool, now int64) ([]Transition, error) {
	idx := indexOf(players, id)
	if idx < 0 {
		return nil, model.ErrPlayerNotFound
	}
	target := &players[idx]

	if target.OnIce {
		Bench(target, now)
		return []Transition{{PlayerID: id, OnIce: false}}, nil
	}

	var out []Transition
	if target.IsGoalie {
		for i := range players {
			p := &players[i]
			if i != idx && p.IsGoalie && Bench(p, now) {
				out = append(out, Transition{PlayerID: p.ID, OnIce: false})
			}
		}
	}

	target.OnIce = true
	target.EnteredAt = nil
	if running {
		entered := now
		target.EnteredAt = &entered
	}
	return append(out, Transition{PlayerID: id, OnIce: true}), nil
}

// UpdateStat applies delta to a counting stat, flooring at zero, and returns the new value
func UpdateStat(players []model.Player, id model.PlayerID, key model.StatKey, delta int) (int, error) {
	idx := indexOf(players, id)
	if idx < 0 {
		return 0, model.ErrPlayerNotFound
	}
	p := &players[idx]
	if !p.AllowsStat(key) {
		return 0, model.ErrInvalidStat
	}
	value := p.Stat(key) + delta
	if value < 0 {
		value = 0
	}
	p.SetStat(key, value)
	return value, nil
}

// ResetAll wipes live state and stats for every player
func ResetAll(players []model.Player) {
	for i := range players {
		players[i].ClearLive()
	}
}

// LiveTOI returns accrued seconds plus the open shift, if any
func LiveTOI(p model.Player, running bool, now int64) int {
	toi := p.TOISeconds
	if p.OnIce && running && p.EnteredAt != nil {
		if delta := (now - *p.EnteredAt) / 1000; delta > 0 {
			toi += int(delta)
		}
	}
	return toi
}

// OnIceIDs returns the ids of on-ice players in roster order
func OnIceIDs(players []model.Player) []model.PlayerID {
	ids := []model.PlayerID{}
	for _, p := range players {
		if p.OnIce {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// OnIceCount returns the number of players on the ice
func OnIceCount(players []model.Player) int {
	n := 0
	for _, p := range players {
		if p.OnIce {
			n++
		}
	}
	return n
}

// ApplyGoal credits plus/minus to the given players and, when the opponent
// scored, a goal against to any goalie among them
func ApplyGoal(players []model.Player, ids []model.PlayerID, scorer model.Side) {
	delta := -1
	if scorer == model.SideUs {
		delta = 1
	}
	for _, id := range ids {
		idx := indexOf(players, id)
		if idx < 0 {
			continue
		}
		p := &players[idx]
		p.PlusMinus += delta
		if p.IsGoalie && scorer == model.SideThem {
			p.GoalsAgainst++
		}
	}
}

// RevertGoal exactly reverses ApplyGoal, flooring goals against at zero
func RevertGoal(players []model.Player, ids []model.PlayerID, scorer model.Side) {
	delta := 1
	if scorer == model.SideUs {
		delta = -1
	}
	for _, id := range ids {
		idx := indexOf(players, id)
		if idx < 0 {
			continue
		}
		p := &players[idx]
		p.PlusMinus += delta
		if p.IsGoalie && scorer == model.SideThem && p.GoalsAgainst > 0 {
			p.GoalsAgainst--
		}
	}
}

// Leaderboard returns up to limit players ordered by the stat descending,
// ties broken by jersey number then name
func Leaderboard(players []model.Player, key model.StatKey, limit int) []model.Player {
	out := make([]model.Player, len(players))
	copy(out, players)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		if av, bv := a.Stat(key), b.Stat(key); av != bv {
			return av > bv
		}
		an, aErr := strconv.Atoi(strings.TrimSpace(a.Number))
		bn, bErr := strconv.Atoi(strings.TrimSpace(b.Number))
		if aErr == nil && bErr == nil && an != bn {
			return an < bn
		}
		return a.Name < b.Name
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func indexOf(players []model.Player, id model.PlayerID) int {
	for i := range players {
		if players[i].ID == id {
			return i
		}
	}
	return -1
}
