package model

// TeamID uniquely identifies a team
type TeamID string

// DefaultOnIceCap is the nominal full-strength count including the goalie
const DefaultOnIceCap = 6

// Team is a roster template. Matches copy its players at creation.
type Team struct {
	ID       TeamID   `json:"id"`
	Name     string   `json:"name"`
	OnIceCap int      `json:"onIceCap"`
	Players  []Player `json:"players"`
}

// GetPlayer returns the player with the given ID, or nil if not found
func (t *Team) GetPlayer(id PlayerID) *Player {
	for i := range t.Players {
		if t.Players[i].ID == id {
			return &t.Players[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the team
func (t Team) Clone() Team {
	t.Players = clonePlayers(t.Players)
	return t
}

func clonePlayers(players []Player) []Player {
	if players == nil {
		return []Player{}
	}
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}
