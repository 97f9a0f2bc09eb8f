package model

// MatchID uniquely identifies a match
type MatchID string

// Default display names when the operator leaves them blank
const (
	DefaultOurTeamName      = "Us"
	DefaultOpponentTeamName = "Them"
)

// Match is one game: a roster snapshot plus its clock, penalties and event log
type Match struct {
	ID               MatchID `json:"id"`
	Name             string  `json:"name"`
	TeamID           TeamID  `json:"teamId"`
	OurTeamName      string  `json:"ourTeamName"`
	OpponentTeamName string  `json:"opponentTeamName"`
	StartedAt        int64   `json:"startedAt"` // epoch ms
	OnIceCap         int     `json:"onIceCap"`  // copied from the team at creation

	Clock       GameClock  `json:"clock"`
	Players     []Player   `json:"players"`
	Penalties   []Penalty  `json:"penalties"`
	Events      []Event    `json:"events"`
	MyPlayerIDs []PlayerID `json:"myPlayerIds"`
}

// GetPlayer returns the player with the given ID, or nil if not found
func (m *Match) GetPlayer(id PlayerID) *Player {
	for i := range m.Players {
		if m.Players[i].ID == id {
			return &m.Players[i]
		}
	}
	return nil
}

// GetPlayerByNumber returns the first player wearing the given number, or nil
func (m *Match) GetPlayerByNumber(number string) *Player {
	for i := range m.Players {
		if m.Players[i].Number == number {
			return &m.Players[i]
		}
	}
	return nil
}

// GetPenalty returns the penalty with the given ID, or nil if not found
func (m *Match) GetPenalty(id PenaltyID) *Penalty {
	for i := range m.Penalties {
		if m.Penalties[i].ID == id {
			return &m.Penalties[i]
		}
	}
	return nil
}

// IsFocused returns true if the player is in the operator's focus set
func (m *Match) IsFocused(id PlayerID) bool {
	for _, pid := range m.MyPlayerIDs {
		if pid == id {
			return true
		}
	}
	return false
}

// Score counts goals recorded for each side
func (m *Match) Score() (us, them int) {
	for _, ev := range m.Events {
		if g, ok := ev.Payload.(GoalPayload); ok {
			if g.Scorer == SideUs {
				us++
			} else {
				them++
			}
		}
	}
	return us, them
}

// Clone returns a deep copy so the result can be transformed without touching m
func (m Match) Clone() Match {
	m.Clock = m.Clock.Clone()
	m.Players = clonePlayers(m.Players)

	penalties := make([]Penalty, len(m.Penalties))
	copy(penalties, m.Penalties)
	m.Penalties = penalties

	events := make([]Event, len(m.Events))
	for i, ev := range m.Events {
		events[i] = ev.Clone()
	}
	m.Events = events

	ids := make([]PlayerID, len(m.MyPlayerIDs))
	copy(ids, m.MyPlayerIDs)
	m.MyPlayerIDs = ids

	return m
}

// MatchChange describes a committed mutation, handed to notifiers
type MatchChange struct {
	Match    Match
	Appended []Event // events added by this change, in log order
	Action   string  // one of the Action constants
}

// Operation names carried by MatchChange.Action
const (
	ActionStart         = "start"
	ActionPause         = "pause"
	ActionReset         = "reset"
	ActionCountdown     = "countdown"
	ActionNewPeriod     = "new-period"
	ActionToggleOnIce   = "toggle-on-ice"
	ActionBenchAll      = "bench-all"
	ActionStat          = "stat"
	ActionFocus         = "focus"
	ActionPenalty       = "penalty"
	ActionRemovePenalty = "remove-penalty"
	ActionEarlyRelease  = "early-release"
	ActionGoal          = "goal"
	ActionUndo          = "undo"
	ActionTick          = "tick"
)
