package model

// AppPhase is the operator's current screen in the workflow
type AppPhase string

const (
	PhaseTeamSelection  AppPhase = "team-selection"
	PhaseMatchSelection AppPhase = "match-selection"
	PhaseMatch          AppPhase = "match"
)

// AppState is the entire persisted application state, stored as one blob
type AppState struct {
	Teams          []Team   `json:"teams"`
	Matches        []Match  `json:"matches"`
	CurrentTeamID  *TeamID  `json:"currentTeamId"`
	CurrentMatchID *MatchID `json:"currentMatchId"`
	AppPhase       AppPhase `json:"appPhase"`
}

// DefaultAppState returns the empty state used on first run or after corruption
func DefaultAppState() *AppState {
	return &AppState{
		Teams:    []Team{},
		Matches:  []Match{},
		AppPhase: PhaseTeamSelection,
	}
}

// Normalize fills in fields missing from older or partial blobs
func (s *AppState) Normalize() {
	if s.Teams == nil {
		s.Teams = []Team{}
	}
	if s.Matches == nil {
		s.Matches = []Match{}
	}
	for i := range s.Teams {
		if s.Teams[i].Players == nil {
			s.Teams[i].Players = []Player{}
		}
		if s.Teams[i].OnIceCap <= 0 {
			s.Teams[i].OnIceCap = DefaultOnIceCap
		}
	}
	for i := range s.Matches {
		m := &s.Matches[i]
		if m.Players == nil {
			m.Players = []Player{}
		}
		if m.Penalties == nil {
			m.Penalties = []Penalty{}
		}
		if m.Events == nil {
			m.Events = []Event{}
		}
		if m.MyPlayerIDs == nil {
			m.MyPlayerIDs = []PlayerID{}
		}
		if m.OnIceCap <= 0 {
			m.OnIceCap = DefaultOnIceCap
		}
		if m.OurTeamName == "" {
			m.OurTeamName = DefaultOurTeamName
		}
		if m.OpponentTeamName == "" {
			m.OpponentTeamName = DefaultOpponentTeamName
		}
	}
	switch s.AppPhase {
	case PhaseTeamSelection, PhaseMatchSelection, PhaseMatch:
	default:
		s.AppPhase = PhaseTeamSelection
	}
}

// GetTeam returns the team with the given ID, or nil if not found
func (s *AppState) GetTeam(id TeamID) *Team {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return &s.Teams[i]
		}
	}
	return nil
}

// GetMatch returns the match with the given ID, or nil if not found
func (s *AppState) GetMatch(id MatchID) *Match {
	for i := range s.Matches {
		if s.Matches[i].ID == id {
			return &s.Matches[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the state
func (s *AppState) Clone() *AppState {
	out := &AppState{
		Teams:    make([]Team, len(s.Teams)),
		Matches:  make([]Match, len(s.Matches)),
		AppPhase: s.AppPhase,
	}
	for i, t := range s.Teams {
		out.Teams[i] = t.Clone()
	}
	for i, m := range s.Matches {
		out.Matches[i] = m.Clone()
	}
	if s.CurrentTeamID != nil {
		id := *s.CurrentTeamID
		out.CurrentTeamID = &id
	}
	if s.CurrentMatchID != nil {
		id := *s.CurrentMatchID
		out.CurrentMatchID = &id
	}
	return out
}
