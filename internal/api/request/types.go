package request

import "github.com/mcoot/hockeytracker/internal/model"

// PlayerRequest is one roster entry in a team request
type PlayerRequest struct {
	ID       string `json:"id,omitempty"`
	Number   string `json:"number"`
	Name     string `json:"name"`
	IsGoalie bool   `json:"isGoalie"`
}

// TeamRequest is the request body for creating or replacing a team
type TeamRequest struct {
	Name     string          `json:"name"`
	OnIceCap int             `json:"onIceCap,omitempty"`
	Players  []PlayerRequest `json:"players"`
}

// CreateMatchRequest is the request body for starting a match
type CreateMatchRequest struct {
	TeamID           string `json:"teamId"`
	Name             string `json:"name"`
	OurTeamName      string `json:"ourTeamName,omitempty"`
	OpponentTeamName string `json:"opponentTeamName,omitempty"`
}

// CountdownRequest sets or clears the period length. Null or <= 0 clears it.
type CountdownRequest struct {
	DurationMs *int64 `json:"durationMs"`
}

// StatRequest adjusts a counting stat
type StatRequest struct {
	Stat  model.StatKey `json:"stat"`
	Delta int           `json:"delta"`
}

// PenaltyRequest assesses a penalty
type PenaltyRequest struct {
	Team         model.Side        `json:"team"`
	PlayerNumber string            `json:"playerNumber"`
	Type         model.PenaltyType `json:"penaltyType"`
	Infraction   string            `json:"infraction"`
}

// GoalRequest records a goal
type GoalRequest struct {
	Scorer        model.Side `json:"scorer"`
	ScorerNumber  string     `json:"scorerNumber,omitempty"`
	Assist1Number string     `json:"assist1Number,omitempty"`
	Assist2Number string     `json:"assist2Number,omitempty"`
}
