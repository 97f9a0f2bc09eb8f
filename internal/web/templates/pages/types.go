// Package pages holds the full bench board pages.
package pages

import (
	"fmt"

	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/scoreboard"
	"github.com/mcoot/hockeytracker/internal/web/templates/components"
	"github.com/mcoot/hockeytracker/internal/web/templates/layout"
)

// HomeData is the match picker
type HomeData struct {
	layout.PageData
	Matches        []model.Match
	CurrentMatchID *model.MatchID
}

// IsCurrent reports whether id is the selected match
func (d HomeData) IsCurrent(id model.MatchID) bool {
	return d.CurrentMatchID != nil && *d.CurrentMatchID == id
}

// MatchData is the bench board for one match
type MatchData struct {
	layout.PageData
	Snapshot scoreboard.Snapshot
	Events   []components.EventRow
}

func scoreLine(m model.Match) string {
	us, them := m.Score()
	return fmt.Sprintf("%s %d - %d %s", m.OurTeamName, us, them, m.OpponentTeamName)
}
