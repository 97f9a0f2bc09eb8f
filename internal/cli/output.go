package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/hockeytracker/internal/api/response"
	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/scoreboard"
	"github.com/mcoot/hockeytracker/internal/services/team"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case model.Team:
		o.printTeam(v)
	case []model.Team:
		o.printTeams(v)
	case team.Navigation:
		o.printNavigation(v)
	case model.Match:
		o.printMatch(v)
	case []response.MatchSummary:
		o.printMatchSummaries(v)
	case scoreboard.Snapshot:
		o.printSnapshot(v)
	case []EventLine:
		o.printEventLines(v)
	case response.Timeline:
		o.printTimeline(v)
	case response.Leaderboard:
		o.printLeaderboard(v)
	case response.Health:
		o.printHealth(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// EventLine is one described log entry as returned by the events endpoint
type EventLine struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Time          string  `json:"time"`
	ElapsedTime   string  `json:"elapsedTime"`
	RemainingTime *string `json:"remainingTime"`
	Label         string  `json:"label"`
	Detail        string  `json:"detail"`
}

func (o *Output) printTeam(t model.Team) {
	fmt.Fprintf(o.w, "Team: %s (%s)\n", t.Name, t.ID)
	fmt.Fprintf(o.w, "On-ice cap: %d\n", t.OnIceCap)
	fmt.Fprintf(o.w, "Players (%d):\n", len(t.Players))
	for _, p := range t.Players {
		goalie := ""
		if p.IsGoalie {
			goalie = " [G]"
		}
		fmt.Fprintf(o.w, "  #%-3s %s%s (%s)\n", p.Number, p.Name, goalie, p.ID)
	}
}

func (o *Output) printTeams(teams []model.Team) {
	if len(teams) == 0 {
		fmt.Fprintln(o.w, "No teams")
		return
	}
	for _, t := range teams {
		fmt.Fprintf(o.w, "%s  %s (%d players)\n", t.ID, t.Name, len(t.Players))
	}
}

func (o *Output) printNavigation(n team.Navigation) {
	fmt.Fprintf(o.w, "Phase: %s\n", n.AppPhase)
	if n.CurrentTeamID != nil {
		fmt.Fprintf(o.w, "Team: %s\n", *n.CurrentTeamID)
	}
	if n.CurrentMatchID != nil {
		fmt.Fprintf(o.w, "Match: %s\n", *n.CurrentMatchID)
	}
}

func (o *Output) printMatch(m model.Match) {
	us, them := m.Score()
	fmt.Fprintf(o.w, "Match: %s (%s)\n", m.Name, m.ID)
	fmt.Fprintf(o.w, "%s %d - %d %s\n", m.OurTeamName, us, them, m.OpponentTeamName)
	fmt.Fprintf(o.w, "Players: %d, events: %d\n", len(m.Players), len(m.Events))
}

func (o *Output) printMatchSummaries(matches []response.MatchSummary) {
	if len(matches) == 0 {
		fmt.Fprintln(o.w, "No matches")
		return
	}
	for _, m := range matches {
		running := ""
		if m.Running {
			running = " [running]"
		}
		fmt.Fprintf(o.w, "%s  %s  %s %d - %d %s%s\n",
			m.ID, m.StartedAt.Format("2006-01-02"), m.OurTeamName, m.ScoreUs, m.ScoreThem, m.OpponentTeamName, running)
	}
}

func (o *Output) printSnapshot(s scoreboard.Snapshot) {
	state := "paused"
	if s.Running {
		state = "running"
	}
	fmt.Fprintf(o.w, "%s: %s %d - %d %s\n", s.Name, s.OurTeamName, s.ScoreUs, s.ScoreThem, s.OpponentTeamName)
	clock := s.Elapsed
	if s.Remaining != "" {
		clock += " (" + s.Remaining + " left)"
	}
	fmt.Fprintf(o.w, "Clock: %s %s\n", clock, state)
	fmt.Fprintf(o.w, "Situation: %s\n", s.Situation)

	onIce := fmt.Sprintf("On ice: %d/%d", s.OnIceCount, s.EffectiveCap)
	if s.OverCap {
		onIce += " OVER CAP"
	}
	fmt.Fprintln(o.w, onIce)

	for _, p := range s.Players {
		marker := " "
		switch {
		case p.InBox:
			marker = "P"
		case p.OnIce:
			marker = "*"
		}
		fmt.Fprintf(o.w, "  %s #%-3s %-20s TOI %s  +/- %d\n", marker, p.Number, p.Name, p.TOI, p.PlusMinus)
	}

	if len(s.ActivePenalties) > 0 {
		fmt.Fprintln(o.w, "Penalties:")
		for _, p := range s.ActivePenalties {
			fmt.Fprintf(o.w, "  %s #%s %s %s %s\n", p.Team, p.PlayerNumber, p.Type, p.Infraction, p.Remaining)
		}
	}

	if s.LastEvent != nil {
		fmt.Fprintf(o.w, "Last event: %s at %s\n", s.LastEvent.Type(), s.LastEvent.ElapsedTime)
	}
}

func (o *Output) printEventLines(lines []EventLine) {
	if len(lines) == 0 {
		fmt.Fprintln(o.w, "No events")
		return
	}
	for _, l := range lines {
		fmt.Fprintf(o.w, "[%s] %s: %s\n", l.ElapsedTime, l.Label, l.Detail)
	}
}

func (o *Output) printTimeline(t response.Timeline) {
	fmt.Fprintf(o.w, "Timeline: %s\n", t.PlayerID)
	for _, s := range t.Shifts {
		kind := "ice"
		if s.Bench {
			kind = "bench"
		}
		end := s.EndElapsed
		if s.Open {
			end = "now"
		}
		fmt.Fprintf(o.w, "  %-5s %s - %s (%d events)\n", kind, s.StartElapsed, end, len(s.Events))
	}
}

func (o *Output) printLeaderboard(l response.Leaderboard) {
	fmt.Fprintf(o.w, "Leaderboard: %s\n", l.Stat)
	for _, row := range l.Players {
		fmt.Fprintf(o.w, "  %2d. #%-3s %-20s %d\n", row.Rank, row.Number, row.Name, row.Value)
	}
}

func (o *Output) printHealth(h response.Health) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Storage != "" {
		fmt.Fprintf(o.w, "Storage: %s\n", h.Storage)
	}
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
