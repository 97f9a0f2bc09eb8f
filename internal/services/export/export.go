// Package export renders a match's player stats as CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/gameclock"
	"github.com/mcoot/hockeytracker/internal/services/roster"
)

// Header is the fixed column order of the export
var Header = []string{
	"Match", "Team", "Number", "Name", "Initials", "IsGoalie", "PlusMinus", "OnIce", "TOI",
	"Shots", "ZoneEntries", "BlockedShots", "Hits", "Takeaways", "Giveaways",
	"Saves", "GoalsAgainst", "Shutouts", "SavePercentage",
}

// Rows returns one row per match player, TOI sampled at now
func Rows(m model.Match, teamName string, now int64) [][]string {
	rows := make([][]string, 0, len(m.Players))
	for _, p := range m.Players {
		rows = append(rows, []string{
			m.Name,
			teamName,
			p.Number,
			p.Name,
			p.Initials,
			yesNo(p.IsGoalie),
			strconv.Itoa(p.PlusMinus),
			yesNo(p.OnIce),
			gameclock.FormatSeconds(roster.LiveTOI(p, m.Clock.Running, now)),
			strconv.Itoa(p.Shots),
			strconv.Itoa(p.ZoneEntries),
			strconv.Itoa(p.BlockedShots),
			strconv.Itoa(p.Hits),
			strconv.Itoa(p.Takeaways),
			strconv.Itoa(p.Giveaways),
			strconv.Itoa(p.Saves),
			strconv.Itoa(p.GoalsAgainst),
			strconv.Itoa(p.Shutouts),
			SavePercentage(p.Saves, p.GoalsAgainst),
		})
	}
	return rows
}

// Write emits the header and rows as CSV
func Write(w io.Writer, m model.Match, teamName string, now int64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	if err := cw.WriteAll(Rows(m, teamName, now)); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// CSV returns the export as bytes
func CSV(m model.Match, teamName string, now int64) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, m, teamName, now); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePercentage formats saves/(saves+goalsAgainst) as a percentage with two decimals
func SavePercentage(saves, goalsAgainst int) string {
	faced := saves + goalsAgainst
	if faced <= 0 {
		return "0.00"
	}
	return strconv.FormatFloat(float64(saves)/float64(faced)*100, 'f', 2, 64)
}

// Filename derives the download name: non-alphanumerics become underscores,
// lower-cased, suffixed with the UTC date
func Filename(matchName string, at time.Time) string {
	safe := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToLower(r)
		}
		return '_'
	}, matchName)
	return fmt.Sprintf("%s_%s.csv", safe, at.UTC().Format("2006-01-02"))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
