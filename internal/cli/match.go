package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/hockeytracker/internal/api/request"
	"github.com/mcoot/hockeytracker/internal/api/response"
	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/scoreboard"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match lifecycle commands",
	}

	cmd.AddCommand(newMatchListCmd())
	cmd.AddCommand(newMatchCreateCmd())
	cmd.AddCommand(newMatchGetCmd())
	cmd.AddCommand(newMatchUseCmd())
	cmd.AddCommand(newMatchEndCmd())
	cmd.AddCommand(newSnapshotCmd())

	return cmd
}

func newMatchListCmd() *cobra.Command {
	var teamID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List matches, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/matches"
			if teamID != "" {
				path += "?team_id=" + url.QueryEscape(teamID)
			}

			var matches []response.MatchSummary
			if err := client.Get(path, &matches); err != nil {
				return err
			}
			output(cmd).Print(matches)
			return nil
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "Only matches for this team")

	return cmd
}

func newMatchCreateCmd() *cobra.Command {
	var req request.CreateMatchRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start a new match for a team and pin it",
		RunE: func(cmd *cobra.Command, args []string) error {
			var m model.Match
			if err := client.Post("/api/v1/matches", req, &m); err != nil {
				return err
			}

			if err := cfg.SaveMatch(string(m.ID)); err != nil {
				return err
			}

			output(cmd).Print(m)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.TeamID, "team", "", "Team ID")
	cmd.Flags().StringVar(&req.Name, "name", "", "Match name")
	cmd.Flags().StringVar(&req.OurTeamName, "us", "", "Our display name (defaults to the team name)")
	cmd.Flags().StringVar(&req.OpponentTeamName, "them", "", "Opponent display name")

	return cmd
}

func newMatchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [match-id]",
		Short: "Show a match",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.MatchID = args[0]
			}
			path, err := matchPath("")
			if err != nil {
				return err
			}

			var m model.Match
			if err := client.Get(path, &m); err != nil {
				return err
			}
			output(cmd).Print(m)
			return nil
		},
	}
}

func newMatchUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <match-id>",
		Short: "Select a match on the server and pin it for later commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/matches/"+url.PathEscape(args[0])+"/select", nil, nil); err != nil {
				return err
			}
			if err := cfg.SaveMatch(args[0]); err != nil {
				return err
			}
			output(cmd).PrintMessage("Using match " + args[0])
			return nil
		},
	}
}

func newMatchEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "Leave the current match and clear the pin",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/matches/current/end", nil, nil); err != nil {
				return err
			}
			if err := cfg.ClearMatch(); err != nil {
				return err
			}
			output(cmd).PrintMessage("Match ended")
			return nil
		},
	}
}

func newSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Show the live scoreboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := matchPath("/snapshot")
			if err != nil {
				return err
			}

			var snap scoreboard.Snapshot
			if err := client.Get(path, &snap); err != nil {
				return err
			}
			output(cmd).Print(snap)
			return nil
		},
	}
}
