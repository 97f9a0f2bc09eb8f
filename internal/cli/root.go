package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/scoreboard"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "hockeyctl",
		Short: "CLI tool for the hockey tracker API",
		Long: `hockeyctl is a CLI tool for interacting with the hockey tracker JSON API.

It covers team management, match control (clock, roster, penalties, goals,
undo), reports such as the leaderboard and CSV export, and a live tail of
match updates over SSE.

Match commands act on the pinned match (see "match use") or, when none is
pinned, on the server's current match.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load pinned match from file if not provided via flag/env
			if err := cfg.LoadMatch(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: HOCKEY_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.MatchID, "match", cfg.MatchID, "Match ID (env: HOCKEY_MATCH)")
	rootCmd.PersistentFlags().StringVar(&cfg.MatchFile, "match-file", cfg.MatchFile, "Pinned match file path (env: HOCKEY_MATCH_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newTeamCmd())
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newClockCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newPenaltyCmd())
	rootCmd.AddCommand(newGoalCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newNavCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func output(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout())
}

// resolveMatch returns the pinned match id, or the server's current match
func resolveMatch() (string, error) {
	if cfg.MatchID != "" {
		return cfg.MatchID, nil
	}

	var current model.Match
	if err := client.Get("/api/v1/matches/current", &current); err != nil {
		return "", fmt.Errorf("no match selected: %w", err)
	}
	return string(current.ID), nil
}

// matchPath builds an API path under the resolved match
func matchPath(suffix string) (string, error) {
	id, err := resolveMatch()
	if err != nil {
		return "", err
	}
	return "/api/v1/matches/" + url.PathEscape(id) + suffix, nil
}

// postSnapshot posts to a match endpoint and prints the returned scoreboard
func postSnapshot(cmd *cobra.Command, suffix string, body any) error {
	path, err := matchPath(suffix)
	if err != nil {
		return err
	}

	var snap scoreboard.Snapshot
	if err := client.Post(path, body, &snap); err != nil {
		return err
	}
	output(cmd).Print(snap)
	return nil
}
