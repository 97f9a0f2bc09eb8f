package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/hockeytracker/internal/api/request"
	"github.com/mcoot/hockeytracker/internal/api/response"
	"github.com/mcoot/hockeytracker/internal/model"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Roster commands for the current match",
		Long: `Roster commands for the current match.

Players are given by ID or by jersey number prefixed with '#', e.g. '#9'.`,
	}

	cmd.AddCommand(newPlayerToggleCmd())
	cmd.AddCommand(newPlayerStatCmd())
	cmd.AddCommand(newPlayerFocusCmd())
	cmd.AddCommand(newPlayerTimelineCmd())
	cmd.AddCommand(newBenchAllCmd())

	return cmd
}

// resolvePlayer turns "#<number>" into a player id via the match roster
func resolvePlayer(arg string) (string, error) {
	number, ok := strings.CutPrefix(arg, "#")
	if !ok {
		return arg, nil
	}

	path, err := matchPath("")
	if err != nil {
		return "", err
	}

	var m model.Match
	if err := client.Get(path, &m); err != nil {
		return "", err
	}

	p := m.GetPlayerByNumber(number)
	if p == nil {
		return "", fmt.Errorf("no player with number %s", number)
	}
	return string(p.ID), nil
}

func playerPath(arg, suffix string) (string, error) {
	id, err := resolvePlayer(arg)
	if err != nil {
		return "", err
	}
	return "/players/" + url.PathEscape(id) + suffix, nil
}

func newPlayerToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <player>",
		Short: "Put a player on the ice or take them off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suffix, err := playerPath(args[0], "/toggle")
			if err != nil {
				return err
			}
			return postSnapshot(cmd, suffix, nil)
		},
	}
}

func newPlayerStatCmd() *cobra.Command {
	var delta int

	cmd := &cobra.Command{
		Use:   "stat <player> <stat>",
		Short: "Adjust a counting stat",
		Long: fmt.Sprintf(`Adjust a counting stat by --delta (default 1).

Skater stats: %s
Goalie stats: %s`, statList(model.SkaterStats()), statList(model.GoalieStats())),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			suffix, err := playerPath(args[0], "/stats")
			if err != nil {
				return err
			}
			req := request.StatRequest{Stat: model.StatKey(args[1]), Delta: delta}
			return postSnapshot(cmd, suffix, req)
		},
	}

	cmd.Flags().IntVar(&delta, "delta", 1, "Amount to add, negative to subtract")

	return cmd
}

func newPlayerFocusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "focus <player>",
		Short: "Toggle a player in the focus group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suffix, err := playerPath(args[0], "/focus")
			if err != nil {
				return err
			}
			return postSnapshot(cmd, suffix, nil)
		},
	}
}

func newPlayerTimelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline <player>",
		Short: "Show a player's shifts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suffix, err := playerPath(args[0], "/timeline")
			if err != nil {
				return err
			}
			path, err := matchPath(suffix)
			if err != nil {
				return err
			}

			var timeline response.Timeline
			if err := client.Get(path, &timeline); err != nil {
				return err
			}
			output(cmd).Print(timeline)
			return nil
		},
	}
}

func newBenchAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench-all",
		Short: "Take every player off the ice",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postSnapshot(cmd, "/bench-all", nil)
		},
	}
}

func statList(keys []model.StatKey) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	return joinArgs(names)
}
