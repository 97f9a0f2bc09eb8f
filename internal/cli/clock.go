package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/hockeytracker/internal/api/request"
	"github.com/mcoot/hockeytracker/internal/services/scoreboard"
)

func newClockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Game clock commands",
	}

	cmd.AddCommand(newClockActionCmd("start", "Start the clock", "/clock/start"))
	cmd.AddCommand(newClockActionCmd("pause", "Pause the clock", "/clock/pause"))
	cmd.AddCommand(newClockActionCmd("reset", "Reset the clock and every player's live stats", "/clock/reset"))
	cmd.AddCommand(newClockActionCmd("new-period", "Stop and zero the clock and bench everyone", "/clock/new-period"))
	cmd.AddCommand(newClockCountdownCmd())

	return cmd
}

func newClockActionCmd(use, short, suffix string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return postSnapshot(cmd, suffix, nil)
		},
	}
}

func newClockCountdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countdown <duration|off>",
		Short: "Set the period length, e.g. 20m, or clear it with off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req request.CountdownRequest
			if args[0] != "off" {
				d, err := time.ParseDuration(args[0])
				if err != nil {
					return err
				}
				ms := d.Milliseconds()
				req.DurationMs = &ms
			}

			path, err := matchPath("/clock/countdown")
			if err != nil {
				return err
			}

			var snap scoreboard.Snapshot
			if err := client.Put(path, req, &snap); err != nil {
				return err
			}
			output(cmd).Print(snap)
			return nil
		},
	}
}
