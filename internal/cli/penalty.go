package cli

import (
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/hockeytracker/internal/api/request"
	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/scoreboard"
)

func newPenaltyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "penalty",
		Short: "Penalty tracker commands",
	}

	cmd.AddCommand(newPenaltyAddCmd())
	cmd.AddCommand(newPenaltyRemoveCmd())
	cmd.AddCommand(newPenaltyReleaseCmd())

	return cmd
}

func parseSide(arg string) model.Side {
	return model.Side(strings.ToUpper(arg))
}

func newPenaltyAddCmd() *cobra.Command {
	var (
		penaltyType string
		infraction  string
	)

	cmd := &cobra.Command{
		Use:   "add <us|them> <number>",
		Short: "Assess a penalty",
		Long: `Assess a penalty against a player.

Types: Minor, Double Minor, Major, Misconduct, Match Penalty.
A player of ours is sent to the bench unless the penalty is coincident.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.PenaltyRequest{
				Team:         parseSide(args[0]),
				PlayerNumber: args[1],
				Type:         model.PenaltyType(penaltyType),
				Infraction:   infraction,
			}
			return postSnapshot(cmd, "/penalties", req)
		},
	}

	cmd.Flags().StringVar(&penaltyType, "type", string(model.PenaltyMinor), "Penalty type")
	cmd.Flags().StringVar(&infraction, "infraction", "", "Infraction, e.g. Tripping")

	return cmd
}

func newPenaltyRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <penalty-id>",
		Short: "Withdraw a penalty",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := matchPath("/penalties/" + url.PathEscape(args[0]))
			if err != nil {
				return err
			}

			var snap scoreboard.Snapshot
			if err := client.Delete(path, &snap); err != nil {
				return err
			}
			output(cmd).Print(snap)
			return nil
		},
	}
}

func newPenaltyReleaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release <penalty-id>",
		Short: "Release a minor penalty early after a power-play goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postSnapshot(cmd, "/penalties/"+url.PathEscape(args[0])+"/release", nil)
		},
	}
}
