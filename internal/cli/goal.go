package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/hockeytracker/internal/api/request"
)

func newGoalCmd() *cobra.Command {
	var req request.GoalRequest

	cmd := &cobra.Command{
		Use:   "goal <us|them>",
		Short: "Record a goal",
		Long: `Record a goal. Everyone of ours on the ice gets +1 for a goal for us
and -1 for a goal against. The scorer's number is required, assists are
optional.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Scorer = parseSide(args[0])
			return postSnapshot(cmd, "/goals", req)
		},
	}

	cmd.Flags().StringVar(&req.ScorerNumber, "scorer", "", "Scorer's number (required)")
	cmd.Flags().StringVar(&req.Assist1Number, "assist1", "", "First assist number")
	cmd.Flags().StringVar(&req.Assist2Number, "assist2", "", "Second assist number")
	_ = cmd.MarkFlagRequired("scorer")

	return cmd
}

func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the most recent logged event",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postSnapshot(cmd, "/undo", nil)
		},
	}
}
