package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/hockeytracker/internal/api/response"
	"github.com/mcoot/hockeytracker/internal/services/team"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Health

			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newNavCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Show the current team, match and phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			var nav team.Navigation
			if err := client.Get("/api/v1/navigation", &nav); err != nil {
				return err
			}
			output(cmd).Print(nav)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "teams",
		Short: "Return to team selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			var nav team.Navigation
			if err := client.Post("/api/v1/navigation/teams", nil, &nav); err != nil {
				return err
			}
			output(cmd).Print(nav)
			return nil
		},
	})

	return cmd
}
