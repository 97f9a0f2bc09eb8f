package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/hockeytracker/internal/api/request"
	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/team"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Team management commands",
	}

	cmd.AddCommand(newTeamListCmd())
	cmd.AddCommand(newTeamCreateCmd())
	cmd.AddCommand(newTeamGetCmd())
	cmd.AddCommand(newTeamUpdateCmd())
	cmd.AddCommand(newTeamSelectCmd())
	cmd.AddCommand(newTeamAddPlayerCmd())
	cmd.AddCommand(newTeamRemovePlayerCmd())

	return cmd
}

// parsePlayer reads "number:name" with an optional ":g" suffix for goalies
func parsePlayer(value string) (request.PlayerRequest, error) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return request.PlayerRequest{}, fmt.Errorf("invalid player %q, expected number:name[:g]", value)
	}

	p := request.PlayerRequest{
		Number: strings.TrimSpace(parts[0]),
		Name:   strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		if !strings.EqualFold(strings.TrimSpace(parts[2]), "g") {
			return request.PlayerRequest{}, fmt.Errorf("invalid player %q, only \"g\" may follow the name", value)
		}
		p.IsGoalie = true
	}
	return p, nil
}

func parsePlayers(values []string) ([]request.PlayerRequest, error) {
	players := make([]request.PlayerRequest, 0, len(values))
	for _, value := range values {
		p, err := parsePlayer(value)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

func teamPath(id string) string {
	return "/api/v1/teams/" + url.PathEscape(id)
}

func newTeamListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			var teams []model.Team
			if err := client.Get("/api/v1/teams", &teams); err != nil {
				return err
			}
			output(cmd).Print(teams)
			return nil
		},
	}
}

func newTeamCreateCmd() *cobra.Command {
	var (
		name     string
		onIceCap int
		players  []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a team",
		Example: `  hockeyctl team create --name Wolves --player 9:Nine --player 31:Keeper:g`,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := parsePlayers(players)
			if err != nil {
				return err
			}

			var t model.Team
			req := request.TeamRequest{Name: name, OnIceCap: onIceCap, Players: roster}
			if err := client.Post("/api/v1/teams", req, &t); err != nil {
				return err
			}
			output(cmd).Print(t)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Team name")
	cmd.Flags().IntVar(&onIceCap, "cap", 0, "Skaters allowed on ice (default 5)")
	cmd.Flags().StringArrayVar(&players, "player", nil, "Player as number:name[:g], repeatable")

	return cmd
}

func newTeamGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <team-id>",
		Short: "Show a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var t model.Team
			if err := client.Get(teamPath(args[0]), &t); err != nil {
				return err
			}
			output(cmd).Print(t)
			return nil
		},
	}
}

func newTeamUpdateCmd() *cobra.Command {
	var (
		name     string
		onIceCap int
		players  []string
	)

	cmd := &cobra.Command{
		Use:   "update <team-id>",
		Short: "Rename a team or change its on-ice cap",
		Long: `Update a team. Without --player flags the existing roster is kept;
with them the roster is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var current model.Team
			if err := client.Get(teamPath(args[0]), &current); err != nil {
				return err
			}

			req := request.TeamRequest{Name: current.Name, OnIceCap: current.OnIceCap}
			if cmd.Flags().Changed("name") {
				req.Name = name
			}
			if cmd.Flags().Changed("cap") {
				req.OnIceCap = onIceCap
			}

			if len(players) > 0 {
				roster, err := parsePlayers(players)
				if err != nil {
					return err
				}
				req.Players = roster
			} else {
				for _, p := range current.Players {
					req.Players = append(req.Players, request.PlayerRequest{
						ID:       string(p.ID),
						Number:   p.Number,
						Name:     p.Name,
						IsGoalie: p.IsGoalie,
					})
				}
			}

			var t model.Team
			if err := client.Put(teamPath(args[0]), req, &t); err != nil {
				return err
			}
			output(cmd).Print(t)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New team name")
	cmd.Flags().IntVar(&onIceCap, "cap", 0, "Skaters allowed on ice")
	cmd.Flags().StringArrayVar(&players, "player", nil, "Replacement roster entry as number:name[:g], repeatable")

	return cmd
}

func newTeamSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <team-id>",
		Short: "Select a team and move to match selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var nav team.Navigation
			if err := client.Post(teamPath(args[0])+"/select", nil, &nav); err != nil {
				return err
			}
			output(cmd).Print(nav)
			return nil
		},
	}
}

func newTeamAddPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-player <team-id> <number:name[:g]>",
		Short: "Add a player to a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePlayer(args[1])
			if err != nil {
				return err
			}

			var t model.Team
			if err := client.Post(teamPath(args[0])+"/players", p, &t); err != nil {
				return err
			}
			output(cmd).Print(t)
			return nil
		},
	}
}

func newTeamRemovePlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-player <team-id> <player-id>",
		Short: "Remove a player from a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var t model.Team
			path := teamPath(args[0]) + "/players/" + url.PathEscape(args[1])
			if err := client.Delete(path, &t); err != nil {
				return err
			}
			output(cmd).Print(t)
			return nil
		},
	}
}
