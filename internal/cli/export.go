package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/hockeytracker/internal/api/response"
)

func newLeaderboardCmd() *cobra.Command {
	var (
		stat  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank players by a stat",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("stat", stat)
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}

			path, err := matchPath("/leaderboard?" + q.Encode())
			if err != nil {
				return err
			}

			var board response.Leaderboard
			if err := client.Get(path, &board); err != nil {
				return err
			}
			output(cmd).Print(board)
			return nil
		},
	}

	cmd.Flags().StringVar(&stat, "stat", "plusMinus", "Stat to rank by")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows, 0 for all")

	return cmd
}

func newExportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the match stats as CSV",
		Long: `Download the match stats as CSV. The file is named after the match
unless --file is given; use --file - to write to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := matchPath("/export")
			if err != nil {
				return err
			}

			data, filename, err := client.Download(path)
			if err != nil {
				return err
			}

			if file == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if file == "" && filename != "" {
				file = filepath.Base(filename)
			}
			if file == "" {
				return fmt.Errorf("server did not name the export, pass --file")
			}

			if err := os.WriteFile(file, data, 0644); err != nil {
				return err
			}
			output(cmd).PrintMessage("Wrote " + file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Output path, - for stdout")

	return cmd
}
