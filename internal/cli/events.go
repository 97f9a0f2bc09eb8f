package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/hockeytracker/internal/services/scoreboard"
)

func newEventsCmd() *cobra.Command {
	var (
		follow     bool
		jsonOutput bool
		count      int
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the match event log, or follow live updates",
		Long: `Show the match event log with a description of each entry.

With --follow, connect to the match's SSE endpoint and stream events in
real-time instead:
  - connected: Stream established
  - match-update: Scoreboard snapshot after a change
  - event: A newly logged goal, stat change or on-ice change

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if follow {
				return streamEvents(cmd, jsonOutput, count)
			}

			path, err := matchPath("/events")
			if err != nil {
				return err
			}

			var lines []EventLine
			if err := client.Get(path, &lines); err != nil {
				return err
			}
			output(cmd).Print(lines)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Stream live updates over SSE")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output streamed events as JSON lines")
	cmd.Flags().IntVar(&count, "count", 0, "Disconnect after this many streamed events, 0 for no limit")

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamEvents(cmd *cobra.Command, jsonOutput bool, count int) error {
	path, err := matchPath("/stream")
	if err != nil {
		return err
	}
	url := strings.TrimSuffix(cfg.ServerURL, "/") + path

	// Set up cancellation
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	httpClient := &http.Client{
		Timeout: 0, // No timeout for SSE
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	w := cmd.OutOrStdout()
	if !jsonOutput {
		fmt.Fprintf(w, "Connected to %s\n", path)
	}

	// Parse SSE stream
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var currentEvent string
	var dataLines []string
	seen := 0

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			currentEvent = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		case line == "":
			// End of event
			if currentEvent != "" && currentEvent != "connected" {
				printEvent(w, currentEvent, strings.Join(dataLines, "\n"), jsonOutput)
				seen++
				if count > 0 && seen >= count {
					return nil
				}
			}
			currentEvent = ""
			dataLines = nil
		}
	}

	if err := scanner.Err(); err != nil {
		// Context cancellation is expected
		if ctx.Err() != nil {
			if !jsonOutput {
				fmt.Fprintln(w, "\nDisconnected")
			}
			return nil
		}
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		fmt.Fprintln(w, "Disconnected")
	}
	return nil
}

func printEvent(w io.Writer, event, data string, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		evt := SSEEvent{
			Time:  now,
			Event: event,
			Data:  data,
		}
		jsonData, _ := json.Marshal(evt)
		fmt.Fprintln(w, string(jsonData))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")
	fmt.Fprintf(w, "[%s] %s: %s\n", timestamp, event, summarizeEvent(event, data))
}

// summarizeEvent renders a one-line description of a streamed payload
func summarizeEvent(event, data string) string {
	switch event {
	case "match-update":
		var snap scoreboard.Snapshot
		if err := json.Unmarshal([]byte(data), &snap); err == nil {
			return fmt.Sprintf("%s %d - %d %s, %s, %s, on ice %d",
				snap.OurTeamName, snap.ScoreUs, snap.ScoreThem, snap.OpponentTeamName,
				snap.Elapsed, snap.Situation, snap.OnIceCount)
		}
	case "event":
		var line EventLine
		if err := json.Unmarshal([]byte(data), &line); err == nil {
			return fmt.Sprintf("%s at %s", line.Type, line.ElapsedTime)
		}
	}

	// Truncate data if it's too long for display
	if len(data) > 100 {
		data = data[:100] + "..."
	}
	return strings.ReplaceAll(data, "\n", " ")
}
