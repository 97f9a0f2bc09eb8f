package sse

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mcoot/hockeytracker/internal/dependencies/clock"
	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/scoreboard"
)

// EventMatchUpdate carries a full scoreboard snapshot
const EventMatchUpdate = "match-update"

// EventLogAppend carries one newly appended log entry
const EventLogAppend = "event"

// Broadcaster pushes committed match changes to the match's hub
type Broadcaster struct {
	hubs   *HubManager
	clock  clock.Clock
	logger *slog.Logger
}

// NewBroadcaster creates a Broadcaster over hubs
func NewBroadcaster(hubs *HubManager, clk clock.Clock, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubs:   hubs,
		clock:  clk,
		logger: logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// MatchChanged sends the new snapshot, then each appended event. Matches
// without subscribers are skipped.
func (b *Broadcaster) MatchChanged(ctx context.Context, change model.MatchChange) {
	hub := b.hubs.GetHub(change.Match.ID)
	if hub == nil {
		return
	}

	frame, err := SnapshotFrame(change.Match, clock.NowMs(b.clock))
	if err != nil {
		b.logger.Error("sse failed to encode snapshot",
			slog.String("match_id", string(change.Match.ID)),
			slog.String("error", err.Error()))
		return
	}
	hub.Broadcast(frame)

	for _, ev := range change.Appended {
		data, err := json.Marshal(ev)
		if err != nil {
			b.logger.Error("sse failed to encode event",
				slog.String("match_id", string(change.Match.ID)),
				slog.String("event_id", string(ev.ID)),
				slog.String("error", err.Error()))
			continue
		}
		hub.BroadcastEvent(EventLogAppend, string(data))
	}
}

// SnapshotFrame renders the match-update frame for m at now
func SnapshotFrame(m model.Match, now int64) ([]byte, error) {
	data, err := json.Marshal(scoreboard.Build(m, now))
	if err != nil {
		return nil, err
	}
	return formatSSEMessage(EventMatchUpdate, string(data)), nil
}
