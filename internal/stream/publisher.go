// Package stream mirrors the match event log onto Redis streams.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/hockeytracker/internal/model"
)

// DefaultMaxLen caps each stream (approximate trimming)
const DefaultMaxLen = 10000

// Key returns the stream a match's events are published to
func Key(prefix string, matchID model.MatchID) string {
	return fmt.Sprintf("%s.events.%s", prefix, matchID)
}

// Publisher appends every new log entry to the match's stream
type Publisher struct {
	client *redis.Client
	prefix string
	maxLen int64
	logger *slog.Logger
}

// NewPublisher creates a Publisher. maxLen <= 0 uses DefaultMaxLen.
func NewPublisher(client *redis.Client, prefix string, maxLen int64, logger *slog.Logger) *Publisher {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Publisher{
		client: client,
		prefix: prefix,
		maxLen: maxLen,
		logger: logger.With(slog.String("component", "stream")),
	}
}

// PublishEvent XADDs one event
func (p *Publisher) PublishEvent(ctx context.Context, matchID model.MatchID, ev model.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling event %s: %w", ev.ID, err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: Key(p.prefix, matchID),
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data":     string(data),
			"match_id": string(matchID),
			"event_id": string(ev.ID),
			"type":     string(ev.Type()),
		},
	}).Err()
}

// MatchChanged publishes the events appended by a change. Undo removes
// entries from the log but the stream keeps them; consumers see an "undo"
// marker instead.
func (p *Publisher) MatchChanged(ctx context.Context, change model.MatchChange) {
	for _, ev := range change.Appended {
		if err := p.PublishEvent(ctx, change.Match.ID, ev); err != nil {
			p.logger.Error("failed to publish event",
				slog.String("match_id", string(change.Match.ID)),
				slog.String("event_id", string(ev.ID)),
				slog.String("error", err.Error()))
		}
	}

	if change.Action == model.ActionUndo {
		err := p.client.XAdd(ctx, &redis.XAddArgs{
			Stream: Key(p.prefix, change.Match.ID),
			MaxLen: p.maxLen,
			Approx: true,
			Values: map[string]interface{}{
				"match_id": string(change.Match.ID),
				"type":     model.ActionUndo,
			},
		}).Err()
		if err != nil {
			p.logger.Error("failed to publish undo",
				slog.String("match_id", string(change.Match.ID)),
				slog.String("error", err.Error()))
		}
	}
}

// Entry is one decoded stream record
type Entry struct {
	StreamID string
	Type     string
	Event    *model.Event // nil for undo markers
}

// Read returns up to count records of a match's stream in order. count <= 0
// reads everything.
func Read(ctx context.Context, client *redis.Client, prefix string, matchID model.MatchID, count int64) ([]Entry, error) {
	var msgs []redis.XMessage
	var err error
	if count > 0 {
		msgs, err = client.XRangeN(ctx, Key(prefix, matchID), "-", "+", count).Result()
	} else {
		msgs, err = client.XRange(ctx, Key(prefix, matchID), "-", "+").Result()
	}
	if err != nil {
		return nil, fmt.Errorf("reading stream: %w", err)
	}

	out := make([]Entry, 0, len(msgs))
	for _, msg := range msgs {
		e := Entry{StreamID: msg.ID}
		e.Type, _ = msg.Values["type"].(string)
		if raw, ok := msg.Values["data"].(string); ok {
			var ev model.Event
			if err := json.Unmarshal([]byte(raw), &ev); err != nil {
				return nil, fmt.Errorf("decoding stream entry %s: %w", msg.ID, err)
			}
			e.Event = &ev
		}
		out = append(out, e)
	}
	return out, nil
}
