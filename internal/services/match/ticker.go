package match

import (
	"context"
	"log/slog"
	"time"
)

// DefaultTickInterval is how often running clocks are re-evaluated
const DefaultTickInterval = 100 * time.Millisecond

// Ticker drives Controller.Tick for every running match on a fixed cadence
type Ticker struct {
	controller *Controller
	interval   time.Duration
	logger     *slog.Logger
}

// NewTicker creates a Ticker. A non-positive interval uses DefaultTickInterval.
func NewTicker(controller *Controller, interval time.Duration, logger *slog.Logger) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Ticker{
		controller: controller,
		interval:   interval,
		logger:     logger,
	}
}

// Run ticks until ctx is cancelled
func (t *Ticker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Info("match ticker started", slog.Duration("interval", t.interval))

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("match ticker stopped")
			return
		case <-ticker.C:
			t.TickAll(ctx)
		}
	}
}

// TickAll runs one tick for every match whose clock is running
func (t *Ticker) TickAll(ctx context.Context) {
	running, err := t.controller.RunningMatchIDs(ctx)
	if err != nil {
		t.logger.Error("failed to list running matches", slog.String("error", err.Error()))
		return
	}
	for _, id := range running {
		if _, err := t.controller.Tick(ctx, id); err != nil {
			t.logger.Error("tick failed",
				slog.String("match_id", string(id)),
				slog.String("error", err.Error()),
			)
		}
	}
}
