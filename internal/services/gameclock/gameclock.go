// Package gameclock implements the pausable match clock with an optional
// countdown. All functions take a single now sample in epoch milliseconds.
package gameclock

import (
	"fmt"

	"github.com/mcoot/hockeytracker/internal/model"
)

// LiveElapsedMs returns accumulated elapsed time plus the current running interval
func LiveElapsedMs(c model.GameClock, now int64) int64 {
	if c.Running && c.LastStartedAt != nil {
		return c.ElapsedMs + (now - *c.LastStartedAt)
	}
	return c.ElapsedMs
}

// RemainingMs returns the countdown remaining floored at 0.
// ok is false when no countdown is configured.
func RemainingMs(c model.GameClock, now int64) (remaining int64, ok bool) {
	if !c.HasCountdown() {
		return 0, false
	}
	remaining = *c.CountdownDurationMs - LiveElapsedMs(c, now)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// Start begins a running interval. Returns false if already running.
func Start(c *model.GameClock, now int64) bool {
	if c.Running {
		return false
	}
	c.Running = true
	c.LastStartedAt = &now
	return true
}

// Pause folds the running interval into ElapsedMs. Returns false if not running.
func Pause(c *model.GameClock, now int64) bool {
	if !c.Running {
		return false
	}
	c.ElapsedMs = LiveElapsedMs(*c, now)
	c.Running = false
	c.LastStartedAt = nil
	return true
}

// Reset stops the clock at zero, keeping the countdown
func Reset(c *model.GameClock) {
	c.Running = false
	c.ElapsedMs = 0
	c.LastStartedAt = nil
}

// SetCountdown sets the period length. Nil or non-positive clears it.
func SetCountdown(c *model.GameClock, durationMs *int64) {
	if durationMs == nil || *durationMs <= 0 {
		c.CountdownDurationMs = nil
		return
	}
	d := *durationMs
	c.CountdownDurationMs = &d
}

// Expired reports whether a running countdown has reached zero
func Expired(c model.GameClock, now int64) bool {
	if !c.Running {
		return false
	}
	remaining, ok := RemainingMs(c, now)
	return ok && remaining <= 0
}

// FormatElapsed renders milliseconds as mm:ss, truncating partial seconds
func FormatElapsed(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return formatSeconds(ms / 1000)
}

// FormatRemaining renders milliseconds as mm:ss, rounding partial seconds up
func FormatRemaining(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return formatSeconds((ms + 999) / 1000)
}

// FormatSeconds renders whole seconds as mm:ss
func FormatSeconds(s int) string {
	if s < 0 {
		s = 0
	}
	return formatSeconds(int64(s))
}

func formatSeconds(s int64) string {
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// Stamps returns the elapsed and remaining strings recorded on events.
// remaining is empty when no countdown is configured.
func Stamps(c model.GameClock, now int64) (elapsed, remaining string) {
	elapsed = FormatElapsed(LiveElapsedMs(c, now))
	if r, ok := RemainingMs(c, now); ok {
		remaining = FormatRemaining(r)
	}
	return elapsed, remaining
}
