package model

// GameClock is the match clock. Times are epoch milliseconds.
type GameClock struct {
	Running             bool   `json:"running"`
	ElapsedMs           int64  `json:"elapsedMs"`     // accumulated while paused
	LastStartedAt       *int64 `json:"lastStartedAt"` // non-nil iff Running
	CountdownDurationMs *int64 `json:"countdownDurationMs"`
}

// HasCountdown returns true if a period length is configured
func (c *GameClock) HasCountdown() bool {
	return c.CountdownDurationMs != nil && *c.CountdownDurationMs > 0
}

// Clone returns a copy that shares no pointers with c
func (c GameClock) Clone() GameClock {
	if c.LastStartedAt != nil {
		v := *c.LastStartedAt
		c.LastStartedAt = &v
	}
	if c.CountdownDurationMs != nil {
		v := *c.CountdownDurationMs
		c.CountdownDurationMs = &v
	}
	return c
}
