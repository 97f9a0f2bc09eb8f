package match

import (
	"context"
	"time"
)

func (s *ControllerSuite) TestTickAllOnlyTouchesRunningMatches() {
	other, err := s.controller.CreateMatch(s.ctx, s.teamID, "Second", "", "")
	s.Require().NoError(err)
	s.countdown(1000)
	_, _ = s.controller.StartClock(s.ctx, s.matchID)

	s.clock.Advance(2 * time.Second)
	NewTicker(s.controller, 0, s.controller.logger).TickAll(s.ctx)

	s.False(s.match().Clock.Running)
	m, err := s.controller.GetMatch(s.ctx, other.ID)
	s.Require().NoError(err)
	s.False(m.Clock.Running)
}

func (s *ControllerSuite) TestTickerRunStopsOnCancel() {
	s.countdown(1000)
	_, _ = s.controller.StartClock(s.ctx, s.matchID)
	s.clock.Advance(2 * time.Second)

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan struct{})
	go func() {
		NewTicker(s.controller, 5*time.Millisecond, s.controller.logger).Run(ctx)
		close(done)
	}()

	s.Eventually(func() bool {
		m, err := s.controller.GetMatch(s.ctx, s.matchID)
		return err == nil && !m.Clock.Running
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("ticker did not stop")
	}
}
