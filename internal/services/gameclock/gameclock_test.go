package gameclock

import (
	"testing"

	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type GameClockSuite struct {
	suite.Suite
	clock model.GameClock
}

func TestGameClockSuite(t *testing.T) {
	suite.Run(t, new(GameClockSuite))
}

func (s *GameClockSuite) SetupTest() {
	s.clock = model.GameClock{}
}

func ms(v int64) *int64 { return &v }

func (s *GameClockSuite) TestStartSetsLastStartedAt() {
	s.True(Start(&s.clock, 1000))
	s.True(s.clock.Running)
	s.Require().NotNil(s.clock.LastStartedAt)
	s.Equal(int64(1000), *s.clock.LastStartedAt)
}

func (s *GameClockSuite) TestStartIsNoOpWhenRunning() {
	Start(&s.clock, 1000)
	s.False(Start(&s.clock, 5000))
	s.Equal(int64(1000), *s.clock.LastStartedAt)
}

func (s *GameClockSuite) TestPauseAccumulatesElapsed() {
	Start(&s.clock, 1000)
	s.True(Pause(&s.clock, 4500))
	s.False(s.clock.Running)
	s.Nil(s.clock.LastStartedAt)
	s.Equal(int64(3500), s.clock.ElapsedMs)

	Start(&s.clock, 10000)
	Pause(&s.clock, 11000)
	s.Equal(int64(4500), s.clock.ElapsedMs)
}

func (s *GameClockSuite) TestPauseIsNoOpWhenStopped() {
	s.False(Pause(&s.clock, 1000))
	s.Equal(int64(0), s.clock.ElapsedMs)
}

func (s *GameClockSuite) TestLiveElapsedIncludesRunningInterval() {
	s.clock.ElapsedMs = 2000
	Start(&s.clock, 10000)
	s.Equal(int64(2500), LiveElapsedMs(s.clock, 10500))
}

func (s *GameClockSuite) TestResetKeepsCountdown() {
	SetCountdown(&s.clock, ms(60000))
	Start(&s.clock, 0)
	Pause(&s.clock, 30000)

	Reset(&s.clock)

	s.Equal(int64(0), s.clock.ElapsedMs)
	s.False(s.clock.Running)
	s.Require().NotNil(s.clock.CountdownDurationMs)
	s.Equal(int64(60000), *s.clock.CountdownDurationMs)
}

func (s *GameClockSuite) TestSetCountdownNonPositiveClears() {
	SetCountdown(&s.clock, ms(60000))
	SetCountdown(&s.clock, ms(0))
	s.Nil(s.clock.CountdownDurationMs)

	SetCountdown(&s.clock, ms(60000))
	SetCountdown(&s.clock, nil)
	s.Nil(s.clock.CountdownDurationMs)
}

func (s *GameClockSuite) TestRemainingFlooredAtZero() {
	SetCountdown(&s.clock, ms(1000))
	s.clock.ElapsedMs = 5000

	remaining, ok := RemainingMs(s.clock, 0)
	s.True(ok)
	s.Equal(int64(0), remaining)
}

func (s *GameClockSuite) TestRemainingWithoutCountdown() {
	_, ok := RemainingMs(s.clock, 0)
	s.False(ok)
}

func (s *GameClockSuite) TestExpired() {
	SetCountdown(&s.clock, ms(60000))
	Start(&s.clock, 0)

	s.False(Expired(s.clock, 59999))
	s.True(Expired(s.clock, 60000))

	Pause(&s.clock, 60000)
	s.False(Expired(s.clock, 60000))
}

func (s *GameClockSuite) TestCountdownDisplayRoundsUp() {
	SetCountdown(&s.clock, ms(60000))
	s.clock.ElapsedMs = 59200

	_, remaining := Stamps(s.clock, 0)
	s.Equal("00:01", remaining)
}

func (s *GameClockSuite) TestStampsWithoutCountdown() {
	s.clock.ElapsedMs = 65900
	elapsed, remaining := Stamps(s.clock, 0)
	s.Equal("01:05", elapsed)
	s.Empty(remaining)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "00:00", FormatElapsed(0))
	assert.Equal(t, "00:00", FormatElapsed(999))
	assert.Equal(t, "00:01", FormatRemaining(1))
	assert.Equal(t, "00:00", FormatRemaining(0))
	assert.Equal(t, "02:00", FormatRemaining(120000))
	assert.Equal(t, "00:00", FormatElapsed(-500))
	assert.Equal(t, "125:00", FormatElapsed(125*60*1000))
	assert.Equal(t, "01:05", FormatSeconds(65))
}
