package match

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hockeytracker/internal/dependencies/mocks"
	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/team"
	"github.com/mcoot/hockeytracker/internal/storage/memory"
	"github.com/mcoot/hockeytracker/internal/store"
	"github.com/mcoot/hockeytracker/internal/testutil"
)

type recordingNotifier struct {
	mu      sync.Mutex
	changes []model.MatchChange
}

func (r *recordingNotifier) MatchChanged(ctx context.Context, change model.MatchChange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, change)
}

func (r *recordingNotifier) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.changes))
	for i, c := range r.changes {
		out[i] = c.Action
	}
	return out
}

type ControllerSuite struct {
	suite.Suite
	clock      *mocks.MockClock
	ids        *mocks.MockIDs
	store      *store.Store
	teams      *team.Controller
	controller *Controller
	notifier   *recordingNotifier
	ctx        context.Context

	teamID  model.TeamID
	matchID model.MatchID
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC))
	s.ids = mocks.NewMockIDs()
	s.store = store.New(memory.New(), testutil.NopLogger())
	s.teams = team.NewController(s.store, s.ids, testutil.NopLogger())
	s.notifier = &recordingNotifier{}
	s.controller = NewController(s.store, s.clock, s.ids, testutil.NopLogger(), s.notifier)
	s.ctx = context.Background()

	s.ids.Queue("team-1", "p9", "p12", "p17", "g31", "g35", "match-1")
	t, err := s.teams.CreateTeam(s.ctx, team.Input{
		Name: "Wolves",
		Players: []team.PlayerInput{
			{Number: "9", Name: "Nine"},
			{Number: "12", Name: "Twelve"},
			{Number: "17", Name: "Seventeen"},
			{Number: "31", Name: "Starter", IsGoalie: true},
			{Number: "35", Name: "Backup", IsGoalie: true},
		},
	})
	s.Require().NoError(err)
	s.teamID = t.ID

	m, err := s.controller.CreateMatch(s.ctx, s.teamID, "Opener", "", "Bears")
	s.Require().NoError(err)
	s.matchID = m.ID
}

func (s *ControllerSuite) match() *model.Match {
	m, err := s.controller.GetMatch(s.ctx, s.matchID)
	s.Require().NoError(err)
	return m
}

func (s *ControllerSuite) player(id model.PlayerID) model.Player {
	p := s.match().GetPlayer(id)
	s.Require().NotNil(p)
	return *p
}

func (s *ControllerSuite) toggle(id model.PlayerID) {
	_, err := s.controller.ToggleOnIce(s.ctx, s.matchID, id)
	s.Require().NoError(err)
}

func (s *ControllerSuite) countdown(ms int64) {
	_, err := s.controller.SetCountdown(s.ctx, s.matchID, &ms)
	s.Require().NoError(err)
}

func (s *ControllerSuite) addPenalty(side model.Side, number string, typ model.PenaltyType) {
	_, err := s.controller.AddPenalty(s.ctx, s.matchID, PenaltyInput{Team: side, PlayerNumber: number, Type: typ})
	s.Require().NoError(err)
}

// Lifecycle tests

func (s *ControllerSuite) TestCreateMatchSnapshotsRoster() {
	m := s.match()

	s.Equal(model.MatchID("match-1"), m.ID)
	s.Equal("Wolves", s.mustTeam().Name)
	s.Equal("Wolves", m.OurTeamName)
	s.Equal("Bears", m.OpponentTeamName)
	s.Equal(model.DefaultOnIceCap, m.OnIceCap)
	s.Len(m.Players, 5)
	s.Empty(m.Events)
	s.Equal(s.clock.Now().UnixMilli(), m.StartedAt)

	_, err := s.teams.AddPlayer(s.ctx, s.teamID, team.PlayerInput{Number: "4", Name: "Late"})
	s.Require().NoError(err)
	s.Len(s.match().Players, 5)
}

func (s *ControllerSuite) mustTeam() *model.Team {
	t, err := s.teams.GetTeam(s.ctx, s.teamID)
	s.Require().NoError(err)
	return t
}

func (s *ControllerSuite) TestCreateMatchValidation() {
	_, err := s.controller.CreateMatch(s.ctx, s.teamID, "  ", "", "")
	s.ErrorIs(err, model.ErrNameRequired)

	_, err = s.controller.CreateMatch(s.ctx, "ghost", "Second", "", "")
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *ControllerSuite) TestCreateMatchTeamNames() {
	s.ids.Queue("match-2", "match-3")

	m, err := s.controller.CreateMatch(s.ctx, s.teamID, "Second", "  ", "")
	s.Require().NoError(err)
	s.Equal("Wolves", m.OurTeamName)
	s.Equal(model.DefaultOpponentTeamName, m.OpponentTeamName)

	m, err = s.controller.CreateMatch(s.ctx, s.teamID, "Third", "Wolves B", "Bears")
	s.Require().NoError(err)
	s.Equal("Wolves B", m.OurTeamName)
}

func (s *ControllerSuite) TestSelectAndEndMatch() {
	s.Require().NoError(s.controller.EndMatch(s.ctx))
	_, err := s.controller.CurrentMatch(s.ctx)
	s.ErrorIs(err, model.ErrMatchNotFound)

	s.Require().NoError(s.controller.SelectMatch(s.ctx, s.matchID))
	current, err := s.controller.CurrentMatch(s.ctx)
	s.Require().NoError(err)
	s.Equal(s.matchID, current.ID)

	matches, err := s.controller.ListMatches(s.ctx, s.teamID)
	s.Require().NoError(err)
	s.Len(matches, 1)

	matches, err = s.controller.ListMatches(s.ctx, "other")
	s.Require().NoError(err)
	s.Empty(matches)
}

func (s *ControllerSuite) TestUnknownMatch() {
	_, err := s.controller.StartClock(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

// End-to-end scenario

func (s *ControllerSuite) TestGoalAndUndoScenario() {
	s.toggle("p9")
	s.toggle("g31")

	_, err := s.controller.StartClock(s.ctx, s.matchID)
	s.Require().NoError(err)
	s.clock.Advance(65 * time.Second)

	_, err = s.controller.RecordGoal(s.ctx, s.matchID, GoalInput{Scorer: model.SideUs, ScorerNumber: "9"})
	s.Require().NoError(err)

	_, err = s.controller.PauseClock(s.ctx, s.matchID)
	s.Require().NoError(err)

	nine, goalie := s.player("p9"), s.player("g31")
	s.Equal(1, nine.PlusMinus)
	s.Equal(0, nine.Shots)
	s.Equal(1, goalie.PlusMinus)
	s.Equal(0, goalie.GoalsAgainst)
	s.Equal(65, nine.TOISeconds)
	s.Equal(65, goalie.TOISeconds)

	m := s.match()
	s.Require().Len(m.Events, 3)
	goal, ok := m.Events[2].Payload.(model.GoalPayload)
	s.Require().True(ok)
	s.Equal([]model.PlayerID{"p9", "g31"}, goal.OurOnIceIDs)
	s.Equal("01:05", m.Events[2].ElapsedTime)

	_, err = s.controller.UndoLast(s.ctx, s.matchID)
	s.Require().NoError(err)

	s.Equal(0, s.player("p9").PlusMinus)
	s.Equal(0, s.player("g31").PlusMinus)
	s.Len(s.match().Events, 2)
}

func (s *ControllerSuite) TestGoalUndoRoundTripForOpponentGoal() {
	s.toggle("p12")
	s.toggle("g31")
	before := s.match()

	_, err := s.controller.RecordGoal(s.ctx, s.matchID, GoalInput{Scorer: model.SideThem, ScorerNumber: "88"})
	s.Require().NoError(err)
	s.Equal(-1, s.player("p12").PlusMinus)
	s.Equal(1, s.player("g31").GoalsAgainst)

	_, err = s.controller.UndoLast(s.ctx, s.matchID)
	s.Require().NoError(err)

	after := s.match()
	s.Equal(before.Players, after.Players)
	s.Equal(before.Events, after.Events)
}

func (s *ControllerSuite) TestUndoIsNoOpUnlessLastIsGoal() {
	_, err := s.controller.UndoLast(s.ctx, s.matchID)
	s.Require().NoError(err)

	_, err = s.controller.RecordGoal(s.ctx, s.matchID, GoalInput{Scorer: model.SideUs, ScorerNumber: "9"})
	s.Require().NoError(err)
	_, err = s.controller.UpdateStat(s.ctx, s.matchID, "p9", model.StatShots, 1)
	s.Require().NoError(err)

	_, err = s.controller.UndoLast(s.ctx, s.matchID)
	s.Require().NoError(err)
	s.Len(s.match().Events, 2)
}

func (s *ControllerSuite) TestGoalReleasesScoringSideMinorAndUndoKeepsItReleased() {
	s.addPenalty(model.SideUs, "12", model.PenaltyMinor)

	_, err := s.controller.RecordGoal(s.ctx, s.matchID, GoalInput{Scorer: model.SideUs, ScorerNumber: "17"})
	s.Require().NoError(err)
	s.True(s.match().Penalties[0].Served)

	_, err = s.controller.UndoLast(s.ctx, s.matchID)
	s.Require().NoError(err)
	s.True(s.match().Penalties[0].Served)
}

func (s *ControllerSuite) TestRecordGoalRejectsBadSide() {
	_, err := s.controller.RecordGoal(s.ctx, s.matchID, GoalInput{Scorer: "HOME"})
	s.ErrorIs(err, model.ErrInvalidSide)
	s.Empty(s.match().Events)
}

func (s *ControllerSuite) TestRecordGoalRequiresScorerNumber() {
	s.toggle("p9")
	s.addPenalty(model.SideUs, "12", model.PenaltyMinor)
	before := s.match()
	notified := len(s.notifier.actions())

	for _, number := range []string{"", "   "} {
		_, err := s.controller.RecordGoal(s.ctx, s.matchID, GoalInput{Scorer: model.SideUs, ScorerNumber: number})
		s.ErrorIs(err, model.ErrScorerNumberRequired)
	}

	after := s.match()
	s.Equal(before.Events, after.Events)
	s.Equal(before.Players, after.Players)
	s.Equal(before.Penalties, after.Penalties)
	s.Equal(0, s.player("p9").PlusMinus)
	s.Len(s.notifier.actions(), notified)
}

// Roster tests

func (s *ControllerSuite) TestSecondGoalieAutoBenchesFirst() {
	s.toggle("g31")
	s.toggle("g35")

	s.False(s.player("g31").OnIce)
	s.True(s.player("g35").OnIce)

	events := s.match().Events
	s.Require().Len(events, 3)
	s.Equal(model.OnIceChangePayload{PlayerID: "g31", OnIce: false}, events[1].Payload)
	s.Equal(model.OnIceChangePayload{PlayerID: "g35", OnIce: true}, events[2].Payload)
}

func (s *ControllerSuite) TestToggleUnknownPlayer() {
	_, err := s.controller.ToggleOnIce(s.ctx, s.matchID, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.Empty(s.match().Events)
}

func (s *ControllerSuite) TestTOIIdempotentUnderPauseResume() {
	s.toggle("p9")
	for i := 0; i < 4; i++ {
		_, err := s.controller.StartClock(s.ctx, s.matchID)
		s.Require().NoError(err)
		s.clock.Advance(15*time.Second + 700*time.Millisecond)
		_, err = s.controller.PauseClock(s.ctx, s.matchID)
		s.Require().NoError(err)
		s.clock.Advance(10 * time.Second)
	}

	p := s.player("p9")
	s.Equal(4*15, p.TOISeconds)
	s.Nil(p.EnteredAt)
	s.Equal(int64(4*15700), s.match().Clock.ElapsedMs)
}

func (s *ControllerSuite) TestStartTwiceDoesNotNotify() {
	_, err := s.controller.StartClock(s.ctx, s.matchID)
	s.Require().NoError(err)
	_, err = s.controller.StartClock(s.ctx, s.matchID)
	s.Require().NoError(err)

	s.Equal([]string{"start"}, s.notifier.actions())
}

func (s *ControllerSuite) TestUpdateStat() {
	m, err := s.controller.UpdateStat(s.ctx, s.matchID, "g31", model.StatSaves, 3)
	s.Require().NoError(err)
	s.Equal(3, m.GetPlayer("g31").Saves)

	m, err = s.controller.UpdateStat(s.ctx, s.matchID, "g31", model.StatSaves, -5)
	s.Require().NoError(err)
	s.Equal(0, m.GetPlayer("g31").Saves)
	s.Equal(model.StatChangePayload{PlayerID: "g31", Stat: model.StatSaves, Value: 0, Delta: -5}, m.Events[1].Payload)

	_, err = s.controller.UpdateStat(s.ctx, s.matchID, "g31", model.StatHits, 1)
	s.ErrorIs(err, model.ErrInvalidStat)
	s.Len(s.match().Events, 2)
}

func (s *ControllerSuite) TestBenchAllEmitsEvents() {
	s.toggle("p9")
	s.toggle("p12")

	m, err := s.controller.BenchAll(s.ctx, s.matchID)
	s.Require().NoError(err)
	s.Len(m.Events, 4)
	s.False(m.GetPlayer("p9").OnIce)

	_, err = s.controller.BenchAll(s.ctx, s.matchID)
	s.Require().NoError(err)
	s.Len(s.match().Events, 4)
}

func (s *ControllerSuite) TestToggleMyPlayer() {
	m, err := s.controller.ToggleMyPlayer(s.ctx, s.matchID, "p9")
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{"p9"}, m.MyPlayerIDs)

	m, err = s.controller.ToggleMyPlayer(s.ctx, s.matchID, "p9")
	s.Require().NoError(err)
	s.Empty(m.MyPlayerIDs)

	_, err = s.controller.ToggleMyPlayer(s.ctx, s.matchID, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Period and reset tests

func (s *ControllerSuite) TestNewPeriodKeepsStatsAndPenalties() {
	s.countdown(20 * 60 * 1000)
	s.toggle("p9")
	_, _ = s.controller.StartClock(s.ctx, s.matchID)
	s.clock.Advance(30 * time.Second)
	_, _ = s.controller.UpdateStat(s.ctx, s.matchID, "p9", model.StatShots, 2)
	s.addPenalty(model.SideThem, "4", model.PenaltyMajor)

	m, err := s.controller.NewPeriod(s.ctx, s.matchID)
	s.Require().NoError(err)

	s.False(m.Clock.Running)
	s.Equal(int64(0), m.Clock.ElapsedMs)
	s.Equal(int64(20*60*1000), *m.Clock.CountdownDurationMs)
	p := m.GetPlayer("p9")
	s.False(p.OnIce)
	s.Equal(30, p.TOISeconds)
	s.Equal(2, p.Shots)
	s.Len(m.Penalties, 1)
	s.False(m.Penalties[0].Served)
	s.Len(m.Events, 3)
}

func (s *ControllerSuite) TestNewPeriodCarriesPenaltyTimeLeft() {
	s.countdown(20 * 60 * 1000)
	_, _ = s.controller.StartClock(s.ctx, s.matchID)
	s.clock.Advance(19 * time.Minute)
	s.addPenalty(model.SideThem, "4", model.PenaltyMinor)
	s.clock.Advance(time.Minute)

	_, err := s.controller.NewPeriod(s.ctx, s.matchID)
	s.Require().NoError(err)

	snap, err := s.controller.Snapshot(s.ctx, s.matchID)
	s.Require().NoError(err)
	s.Require().Len(snap.ActivePenalties, 1)
	s.Equal(60, snap.ActivePenalties[0].RemainingSeconds)
	s.Equal("5vs4", snap.Situation)

	_, _ = s.controller.StartClock(s.ctx, s.matchID)
	s.clock.Advance(time.Minute)
	m, err := s.controller.Tick(s.ctx, s.matchID)
	s.Require().NoError(err)
	s.True(m.Penalties[0].Served)
}

func (s *ControllerSuite) TestResetClockAndMatch() {
	s.countdown(60000)
	s.toggle("p9")
	_, _ = s.controller.ToggleMyPlayer(s.ctx, s.matchID, "p9")
	_, _ = s.controller.StartClock(s.ctx, s.matchID)
	s.clock.Advance(10 * time.Second)
	_, _ = s.controller.RecordGoal(s.ctx, s.matchID, GoalInput{Scorer: model.SideUs, ScorerNumber: "9"})

	m, err := s.controller.ResetClockAndMatch(s.ctx, s.matchID)
	s.Require().NoError(err)

	s.False(m.Clock.Running)
	s.Equal(int64(0), m.Clock.ElapsedMs)
	s.Equal(int64(60000), *m.Clock.CountdownDurationMs)
	s.Empty(m.Events)
	s.Empty(m.MyPlayerIDs)
	p := m.GetPlayer("p9")
	s.False(p.OnIce)
	s.Zero(p.PlusMinus)
	s.Zero(p.TOISeconds)
}

// Penalty tests

func (s *ControllerSuite) TestStrengthPenaltyBenchesOurOnIcePlayer() {
	s.toggle("p9")
	_, _ = s.controller.StartClock(s.ctx, s.matchID)
	s.clock.Advance(20 * time.Second)

	s.addPenalty(model.SideUs, "9", model.PenaltyMinor)

	m := s.match()
	s.False(m.GetPlayer("p9").OnIce)
	s.Equal(20, m.GetPlayer("p9").TOISeconds)
	s.Equal(int64(20000), m.Penalties[0].StartTimeMs)
	s.Equal(model.OnIceChangePayload{PlayerID: "p9", OnIce: false}, m.Events[len(m.Events)-1].Payload)
}

func (s *ControllerSuite) TestMisconductDoesNotBench() {
	s.toggle("p9")
	s.addPenalty(model.SideUs, "9", model.PenaltyMisconduct)
	s.True(s.player("p9").OnIce)
}

func (s *ControllerSuite) TestCoincidentPenaltyDoesNotBench() {
	s.toggle("p9")
	s.addPenalty(model.SideThem, "4", model.PenaltyMinor)
	s.addPenalty(model.SideUs, "9", model.PenaltyMinor)

	m := s.match()
	s.True(m.GetPlayer("p9").OnIce)
	s.True(m.Penalties[0].Coincident)
	s.True(m.Penalties[1].Coincident)
}

func (s *ControllerSuite) TestPenaltyValidation() {
	_, err := s.controller.AddPenalty(s.ctx, s.matchID, PenaltyInput{Team: model.SideUs, Type: model.PenaltyMinor})
	s.ErrorIs(err, model.ErrPlayerNumberRequired)
	s.Empty(s.match().Penalties)
}

func (s *ControllerSuite) TestEffectiveCapShrinksWithPenalties() {
	s.addPenalty(model.SideUs, "12", model.PenaltyMinor)
	s.addPenalty(model.SideUs, "17", model.PenaltyMinor)

	snap, err := s.controller.Snapshot(s.ctx, s.matchID)
	s.Require().NoError(err)
	s.Equal(4, snap.EffectiveCap)

	for _, n := range []string{"1", "2", "3"} {
		s.addPenalty(model.SideUs, n, model.PenaltyMajor)
	}
	snap, err = s.controller.Snapshot(s.ctx, s.matchID)
	s.Require().NoError(err)
	s.Equal(3, snap.EffectiveCap)
}

func (s *ControllerSuite) TestRemoveAndEarlyRelease() {
	s.addPenalty(model.SideThem, "4", model.PenaltyMajor)
	s.addPenalty(model.SideThem, "5", model.PenaltyMinor)
	m := s.match()
	major, minor := m.Penalties[0].ID, m.Penalties[1].ID

	_, err := s.controller.EarlyRelease(s.ctx, s.matchID, major)
	s.ErrorIs(err, model.ErrNotMinorPenalty)

	_, err = s.controller.EarlyRelease(s.ctx, s.matchID, minor)
	s.Require().NoError(err)

	_, err = s.controller.RemovePenalty(s.ctx, s.matchID, major)
	s.Require().NoError(err)

	for _, p := range s.match().Penalties {
		s.True(p.Served)
	}
}

func (s *ControllerSuite) TestRemoveServedPenaltyChangesNothing() {
	s.addPenalty(model.SideThem, "4", model.PenaltyMajor)
	penaltyID := s.match().Penalties[0].ID

	_, err := s.controller.RemovePenalty(s.ctx, s.matchID, penaltyID)
	s.Require().NoError(err)
	notified := len(s.notifier.actions())

	m, err := s.controller.RemovePenalty(s.ctx, s.matchID, penaltyID)
	s.Require().NoError(err)
	s.True(m.Penalties[0].Served)
	s.Len(s.notifier.actions(), notified)

	_, err = s.controller.RemovePenalty(s.ctx, s.matchID, "ghost")
	s.ErrorIs(err, model.ErrPenaltyNotFound)
}

// Tick tests

func (s *ControllerSuite) TestTickAutoPausesAtCountdownEnd() {
	s.countdown(60000)
	s.toggle("p9")
	_, _ = s.controller.StartClock(s.ctx, s.matchID)

	s.clock.Advance(59 * time.Second)
	_, err := s.controller.Tick(s.ctx, s.matchID)
	s.Require().NoError(err)
	s.True(s.match().Clock.Running)

	s.clock.Advance(1100 * time.Millisecond)
	m, err := s.controller.Tick(s.ctx, s.matchID)
	s.Require().NoError(err)
	s.False(m.Clock.Running)
	s.Equal(60, m.GetPlayer("p9").TOISeconds)
	s.Nil(m.GetPlayer("p9").EnteredAt)
}

func (s *ControllerSuite) TestTickExpiresPenaltiesWithoutReturningPlayer() {
	s.toggle("p9")
	_, _ = s.controller.StartClock(s.ctx, s.matchID)
	s.addPenalty(model.SideUs, "9", model.PenaltyMinor)

	s.clock.Advance(2 * time.Minute)
	m, err := s.controller.Tick(s.ctx, s.matchID)
	s.Require().NoError(err)

	s.True(m.Penalties[0].Served)
	s.False(m.GetPlayer("p9").OnIce)
}

func (s *ControllerSuite) TestTickWithoutChangesDoesNotNotify() {
	_, _ = s.controller.StartClock(s.ctx, s.matchID)
	_, err := s.controller.Tick(s.ctx, s.matchID)
	s.Require().NoError(err)
	s.Equal([]string{"start"}, s.notifier.actions())
}

func (s *ControllerSuite) TestCountdownDisplayOnEvents() {
	s.countdown(60000)
	_, _ = s.controller.StartClock(s.ctx, s.matchID)
	s.clock.Advance(59200 * time.Millisecond)

	m, err := s.controller.UpdateStat(s.ctx, s.matchID, "p9", model.StatHits, 1)
	s.Require().NoError(err)
	s.Equal("00:01", m.Events[0].RemainingTime)
	s.Equal("00:59", m.Events[0].ElapsedTime)
}

func (s *ControllerSuite) TestNotifierReceivesAppendedEvents() {
	s.toggle("g31")
	s.toggle("g35")

	s.notifier.mu.Lock()
	defer s.notifier.mu.Unlock()
	s.Require().Len(s.notifier.changes, 2)
	s.Len(s.notifier.changes[1].Appended, 2)
	s.Equal(s.matchID, s.notifier.changes[1].Match.ID)
}

func (s *ControllerSuite) TestConcurrentChangesNotifyInCommitOrder() {
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.controller.UpdateStat(s.ctx, s.matchID, "p9", model.StatHits, 1)
			s.NoError(err)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.controller.Tick(s.ctx, s.matchID)
			s.NoError(err)
		}()
	}
	wg.Wait()

	s.notifier.mu.Lock()
	defer s.notifier.mu.Unlock()
	s.Require().Len(s.notifier.changes, 20)
	for i, change := range s.notifier.changes {
		s.Equal(i+1, change.Match.GetPlayer("p9").Hits)
		s.Len(change.Match.Events, i+1)
	}
}

// View tests

func (s *ControllerSuite) TestTimelineAndLeaderboard() {
	s.toggle("p9")
	_, _ = s.controller.UpdateStat(s.ctx, s.matchID, "p12", model.StatShots, 2)
	_, _ = s.controller.UpdateStat(s.ctx, s.matchID, "p9", model.StatShots, 1)

	shifts, err := s.controller.Timeline(s.ctx, s.matchID, "p9")
	s.Require().NoError(err)
	s.Require().Len(shifts, 1)
	s.True(shifts[0].Open)
	s.Len(shifts[0].Events, 1)

	_, err = s.controller.Timeline(s.ctx, s.matchID, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	board, err := s.controller.Leaderboard(s.ctx, s.matchID, model.StatShots, 0)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p12"), board[0].ID)
	s.Equal(model.PlayerID("p9"), board[1].ID)
}

func (s *ControllerSuite) TestExportCSV() {
	_, _ = s.controller.UpdateStat(s.ctx, s.matchID, "p9", model.StatShots, 4)

	filename, data, err := s.controller.ExportCSV(s.ctx, s.matchID)
	s.Require().NoError(err)
	s.Equal("opener_2024-01-01.csv", filename)
	s.Contains(string(data), "Opener,Wolves,9,Nine,N,No,0,No,00:00,4,")

	_, _, err = s.controller.ExportCSV(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrMatchNotFound)
}
