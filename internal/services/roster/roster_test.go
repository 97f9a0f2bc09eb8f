package roster

import (
	"testing"

	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/stretchr/testify/suite"
)

type RosterSuite struct {
	suite.Suite
	players []model.Player
}

func TestRosterSuite(t *testing.T) {
	suite.Run(t, new(RosterSuite))
}

func (s *RosterSuite) SetupTest() {
	s.players = []model.Player{
		{ID: "p9", Number: "9", Name: "Skater Nine"},
		{ID: "p12", Number: "12", Name: "Skater Twelve"},
		{ID: "g31", Number: "31", Name: "Goalie One", IsGoalie: true},
		{ID: "g35", Number: "35", Name: "Goalie Two", IsGoalie: true},
	}
}

func (s *RosterSuite) player(id model.PlayerID) *model.Player {
	for i := range s.players {
		if s.players[i].ID == id {
			return &s.players[i]
		}
	}
	s.FailNow("player not found", string(id))
	return nil
}

func (s *RosterSuite) goaliesOnIce() int {
	n := 0
	for _, p := range s.players {
		if p.IsGoalie && p.OnIce {
			n++
		}
	}
	return n
}

// Toggle tests

func (s *RosterSuite) TestToggleOnWhileStoppedLeavesEnteredAtNil() {
	transitions, err := Toggle(s.players, "p9", false, 1000)
	s.Require().NoError(err)

	s.Equal([]Transition{{PlayerID: "p9", OnIce: true}}, transitions)
	s.True(s.player("p9").OnIce)
	s.Nil(s.player("p9").EnteredAt)
}

func (s *RosterSuite) TestToggleOnWhileRunningStampsEntry() {
	_, err := Toggle(s.players, "p9", true, 1000)
	s.Require().NoError(err)

	s.Require().NotNil(s.player("p9").EnteredAt)
	s.Equal(int64(1000), *s.player("p9").EnteredAt)
}

func (s *RosterSuite) TestToggleOffAccruesTOI() {
	_, _ = Toggle(s.players, "p9", true, 1000)

	transitions, err := Toggle(s.players, "p9", true, 46999)
	s.Require().NoError(err)

	s.Equal([]Transition{{PlayerID: "p9", OnIce: false}}, transitions)
	s.False(s.player("p9").OnIce)
	s.Nil(s.player("p9").EnteredAt)
	s.Equal(45, s.player("p9").TOISeconds)
}

func (s *RosterSuite) TestToggleUnknownPlayer() {
	_, err := Toggle(s.players, "nope", false, 0)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *RosterSuite) TestSecondGoalieBenchesFirst() {
	_, _ = Toggle(s.players, "g31", true, 0)

	transitions, err := Toggle(s.players, "g35", true, 30000)
	s.Require().NoError(err)

	s.Equal([]Transition{
		{PlayerID: "g31", OnIce: false},
		{PlayerID: "g35", OnIce: true},
	}, transitions)
	s.False(s.player("g31").OnIce)
	s.Equal(30, s.player("g31").TOISeconds)
	s.True(s.player("g35").OnIce)
	s.Equal(1, s.goaliesOnIce())
}

func (s *RosterSuite) TestAtMostOneGoalieOverToggleSequences() {
	sequence := []model.PlayerID{"g31", "g35", "p9", "g31", "g31", "g35", "g31", "p12", "g35"}
	for i, id := range sequence {
		_, err := Toggle(s.players, id, i%2 == 0, int64(i*1000))
		s.Require().NoError(err)
		s.LessOrEqual(s.goaliesOnIce(), 1)
	}
}

// Shift tests

func (s *RosterSuite) TestTOIIndependentOfPauseCycles() {
	_, _ = Toggle(s.players, "p9", false, 0)

	// three running intervals of 10.5s, 20.9s and 33.6s
	intervals := [][2]int64{{0, 10500}, {20000, 40900}, {50000, 83600}}
	for _, iv := range intervals {
		StartShifts(s.players, iv[0])
		EndShifts(s.players, iv[1])
	}

	s.Equal(10+20+33, s.player("p9").TOISeconds)
	s.Nil(s.player("p9").EnteredAt)
}

func (s *RosterSuite) TestStartShiftsOnlyStampsOnIce() {
	_, _ = Toggle(s.players, "p9", false, 0)
	StartShifts(s.players, 5000)

	s.NotNil(s.player("p9").EnteredAt)
	s.Nil(s.player("p12").EnteredAt)
}

func (s *RosterSuite) TestBenchAllReportsChangedPlayers() {
	_, _ = Toggle(s.players, "p9", true, 0)
	_, _ = Toggle(s.players, "g31", true, 0)

	transitions := BenchAll(s.players, 12000)

	s.Equal([]Transition{{PlayerID: "p9"}, {PlayerID: "g31"}}, transitions)
	s.Equal(0, OnIceCount(s.players))
	s.Equal(12, s.player("p9").TOISeconds)
	s.Equal(12, s.player("g31").TOISeconds)
}

func (s *RosterSuite) TestLiveTOI() {
	_, _ = Toggle(s.players, "p9", true, 0)
	s.player("p9").TOISeconds = 100

	s.Equal(105, LiveTOI(*s.player("p9"), true, 5999))
	s.Equal(100, LiveTOI(*s.player("p9"), false, 5999))
	s.Equal(0, LiveTOI(*s.player("p12"), true, 5999))
}

// Stat tests

func (s *RosterSuite) TestUpdateStatFloorsAtZero() {
	value, err := UpdateStat(s.players, "p9", model.StatShots, 2)
	s.Require().NoError(err)
	s.Equal(2, value)

	value, err = UpdateStat(s.players, "p9", model.StatShots, -5)
	s.Require().NoError(err)
	s.Equal(0, value)
	s.Equal(0, s.player("p9").Shots)
}

func (s *RosterSuite) TestUpdateStatRejectsWrongRole() {
	_, err := UpdateStat(s.players, "p9", model.StatSaves, 1)
	s.ErrorIs(err, model.ErrInvalidStat)

	_, err = UpdateStat(s.players, "g31", model.StatHits, 1)
	s.ErrorIs(err, model.ErrInvalidStat)

	_, err = UpdateStat(s.players, "p9", model.StatPlusMinus, 1)
	s.ErrorIs(err, model.ErrInvalidStat)
}

func (s *RosterSuite) TestUpdateStatZoneEntries() {
	value, err := UpdateStat(s.players, "p12", model.StatZoneEntries, 1)
	s.Require().NoError(err)
	s.Equal(1, value)
	s.Equal(1, s.player("p12").ZoneEntries)
}

// Goal tests

func (s *RosterSuite) TestApplyAndRevertGoalRoundTrip() {
	ids := []model.PlayerID{"p9", "g31"}
	s.player("g31").GoalsAgainst = 2

	ApplyGoal(s.players, ids, model.SideThem)
	s.Equal(-1, s.player("p9").PlusMinus)
	s.Equal(-1, s.player("g31").PlusMinus)
	s.Equal(3, s.player("g31").GoalsAgainst)

	RevertGoal(s.players, ids, model.SideThem)
	s.Equal(0, s.player("p9").PlusMinus)
	s.Equal(0, s.player("g31").PlusMinus)
	s.Equal(2, s.player("g31").GoalsAgainst)
}

func (s *RosterSuite) TestOurGoalDoesNotChargeGoalie() {
	ApplyGoal(s.players, []model.PlayerID{"g31"}, model.SideUs)
	s.Equal(1, s.player("g31").PlusMinus)
	s.Equal(0, s.player("g31").GoalsAgainst)
}

func (s *RosterSuite) TestRevertFloorsGoalsAgainst() {
	RevertGoal(s.players, []model.PlayerID{"g31"}, model.SideThem)
	s.Equal(0, s.player("g31").GoalsAgainst)
	s.Equal(1, s.player("g31").PlusMinus)
}

func (s *RosterSuite) TestResetAllClearsStats() {
	_, _ = Toggle(s.players, "p9", true, 0)
	s.player("p9").Shots = 4
	s.player("p9").PlusMinus = 2
	s.player("p9").TOISeconds = 50

	ResetAll(s.players)

	p := s.player("p9")
	s.False(p.OnIce)
	s.Nil(p.EnteredAt)
	s.Zero(p.Shots)
	s.Zero(p.PlusMinus)
	s.Zero(p.TOISeconds)
	s.Equal("9", p.Number)
	s.Equal("Skater Nine", p.Name)
}

// Leaderboard tests

func (s *RosterSuite) TestLeaderboardOrdering() {
	s.player("p9").Shots = 3
	s.player("p12").Shots = 3
	s.player("g31").Shots = 5

	board := Leaderboard(s.players, model.StatShots, 2)

	s.Require().Len(board, 2)
	s.Equal(model.PlayerID("g31"), board[0].ID)
	s.Equal(model.PlayerID("p9"), board[1].ID)
}

func (s *RosterSuite) TestLeaderboardFallsBackToName() {
	players := []model.Player{
		{ID: "b", Number: "B", Name: "Bravo"},
		{ID: "a", Number: "A", Name: "Alpha"},
	}
	board := Leaderboard(players, model.StatHits, DefaultLeaderboardSize)
	s.Equal(model.PlayerID("a"), board[0].ID)
}
