package team

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hockeytracker/internal/dependencies/mocks"
	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/storage/memory"
	"github.com/mcoot/hockeytracker/internal/store"
	"github.com/mcoot/hockeytracker/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	ids        *mocks.MockIDs
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.ids = mocks.NewMockIDs()
	st := store.New(memory.New(), testutil.NopLogger())
	s.controller = NewController(st, s.ids, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) wolves() Input {
	return Input{
		Name: "  Wolves ",
		Players: []PlayerInput{
			{Number: "9", Name: "jean paul marie"},
			{Number: "31", Name: "Goalie", IsGoalie: true},
		},
	}
}

func (s *ControllerSuite) TestCreateTeamSucceeds() {
	s.ids.Queue("team-1", "p9", "g31")

	t, err := s.controller.CreateTeam(s.ctx, s.wolves())
	s.Require().NoError(err)

	s.Equal(model.TeamID("team-1"), t.ID)
	s.Equal("Wolves", t.Name)
	s.Equal(model.DefaultOnIceCap, t.OnIceCap)
	s.Require().Len(t.Players, 2)
	s.Equal(model.PlayerID("p9"), t.Players[0].ID)
	s.Equal("JP", t.Players[0].Initials)
	s.True(t.Players[1].IsGoalie)

	nav, err := s.controller.Navigation(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.PhaseMatchSelection, nav.AppPhase)
	s.Require().NotNil(nav.CurrentTeamID)
	s.Equal(t.ID, *nav.CurrentTeamID)
}

func (s *ControllerSuite) TestCreateTeamValidation() {
	_, err := s.controller.CreateTeam(s.ctx, Input{Name: " ", Players: s.wolves().Players})
	s.ErrorIs(err, model.ErrNameRequired)

	_, err = s.controller.CreateTeam(s.ctx, Input{Name: "Wolves"})
	s.ErrorIs(err, model.ErrNoPlayers)

	_, err = s.controller.CreateTeam(s.ctx, Input{Name: "Wolves", Players: []PlayerInput{{Number: "9"}}})
	s.ErrorIs(err, model.ErrNameRequired)

	teams, err := s.controller.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Empty(teams)
}

func (s *ControllerSuite) TestUpdateTeamKeepsPlayerIDs() {
	t, err := s.controller.CreateTeam(s.ctx, s.wolves())
	s.Require().NoError(err)

	in := s.wolves()
	in.Name = "Wolves B"
	in.OnIceCap = 5
	in.Players[0].ID = t.Players[0].ID

	updated, err := s.controller.UpdateTeam(s.ctx, t.ID, in)
	s.Require().NoError(err)
	s.Equal("Wolves B", updated.Name)
	s.Equal(5, updated.OnIceCap)
	s.Equal(t.Players[0].ID, updated.Players[0].ID)
	s.NotEqual(t.Players[1].ID, updated.Players[1].ID)
}

func (s *ControllerSuite) TestUpdateUnknownTeam() {
	_, err := s.controller.UpdateTeam(s.ctx, "nope", s.wolves())
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *ControllerSuite) TestAddAndRemovePlayer() {
	t, err := s.controller.CreateTeam(s.ctx, s.wolves())
	s.Require().NoError(err)

	t, err = s.controller.AddPlayer(s.ctx, t.ID, PlayerInput{Number: "12", Name: "Twelve"})
	s.Require().NoError(err)
	s.Len(t.Players, 3)

	t, err = s.controller.RemovePlayer(s.ctx, t.ID, t.Players[0].ID)
	s.Require().NoError(err)
	s.Len(t.Players, 2)

	_, err = s.controller.RemovePlayer(s.ctx, t.ID, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ControllerSuite) TestCannotRemoveLastPlayer() {
	t, err := s.controller.CreateTeam(s.ctx, Input{Name: "Solo", Players: []PlayerInput{{Name: "Only"}}})
	s.Require().NoError(err)

	_, err = s.controller.RemovePlayer(s.ctx, t.ID, t.Players[0].ID)
	s.ErrorIs(err, model.ErrNoPlayers)
}

func (s *ControllerSuite) TestSelectAndBack() {
	t, err := s.controller.CreateTeam(s.ctx, s.wolves())
	s.Require().NoError(err)

	s.Require().NoError(s.controller.BackToTeams(s.ctx))
	nav, _ := s.controller.Navigation(s.ctx)
	s.Equal(model.PhaseTeamSelection, nav.AppPhase)
	s.Nil(nav.CurrentTeamID)

	s.Require().NoError(s.controller.SelectTeam(s.ctx, t.ID))
	nav, _ = s.controller.Navigation(s.ctx)
	s.Equal(model.PhaseMatchSelection, nav.AppPhase)

	s.ErrorIs(s.controller.SelectTeam(s.ctx, "nope"), model.ErrTeamNotFound)
}
