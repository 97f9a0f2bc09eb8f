package factory

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/match"
	"github.com/mcoot/hockeytracker/internal/services/team"
	redisstorage "github.com/mcoot/hockeytracker/internal/storage/redis"
	"github.com/mcoot/hockeytracker/internal/stream"
	"github.com/mcoot/hockeytracker/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	_ = s.app.Close()
}

func (s *IntegrationSuite) createMatch() *model.Match {
	s.app.MockIDs.Queue("team-1", "p9", "g31", "match-1")
	_, err := s.app.TeamController.CreateTeam(s.ctx, team.Input{
		Name: "Wolves",
		Players: []team.PlayerInput{
			{Number: "9", Name: "Nine"},
			{Number: "31", Name: "Goalie", IsGoalie: true},
		},
	})
	s.Require().NoError(err)

	m, err := s.app.MatchController.CreateMatch(s.ctx, "team-1", "Final", "", "Bears")
	s.Require().NoError(err)
	return m
}

// Goal, pause and undo across the whole wired stack
func (s *IntegrationSuite) TestGoalAndUndoFlow() {
	m := s.createMatch()
	mc := s.app.MatchController

	_, err := mc.ToggleOnIce(s.ctx, m.ID, "p9")
	s.Require().NoError(err)
	_, err = mc.ToggleOnIce(s.ctx, m.ID, "g31")
	s.Require().NoError(err)
	_, err = mc.StartClock(s.ctx, m.ID)
	s.Require().NoError(err)

	s.app.MockClock.Advance(65 * time.Second)

	_, err = mc.RecordGoal(s.ctx, m.ID, match.GoalInput{Scorer: model.SideUs, ScorerNumber: "9"})
	s.Require().NoError(err)
	got, err := mc.PauseClock(s.ctx, m.ID)
	s.Require().NoError(err)

	nine := got.GetPlayer("p9")
	goalie := got.GetPlayer("g31")
	s.Equal(1, nine.PlusMinus)
	s.Equal(0, nine.Shots)
	s.Equal(1, goalie.PlusMinus)
	s.Equal(65, nine.TOISeconds)
	s.Equal(65, goalie.TOISeconds)

	got, err = mc.UndoLast(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(0, got.GetPlayer("p9").PlusMinus)
	s.Equal(0, got.GetPlayer("g31").PlusMinus)
	// only the two on-ice toggles remain
	s.Len(got.Events, 2)
	for _, ev := range got.Events {
		s.Equal(model.EventOnIceChange, ev.Type())
	}
}

func (s *IntegrationSuite) TestStatePersistsAcrossReload() {
	m := s.createMatch()
	_, err := s.app.MatchController.UpdateStat(s.ctx, m.ID, "p9", model.StatShots, 1)
	s.Require().NoError(err)

	data, err := s.app.Memory.Load(s.ctx)
	s.Require().NoError(err)
	s.Contains(string(data), `"shots":1`)

	s.app.Store.Reload()
	got, err := s.app.MatchController.GetMatch(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(1, got.GetPlayer("p9").Shots)
}

func (s *IntegrationSuite) TestTickerExpiresCountdown() {
	m := s.createMatch()
	mc := s.app.MatchController

	period := int64(60_000)
	_, err := mc.SetCountdown(s.ctx, m.ID, &period)
	s.Require().NoError(err)
	_, err = mc.StartClock(s.ctx, m.ID)
	s.Require().NoError(err)

	s.app.MockClock.Advance(61 * time.Second)
	s.app.Ticker.TickAll(s.ctx)

	got, err := mc.GetMatch(s.ctx, m.ID)
	s.Require().NoError(err)
	s.False(got.Clock.Running)
	s.Equal(int64(61_000), got.Clock.ElapsedMs)
}

func TestNew_StorageSelection(t *testing.T) {
	app, err := New(Config{StorageType: StorageTypeMemory})
	if err != nil {
		t.Fatalf("memory storage: %v", err)
	}
	_ = app.Close()

	if _, err := New(Config{StorageType: "floppy"}); err == nil {
		t.Fatal("expected an error for an unknown storage type")
	}
	if _, err := New(Config{StorageType: StorageTypeRedis}); err == nil {
		t.Fatal("expected an error without RedisConfig")
	}
	if _, err := New(Config{StorageType: StorageTypePostgres}); err == nil {
		t.Fatal("expected an error without PostgresConfig")
	}

	app, err = New(Config{FilePath: t.TempDir() + "/state.json"})
	if err != nil {
		t.Fatalf("file storage: %v", err)
	}
	_ = app.Close()
}

func TestNew_RedisPublishesEvents(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := redisstorage.DefaultConfig()
	cfg.URL = "redis://" + mr.Addr()

	app, err := New(Config{StorageType: StorageTypeRedis, RedisConfig: &cfg, Logger: testutil.NopLogger()})
	if err != nil {
		t.Fatalf("redis storage: %v", err)
	}
	defer app.Close()
	if app.Publisher == nil {
		t.Fatal("expected an event publisher for the redis backend")
	}

	ctx := context.Background()
	tm, err := app.TeamController.CreateTeam(ctx, team.Input{
		Name:    "Wolves",
		Players: []team.PlayerInput{{Number: "9", Name: "Nine"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	m, err := app.MatchController.CreateMatch(ctx, tm.ID, "Final", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := app.MatchController.RecordGoal(ctx, m.ID, match.GoalInput{Scorer: model.SideThem, ScorerNumber: "19"}); err != nil {
		t.Fatal(err)
	}

	rs := app.Storage.(*redisstorage.Storage)
	entries, err := stream.Read(ctx, rs.Client(), cfg.KeyPrefix, m.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Type != string(model.EventGoal) {
		t.Fatalf("unexpected stream entries: %+v", entries)
	}
	if !mr.Exists(redisstorage.StateKey(cfg.KeyPrefix)) {
		t.Fatal("state blob was not written")
	}
}
