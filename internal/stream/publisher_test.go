package stream

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/testutil"
)

type PublisherSuite struct {
	suite.Suite
	mr        *miniredis.Miniredis
	client    *redis.Client
	publisher *Publisher
	ctx       context.Context
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})
	s.publisher = NewPublisher(s.client, "hockeytracker", 0, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *PublisherSuite) TearDownTest() {
	_ = s.client.Close()
}

func goal(id model.EventID) model.Event {
	return model.Event{
		ID:          id,
		Time:        time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC),
		ElapsedTime: "01:00",
		Payload:     model.GoalPayload{Scorer: model.SideUs, OurOnIceIDs: []model.PlayerID{"p9"}},
	}
}

func (s *PublisherSuite) TestKey() {
	s.Equal("hockeytracker.events.match-1", Key("hockeytracker", "match-1"))
}

func (s *PublisherSuite) TestMatchChanged_PublishesAppendedEvents() {
	stat := model.Event{
		ID:          "ev-2",
		Time:        time.Date(2024, 1, 1, 19, 1, 0, 0, time.UTC),
		ElapsedTime: "02:00",
		Payload:     model.StatChangePayload{PlayerID: "p9", Stat: model.StatShots, Value: 1, Delta: 1},
	}
	change := model.MatchChange{
		Match:    model.Match{ID: "match-1"},
		Appended: []model.Event{goal("ev-1"), stat},
		Action:   model.ActionGoal,
	}

	s.publisher.MatchChanged(s.ctx, change)

	entries, err := Read(s.ctx, s.client, "hockeytracker", "match-1", 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("GOAL", entries[0].Type)
	s.Equal(model.EventID("ev-1"), entries[0].Event.ID)
	s.Equal(model.EventType("STAT_CHANGE"), entries[1].Event.Type())
}

func (s *PublisherSuite) TestMatchChanged_UndoWritesMarker() {
	s.publisher.MatchChanged(s.ctx, model.MatchChange{
		Match:    model.Match{ID: "match-1"},
		Appended: []model.Event{goal("ev-1")},
		Action:   model.ActionGoal,
	})
	s.publisher.MatchChanged(s.ctx, model.MatchChange{
		Match:  model.Match{ID: "match-1"},
		Action: model.ActionUndo,
	})

	entries, err := Read(s.ctx, s.client, "hockeytracker", "match-1", 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(model.ActionUndo, entries[1].Type)
	s.Nil(entries[1].Event)
}

func (s *PublisherSuite) TestRead_Count() {
	for _, id := range []model.EventID{"a", "b", "c"} {
		s.Require().NoError(s.publisher.PublishEvent(s.ctx, "match-1", goal(id)))
	}

	entries, err := Read(s.ctx, s.client, "hockeytracker", "match-1", 2)
	s.Require().NoError(err)
	s.Len(entries, 2)
}

func (s *PublisherSuite) TestMatchChanged_LogsWhenRedisIsDown() {
	s.mr.Close()
	s.NotPanics(func() {
		s.publisher.MatchChanged(s.ctx, model.MatchChange{
			Match:    model.Match{ID: "match-1"},
			Appended: []model.Event{goal("ev-1")},
		})
	})
}
