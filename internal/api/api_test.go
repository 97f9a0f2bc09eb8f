package api_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/hockeytracker/internal/api"
	"github.com/mcoot/hockeytracker/internal/api/apierr"
	"github.com/mcoot/hockeytracker/internal/api/response"
	"github.com/mcoot/hockeytracker/internal/factory"
	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/services/scoreboard"
	"github.com/mcoot/hockeytracker/internal/testutil"
)

type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestServer(t *testing.T, health api.HealthChecker) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	router := api.NewRouter(api.RouterConfig{
		Logger:          testutil.NopLogger(),
		TeamController:  app.TeamController,
		MatchController: app.MatchController,
		HubManager:      app.HubManager,
		Clock:           app.MockClock,
		Health:          health,
	})
	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[apierr.ErrorResponse](t, rr).Error.Code
}

// setupMatch creates team-1 with #9, #12 and goalie #31 and starts match-1
func setupMatch(t *testing.T, ts *testServer) string {
	t.Helper()
	ts.app.MockIDs.Queue("team-1", "p9", "p12", "g31", "match-1")

	rr := ts.request(http.MethodPost, "/api/v1/teams", map[string]any{
		"name": "Wolves",
		"players": []map[string]any{
			{"number": "9", "name": "Nine"},
			{"number": "12", "name": "Twelve"},
			{"number": "31", "name": "Goalie", "isGoalie": true},
		},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = ts.request(http.MethodPost, "/api/v1/matches", map[string]any{
		"teamId":           "team-1",
		"name":             "Final",
		"opponentTeamName": "Bears",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return "/api/v1/matches/match-1"
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t, nil)
	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decode[response.Health](t, rr).Status)

	down := newTestServer(t, pingFunc(func(context.Context) error { return errors.New("connection refused") }))
	rr = down.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "degraded", decode[response.Health](t, rr).Status)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/teams", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Less(t, rr.Code, 300)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestTeamValidation(t *testing.T) {
	ts := newTestServer(t, nil)

	rr := ts.request(http.MethodPost, "/api/v1/teams", map[string]any{"name": " ", "players": []any{}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeNameRequired, errorCode(t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/teams/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeTeamNotFound, errorCode(t, rr))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams", strings.NewReader("{not json"))
	bad := httptest.NewRecorder()
	ts.handler.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestTeamRosterAndNavigation(t *testing.T) {
	ts := newTestServer(t, nil)
	setupMatch(t, ts)

	nav := decode[map[string]any](t, ts.request(http.MethodGet, "/api/v1/navigation", nil))
	assert.Equal(t, string(model.PhaseMatch), nav["appPhase"])

	ts.app.MockIDs.Queue("p44")
	rr := ts.request(http.MethodPost, "/api/v1/teams/team-1/players", map[string]any{"number": "44", "name": "Forty Four"})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Len(t, decode[model.Team](t, rr).Players, 4)

	rr = ts.request(http.MethodDelete, "/api/v1/teams/team-1/players/p44", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[model.Team](t, rr).Players, 3)

	// the running match keeps its own roster snapshot
	m := decode[model.Match](t, ts.request(http.MethodGet, "/api/v1/matches/match-1", nil))
	assert.Len(t, m.Players, 3)

	rr = ts.request(http.MethodPost, "/api/v1/navigation/teams", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, string(model.PhaseTeamSelection), decode[map[string]any](t, rr)["appPhase"])
}

func TestGoalUndoThroughAPI(t *testing.T) {
	ts := newTestServer(t, nil)
	base := setupMatch(t, ts)

	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, base+"/players/p9/toggle", nil).Code)
	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, base+"/players/g31/toggle", nil).Code)
	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, base+"/clock/start", nil).Code)

	ts.app.MockClock.Advance(65 * time.Second)

	rr := ts.request(http.MethodPost, base+"/goals", map[string]any{"scorer": "US", "scorerNumber": "9"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	snap := decode[scoreboard.Snapshot](t, rr)
	assert.Equal(t, 1, snap.ScoreUs)
	assert.True(t, snap.CanUndo)
	assert.Equal(t, "01:05", snap.Elapsed)

	rr = ts.request(http.MethodPost, base+"/clock/pause", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	snap = decode[scoreboard.Snapshot](t, rr)
	for _, p := range snap.Players {
		if p.OnIce {
			assert.Equal(t, 1, p.PlusMinus, p.Number)
			assert.Equal(t, 65, p.TOISeconds, p.Number)
		}
	}

	rr = ts.request(http.MethodPost, base+"/undo", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	snap = decode[scoreboard.Snapshot](t, rr)
	assert.Equal(t, 0, snap.ScoreUs)
	assert.Equal(t, 2, snap.EventCount)

	events := decode[[]map[string]any](t, ts.request(http.MethodGet, base+"/events", nil))
	require.Len(t, events, 2)
	assert.Equal(t, "ON_ICE_CHANGE", events[0]["type"])
	assert.Equal(t, "Put on ice", events[0]["label"])
	assert.Equal(t, "9 - Nine", events[0]["detail"])
}

func TestStatsLeaderboardAndExport(t *testing.T) {
	ts := newTestServer(t, nil)
	base := setupMatch(t, ts)

	for i := 0; i < 2; i++ {
		rr := ts.request(http.MethodPost, base+"/players/p12/stats", map[string]any{"stat": "shots", "delta": 1})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	rr := ts.request(http.MethodPost, base+"/players/g31/stats", map[string]any{"stat": "shots", "delta": 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidStat, errorCode(t, rr))

	rr = ts.request(http.MethodPost, base+"/players/p12/stats", map[string]any{"stat": "shots", "delta": 0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	board := decode[response.Leaderboard](t, ts.request(http.MethodGet, base+"/leaderboard?stat=shots&limit=1", nil))
	require.Len(t, board.Players, 1)
	assert.Equal(t, "12", board.Players[0].Number)
	assert.Equal(t, 2, board.Players[0].Value)

	rr = ts.request(http.MethodGet, base+"/leaderboard?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodGet, base+"/export", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `attachment; filename="final_2024-01-01.csv"`, rr.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), "Match,Team,Number,Name"))
	assert.Contains(t, rr.Body.String(), "Final,Wolves,12,Twelve")
}

func TestPenaltiesThroughAPI(t *testing.T) {
	ts := newTestServer(t, nil)
	base := setupMatch(t, ts)

	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, base+"/players/p9/toggle", nil).Code)

	rr := ts.request(http.MethodPost, base+"/penalties", map[string]any{
		"team": "US", "playerNumber": "9", "penaltyType": "Minor", "infraction": "Tripping",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	snap := decode[scoreboard.Snapshot](t, rr)
	assert.Equal(t, "4vs5", snap.Situation)
	assert.Equal(t, []string{"9"}, snap.InBox)
	assert.Equal(t, 0, snap.OnIceCount)

	rr = ts.request(http.MethodPost, base+"/penalties", map[string]any{"team": "US", "playerNumber": "9", "penaltyType": "Slashing"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	m := decode[model.Match](t, ts.request(http.MethodGet, base, nil))
	require.Len(t, m.Penalties, 1)
	penaltyID := string(m.Penalties[0].ID)

	rr = ts.request(http.MethodPost, base+"/penalties/"+penaltyID+"/release", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "5vs5", decode[scoreboard.Snapshot](t, rr).Situation)

	rr = ts.request(http.MethodPost, base+"/penalties/"+penaltyID+"/release", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = ts.request(http.MethodDelete, base+"/penalties/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCountdownAndNotFound(t *testing.T) {
	ts := newTestServer(t, nil)
	base := setupMatch(t, ts)

	rr := ts.request(http.MethodPut, base+"/clock/countdown", map[string]any{"durationMs": 60000})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "01:00", decode[scoreboard.Snapshot](t, rr).Remaining)

	rr = ts.request(http.MethodPut, base+"/clock/countdown", map[string]any{"durationMs": nil})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, decode[scoreboard.Snapshot](t, rr).RemainingMs)

	rr = ts.request(http.MethodPost, "/api/v1/matches/nope/clock/start", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeMatchNotFound, errorCode(t, rr))

	rr = ts.request(http.MethodPost, base+"/goals", map[string]any{"scorer": "SOMEONE"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidSide, errorCode(t, rr))
}

func TestGoalWithoutScorerNumberIsRejected(t *testing.T) {
	ts := newTestServer(t, nil)
	base := setupMatch(t, ts)

	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, base+"/players/p9/toggle", nil).Code)

	for _, body := range []map[string]any{
		{"scorer": "US"},
		{"scorer": "THEM", "scorerNumber": "   "},
	} {
		rr := ts.request(http.MethodPost, base+"/goals", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, apierr.CodeScorerNumberRequired, errorCode(t, rr))
	}

	rr := ts.request(http.MethodGet, base+"/snapshot", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	snap := decode[scoreboard.Snapshot](t, rr)
	assert.Equal(t, 0, snap.ScoreUs)
	assert.Equal(t, 0, snap.ScoreThem)
	assert.Equal(t, 1, snap.EventCount)
	assert.False(t, snap.CanUndo)
	for _, p := range snap.Players {
		assert.Equal(t, 0, p.PlusMinus, p.Number)
	}
}

func TestMatchListingAndCurrent(t *testing.T) {
	ts := newTestServer(t, nil)
	setupMatch(t, ts)

	list := decode[[]response.MatchSummary](t, ts.request(http.MethodGet, "/api/v1/matches?team_id=team-1", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "Bears", list[0].OpponentTeamName)

	current := decode[model.Match](t, ts.request(http.MethodGet, "/api/v1/matches/current", nil))
	assert.Equal(t, model.MatchID("match-1"), current.ID)

	require.Equal(t, http.StatusNoContent, ts.request(http.MethodPost, "/api/v1/matches/current/end", nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.request(http.MethodGet, "/api/v1/matches/current", nil).Code)

	require.Equal(t, http.StatusNoContent, ts.request(http.MethodPost, "/api/v1/matches/match-1/select", nil).Code)
	assert.Equal(t, http.StatusOK, ts.request(http.MethodGet, "/api/v1/matches/current", nil).Code)
}

func TestStreamDeliversUpdates(t *testing.T) {
	ts := newTestServer(t, nil)
	base := setupMatch(t, ts)

	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+base+"/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan string, 16)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if name, ok := strings.CutPrefix(scanner.Text(), "event: "); ok {
				events <- name
			}
		}
		close(events)
	}()

	next := func() string {
		select {
		case name := <-events:
			return name
		case <-time.After(2 * time.Second):
			t.Fatal("no event received")
			return ""
		}
	}

	assert.Equal(t, "connected", next())
	assert.Equal(t, "match-update", next())

	require.Eventually(t, func() bool {
		hub := ts.app.HubManager.GetHub("match-1")
		return hub != nil && hub.ClientCount() == 1
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, base+"/players/p9/toggle", nil).Code)
	assert.Equal(t, "match-update", next())
	assert.Equal(t, "event", next())
}

func TestPanicReturnsInternalError(t *testing.T) {
	// A nil controller panics inside the handler
	router := api.NewRouter(api.RouterConfig{Logger: testutil.NopLogger()})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/matches", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, apierr.CodeInternalError, errorCode(t, rr))
}
