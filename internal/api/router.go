package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"github.com/mcoot/hockeytracker/internal/api/apierr"
	"github.com/mcoot/hockeytracker/internal/api/handler"
	"github.com/mcoot/hockeytracker/internal/api/response"
	"github.com/mcoot/hockeytracker/internal/dependencies/clock"
	"github.com/mcoot/hockeytracker/internal/middleware"
	"github.com/mcoot/hockeytracker/internal/services/match"
	"github.com/mcoot/hockeytracker/internal/services/team"
	"github.com/mcoot/hockeytracker/internal/sse"
)

// HealthChecker reports whether the storage backend is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	TeamController  team.ControllerInterface
	MatchController match.ControllerInterface
	HubManager      *sse.HubManager
	Clock           clock.Clock
	Health          HealthChecker // optional
	CORSOrigins     []string      // defaults to any origin
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	teams := handler.NewTeamHandler(cfg.TeamController)
	matches := handler.NewMatchHandler(cfg.MatchController)
	streams := handler.NewStreamHandler(cfg.MatchController, cfg.HubManager, cfg.Clock)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, apierr.WritePanic))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler(cfg.Health)).Methods(http.MethodGet)

	// Navigation
	api.HandleFunc("/navigation", teams.Navigation).Methods(http.MethodGet)
	api.HandleFunc("/navigation/teams", teams.BackToTeams).Methods(http.MethodPost)

	// Teams
	api.HandleFunc("/teams", teams.List).Methods(http.MethodGet)
	api.HandleFunc("/teams", teams.Create).Methods(http.MethodPost)
	api.HandleFunc("/teams/{team_id}", teams.Get).Methods(http.MethodGet)
	api.HandleFunc("/teams/{team_id}", teams.Update).Methods(http.MethodPut)
	api.HandleFunc("/teams/{team_id}/select", teams.Select).Methods(http.MethodPost)
	api.HandleFunc("/teams/{team_id}/players", teams.AddPlayer).Methods(http.MethodPost)
	api.HandleFunc("/teams/{team_id}/players/{player_id}", teams.RemovePlayer).Methods(http.MethodDelete)

	// Match lifecycle. "current" is registered before {match_id}.
	api.HandleFunc("/matches", matches.List).Methods(http.MethodGet)
	api.HandleFunc("/matches", matches.Create).Methods(http.MethodPost)
	api.HandleFunc("/matches/current", matches.Current).Methods(http.MethodGet)
	api.HandleFunc("/matches/current/end", matches.End).Methods(http.MethodPost)

	m := api.PathPrefix("/matches/{match_id}").Subrouter()
	m.HandleFunc("", matches.Get).Methods(http.MethodGet)
	m.HandleFunc("/select", matches.Select).Methods(http.MethodPost)
	m.HandleFunc("/snapshot", matches.Snapshot).Methods(http.MethodGet)
	m.HandleFunc("/stream", streams.Stream).Methods(http.MethodGet)

	// Clock
	m.HandleFunc("/clock/start", matches.StartClock).Methods(http.MethodPost)
	m.HandleFunc("/clock/pause", matches.PauseClock).Methods(http.MethodPost)
	m.HandleFunc("/clock/reset", matches.ResetClock).Methods(http.MethodPost)
	m.HandleFunc("/clock/new-period", matches.NewPeriod).Methods(http.MethodPost)
	m.HandleFunc("/clock/countdown", matches.SetCountdown).Methods(http.MethodPut)

	// Roster
	m.HandleFunc("/bench-all", matches.BenchAll).Methods(http.MethodPost)
	m.HandleFunc("/players/{player_id}/toggle", matches.ToggleOnIce).Methods(http.MethodPost)
	m.HandleFunc("/players/{player_id}/stats", matches.UpdateStat).Methods(http.MethodPost)
	m.HandleFunc("/players/{player_id}/focus", matches.ToggleFocus).Methods(http.MethodPost)
	m.HandleFunc("/players/{player_id}/timeline", matches.Timeline).Methods(http.MethodGet)

	// Penalties, goals and the log
	m.HandleFunc("/penalties", matches.AddPenalty).Methods(http.MethodPost)
	m.HandleFunc("/penalties/{penalty_id}", matches.RemovePenalty).Methods(http.MethodDelete)
	m.HandleFunc("/penalties/{penalty_id}/release", matches.EarlyRelease).Methods(http.MethodPost)
	m.HandleFunc("/goals", matches.RecordGoal).Methods(http.MethodPost)
	m.HandleFunc("/undo", matches.Undo).Methods(http.MethodPost)
	m.HandleFunc("/events", matches.Events).Methods(http.MethodGet)
	m.HandleFunc("/leaderboard", matches.Leaderboard).Methods(http.MethodGet)
	m.HandleFunc("/export", matches.Export).Methods(http.MethodGet)

	// CORS wraps the router so preflight requests never reach route matching
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	})(r)
}

func healthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker == nil {
			response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
			return
		}
		if err := checker.Ping(r.Context()); err != nil {
			response.JSON(w, http.StatusServiceUnavailable, response.Health{Status: "degraded", Storage: err.Error()})
			return
		}
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", Storage: "ok"})
	}
}
