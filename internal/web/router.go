package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	sharedmw "github.com/mcoot/hockeytracker/internal/middleware"
	"github.com/mcoot/hockeytracker/internal/services/match"
	"github.com/mcoot/hockeytracker/internal/web/handler"
	"github.com/mcoot/hockeytracker/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger          *slog.Logger
	MatchController match.ControllerInterface
}

// NewRouter creates the bench board router. Live updates come from the
// API's match stream, so the API router must be mounted alongside it.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(sharedmw.Recovery(cfg.Logger, handler.WritePanic))
	r.Use(sharedmw.Logging(cfg.Logger))
	r.Use(middleware.Flash())

	homeHandler := handler.NewHomeHandler(cfg.MatchController)
	boardHandler := handler.NewBoardHandler(cfg.MatchController)

	r.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)

	m := r.PathPrefix("/matches/{match_id}").Subrouter()
	m.HandleFunc("", boardHandler.View).Methods(http.MethodGet)
	m.HandleFunc("/board", boardHandler.Board).Methods(http.MethodGet)
	m.HandleFunc("/clock/start", boardHandler.StartClock).Methods(http.MethodPost)
	m.HandleFunc("/clock/pause", boardHandler.PauseClock).Methods(http.MethodPost)
	m.HandleFunc("/players/{player_id}/toggle", boardHandler.Toggle).Methods(http.MethodPost)
	m.HandleFunc("/goal/{side:us|them}", boardHandler.Goal).Methods(http.MethodPost)
	m.HandleFunc("/undo", boardHandler.Undo).Methods(http.MethodPost)

	return r
}
