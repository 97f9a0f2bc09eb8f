package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/hockeytracker/internal/api"
	"github.com/mcoot/hockeytracker/internal/config"
	"github.com/mcoot/hockeytracker/internal/factory"
	"github.com/mcoot/hockeytracker/internal/web"
)

func main() {
	configPath := flag.String("config", os.Getenv("HOCKEY_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	app, err := factory.New(cfg.Factory(logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		TeamController:  app.TeamController,
		MatchController: app.MatchController,
		HubManager:      app.HubManager,
		Clock:           app.Clock,
		Health:          app.Storage,
		CORSOrigins:     cfg.CORSOrigins,
	})
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:          logger,
		MatchController: app.MatchController,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := api.NewServer(mux, cfg.Server, logger)
	server.OnShutdown(app.HubManager.CloseAll)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.Run(ctx)

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
