package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/mcoot/tilegame/internal/api"
	"github.com/mcoot/tilegame/internal/config"
	"github.com/mcoot/tilegame/internal/factory"
	"github.com/mcoot/tilegame/internal/web"
)

// hubCleanupInterval is how often hubs with no watchers are dropped
const hubCleanupInterval = time.Minute

func main() {
	if err := run(); err != nil {
		slog.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultOptions())
	if err != nil {
		return err
	}

	// Set up logging with JSON output
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	app, err := factory.New(factory.FromConfig(cfg, logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	// API routes are registered first so /api/v1 wins over the pages
	router := mux.NewRouter()
	api.Register(router, api.RouterConfig{
		Logger:         logger,
		Clock:          app.Clock,
		Storage:        app.Storage,
		StorageKind:    app.StorageKind,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		HubManager:     app.HubManager,
		Publisher:      app.Broadcaster,
	})
	web.Register(router, web.RouterConfig{
		Logger:         logger,
		Clock:          app.Clock,
		GameController: app.GameController,
		Broadcaster:    app.Broadcaster,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting",
		slog.String("addr", server.Addr()),
		slog.String("storage", app.StorageKind),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx)
	})
	g.Go(func() error {
		app.StartHubJanitor(hubCleanupInterval, ctx.Done())
		<-ctx.Done()
		// Close event streams so Shutdown is not held open by watchers
		app.HubManager.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
