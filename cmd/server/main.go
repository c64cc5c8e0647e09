package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ramusita/chitgame/internal/api"
	"github.com/ramusita/chitgame/internal/config"
	"github.com/ramusita/chitgame/internal/factory"
)

func main() {
	env, err := config.LoadServer()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: env.SlogLevel(),
	}))
	slog.SetDefault(logger)

	app, err := factory.New(factory.ConfigFromEnv(env, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("storage close failed", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		Limiter:        app.Limiter,
		HubManager:     app.HubManager,
		Rates:          app.Rates,
		CookieSecure:   env.CookieSecure,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = env.Host
	serverConfig.Port = env.Port
	server := api.NewServer(router, serverConfig, logger)
	server.OnShutdown(app.HubManager.CloseAll)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.Sweeper.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", env.StorageType))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
