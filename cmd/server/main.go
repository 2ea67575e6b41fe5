package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/blogadmin/internal/api"
	"github.com/mcoot/blogadmin/internal/config"
	"github.com/mcoot/blogadmin/internal/factory"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level, _ := settings.LogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	factoryCfg, err := factory.FromSettings(settings, logger)
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(context.Background()); err != nil {
			logger.Warn("failed to close stores", slog.String("error", err.Error()))
		}
	}()

	logger.Info("application configured",
		slog.String("storage", settings.Storage.Type),
		slog.String("sessions", settings.Sessions.Store),
		slog.String("timezone", app.Location.String()),
	)

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = settings.Server.Host
	serverConfig.Port = settings.Server.Port
	server := api.NewServer(app.Handler(), serverConfig, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

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
