// Package main Gymbo API
//
// @title           Gymbo API
// @version         1.0
// @description     API для управления пользователями фитнес-клуба и планами абонементов
//
// @host      localhost:8080
// @BasePath  /
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/gymbo-api/cmd/gymbo/command"
	"github.com/magabrotheeeer/gymbo-api/internal/config"
	"github.com/magabrotheeeer/gymbo-api/internal/lib/sl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	root := &cobra.Command{
		Use:           "gymbo",
		Short:         "Gymbo API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		command.Serve{Logger: logger}.Command(ctx, cfg),
		command.Migrate{Logger: logger}.Command(cfg),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", sl.Err(err))
		stop()
		os.Exit(1)
	}
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case config.EnvLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}
