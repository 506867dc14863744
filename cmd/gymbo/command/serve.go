// Package command содержит подкоманды CLI: запуск сервера и управление миграциями.
package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/gymbo-api/internal/app/gymbo"
	"github.com/magabrotheeeer/gymbo-api/internal/config"
)

// Serve запускает HTTP-сервер.
type Serve struct {
	Logger *slog.Logger
}

// Command возвращает cobra-команду serve.
func (cmd Serve) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.run(ctx, cfg)
		},
	}
}

func (cmd Serve) run(ctx context.Context, cfg *config.Config) error {
	cmd.Logger.Info("starting gymbo", slog.String("env", cfg.Env))
	cmd.Logger.Debug("config loaded", slog.String("config", cfg.String()))

	app, err := gymbo.New(ctx, cfg, cmd.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	if err = app.Run(ctx); err != nil {
		return fmt.Errorf("app stopped with error: %w", err)
	}

	cmd.Logger.Info("gymbo stopped gracefully")
	return nil
}
