package command

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/gymbo-api/internal/config"
	"github.com/magabrotheeeer/gymbo-api/internal/migrations"
	"github.com/magabrotheeeer/gymbo-api/internal/storage"
)

// Migrate применяет или откатывает миграции схемы.
type Migrate struct {
	Logger *slog.Logger
}

// Command возвращает cobra-команду migrate с аргументом up или down.
func (cmd Migrate) Command(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "run database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.run(cfg, args[0])
		},
	}
}

func (cmd Migrate) run(cfg *config.Config, direction string) error {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return err
	}
	defer db.Close()

	switch direction {
	case "up":
		err = migrations.Run(db.DB, cfg.MigrationsPath)
	case "down":
		err = migrations.Down(db.DB, cfg.MigrationsPath)
	default:
		return fmt.Errorf("migration command %q is not supported", direction)
	}
	if err != nil {
		return err
	}

	cmd.Logger.Info("migrations applied", slog.String("direction", direction), slog.String("path", cfg.MigrationsPath))
	return nil
}
