package gymbo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/gymbo-api/internal/cache"
	"github.com/magabrotheeeer/gymbo-api/internal/config"
	"github.com/magabrotheeeer/gymbo-api/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gymbo-api/internal/lib/sl"
	"github.com/magabrotheeeer/gymbo-api/internal/migrations"
	planservice "github.com/magabrotheeeer/gymbo-api/internal/services/plan"
	userservice "github.com/magabrotheeeer/gymbo-api/internal/services/user"
	"github.com/magabrotheeeer/gymbo-api/internal/storage"
)

// App HTTP-приложение со всеми внешними ресурсами.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *storage.Storage
	closers []io.Closer
}

// New подключается к PostgreSQL, применяет миграции, подключает Redis и RabbitMQ,
// если они настроены, и собирает роутер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.gymbo.New"

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{logger: logger, db: db}

	var planCache planservice.Cache = cache.Nop{}
	if cfg.RedisConnection.Address != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, redisCache)
		planCache = redisCache
	} else {
		logger.Info("redis address is empty, plan cache disabled")
	}

	var publisher userservice.EventPublisher = rabbitmq.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, conn)

		ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQ.Exchange, rabbitmq.SubscriptionQueues())
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = rabbitmq.NewPublisher(ch, cfg.RabbitMQ.Exchange)
	} else {
		logger.Info("rabbitmq url is empty, subscription events disabled")
	}

	plans := planservice.NewService(db, planCache, cfg.RedisConnection.TTL, logger)
	users := userservice.NewService(db, plans, publisher, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, "gymbo"),
	)

	router := NewRouter(logger, cfg.HTTPServer, Deps{
		Users:    users,
		Plans:    plans,
		Health:   db,
		Registry: reg,
	})

	app.server = &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	return app, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("failed to close resource", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
