// Package gymbo собирает HTTP-приложение сервиса: маршруты, middleware и зависимости.
package gymbo

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	plancreate "github.com/magabrotheeeer/gymbo-api/internal/http/handlers/plan/create"
	planread "github.com/magabrotheeeer/gymbo-api/internal/http/handlers/plan/read"
	planremove "github.com/magabrotheeeer/gymbo-api/internal/http/handlers/plan/remove"
	planupdate "github.com/magabrotheeeer/gymbo-api/internal/http/handlers/plan/update"

	"github.com/magabrotheeeer/gymbo-api/internal/config"
	"github.com/magabrotheeeer/gymbo-api/internal/http/handlers/health"
	"github.com/magabrotheeeer/gymbo-api/internal/http/handlers/user/activeplan"
	usercreate "github.com/magabrotheeeer/gymbo-api/internal/http/handlers/user/create"
	"github.com/magabrotheeeer/gymbo-api/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/gymbo-api/internal/http/handlers/user/payment"
	userread "github.com/magabrotheeeer/gymbo-api/internal/http/handlers/user/read"
	userremove "github.com/magabrotheeeer/gymbo-api/internal/http/handlers/user/remove"
	"github.com/magabrotheeeer/gymbo-api/internal/http/handlers/user/subscribe"
	"github.com/magabrotheeeer/gymbo-api/internal/http/handlers/user/unsubscribe"
	userupdate "github.com/magabrotheeeer/gymbo-api/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/gymbo-api/internal/http/middlewarectx"
	planservice "github.com/magabrotheeeer/gymbo-api/internal/services/plan"
	userservice "github.com/magabrotheeeer/gymbo-api/internal/services/user"

	// Регистрация swagger-документации.
	_ "github.com/magabrotheeeer/gymbo-api/docs"
)

// Deps зависимости обработчиков.
type Deps struct {
	Users    *userservice.Service
	Plans    *planservice.Service
	Health   health.Pinger
	Registry *prometheus.Registry
}

// NewRouter создаёт роутер со всеми маршрутами сервиса.
func NewRouter(logger *slog.Logger, cfg config.HTTPServer, deps Deps) http.Handler {
	r := chi.NewRouter()

	metrics := middlewarectx.NewMetrics(deps.Registry)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		metrics.Handler,
		middlewarectx.RateLimit(logger, middlewarectx.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)),
		middlewarectx.LegacyErrors(cfg.LegacyErrorStatus),
	)

	r.Route("/user", func(r chi.Router) {
		r.Post("/", usercreate.New(logger, deps.Users).ServeHTTP)
		r.Get("/{id}", userread.New(logger, deps.Users).ServeHTTP)
		r.Get("/username/{username}", userread.New(logger, deps.Users).ServeHTTP)
		r.Get("/list/{planId}", list.New(logger, deps.Users).ServeHTTP)
		r.Get("/plan/{id}", activeplan.New(logger, deps.Users).ServeHTTP)
		r.Get("/payment/{id}", payment.New(logger, deps.Users).ServeHTTP)
		r.Put("/{id}", userupdate.New(logger, deps.Users).ServeHTTP)
		r.Put("/plan/subscribe/{id}", subscribe.New(logger, deps.Users).ServeHTTP)
		r.Put("/plan/unsubscribe/{id}", unsubscribe.New(logger, deps.Users).ServeHTTP)
		r.Delete("/{id}", userremove.New(logger, deps.Users).ServeHTTP)
	})

	r.Route("/plan", func(r chi.Router) {
		r.Post("/", plancreate.New(logger, deps.Plans).ServeHTTP)
		r.Get("/{id}", planread.New(logger, deps.Plans).ServeHTTP)
		r.Get("/title/{title}", planread.New(logger, deps.Plans).ServeHTTP)
		r.Put("/{id}", planupdate.New(logger, deps.Plans).ServeHTTP)
		r.Delete("/{id}", planremove.New(logger, deps.Plans).ServeHTTP)
	})

	r.Get("/health", health.New(logger, deps.Health).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)

	return r
}
