// Package read реализует HTTP-обработчик получения плана по ID или названию.
package read

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gymbo-api/internal/http/response"
	"github.com/magabrotheeeer/gymbo-api/internal/lib/sl"
	"github.com/magabrotheeeer/gymbo-api/internal/models"
)

// Handler обрабатывает запросы /plan/{id} и /plan/title/{title}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения плана.
type Service interface {
	FindByID(ctx context.Context, id int64) (*models.Plan, error)
	FindByTitle(ctx context.Context, title string) (*models.Plan, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить план
// @Tags Plans
// @Produce json
// @Param id path int true "ID плана"
// @Success 200 {object} models.Plan
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Router /plan/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var (
		plan *models.Plan
		err  error
	)
	if title := chi.URLParam(r, "title"); title != "" {
		plan, err = h.service.FindByTitle(r.Context(), title)
	} else {
		id, convErr := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if convErr != nil {
			log.Error("failed to decode id from url", sl.Err(convErr))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid id"))
			return
		}
		plan, err = h.service.FindByID(r.Context(), id)
	}
	if err != nil {
		response.ServiceError(w, r, log, err, "could not read plan")
		return
	}

	log.Info("success to read plan", slog.Int64("id", plan.ID))
	render.JSON(w, r, plan)
}
