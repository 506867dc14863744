// Package activeplan реализует HTTP-обработчик для получения активного плана пользователя.
package activeplan

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

// Handler обрабатывает запросы на получение активного плана.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения активного плана.
type Service interface {
	FindPlan(ctx context.Context, userID int64) (*models.Plan, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Активный план пользователя
// @Tags Users
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} models.Plan
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден или не подписан"
// @Router /user/plan/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.activeplan"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	plan, err := h.service.FindPlan(r.Context(), id)
	if err != nil {
		response.ServiceError(w, r, log, err, "could not read user plan")
		return
	}

	log.Info("success to read user plan", slog.Int64("user_id", id), slog.Int64("plan_id", plan.ID))
	render.JSON(w, r, plan)
}
