// Package list реализует HTTP-обработчик для получения подписчиков плана.
package list

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

// Handler обрабатывает запросы на получение пользователей с данным активным планом.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска подписчиков.
type Service interface {
	FindByPlanID(ctx context.Context, planID int64) ([]*models.User, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подписчики плана
// @Description Возвращает пользователей, у которых активен план. Пустой список, если подписчиков нет.
// @Tags Users
// @Produce json
// @Param planId path int true "ID плана"
// @Success 200 {array} models.User
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /user/list/{planId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	planID, err := strconv.ParseInt(chi.URLParam(r, "planId"), 10, 64)
	if err != nil {
		log.Error("failed to decode plan id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid plan id"))
		return
	}

	users, err := h.service.FindByPlanID(r.Context(), planID)
	if err != nil {
		response.ServiceError(w, r, log, err, "could not list users")
		return
	}

	log.Info("success to list users", slog.Int64("plan_id", planID), slog.Int("count", len(users)))
	render.JSON(w, r, users)
}
