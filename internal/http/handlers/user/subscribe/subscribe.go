// Package subscribe реализует HTTP-обработчик подписки пользователя на план.
//
// Тело запроса: {"planId": 1, "paidUntil": "2030-01-01"}. Подписка заменяет
// текущий план пользователя и дату оплаты.
package subscribe

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gymbo-api/internal/http/response"
	"github.com/magabrotheeeer/gymbo-api/internal/lib/sl"
	"github.com/magabrotheeeer/gymbo-api/internal/models"
)

// Handler обрабатывает запросы на подписку.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики подписки.
type Service interface {
	Subscribe(ctx context.Context, userID, planID int64, paidUntil models.Date) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подписать пользователя на план
// @Tags Users
// @Accept json
// @Param id path int true "ID пользователя"
// @Param request body models.SubscribeInput true "План и дата оплаты"
// @Success 204
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или JSON"
// @Failure 404 {object} response.ErrorResponse "Пользователь или план не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /user/plan/subscribe/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.subscribe"
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

	var req models.SubscribeInput
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err = h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err = h.service.Subscribe(r.Context(), id, req.PlanID, *req.PaidUntil); err != nil {
		response.ServiceError(w, r, log, err, "could not subscribe user")
		return
	}

	log.Info("user subscribed", slog.Int64("id", id), slog.Int64("plan_id", req.PlanID))
	w.WriteHeader(http.StatusNoContent)
}
