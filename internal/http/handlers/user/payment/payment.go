// Package payment реализует HTTP-обработчик проверки оплаты подписки пользователя.
//
// Ответ содержит JSON-значение true, если оплата действует после сегодняшнего дня, иначе false.
package payment

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
)

// Handler обрабатывает запросы на проверку оплаты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики проверки оплаты.
type Service interface {
	IsPaymentUpToDate(ctx context.Context, userID int64) (bool, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить оплату подписки
// @Tags Users
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {boolean} boolean
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден или не подписан"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /user/payment/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.payment"
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

	upToDate, err := h.service.IsPaymentUpToDate(r.Context(), id)
	if err != nil {
		response.ServiceError(w, r, log, err, "could not check payment")
		return
	}

	log.Info("payment checked", slog.Int64("user_id", id), slog.Bool("up_to_date", upToDate))
	render.JSON(w, r, upToDate)
}
