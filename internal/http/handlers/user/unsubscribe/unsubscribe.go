// Package unsubscribe реализует HTTP-обработчик отписки пользователя от плана.
package unsubscribe

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

// Handler обрабатывает запросы на отписку от плана.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отписки.
type Service interface {
	Unsubscribe(ctx context.Context, userID int64) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отписать пользователя от плана
// @Description Снимает активный план и дату оплаты. Отписка без подписки не ошибка.
// @Tags Users
// @Param id path int true "ID пользователя"
// @Success 204
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /user/plan/unsubscribe/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.unsubscribe"
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

	if err = h.service.Unsubscribe(r.Context(), id); err != nil {
		response.ServiceError(w, r, log, err, "could not unsubscribe user")
		return
	}

	log.Info("user unsubscribed", slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}
