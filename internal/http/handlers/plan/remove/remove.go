// Package remove реализует HTTP-обработчик удаления плана.
//
// План, на который подписан хотя бы один пользователь, не удаляется.
package remove

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

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Remove(ctx context.Context, id int64) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить план
// @Tags Plans
// @Param id path int true "ID плана"
// @Success 204
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Failure 409 {object} response.ErrorResponse "На план подписаны пользователи"
// @Router /plan/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.remove"
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

	if err = h.service.Remove(r.Context(), id); err != nil {
		response.ServiceError(w, r, log, err, "could not remove plan")
		return
	}

	log.Info("success to remove plan", slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}
