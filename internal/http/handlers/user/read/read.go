// Package read реализует HTTP-обработчик для получения пользователя по ID или имени.
//
// Маршрут /user/{id} принимает числовой параметр как ID, любой другой как имя пользователя.
// Маршрут /user/username/{username} всегда ищет по имени.
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
	"github.com/magabrotheeeer/gymbo-api/internal/models"
)

// Handler обрабатывает запросы на получение пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения пользователя.
type Service interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить пользователя
// @Description Возвращает пользователя по ID, если параметр числовой, иначе по имени пользователя.
// @Tags Users
// @Produce json
// @Param id path string true "ID или имя пользователя"
// @Success 200 {object} models.User
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /user/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var (
		user *models.User
		err  error
	)
	if username := chi.URLParam(r, "username"); username != "" {
		user, err = h.service.FindByUsername(r.Context(), username)
	} else {
		ref := chi.URLParam(r, "id")
		if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
			user, err = h.service.FindByID(r.Context(), id)
		} else {
			user, err = h.service.FindByUsername(r.Context(), ref)
		}
	}
	if err != nil {
		response.ServiceError(w, r, log, err, "could not read user")
		return
	}

	log.Info("success to read user", slog.Int64("id", user.ID))
	render.JSON(w, r, user)
}
