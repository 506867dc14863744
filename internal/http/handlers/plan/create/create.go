// Package create реализует HTTP-обработчик создания плана.
package create

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gymbo-api/internal/http/response"
	"github.com/magabrotheeeer/gymbo-api/internal/lib/sl"
	"github.com/magabrotheeeer/gymbo-api/internal/models"
)

// Handler обрабатывает запросы на создание плана.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания плана.
type Service interface {
	Create(ctx context.Context, in models.CreatePlanInput) (*models.Plan, error)
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
// @Summary Создать план
// @Tags Plans
// @Accept json
// @Param request body models.CreatePlanInput true "Данные плана"
// @Success 201 "План создан, заголовок Location указывает на ресурс"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Название или описание занято"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /plan [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreatePlanInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	plan, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.ServiceError(w, r, log, err, "could not create plan")
		return
	}

	log.Info("success to create plan", slog.Int64("id", plan.ID))
	w.Header().Set("Location", fmt.Sprintf("/plan/%d", plan.ID))
	w.WriteHeader(http.StatusCreated)
}
