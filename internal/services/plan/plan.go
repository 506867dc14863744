// Package plan содержит бизнес-логику работы с планами абонементов.
package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gymbo-api/internal/lib/apierr"
	"github.com/magabrotheeeer/gymbo-api/internal/lib/sl"
	"github.com/magabrotheeeer/gymbo-api/internal/models"
	"github.com/magabrotheeeer/gymbo-api/internal/storage"
)

// Repository определяет методы хранилища для планов.
type Repository interface {
	PlanByID(ctx context.Context, id int64) (*models.Plan, error)
	PlanByTitle(ctx context.Context, title string) (*models.Plan, error)
	CreatePlan(ctx context.Context, plan models.Plan) (int64, error)
	UpdatePlan(ctx context.Context, plan models.Plan) error
	PlanExists(ctx context.Context, id int64) (bool, error)
	RemovePlan(ctx context.Context, id int64) error
}

// Cache описывает кеш планов.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service реализует операции над планами. Планы кешируются по ID.
type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewService создаёт сервис планов. ttl задаёт время жизни записи в кеше.
func NewService(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("plan:%d", id)
}

// invalidPrice переводит нарушение CHECK на monthly_price в ошибку входных данных.
func invalidPrice(err error, price float64) error {
	return apierr.Wrap(apierr.Invalid, err, "The monthly price %v is not a positive amount", price)
}

// FindByID возвращает план по ID, сначала проверяя кеш.
func (s *Service) FindByID(ctx context.Context, id int64) (*models.Plan, error) {
	const op = "services.plan.FindByID"

	key := cacheKey(id)
	var cached models.Plan
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read plan from cache", sl.Op(op), slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	p, err := s.repo.PlanByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierr.Wrap(apierr.NotFound, err, "Could not find a Plan with id = %d", id)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = s.cache.Set(ctx, key, p, s.ttl); err != nil {
		s.log.Warn("failed to cache plan", sl.Op(op), slog.String("key", key), sl.Err(err))
	}
	return p, nil
}

// FindByTitle возвращает план по названию.
func (s *Service) FindByTitle(ctx context.Context, title string) (*models.Plan, error) {
	const op = "services.plan.FindByTitle"

	p, err := s.repo.PlanByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierr.Wrap(apierr.NotFound, err, "Could not find a Plan with title = %s", title)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Create создаёт план. ID назначает хранилище, уникальность названия и описания проверяет БД.
func (s *Service) Create(ctx context.Context, in models.CreatePlanInput) (*models.Plan, error) {
	const op = "services.plan.Create"

	p := models.Plan{
		Title:        in.Title,
		Description:  in.Description,
		MonthlyPrice: in.MonthlyPrice,
	}
	id, err := s.repo.CreatePlan(ctx, p)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			return nil, apierr.Wrap(apierr.Conflict, err, "A Plan with title = %s or the same description already exists", in.Title)
		case errors.Is(err, storage.ErrConstraint):
			return nil, invalidPrice(err, in.MonthlyPrice)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.ID = id

	s.log.Info("created new plan", slog.Int64("id", id))
	return &p, nil
}

// Update перезаписывает название, описание и цену существующего плана.
func (s *Service) Update(ctx context.Context, id int64, in models.UpdatePlanInput) (*models.Plan, error) {
	const op = "services.plan.Update"

	p, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Title = in.Title
	p.Description = in.Description
	p.MonthlyPrice = in.MonthlyPrice

	if err = s.repo.UpdatePlan(ctx, *p); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, apierr.Wrap(apierr.NotFound, err, "Could not find a Plan with id = %d", id)
		case errors.Is(err, storage.ErrDuplicate):
			return nil, apierr.Wrap(apierr.Conflict, err, "A Plan with title = %s or the same description already exists", in.Title)
		case errors.Is(err, storage.ErrConstraint):
			return nil, invalidPrice(err, in.MonthlyPrice)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	key := cacheKey(id)
	if err = s.cache.Set(ctx, key, p, s.ttl); err != nil {
		s.log.Warn("failed to cache plan", sl.Op(op), slog.String("key", key), sl.Err(err))
		if err = s.cache.Invalidate(ctx, key); err != nil {
			s.log.Warn("failed to invalidate plan", sl.Op(op), slog.String("key", key), sl.Err(err))
		}
	}

	s.log.Info("updated plan", slog.Int64("id", id))
	return p, nil
}

// Remove удаляет план. Любой сбой удаления превращается в одну ошибку
// "could not be deleted"; вид Referenced означает, что на план подписаны пользователи.
// Существование проверяется в хранилище, а не в кеше.
func (s *Service) Remove(ctx context.Context, id int64) error {
	const op = "services.plan.Remove"

	exists, err := s.repo.PlanExists(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return apierr.New(apierr.NotFound, "Could not find a Plan with id = %d", id)
	}

	if err = s.repo.RemovePlan(ctx, id); err != nil {
		kind := apierr.Internal
		if errors.Is(err, storage.ErrReferenced) {
			kind = apierr.Referenced
		}
		return apierr.Wrap(kind, fmt.Errorf("%s: %w", op, err), "The plan with id = %d could not be deleted.", id)
	}

	key := cacheKey(id)
	if err = s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to invalidate plan", sl.Op(op), slog.String("key", key), sl.Err(err))
	}

	s.log.Info("removed plan", slog.Int64("id", id))
	return nil
}
