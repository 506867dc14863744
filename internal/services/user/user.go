// Package user содержит бизнес-логику работы с пользователями и их подписками на планы.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gymbo-api/internal/lib/apierr"
	"github.com/magabrotheeeer/gymbo-api/internal/lib/password"
	"github.com/magabrotheeeer/gymbo-api/internal/lib/sl"
	"github.com/magabrotheeeer/gymbo-api/internal/models"
	"github.com/magabrotheeeer/gymbo-api/internal/storage"
)

// Repository определяет методы хранилища для пользователей.
type Repository interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UsersByPlanID(ctx context.Context, planID int64) ([]*models.User, error)
	CreateUser(ctx context.Context, user models.User) (int64, error)
	UpdateUserCredentials(ctx context.Context, id int64, passwordHash, email string) error
	UpdateUserSubscription(ctx context.Context, id int64, planID *int64, paidUntil *models.Date) error
	UserExists(ctx context.Context, id int64) (bool, error)
	RemoveUser(ctx context.Context, id int64) error
}

// PlanFinder ищет план по ID. Реализуется сервисом планов.
type PlanFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Plan, error)
}

// EventPublisher публикует события подписки.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service реализует операции над пользователями.
type Service struct {
	repo      Repository
	plans     PlanFinder
	publisher EventPublisher
	log       *slog.Logger
	now       func() time.Time
}

// NewService создаёт сервис пользователей.
func NewService(repo Repository, plans PlanFinder, publisher EventPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		plans:     plans,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

func notFoundByID(err error, id int64) error {
	return apierr.Wrap(apierr.NotFound, err, "Could not find a User with id = %d", id)
}

// FindByID возвращает пользователя по ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "services.user.FindByID"

	u, err := s.repo.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFoundByID(err, id)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// FindByUsername возвращает пользователя по имени.
func (s *Service) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "services.user.FindByUsername"

	u, err := s.repo.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierr.Wrap(apierr.NotFound, err, "Could not find a User with username = %s", username)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// FindByPlanID возвращает подписчиков плана. Пустой результат ошибкой не является.
func (s *Service) FindByPlanID(ctx context.Context, planID int64) ([]*models.User, error) {
	const op = "services.user.FindByPlanID"

	users, err := s.repo.UsersByPlanID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

// Create регистрирует пользователя. Пароль сохраняется только в виде bcrypt-хеша,
// уникальность имени проверяет БД.
func (s *Service) Create(ctx context.Context, in models.CreateUserInput) (*models.User, error) {
	const op = "services.user.Create"

	hash, err := password.GetHash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u := models.User{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
	}
	id, err := s.repo.CreateUser(ctx, u)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, apierr.Wrap(apierr.Conflict, err, "A User with username = %s already exists", in.Username)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.ID = id

	s.log.Info("created new user", slog.Int64("id", id))
	return &u, nil
}

// Update меняет пароль и email пользователя. Имя, ID и подписка не меняются.
func (s *Service) Update(ctx context.Context, id int64, in models.UpdateUserInput) (*models.User, error) {
	const op = "services.user.Update"

	u, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hash, err := password.GetHash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = s.repo.UpdateUserCredentials(ctx, id, hash, in.Email); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFoundByID(err, id)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.PasswordHash = hash
	u.Email = in.Email

	s.log.Info("updated user", slog.Int64("id", id))
	return u, nil
}

// Remove удаляет пользователя. Любой сбой удаления превращается в ошибку "could not be deleted".
func (s *Service) Remove(ctx context.Context, id int64) error {
	const op = "services.user.Remove"

	exists, err := s.repo.UserExists(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return apierr.New(apierr.NotFound, "Could not find a User with id = %d", id)
	}

	if err = s.repo.RemoveUser(ctx, id); err != nil {
		kind := apierr.Internal
		if errors.Is(err, storage.ErrReferenced) {
			kind = apierr.Referenced
		}
		return apierr.Wrap(kind, fmt.Errorf("%s: %w", op, err), "The user with id = %d could not be deleted.", id)
	}

	s.log.Info("removed user", slog.Int64("id", id))
	return nil
}

// activeSubscription загружает пользователя и проверяет, что у него есть активный план.
func (s *Service) activeSubscription(ctx context.Context, userID int64) (*models.User, error) {
	u, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.ActivePlan == nil {
		return nil, apierr.New(apierr.NoSubscription, "No Plan subscription found for the user %s.", u.Username)
	}
	return u, nil
}

// FindPlan возвращает активный план пользователя.
func (s *Service) FindPlan(ctx context.Context, userID int64) (*models.Plan, error) {
	u, err := s.activeSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.ActivePlan, nil
}

// IsPaymentUpToDate сообщает, оплачена ли подписка: дата оплаты строго позже сегодняшней.
// Без активного плана возвращает ошибку NoSubscription; план без даты оплаты считается неоплаченным.
func (s *Service) IsPaymentUpToDate(ctx context.Context, userID int64) (bool, error) {
	u, err := s.activeSubscription(ctx, userID)
	if err != nil {
		return false, err
	}
	if u.PaidUntil == nil {
		return false, nil
	}
	return u.PaidUntil.After(models.DateOf(s.now())), nil
}

// Subscribe подписывает пользователя на план с оплатой до paidUntil.
func (s *Service) Subscribe(ctx context.Context, userID, planID int64, paidUntil models.Date) error {
	const op = "services.user.Subscribe"

	u, err := s.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	p, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		return err
	}

	if err = s.repo.UpdateUserSubscription(ctx, u.ID, &p.ID, &paidUntil); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return notFoundByID(err, userID)
		case errors.Is(err, storage.ErrReferenced):
			return apierr.Wrap(apierr.NotFound, err, "Could not find a Plan with id = %d", planID)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user subscribed to plan", slog.Int64("user_id", u.ID), slog.Int64("plan_id", p.ID))
	s.publish(ctx, models.SubscriptionEvent{
		Type:       models.EventSubscribed,
		UserID:     u.ID,
		Username:   u.Username,
		PlanID:     p.ID,
		PaidUntil:  &paidUntil,
		OccurredAt: s.now(),
	})
	return nil
}

// Unsubscribe снимает активный план и дату оплаты пользователя.
func (s *Service) Unsubscribe(ctx context.Context, userID int64) error {
	const op = "services.user.Unsubscribe"

	u, err := s.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err = s.repo.UpdateUserSubscription(ctx, u.ID, nil, nil); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFoundByID(err, userID)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user unsubscribed", slog.Int64("user_id", u.ID))
	event := models.SubscriptionEvent{
		Type:       models.EventUnsubscribed,
		UserID:     u.ID,
		Username:   u.Username,
		OccurredAt: s.now(),
	}
	if u.ActivePlan != nil {
		event.PlanID = u.ActivePlan.ID
	}
	s.publish(ctx, event)
	return nil
}

// publish отправляет событие; ошибка публикации только логируется.
func (s *Service) publish(ctx context.Context, event models.SubscriptionEvent) {
	if err := s.publisher.Publish(ctx, event.Type, event); err != nil {
		s.log.Warn("failed to publish subscription event",
			slog.String("type", event.Type), slog.Int64("user_id", event.UserID), sl.Err(err))
	}
}
