package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/gymbo-api/internal/models"
)

const userSelect = `SELECT u.id, u.username, u.password_hash, u.email, u.paid_until,
			  p.id, p.title, p.description, p.monthly_price
		  FROM users u
		  LEFT JOIN plans p ON p.id = u.plan_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u         models.User
		paidUntil sql.NullTime
		planID    sql.NullInt64
		title     sql.NullString
		descr     sql.NullString
		price     sql.NullFloat64
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &paidUntil,
		&planID, &title, &descr, &price); err != nil {
		return nil, err
	}

	if planID.Valid {
		u.ActivePlan = &models.Plan{
			ID:           planID.Int64,
			Title:        title.String,
			Description:  descr.String,
			MonthlyPrice: price.Float64,
		}
	}
	if paidUntil.Valid {
		d := models.DateOf(paidUntil.Time)
		u.PaidUntil = &d
	}
	return &u, nil
}

// UserByID возвращает пользователя по ID вместе с активным планом.
func (s *Storage) UserByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.UserByID"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	u, err := scanUser(s.DB.QueryRowContext(ctx, userSelect+` WHERE u.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return u, nil
}

// UserByUsername возвращает пользователя по имени.
func (s *Storage) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.UserByUsername"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	u, err := scanUser(s.DB.QueryRowContext(ctx, userSelect+` WHERE u.username = $1`, username))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return u, nil
}

// UsersByPlanID возвращает пользователей, у которых активен план planID.
// Для плана без подписчиков (или несуществующего) возвращает пустой срез.
func (s *Storage) UsersByPlanID(ctx context.Context, planID int64) ([]*models.User, error) {
	const op = "storage.UsersByPlanID"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, userSelect+` WHERE u.plan_id = $1 ORDER BY u.id`, planID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateUser вставляет пользователя без подписки и возвращает присвоенный ID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.CreateUser"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	query := `INSERT INTO users (username, password_hash, email)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query, user.Username, user.PasswordHash, user.Email).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, translate(err))
	}
	return id, nil
}

// UpdateUserCredentials меняет только хеш пароля и email пользователя.
func (s *Storage) UpdateUserCredentials(ctx context.Context, id int64, passwordHash, email string) error {
	const op = "storage.UpdateUserCredentials"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, email = $2 WHERE id = $3`,
		passwordHash, email, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}
	if err = rowsAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateUserSubscription записывает активный план и дату оплаты.
// planID == nil снимает подписку; paidUntil без плана отклоняет база (ErrConstraint).
func (s *Storage) UpdateUserSubscription(ctx context.Context, id int64, planID *int64, paidUntil *models.Date) error {
	const op = "storage.UpdateUserSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	var plan sql.NullInt64
	if planID != nil {
		plan = sql.NullInt64{Int64: *planID, Valid: true}
	}
	var paid sql.NullTime
	if paidUntil != nil {
		paid = sql.NullTime{Time: paidUntil.Time, Valid: true}
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE users SET plan_id = $1, paid_until = $2 WHERE id = $3`,
		plan, paid, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}
	if err = rowsAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UserExists сообщает, есть ли пользователь с указанным ID.
func (s *Storage) UserExists(ctx context.Context, id int64) (bool, error) {
	const op = "storage.UserExists"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, translate(err))
	}
	return exists, nil
}

// RemoveUser удаляет пользователя.
func (s *Storage) RemoveUser(ctx context.Context, id int64) error {
	const op = "storage.RemoveUser"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}
	if err = rowsAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
