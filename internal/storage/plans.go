package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/gymbo-api/internal/models"
)

const planColumns = `id, title, description, monthly_price`

// PlanByID возвращает план по ID.
func (s *Storage) PlanByID(ctx context.Context, id int64) (*models.Plan, error) {
	const op = "storage.PlanByID"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`
	var p models.Plan
	err := s.DB.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Title, &p.Description, &p.MonthlyPrice)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return &p, nil
}

// PlanByTitle возвращает план по названию.
func (s *Storage) PlanByTitle(ctx context.Context, title string) (*models.Plan, error) {
	const op = "storage.PlanByTitle"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + planColumns + ` FROM plans WHERE title = $1`
	var p models.Plan
	err := s.DB.QueryRowContext(ctx, query, title).
		Scan(&p.ID, &p.Title, &p.Description, &p.MonthlyPrice)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return &p, nil
}

// CreatePlan вставляет план и возвращает присвоенный ID. Поле plan.ID игнорируется.
func (s *Storage) CreatePlan(ctx context.Context, plan models.Plan) (int64, error) {
	const op = "storage.CreatePlan"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	query := `INSERT INTO plans (title, description, monthly_price)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query, plan.Title, plan.Description, plan.MonthlyPrice).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, translate(err))
	}
	return id, nil
}

// UpdatePlan перезаписывает название, описание и цену плана.
func (s *Storage) UpdatePlan(ctx context.Context, plan models.Plan) error {
	const op = "storage.UpdatePlan"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `UPDATE plans
			  SET title = $1, description = $2, monthly_price = $3
			  WHERE id = $4`
	res, err := s.DB.ExecContext(ctx, query, plan.Title, plan.Description, plan.MonthlyPrice, plan.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}
	if err = rowsAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PlanExists сообщает, есть ли план с указанным ID.
func (s *Storage) PlanExists(ctx context.Context, id int64) (bool, error) {
	const op = "storage.PlanExists"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM plans WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, translate(err))
	}
	return exists, nil
}

// RemovePlan удаляет план. Если на план ссылаются пользователи, возвращает ErrReferenced.
func (s *Storage) RemovePlan(ctx context.Context, id int64) error {
	const op = "storage.RemovePlan"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}
	if err = rowsAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
