package repository

import (
	"context"
	"time"

	"github.com/filial96/escala-manager/backend/internal/domain"
)

func (r *Repository) CreateGoal(goal *domain.Goal) error {
	query := `
		INSERT INTO goals (user_id, year, month, target_amount, achieved_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{goal.UserID, goal.Year, goal.Month, goal.TargetAmount, goal.AchievedAmount}
	dst := []any{&goal.ID, &goal.CreatedAt, &goal.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetGoalByID(id int64) (*domain.Goal, error) {
	query := `
		SELECT user_id, year, month, target_amount, achieved_amount, created_at, version
		FROM goals WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	goal := &domain.Goal{
		ID: id,
	}

	dst := []any{&goal.UserID, &goal.Year, &goal.Month, &goal.TargetAmount, &goal.AchievedAmount, &goal.CreatedAt, &goal.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return goal, nil
}

// ListGoals filtra por competência (ano/mês); ano zero devolve tudo.
func (r *Repository) ListGoals(year, month int) ([]*domain.Goal, error) {
	query := `
		SELECT id, user_id, year, month, target_amount, achieved_amount, created_at, version
		FROM goals
		WHERE ($1 = 0 OR year = $1) AND ($2 = 0 OR month = $2)
		ORDER BY year DESC, month DESC, user_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]*domain.Goal, 0)
	for rows.Next() {
		goal := &domain.Goal{}
		dst := []any{&goal.ID, &goal.UserID, &goal.Year, &goal.Month, &goal.TargetAmount, &goal.AchievedAmount, &goal.CreatedAt, &goal.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *Repository) UpdateGoal(goal *domain.Goal) error {
	query := `
		UPDATE goals
		SET
			target_amount = $1,
			achieved_amount = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{goal.TargetAmount, goal.AchievedAmount, goal.ID, goal.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&goal.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteGoal(id int64) error {
	query := `
		DELETE FROM goals WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
