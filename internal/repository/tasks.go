package repository

import (
	"context"
	"time"

	"github.com/filial96/escala-manager/backend/internal/domain"
)

func (r *Repository) CreateTask(task *domain.Task) error {
	query := `
		INSERT INTO tasks (title, description, type, status, assignee_id, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{task.Title, task.Description, task.Type, task.Status, task.AssigneeID, task.DueDate}
	dst := []any{&task.ID, &task.CreatedAt, &task.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTaskByID(id int64) (*domain.Task, error) {
	query := `
		SELECT title, description, type, status, assignee_id, due_date, created_at, version
		FROM tasks WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	task := &domain.Task{
		ID: id,
	}

	dst := []any{&task.Title, &task.Description, &task.Type, &task.Status, &task.AssigneeID, &task.DueDate, &task.CreatedAt, &task.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *Repository) GetAllTasks() ([]*domain.Task, error) {
	query := `
		SELECT id, title, description, type, status, assignee_id, due_date, created_at, version
		FROM tasks
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task := &domain.Task{}
		dst := []any{&task.ID, &task.Title, &task.Description, &task.Type, &task.Status, &task.AssigneeID, &task.DueDate, &task.CreatedAt, &task.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *Repository) UpdateTask(task *domain.Task) error {
	query := `
		UPDATE tasks
		SET
			title = $1,
			description = $2,
			type = $3,
			status = $4,
			assignee_id = $5,
			due_date = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{task.Title, task.Description, task.Type, task.Status, task.AssigneeID, task.DueDate, task.ID, task.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&task.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteTask(id int64) error {
	query := `
		DELETE FROM tasks WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
