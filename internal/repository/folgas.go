package repository

import (
	"context"
	"time"

	"github.com/filial96/escala-manager/backend/internal/domain"
	"github.com/filial96/escala-manager/backend/internal/rotation"
)

func (r *Repository) CreateDayOff(dayOff *domain.DayOff) error {
	query := `
		INSERT INTO day_offs (user_id, date, reason)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{dayOff.UserID, dayOff.Date, dayOff.Reason}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&dayOff.ID, &dayOff.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDayOffByID(id int64) (*domain.DayOff, error) {
	query := `
		SELECT user_id, date, reason, created_at
		FROM day_offs WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dayOff := &domain.DayOff{
		ID: id,
	}

	dst := []any{&dayOff.UserID, &dayOff.Date, &dayOff.Reason, &dayOff.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return dayOff, nil
}

// ListDayOffs devolve as folgas com data em [from, to], ordenadas por data.
func (r *Repository) ListDayOffs(ctx context.Context, from, to rotation.Date) ([]domain.DayOff, error) {
	query := `
		SELECT id, user_id, date, reason, created_at
		FROM day_offs
		WHERE date >= $1 AND date <= $2
		ORDER BY date, id
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dayOffs := make([]domain.DayOff, 0)
	for rows.Next() {
		var dayOff domain.DayOff
		dst := []any{&dayOff.ID, &dayOff.UserID, &dayOff.Date, &dayOff.Reason, &dayOff.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		dayOffs = append(dayOffs, dayOff)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return dayOffs, nil
}

func (r *Repository) DeleteDayOff(id int64) error {
	query := `
		DELETE FROM day_offs WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
