package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/filial96/escala-manager/backend/internal/domain"
	"github.com/filial96/escala-manager/backend/internal/rotation"
)

// MaxScheduleDateFrom devolve a maior data já gerada com data >= from.
// found=false indica que a data cai fora de qualquer horizonte gerado.
func (r *Repository) MaxScheduleDateFrom(ctx context.Context, from rotation.Date) (rotation.Date, bool, error) {
	query := `
		SELECT MAX(date) FROM schedule_entries WHERE date >= $1
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var max sql.NullTime
	if err := r.dbpool.QueryRowContext(ctx, query, from).Scan(&max); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rotation.Date{}, false, nil
		}
		return rotation.Date{}, false, err
	}

	if !max.Valid {
		return rotation.Date{}, false, nil
	}

	t := max.Time
	return rotation.NewDate(t.Year(), t.Month(), t.Day()), true, nil
}

// ListCargaStaff devolve os ids na carga do dia, na ordem de inserção.
func (r *Repository) ListCargaStaff(ctx context.Context, date rotation.Date) ([]int64, error) {
	query := `
		SELECT user_id FROM schedule_entries
		WHERE date = $1 AND is_carga = true
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0, 2)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *Repository) ListScheduleEntries(ctx context.Context, from, to rotation.Date, cargaOnly bool) ([]domain.ScheduleEntry, error) {
	query := `
		SELECT id, date, user_id, is_carga, created_at
		FROM schedule_entries
		WHERE date >= $1 AND date <= $2 AND ($3 = false OR is_carga = true)
		ORDER BY date, id
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, from, to, cargaOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.ScheduleEntry, 0)
	for rows.Next() {
		var entry domain.ScheduleEntry
		dst := []any{&entry.ID, &entry.Date, &entry.UserID, &entry.IsCarga, &entry.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ReplaceScheduleRange troca todas as linhas da escala em [from, to] pelas
// novas numa única transação, para a janela nunca ficar vazia no meio da
// troca.
func (r *Repository) ReplaceScheduleRange(ctx context.Context, from, to rotation.Date, entries []domain.ScheduleEntry) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM schedule_entries WHERE date >= $1 AND date <= $2`
	if _, err := tx.ExecContext(ctx, query, from, to); err != nil {
		return err
	}

	query = `
		INSERT INTO schedule_entries (date, user_id, is_carga)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	for i := range entries {
		entry := &entries[i]
		if err := tx.QueryRowContext(ctx, query, entry.Date, entry.UserID, entry.IsCarga).Scan(&entry.ID, &entry.CreatedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
