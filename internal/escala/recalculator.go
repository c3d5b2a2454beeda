// Package escala orquestra a geração e a recomputação da escala de carga.
// Todo o cálculo fica em internal/rotation; aqui mora apenas o ciclo
// ler-calcular-gravar contra o Store.
package escala

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/filial96/escala-manager/backend/internal/domain"
	"github.com/filial96/escala-manager/backend/internal/rotation"
)

var (
	// menos de 2 funcionários elegíveis no cargo da rotação
	ErrInsufficientRoster = errors.New("escala: o cargo da rotação precisa de pelo menos 2 funcionários ativos")
	// modo estrito: a segunda-feira âncora não tem dupla registrada
	ErrSeedRequired = errors.New("escala: a segunda-feira âncora não tem dupla de carga registrada; forneça a semente manualmente")
)

// Store é o adaptador de persistência da escala. A implementação de produção
// fica em internal/repository; os testes usam um fake em memória.
type Store interface {
	// MaxScheduleDateFrom devolve a maior data da escala com data >= from.
	// found=false quando não existe nenhuma linha nesse intervalo.
	MaxScheduleDateFrom(ctx context.Context, from rotation.Date) (max rotation.Date, found bool, err error)

	// ListCargaStaff devolve, na ordem da persistência, os ids na carga do dia.
	ListCargaStaff(ctx context.Context, date rotation.Date) ([]int64, error)

	// ListRosterIDs devolve os ids ativos do cargo, em ordem estável.
	ListRosterIDs(ctx context.Context, role domain.Role) ([]int64, error)

	ListDayOffs(ctx context.Context, from, to rotation.Date) ([]domain.DayOff, error)

	// ReplaceScheduleRange apaga todas as linhas da escala em [from, to] e
	// insere as novas numa única transação.
	ReplaceScheduleRange(ctx context.Context, from, to rotation.Date, entries []domain.ScheduleEntry) error
}

type Recalculator struct {
	store      Store
	role       domain.Role
	strictSeed bool
}

func NewRecalculator(store Store, role domain.Role, strictSeed bool) *Recalculator {
	return &Recalculator{
		store:      store,
		role:       role,
		strictSeed: strictSeed,
	}
}

// RecalculateAfter recomputa a escala depois do registro (ou remoção) de uma
// folga em dayOffDate. Devolve false quando a folga cai fora de qualquer
// horizonte já gerado. A janela recomeça na segunda-feira âncora e vai até a
// última data já gerada, porque as duplas posteriores dependem da semente
// dessa segunda-feira.
func (rc *Recalculator) RecalculateAfter(ctx context.Context, dayOffDate rotation.Date) (bool, error) {
	windowEnd, found, err := rc.store.MaxScheduleDateFrom(ctx, dayOffDate)
	if err != nil {
		return false, err
	}
	if !found {
		// folga fora do horizonte gerado: nada a refazer
		return false, nil
	}

	monday := dayOffDate.MondayOnOrBefore()

	seed, pool, err := rc.reconstructSeed(ctx, monday)
	if err != nil {
		return false, err
	}

	dayOffs, err := rc.dayOffsByDate(ctx, monday, windowEnd)
	if err != nil {
		return false, err
	}

	dayCount := rotation.DaysBetween(monday, windowEnd) + 1
	assignments, err := rotation.Generate(monday, dayCount, seed, pool, dayOffs)
	if err != nil {
		return false, err
	}

	if err := rc.store.ReplaceScheduleRange(ctx, monday, windowEnd, toEntries(assignments)); err != nil {
		return false, err
	}

	return true, nil
}

// GenerateHorizon gera a escala de dayCount dias a partir de start. Com seed
// nil a semente vem da dupla já registrada para start ou, fora do modo
// estrito, dos dois primeiros do cargo.
func (rc *Recalculator) GenerateHorizon(ctx context.Context, start rotation.Date, dayCount int, seed *rotation.Pair) error {
	if dayCount < 1 {
		return rotation.ErrEmptyWindow
	}
	if start.Weekday() != time.Monday {
		return fmt.Errorf("%w: recebido %s", rotation.ErrNotMonday, start)
	}

	var seedPair rotation.Pair
	var pool []int64
	var err error

	if seed != nil {
		seedPair = *seed
		pool, err = rc.store.ListRosterIDs(ctx, rc.role)
	} else {
		seedPair, pool, err = rc.reconstructSeed(ctx, start)
	}
	if err != nil {
		return err
	}

	end := start.AddDays(dayCount - 1)
	dayOffs, err := rc.dayOffsByDate(ctx, start, end)
	if err != nil {
		return err
	}

	assignments, err := rotation.Generate(start, dayCount, seedPair, pool, dayOffs)
	if err != nil {
		return err
	}

	return rc.store.ReplaceScheduleRange(ctx, start, end, toEntries(assignments))
}

// reconstructSeed recupera a dupla da segunda-feira âncora a partir da escala
// persistida. Sem histórico, o modo estrito aborta; fora dele a semente cai
// para os dois primeiros do cargo.
func (rc *Recalculator) reconstructSeed(ctx context.Context, monday rotation.Date) (rotation.Pair, []int64, error) {
	pool, err := rc.store.ListRosterIDs(ctx, rc.role)
	if err != nil {
		return rotation.Pair{}, nil, err
	}

	onDuty, err := rc.store.ListCargaStaff(ctx, monday)
	if err != nil {
		return rotation.Pair{}, nil, err
	}

	if len(onDuty) >= 2 {
		return rotation.Pair{onDuty[0], onDuty[1]}, pool, nil
	}

	if rc.strictSeed {
		return rotation.Pair{}, nil, ErrSeedRequired
	}

	if len(pool) < 2 {
		return rotation.Pair{}, nil, ErrInsufficientRoster
	}

	return rotation.Pair{pool[0], pool[1]}, pool, nil
}

func (rc *Recalculator) dayOffsByDate(ctx context.Context, from, to rotation.Date) (map[rotation.Date]map[int64]bool, error) {
	dayOffs, err := rc.store.ListDayOffs(ctx, from, to)
	if err != nil {
		return nil, err
	}

	grouped := make(map[rotation.Date]map[int64]bool)
	for _, f := range dayOffs {
		if grouped[f.Date] == nil {
			grouped[f.Date] = make(map[int64]bool)
		}
		grouped[f.Date][f.UserID] = true
	}

	return grouped, nil
}

func toEntries(assignments []rotation.Assignment) []domain.ScheduleEntry {
	entries := make([]domain.ScheduleEntry, len(assignments))
	for i, a := range assignments {
		entries[i] = domain.ScheduleEntry{
			Date:    a.Date,
			UserID:  a.StaffID,
			IsCarga: true,
		}
	}
	return entries
}
