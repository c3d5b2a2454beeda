package escala

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filial96/escala-manager/backend/internal/domain"
	"github.com/filial96/escala-manager/backend/internal/rotation"
)

type replaceCall struct {
	from rotation.Date
	to   rotation.Date
}

// fakeStore guarda a escala em memória, na ordem de inserção, imitando o
// comportamento do repositório de produção.
type fakeStore struct {
	entries      []domain.ScheduleEntry
	dayOffs      []domain.DayOff
	roster       []int64
	nextID       int64
	replaceCalls []replaceCall
}

func (s *fakeStore) MaxScheduleDateFrom(_ context.Context, from rotation.Date) (rotation.Date, bool, error) {
	var max rotation.Date
	found := false
	for _, e := range s.entries {
		if e.Date.Before(from) {
			continue
		}
		if !found || e.Date.After(max) {
			max = e.Date
			found = true
		}
	}
	return max, found, nil
}

func (s *fakeStore) ListCargaStaff(_ context.Context, date rotation.Date) ([]int64, error) {
	var ids []int64
	for _, e := range s.entries {
		if e.IsCarga && e.Date.Equal(date) {
			ids = append(ids, e.UserID)
		}
	}
	return ids, nil
}

func (s *fakeStore) ListRosterIDs(_ context.Context, _ domain.Role) ([]int64, error) {
	return s.roster, nil
}

func (s *fakeStore) ListDayOffs(_ context.Context, from, to rotation.Date) ([]domain.DayOff, error) {
	var out []domain.DayOff
	for _, f := range s.dayOffs {
		if f.Date.Before(from) || f.Date.After(to) {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *fakeStore) ReplaceScheduleRange(_ context.Context, from, to rotation.Date, entries []domain.ScheduleEntry) error {
	s.replaceCalls = append(s.replaceCalls, replaceCall{from: from, to: to})

	kept := s.entries[:0:0]
	for _, e := range s.entries {
		if e.Date.Before(from) || e.Date.After(to) {
			kept = append(kept, e)
		}
	}
	for _, e := range entries {
		s.nextID++
		e.ID = s.nextID
		kept = append(kept, e)
	}
	s.entries = kept
	return nil
}

func (s *fakeStore) cargaOn(t *testing.T, date string) []int64 {
	t.Helper()
	ids, err := s.ListCargaStaff(context.Background(), rotation.MustParseDate(date))
	require.NoError(t, err)
	return ids
}

func seedPair(a, b int64) *rotation.Pair {
	p := rotation.Pair{a, b}
	return &p
}

func TestGenerateHorizonWithExplicitSeed(t *testing.T) {
	store := &fakeStore{roster: []int64{1, 2, 3, 4}}
	rc := NewRecalculator(store, domain.RoleConsultorMoveis, false)

	err := rc.GenerateHorizon(context.Background(), rotation.MustParseDate("2024-01-01"), 14, seedPair(1, 2))
	require.NoError(t, err)

	require.Len(t, store.entries, 28)
	assert.Equal(t, []int64{1, 2}, store.cargaOn(t, "2024-01-01"))
	assert.Equal(t, []int64{1, 2}, store.cargaOn(t, "2024-01-07"))
	assert.Equal(t, []int64{3, 4}, store.cargaOn(t, "2024-01-08"))
	assert.Equal(t, []int64{3, 4}, store.cargaOn(t, "2024-01-14"))
}

func TestGenerateHorizonValidatesWindow(t *testing.T) {
	store := &fakeStore{roster: []int64{1, 2}}
	rc := NewRecalculator(store, domain.RoleConsultorMoveis, false)

	err := rc.GenerateHorizon(context.Background(), rotation.MustParseDate("2024-01-03"), 7, seedPair(1, 2))
	assert.ErrorIs(t, err, rotation.ErrNotMonday)

	err = rc.GenerateHorizon(context.Background(), rotation.MustParseDate("2024-01-01"), 0, seedPair(1, 2))
	assert.ErrorIs(t, err, rotation.ErrEmptyWindow)

	assert.Empty(t, store.replaceCalls)
}

func TestGenerateHorizonWithoutSeedFallsBackToRoster(t *testing.T) {
	store := &fakeStore{roster: []int64{3, 1, 2}}
	rc := NewRecalculator(store, domain.RoleConsultorMoveis, false)

	err := rc.GenerateHorizon(context.Background(), rotation.MustParseDate("2024-01-01"), 7, nil)
	require.NoError(t, err)

	// sem histórico, a semente são os dois primeiros do cargo na ordem do pool
	assert.Equal(t, []int64{3, 1}, store.cargaOn(t, "2024-01-01"))
}

func TestRecalculateAfterRegeneratesFromAnchorMonday(t *testing.T) {
	store := &fakeStore{roster: []int64{1, 2, 3, 4}}
	rc := NewRecalculator(store, domain.RoleConsultorMoveis, false)

	ctx := context.Background()
	require.NoError(t, rc.GenerateHorizon(ctx, rotation.MustParseDate("2024-01-01"), 14, seedPair(1, 2)))

	firstWeekBefore := store.cargaOn(t, "2024-01-03")

	// folga do consultor 3 na quarta-feira 2024-01-10
	store.dayOffs = append(store.dayOffs, domain.DayOff{
		ID:     1,
		UserID: 3,
		Date:   rotation.MustParseDate("2024-01-10"),
	})

	regenerated, err := rc.RecalculateAfter(ctx, rotation.MustParseDate("2024-01-10"))
	require.NoError(t, err)
	assert.True(t, regenerated)

	// a janela recomeça na segunda âncora e cobre até o fim do horizonte
	require.Len(t, store.replaceCalls, 2)
	assert.Equal(t, rotation.MustParseDate("2024-01-08"), store.replaceCalls[1].from)
	assert.Equal(t, rotation.MustParseDate("2024-01-14"), store.replaceCalls[1].to)

	// a semente reconstruída preserva a dupla da segunda-feira
	assert.Equal(t, []int64{3, 4}, store.cargaOn(t, "2024-01-08"))
	// no dia da folga entra o primeiro substituto na ordem do pool
	assert.Equal(t, []int64{4, 1}, store.cargaOn(t, "2024-01-10"))
	// o resto da semana segue com a dupla pretendida
	assert.Equal(t, []int64{3, 4}, store.cargaOn(t, "2024-01-09"))
	assert.Equal(t, []int64{3, 4}, store.cargaOn(t, "2024-01-14"))

	// a semana anterior à âncora não é tocada
	assert.Equal(t, firstWeekBefore, store.cargaOn(t, "2024-01-03"))
}

func TestRecalculateAfterOutsideHorizonIsNoOp(t *testing.T) {
	store := &fakeStore{roster: []int64{1, 2, 3, 4}}
	rc := NewRecalculator(store, domain.RoleConsultorMoveis, false)

	ctx := context.Background()
	require.NoError(t, rc.GenerateHorizon(ctx, rotation.MustParseDate("2024-01-01"), 14, seedPair(1, 2)))
	callsBefore := len(store.replaceCalls)

	regenerated, err := rc.RecalculateAfter(ctx, rotation.MustParseDate("2024-02-01"))
	require.NoError(t, err)
	assert.False(t, regenerated)
	assert.Len(t, store.replaceCalls, callsBefore)
}

func TestRecalculateAfterStrictSeedRequiresHistory(t *testing.T) {
	// escala parcial começando numa quarta: a segunda âncora não tem dupla
	store := &fakeStore{roster: []int64{1, 2, 3, 4}}
	for offset := 0; offset < 5; offset++ {
		date := rotation.MustParseDate("2024-01-10").AddDays(offset)
		store.entries = append(store.entries,
			domain.ScheduleEntry{ID: int64(2*offset + 1), Date: date, UserID: 1, IsCarga: true},
			domain.ScheduleEntry{ID: int64(2*offset + 2), Date: date, UserID: 2, IsCarga: true},
		)
	}
	store.nextID = 10

	store.dayOffs = append(store.dayOffs, domain.DayOff{
		ID:     1,
		UserID: 1,
		Date:   rotation.MustParseDate("2024-01-10"),
	})

	t.Run("modo estrito aborta", func(t *testing.T) {
		rc := NewRecalculator(store, domain.RoleConsultorMoveis, true)
		_, err := rc.RecalculateAfter(context.Background(), rotation.MustParseDate("2024-01-10"))
		assert.ErrorIs(t, err, ErrSeedRequired)
		assert.Empty(t, store.replaceCalls)
	})

	t.Run("modo padrão usa o início do cargo", func(t *testing.T) {
		rc := NewRecalculator(store, domain.RoleConsultorMoveis, false)
		regenerated, err := rc.RecalculateAfter(context.Background(), rotation.MustParseDate("2024-01-10"))
		require.NoError(t, err)
		assert.True(t, regenerated)

		// semente {1,2}; no dia da folga o 1 sai e entra o 2 com o 3
		assert.Equal(t, []int64{1, 2}, store.cargaOn(t, "2024-01-08"))
		assert.Equal(t, []int64{2, 3}, store.cargaOn(t, "2024-01-10"))
	})
}

func TestRecalculateAfterInsufficientRoster(t *testing.T) {
	store := &fakeStore{roster: []int64{1}}
	store.entries = append(store.entries, domain.ScheduleEntry{
		ID:      1,
		Date:    rotation.MustParseDate("2024-01-12"),
		UserID:  1,
		IsCarga: true,
	})

	rc := NewRecalculator(store, domain.RoleConsultorMoveis, false)
	_, err := rc.RecalculateAfter(context.Background(), rotation.MustParseDate("2024-01-12"))
	assert.ErrorIs(t, err, ErrInsufficientRoster)
}
