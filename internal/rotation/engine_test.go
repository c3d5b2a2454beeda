package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byDate(assignments []Assignment) map[Date][]int64 {
	out := make(map[Date][]int64)
	for _, a := range assignments {
		out[a.Date] = append(out[a.Date], a.StaffID)
	}
	return out
}

func TestGenerateRejectsInvalidWindow(t *testing.T) {
	pool := []int64{1, 2, 3, 4}

	_, err := Generate(MustParseDate("2024-01-10"), 7, Pair{1, 2}, pool, nil)
	assert.ErrorIs(t, err, ErrNotMonday)

	_, err = Generate(MustParseDate("2024-01-08"), 0, Pair{1, 2}, pool, nil)
	assert.ErrorIs(t, err, ErrEmptyWindow)
}

func TestGenerateCoversEveryDayOnce(t *testing.T) {
	start := MustParseDate("2024-01-01")
	pool := []int64{1, 2, 3, 4}

	assignments, err := Generate(start, 14, Pair{1, 2}, pool, nil)
	require.NoError(t, err)

	days := byDate(assignments)
	require.Len(t, days, 14)
	for offset := 0; offset < 14; offset++ {
		day := start.AddDays(offset)
		assert.Len(t, days[day], 2, "dia %s", day)
	}
}

func TestGenerateWeekZeroUsesSeedVerbatim(t *testing.T) {
	start := MustParseDate("2024-01-01")
	pool := []int64{1, 2, 3, 4}

	// semente fora da ordem "natural" do início do pool
	assignments, err := Generate(start, 7, Pair{3, 4}, pool, nil)
	require.NoError(t, err)

	for day, ids := range byDate(assignments) {
		assert.Equal(t, []int64{3, 4}, ids, "dia %s", day)
	}
}

func TestGenerateAdvancesPairEverySevenDays(t *testing.T) {
	start := MustParseDate("2024-01-01")
	pool := []int64{1, 2, 3, 4}

	assignments, err := Generate(start, 21, Pair{1, 2}, pool, nil)
	require.NoError(t, err)
	days := byDate(assignments)

	// semana 0: semente; semana 1: ponteiro avança 2; semana 2: dá a volta no pool
	assert.Equal(t, []int64{1, 2}, days[MustParseDate("2024-01-01")])
	assert.Equal(t, []int64{1, 2}, days[MustParseDate("2024-01-07")])
	assert.Equal(t, []int64{3, 4}, days[MustParseDate("2024-01-08")])
	assert.Equal(t, []int64{3, 4}, days[MustParseDate("2024-01-14")])
	assert.Equal(t, []int64{1, 2}, days[MustParseDate("2024-01-15")])
}

func TestGenerateAnchorsPointerAtSeedPosition(t *testing.T) {
	start := MustParseDate("2024-01-01")
	pool := []int64{1, 2, 3, 4}

	// semente no meio do pool: a semana seguinte continua a partir dela
	assignments, err := Generate(start, 14, Pair{3, 4}, pool, nil)
	require.NoError(t, err)
	days := byDate(assignments)

	assert.Equal(t, []int64{3, 4}, days[MustParseDate("2024-01-01")])
	assert.Equal(t, []int64{1, 2}, days[MustParseDate("2024-01-08")])
}

func TestGenerateSeedOutsidePoolAnchorsAtStart(t *testing.T) {
	start := MustParseDate("2024-01-01")
	pool := []int64{1, 2, 3, 4}

	// ids 90/91 saíram do pool (ex.: desligados) mas seguem na semente persistida
	assignments, err := Generate(start, 14, Pair{90, 91}, pool, nil)
	require.NoError(t, err)
	days := byDate(assignments)

	assert.Equal(t, []int64{90, 91}, days[MustParseDate("2024-01-01")])
	assert.Equal(t, []int64{3, 4}, days[MustParseDate("2024-01-08")])
}

func TestGenerateSubstitutesDayOffDeterministically(t *testing.T) {
	start := MustParseDate("2024-01-08")
	pool := []int64{1, 2, 3, 4}
	folga := MustParseDate("2024-01-10")
	dayOffs := map[Date]map[int64]bool{
		folga: {1: true},
	}

	assignments, err := Generate(start, 7, Pair{1, 2}, pool, dayOffs)
	require.NoError(t, err)
	days := byDate(assignments)

	// só o dia da folga troca; o substituto é o primeiro livre na ordem do pool
	assert.Equal(t, []int64{2, 3}, days[folga])
	assert.Equal(t, []int64{1, 2}, days[MustParseDate("2024-01-09")])
	assert.Equal(t, []int64{1, 2}, days[MustParseDate("2024-01-11")])
}

func TestGenerateSubstitutesBothMembers(t *testing.T) {
	start := MustParseDate("2024-01-08")
	pool := []int64{1, 2, 3, 4}
	folga := MustParseDate("2024-01-09")
	dayOffs := map[Date]map[int64]bool{
		folga: {1: true, 2: true},
	}

	assignments, err := Generate(start, 7, Pair{1, 2}, pool, dayOffs)
	require.NoError(t, err)

	assert.Equal(t, []int64{3, 4}, byDate(assignments)[folga])
}

func TestGenerateDegradesOnThinPool(t *testing.T) {
	start := MustParseDate("2024-01-08")

	t.Run("pool de um", func(t *testing.T) {
		assignments, err := Generate(start, 7, Pair{7, 0}, []int64{7}, nil)
		require.NoError(t, err)
		for day, ids := range byDate(assignments) {
			assert.Equal(t, []int64{7}, ids, "dia %s", day)
		}
	})

	t.Run("todos de folga", func(t *testing.T) {
		folga := MustParseDate("2024-01-10")
		dayOffs := map[Date]map[int64]bool{
			folga: {1: true, 2: true},
		}
		assignments, err := Generate(start, 7, Pair{1, 2}, []int64{1, 2}, dayOffs)
		require.NoError(t, err)

		days := byDate(assignments)
		assert.Empty(t, days[folga])
		assert.Equal(t, []int64{1, 2}, days[MustParseDate("2024-01-09")])
	})

	t.Run("pool vazio", func(t *testing.T) {
		assignments, err := Generate(start, 7, Pair{}, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, assignments)
	})
}

func TestGenerateIsDeterministic(t *testing.T) {
	start := MustParseDate("2024-01-01")
	pool := []int64{5, 3, 8, 1, 9}
	dayOffs := map[Date]map[int64]bool{
		MustParseDate("2024-01-04"): {5: true},
		MustParseDate("2024-01-11"): {8: true, 1: true},
	}

	first, err := Generate(start, 28, Pair{5, 3}, pool, dayOffs)
	require.NoError(t, err)
	second, err := Generate(start, 28, Pair{5, 3}, pool, dayOffs)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveForDaySkipsDuplicatesAndZeros(t *testing.T) {
	pool := []int64{1, 2, 3}

	// semente degenerada com o mesmo id duas vezes
	assert.Equal(t, []int64{1, 2}, resolveForDay(Pair{1, 1}, nil, pool))

	// posição vazia na semente é preenchida pelo pool
	assert.Equal(t, []int64{3, 1}, resolveForDay(Pair{3, 0}, nil, pool))
}
