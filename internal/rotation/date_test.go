package rotation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-08")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 8, d.Day())
	assert.Equal(t, "2024-01-08", d.String())

	_, err = ParseDate("08/01/2024")
	assert.Error(t, err)

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
}

func TestAddDaysCrossesMonthAndYear(t *testing.T) {
	assert.Equal(t, MustParseDate("2024-02-01"), MustParseDate("2024-01-31").AddDays(1))
	assert.Equal(t, MustParseDate("2024-01-01"), MustParseDate("2023-12-31").AddDays(1))
	assert.Equal(t, MustParseDate("2023-12-25"), MustParseDate("2024-01-01").AddDays(-7))
	// 2024 é bissexto
	assert.Equal(t, MustParseDate("2024-02-29"), MustParseDate("2024-02-28").AddDays(1))
}

func TestMondayOnOrBefore(t *testing.T) {
	// semana de 2024-01-08 (segunda) a 2024-01-14 (domingo)
	tests := []struct {
		input string
	}{
		{"2024-01-08"}, // segunda
		{"2024-01-09"}, // terça
		{"2024-01-10"}, // quarta
		{"2024-01-11"}, // quinta
		{"2024-01-12"}, // sexta
		{"2024-01-13"}, // sábado
		{"2024-01-14"}, // domingo
	}

	anchor := MustParseDate("2024-01-08")
	for _, tt := range tests {
		d := MustParseDate(tt.input)
		monday := d.MondayOnOrBefore()

		assert.Equal(t, anchor, monday, "entrada %s", tt.input)
		assert.Equal(t, time.Monday, monday.Weekday())
		assert.False(t, monday.After(d))
		assert.LessOrEqual(t, DaysBetween(monday, d), 6)
	}

	// segunda-feira é o próprio âncora
	assert.Equal(t, anchor, anchor.MondayOnOrBefore())
}

func TestCompareAndDaysBetween(t *testing.T) {
	a := MustParseDate("2024-01-01")
	b := MustParseDate("2024-01-14")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(MustParseDate("2024-01-01")))
	assert.Equal(t, 13, DaysBetween(a, b))
	assert.Equal(t, -13, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := MustParseDate("2024-06-15")

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-15"`, string(raw))

	var parsed Date
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, d, parsed)

	assert.Error(t, json.Unmarshal([]byte(`1718409600`), &parsed))
}

func TestDateScan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, MustParseDate("2024-03-03"), d)

	require.NoError(t, d.Scan("2024-04-04"))
	assert.Equal(t, MustParseDate("2024-04-04"), d)

	require.NoError(t, d.Scan([]byte("2024-05-05")))
	assert.Equal(t, MustParseDate("2024-05-05"), d)

	assert.Error(t, d.Scan(42))
}
