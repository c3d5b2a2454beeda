package rotation

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Date representa uma data pura de calendário (sem horário e sem fuso).
// Toda a aritmética da escala acontece sobre esse tipo, nunca sobre
// time.Time diretamente, para evitar erros de um dia nas bordas de fuso.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	// normaliza via time.Date para aceitar valores fora do intervalo (ex.: dia 32)
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// ParseDate espera o formato YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("data inválida %q: esperado YYYY-MM-DD", s)
	}
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }
func (d Date) IsZero() bool      { return d.year == 0 && d.month == 0 && d.day == 0 }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d Date) Weekday() time.Weekday {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC).Weekday()
}

func (d Date) AddDays(n int) Date {
	t := time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// MondayOnOrBefore devolve a segunda-feira âncora da semana de d.
// Domingo recua 6 dias; os demais dias recuam Weekday-1 dias.
func (d Date) MondayOnOrBefore() Date {
	wd := d.Weekday()
	if wd == time.Sunday {
		return d.AddDays(-6)
	}
	return d.AddDays(-(int(wd) - 1))
}

// Compare devolve -1, 0 ou 1, comparando apenas os campos de calendário.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		if d.year < other.year {
			return -1
		}
		return 1
	case d.month != other.month:
		if d.month < other.month {
			return -1
		}
		return 1
	case d.day != other.day:
		if d.day < other.day {
			return -1
		}
		return 1
	}
	return 0
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool  { return d.Compare(other) == 0 }

// DaysBetween conta os dias de from até to (to - from).
func DaysBetween(from, to Date) int {
	a := time.Date(from.year, from.month, from.day, 0, 0, 0, 0, time.UTC)
	b := time.Date(to.year, to.month, to.day, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("data inválida %s: esperado string YYYY-MM-DD", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value e Scan permitem mapear o tipo direto em colunas DATE do Postgres.
func (d Date) Value() (driver.Value, error) {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = Date{year: v.Year(), month: v.Month(), day: v.Day()}
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("não é possível converter %T para rotation.Date", src)
	}
}
