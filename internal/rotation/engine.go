// Package rotation contém o motor puro da escala de carga: dado um par
// semente, o pool de consultores e as folgas do período, calcula quem fica
// na carga em cada dia. Nenhuma função deste pacote faz I/O.
package rotation

import (
	"errors"
	"fmt"
	"time"
)

// Pair é a dupla pretendida para a carga de uma semana. Um id zero indica
// posição vazia (semente incompleta).
type Pair [2]int64

// Assignment é um dia de carga calculado para um membro do pool.
type Assignment struct {
	Date    Date
	StaffID int64
}

var (
	ErrEmptyWindow = errors.New("a janela de geração precisa de pelo menos um dia")
	ErrNotMonday   = errors.New("a escala começa sempre numa segunda-feira")
)

// Generate calcula as atribuições de carga para dayCount dias consecutivos a
// partir de start (obrigatoriamente uma segunda-feira). A dupla pretendida
// avança no pool a cada 7 dias, na ordem em que o pool foi fornecido; as
// substituições diárias por folga não mexem nesse ponteiro. Dias sem ninguém
// disponível simplesmente não geram atribuição, nunca erro.
func Generate(start Date, dayCount int, seed Pair, pool []int64, dayOffs map[Date]map[int64]bool) ([]Assignment, error) {
	if start.Weekday() != time.Monday {
		return nil, fmt.Errorf("%w: recebido %s (%s)", ErrNotMonday, start, start.Weekday())
	}
	if dayCount < 1 {
		return nil, ErrEmptyWindow
	}

	base := seedIndex(seed, pool)

	assignments := make([]Assignment, 0, dayCount*2)
	for offset := 0; offset < dayCount; offset++ {
		day := start.AddDays(offset)
		week := offset / 7

		intended := seed
		if week > 0 && len(pool) > 0 {
			intended = Pair{
				pool[(base+2*week)%len(pool)],
				pool[(base+2*week+1)%len(pool)],
			}
		}

		for _, id := range resolveForDay(intended, dayOffs[day], pool) {
			assignments = append(assignments, Assignment{Date: day, StaffID: id})
		}
	}

	return assignments, nil
}

// seedIndex ancora o ponteiro de rotação na posição da semente dentro do
// pool. Semente fora do pool ancora no início.
func seedIndex(seed Pair, pool []int64) int {
	for _, id := range seed {
		for i, poolID := range pool {
			if poolID == id {
				return i
			}
		}
	}
	return 0
}
