package rotation

// resolveForDay materializa a dupla de um dia específico. Membros pretendidos
// de folga são trocados pelo primeiro disponível na ordem do pool, o que
// mantém o resultado reproduzível para auditoria da escala. Devolve de 0 a 2
// ids: com pool insuficiente o dia fica com menos gente, sem erro.
func resolveForDay(intended Pair, unavailable map[int64]bool, pool []int64) []int64 {
	result := make([]int64, 0, 2)
	taken := make(map[int64]bool, 2)

	for _, id := range intended {
		if id == 0 || unavailable[id] || taken[id] {
			continue
		}
		result = append(result, id)
		taken[id] = true
	}

	// completa com substitutos na ordem do pool
	for _, id := range pool {
		if len(result) == 2 {
			break
		}
		if unavailable[id] || taken[id] {
			continue
		}
		result = append(result, id)
		taken[id] = true
	}

	return result
}
