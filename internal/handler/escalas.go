package handler

import (
	"errors"
	"net/http"

	"github.com/filial96/escala-manager/backend/internal/rotation"
)

// parseDateRange lê os parâmetros from e to (YYYY-MM-DD) da query string.
func parseDateRange(r *http.Request) (rotation.Date, rotation.Date, error) {
	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")
	if fromParam == "" || toParam == "" {
		return rotation.Date{}, rotation.Date{}, errors.New("informe os parâmetros from e to no formato YYYY-MM-DD")
	}

	from, err := rotation.ParseDate(fromParam)
	if err != nil {
		return rotation.Date{}, rotation.Date{}, err
	}
	to, err := rotation.ParseDate(toParam)
	if err != nil {
		return rotation.Date{}, rotation.Date{}, err
	}
	if to.Before(from) {
		return rotation.Date{}, rotation.Date{}, errors.New("o parâmetro to não pode ser anterior ao from")
	}

	return from, to, nil
}

// GenerateEscala gera (ou regera) o horizonte da escala a partir de uma
// segunda-feira. Sem seedPair, a semente vem da dupla já registrada para a
// data ou, fora do modo estrito, dos dois primeiros do cargo.
func (h *Handler) GenerateEscala(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate rotation.Date `json:"startDate" validate:"required"`
		DayCount  int           `json:"dayCount"`
		SeedPair  *[2]int64     `json:"seedPair"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dayCount := req.DayCount
	if dayCount == 0 {
		dayCount = h.config.Escala.HorizonDays
	}
	if dayCount < 1 {
		h.badRequest(w, r, errors.New("dayCount deve ser pelo menos 1"))
		return
	}

	var seed *rotation.Pair
	if req.SeedPair != nil {
		p := rotation.Pair(*req.SeedPair)
		seed = &p
	}

	if err := h.recalculator.GenerateHorizon(r.Context(), req.StartDate, dayCount, seed); err != nil {
		h.handleEscalaError(w, r, err)
		return
	}

	entries, err := h.repository.ListScheduleEntries(r.Context(), req.StartDate, req.StartDate.AddDays(dayCount-1), false)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "escala gerada com sucesso", entries)
}

func (h *Handler) ListEscala(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	entries, err := h.repository.ListScheduleEntries(r.Context(), from, to, false)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "escala obtida com sucesso", entries)
}

// ListCarga devolve apenas as linhas da dupla de carga de cada dia.
func (h *Handler) ListCarga(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	entries, err := h.repository.ListScheduleEntries(r.Context(), from, to, true)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "carga obtida com sucesso", entries)
}
