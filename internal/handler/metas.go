package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/filial96/escala-manager/backend/internal/domain"
)

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID         int64           `json:"userID" validate:"required"`
		Year           int             `json:"year" validate:"required,min=2000"`
		Month          int             `json:"month" validate:"required,min=1,max=12"`
		TargetAmount   decimal.Decimal `json:"targetAmount"`
		AchievedAmount decimal.Decimal `json:"achievedAmount"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.TargetAmount.IsNegative() || req.AchievedAmount.IsNegative() {
		h.badRequest(w, r, errors.New("valores de meta não podem ser negativos"))
		return
	}

	goal := &domain.Goal{
		UserID:         req.UserID,
		Year:           req.Year,
		Month:          req.Month,
		TargetAmount:   req.TargetAmount,
		AchievedAmount: req.AchievedAmount,
	}

	if err := h.repository.CreateGoal(goal); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "goals_user_id_fkey":
				h.badRequest(w, r, errors.New("funcionário não encontrado"))
			case "goals_user_id_year_month_key":
				h.badRequest(w, r, errors.New("já existe meta para esse funcionário nessa competência"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "meta criada com sucesso", goal)
}

// ListGoals aceita os filtros opcionais year e month na query string e devolve
// cada meta com o percentual de atingimento.
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	year, month := 0, 0
	if param := r.URL.Query().Get("year"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil {
			h.badRequest(w, r, errors.New("year inválido"))
			return
		}
		year = parsed
	}
	if param := r.URL.Query().Get("month"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed < 1 || parsed > 12 {
			h.badRequest(w, r, errors.New("month inválido"))
			return
		}
		month = parsed
	}

	goals, err := h.repository.ListGoals(year, month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	type goalWithAttainment struct {
		*domain.Goal
		Attainment decimal.Decimal `json:"attainment"`
	}

	result := make([]goalWithAttainment, len(goals))
	for i, goal := range goals {
		result[i] = goalWithAttainment{Goal: goal, Attainment: goal.Attainment()}
	}

	h.successResponse(w, r, "metas obtidas com sucesso", result)
}

func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	goal := r.Context().Value(GoalCtx).(*domain.Goal)

	h.successResponse(w, r, "meta obtida com sucesso", map[string]any{
		"goal":       goal,
		"attainment": goal.Attainment(),
	})
}

func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	goal := r.Context().Value(GoalCtx).(*domain.Goal)

	var req struct {
		TargetAmount   *decimal.Decimal `json:"targetAmount"`
		AchievedAmount *decimal.Decimal `json:"achievedAmount"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.TargetAmount != nil {
		if req.TargetAmount.IsNegative() {
			h.badRequest(w, r, errors.New("valores de meta não podem ser negativos"))
			return
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.AchievedAmount != nil {
		if req.AchievedAmount.IsNegative() {
			h.badRequest(w, r, errors.New("valores de meta não podem ser negativos"))
			return
		}
		goal.AchievedAmount = *req.AchievedAmount
	}

	if err := h.repository.UpdateGoal(goal); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "a meta foi alterada por outra pessoa, tente novamente")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "meta atualizada com sucesso", goal)
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goal := r.Context().Value(GoalCtx).(*domain.Goal)

	if err := h.repository.DeleteGoal(goal.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "meta removida com sucesso", nil)
}
