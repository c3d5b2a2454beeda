package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/filial96/escala-manager/backend/internal/domain"
	"github.com/filial96/escala-manager/backend/internal/escala"
	"github.com/filial96/escala-manager/backend/internal/rotation"
)

// CreateFolga registra a folga e, quando a data cai dentro de um horizonte já
// gerado, recomputa a escala a partir da segunda-feira âncora. A resposta
// informa se houve regeneração.
func (h *Handler) CreateFolga(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int64         `json:"userID" validate:"required"`
		Date   rotation.Date `json:"date" validate:"required"`
		Reason string        `json:"reason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dayOff := &domain.DayOff{
		UserID: req.UserID,
		Date:   req.Date,
		Reason: req.Reason,
	}

	if err := h.repository.CreateDayOff(dayOff); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "day_offs_user_id_fkey":
				h.badRequest(w, r, errors.New("funcionário não encontrado"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	regenerated, err := h.recalculator.RecalculateAfter(r.Context(), dayOff.Date)
	if err != nil {
		h.handleEscalaError(w, r, err)
		return
	}

	if regenerated {
		h.notifyEscalaRegenerated(r, dayOff.Date)
	}

	h.successResponse(w, r, "folga registrada com sucesso", map[string]any{
		"folga":       dayOff,
		"regenerated": regenerated,
	})
}

func (h *Handler) ListFolgas(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	dayOffs, err := h.repository.ListDayOffs(r.Context(), from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "folgas obtidas com sucesso", dayOffs)
}

// DeleteFolga remove a folga e recomputa a escala da mesma forma que o
// registro: quem estava substituindo volta a sair da dupla.
func (h *Handler) DeleteFolga(w http.ResponseWriter, r *http.Request) {
	dayOff := r.Context().Value(FolgaCtx).(*domain.DayOff)

	if err := h.repository.DeleteDayOff(dayOff.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	regenerated, err := h.recalculator.RecalculateAfter(r.Context(), dayOff.Date)
	if err != nil {
		h.handleEscalaError(w, r, err)
		return
	}

	if regenerated {
		h.notifyEscalaRegenerated(r, dayOff.Date)
	}

	h.successResponse(w, r, "folga removida com sucesso", map[string]any{
		"regenerated": regenerated,
	})
}

func (h *Handler) handleEscalaError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, escala.ErrInsufficientRoster),
		errors.Is(err, escala.ErrSeedRequired),
		errors.Is(err, rotation.ErrNotMonday),
		errors.Is(err, rotation.ErrEmptyWindow):
		h.errorResponse(w, r, err.Error())
	default:
		h.internalServerError(w, r, err)
	}
}

// notifyEscalaRegenerated avisa o gerente por e-mail; falha aqui não invalida
// a regeneração já persistida, só gera log.
func (h *Handler) notifyEscalaRegenerated(r *http.Request, dayOffDate rotation.Date) {
	admin, err := h.repository.GetUserByUsername(h.config.InitialAdmin.Username)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.logInternalServerError(r, err)
		}
		return
	}

	monday := dayOffDate.MondayOnOrBefore()
	end, found, err := h.repository.MaxScheduleDateFrom(r.Context(), dayOffDate)
	if err != nil || !found {
		end = dayOffDate
	}

	err = h.publishNotification(domain.NotificationMessage{
		Type: "escala_regenerated",
		To:   admin.Email,
		Data: domain.EscalaRegeneratedNotificationData{
			FullName: admin.FullName,
			From:     monday.String(),
			To:       end.String(),
		},
	})
	if err != nil {
		h.logInternalServerError(r, err)
	}
}
