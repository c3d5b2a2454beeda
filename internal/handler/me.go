package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/filial96/escala-manager/backend/internal/domain"
	"github.com/filial96/escala-manager/backend/internal/utils"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	h.successResponse(w, r, "informações pessoais obtidas com sucesso", myInfo)
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(myInfo.PasswordHash), []byte(req.OldPassword)); err != nil {
		h.errorResponse(w, r, "senha atual incorreta")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	myInfo.PasswordHash = string(hashedPassword)

	if err := h.repository.UpdateUser(myInfo); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "não foi possível atualizar a senha, tente novamente")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "senha atualizada com sucesso", nil)
}

func (h *Handler) RequireUpdateEmail(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		NewEmail string `json:"newEmail" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// o OTP vai para o e-mail novo; guarda o par OTP + e-mail no redis
	otp := utils.GenerateRandomOTP()

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	expiration := time.Duration(h.config.OTP.Expiration) * time.Second
	if err := h.redisClient.Set(ctx, fmt.Sprintf("otp_%s_update_email", myInfo.Username), otp, expiration).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := h.redisClient.Set(ctx, fmt.Sprintf("new_email_%s", myInfo.Username), req.NewEmail, expiration).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	err := h.publishNotification(domain.NotificationMessage{
		Type: "change_email",
		To:   req.NewEmail,
		Data: domain.ChangeEmailNotificationData{
			FullName:   myInfo.FullName,
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60,
		},
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "código de verificação enviado para o novo e-mail", nil)
}

func (h *Handler) ConfirmUpdateEmail(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		OTP string `json:"otp" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	otp, err := h.redisClient.Get(ctx, fmt.Sprintf("otp_%s_update_email", myInfo.Username)).Result()
	if err != nil || otp != req.OTP {
		h.errorResponse(w, r, "código de verificação incorreto")
		return
	}

	newEmail, err := h.redisClient.Get(ctx, fmt.Sprintf("new_email_%s", myInfo.Username)).Result()
	if err != nil {
		h.errorResponse(w, r, "código de verificação expirado, tente novamente")
		return
	}

	myInfo.Email = newEmail

	if err := h.repository.UpdateUser(myInfo); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "não foi possível atualizar o e-mail, tente novamente")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	_ = h.redisClient.Del(ctx, fmt.Sprintf("otp_%s_update_email", myInfo.Username)).Err()
	_ = h.redisClient.Del(ctx, fmt.Sprintf("new_email_%s", myInfo.Username)).Err()

	h.successResponse(w, r, "e-mail atualizado com sucesso", myInfo)
}
