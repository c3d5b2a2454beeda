package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/filial96/escala-manager/backend/internal/domain"
	"github.com/filial96/escala-manager/backend/internal/rotation"
)

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string         `json:"title" validate:"required"`
		Description string         `json:"description"`
		Type        string         `json:"type" validate:"required,oneof=entrega montagem cobranca"`
		AssigneeID  *int64         `json:"assigneeID"`
		DueDate     *rotation.Date `json:"dueDate"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	task := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Type:        domain.TaskType(req.Type),
		Status:      domain.TaskPendente,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}

	if err := h.repository.CreateTask(task); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "tasks_assignee_id_fkey":
				h.badRequest(w, r, errors.New("responsável não encontrado"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if task.AssigneeID != nil {
		h.notifyTaskAssigned(r, task)
	}

	h.successResponse(w, r, "tarefa criada com sucesso", task)
}

func (h *Handler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.repository.GetAllTasks()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "tarefas obtidas com sucesso", tasks)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	task := r.Context().Value(TaskCtx).(*domain.Task)
	h.successResponse(w, r, "tarefa obtida com sucesso", task)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	task := r.Context().Value(TaskCtx).(*domain.Task)

	var req struct {
		Title       *string        `json:"title"`
		Description *string        `json:"description"`
		Type        *string        `json:"type" validate:"omitempty,oneof=entrega montagem cobranca"`
		AssigneeID  *int64         `json:"assigneeID"`
		DueDate     *rotation.Date `json:"dueDate"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	previousAssignee := task.AssigneeID

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Type != nil {
		task.Type = domain.TaskType(*req.Type)
	}
	if req.AssigneeID != nil {
		task.AssigneeID = req.AssigneeID
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := h.repository.UpdateTask(task); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "tasks_assignee_id_fkey":
				h.badRequest(w, r, errors.New("responsável não encontrado"))
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "a tarefa foi alterada por outra pessoa, tente novamente")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// avisa quando a tarefa muda de responsável
	if task.AssigneeID != nil && (previousAssignee == nil || *previousAssignee != *task.AssigneeID) {
		h.notifyTaskAssigned(r, task)
	}

	h.successResponse(w, r, "tarefa atualizada com sucesso", task)
}

func (h *Handler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	task := r.Context().Value(TaskCtx).(*domain.Task)

	var req struct {
		Status string `json:"status" validate:"required,oneof=pendente em_andamento concluida cancelada"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := domain.ValidateTaskTransition(task.Status, domain.TaskStatus(req.Status)); err != nil {
		h.badRequest(w, r, err)
		return
	}

	task.Status = domain.TaskStatus(req.Status)

	if err := h.repository.UpdateTask(task); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "a tarefa foi alterada por outra pessoa, tente novamente")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "status da tarefa atualizado com sucesso", task)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	task := r.Context().Value(TaskCtx).(*domain.Task)

	if err := h.repository.DeleteTask(task.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "tarefa removida com sucesso", nil)
}

func (h *Handler) notifyTaskAssigned(r *http.Request, task *domain.Task) {
	assignee, err := h.repository.GetUserByID(*task.AssigneeID)
	if err != nil {
		h.logInternalServerError(r, err)
		return
	}

	dueDate := ""
	if task.DueDate != nil {
		dueDate = task.DueDate.String()
	}

	err = h.publishNotification(domain.NotificationMessage{
		Type: "task_assigned",
		To:   assignee.Email,
		Data: domain.TaskAssignedNotificationData{
			FullName: assignee.FullName,
			Title:    task.Title,
			Type:     string(task.Type),
			DueDate:  dueDate,
		},
	})
	if err != nil {
		h.logInternalServerError(r, err)
	}
}
