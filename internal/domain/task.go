package domain

import (
	"fmt"
	"time"

	"github.com/filial96/escala-manager/backend/internal/rotation"
)

type TaskType string

const (
	TaskEntrega  TaskType = "entrega"
	TaskMontagem TaskType = "montagem"
	TaskCobranca TaskType = "cobranca"
)

type TaskStatus string

const (
	TaskPendente    TaskStatus = "pendente"
	TaskEmAndamento TaskStatus = "em_andamento"
	TaskConcluida   TaskStatus = "concluida"
	TaskCancelada   TaskStatus = "cancelada"
)

type Task struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        TaskType       `json:"type"`
	Status      TaskStatus     `json:"status"`
	AssigneeID  *int64         `json:"assigneeID"`
	DueDate     *rotation.Date `json:"dueDate"`
	CreatedAt   time.Time      `json:"createdAt"`
	Version     int32          `json:"-"`
}

// transições permitidas de status; concluída e cancelada são terminais
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskPendente:    {TaskEmAndamento, TaskConcluida, TaskCancelada},
	TaskEmAndamento: {TaskConcluida, TaskCancelada},
}

func ValidateTaskTransition(from, to TaskStatus) error {
	for _, allowed := range taskTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("não é possível mudar a tarefa de %s para %s", from, to)
}
