package domain

import (
	"time"

	"github.com/filial96/escala-manager/backend/internal/rotation"
)

// ScheduleEntry é uma linha da escala. A tabela guarda mais linhas por dia do
// que apenas a dupla da carga, então IsCarga distingue quem está na carga.
type ScheduleEntry struct {
	ID        int64         `json:"id"`
	Date      rotation.Date `json:"date"`
	UserID    int64         `json:"userID"`
	IsCarga   bool          `json:"isCarga"`
	CreatedAt time.Time     `json:"createdAt"`
}
