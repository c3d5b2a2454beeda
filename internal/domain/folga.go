package domain

import (
	"time"

	"github.com/filial96/escala-manager/backend/internal/rotation"
)

// DayOff é uma folga registrada para um funcionário. A comparação é sempre
// por dia de calendário, nunca por instante.
type DayOff struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"userID"`
	Date      rotation.Date `json:"date"`
	Reason    string        `json:"reason"`
	CreatedAt time.Time     `json:"createdAt"`
}
