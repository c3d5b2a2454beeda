package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal é a meta mensal de vendas de um funcionário. Valores monetários usam
// decimal para não acumular erro de ponto flutuante nos percentuais.
type Goal struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"userID"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	TargetAmount   decimal.Decimal `json:"targetAmount"`
	AchievedAmount decimal.Decimal `json:"achievedAmount"`
	CreatedAt      time.Time       `json:"createdAt"`
	Version        int32           `json:"-"`
}

// Attainment devolve o percentual atingido (0 quando a meta é zero).
func (g Goal) Attainment() decimal.Decimal {
	if g.TargetAmount.IsZero() {
		return decimal.Zero
	}
	return g.AchievedAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
}
