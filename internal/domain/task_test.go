package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateTaskTransition(t *testing.T) {
	allowed := []struct{ from, to TaskStatus }{
		{TaskPendente, TaskEmAndamento},
		{TaskPendente, TaskConcluida},
		{TaskPendente, TaskCancelada},
		{TaskEmAndamento, TaskConcluida},
		{TaskEmAndamento, TaskCancelada},
	}
	for _, tt := range allowed {
		assert.NoError(t, ValidateTaskTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}

	// concluída e cancelada são terminais
	denied := []struct{ from, to TaskStatus }{
		{TaskConcluida, TaskPendente},
		{TaskConcluida, TaskEmAndamento},
		{TaskCancelada, TaskPendente},
		{TaskCancelada, TaskConcluida},
		{TaskEmAndamento, TaskPendente},
	}
	for _, tt := range denied {
		assert.Error(t, ValidateTaskTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestGoalAttainment(t *testing.T) {
	goal := Goal{
		TargetAmount:   decimal.NewFromInt(30000),
		AchievedAmount: decimal.NewFromInt(10000),
	}
	assert.True(t, goal.Attainment().Equal(decimal.NewFromFloat(33.33)), "obtido %s", goal.Attainment())

	goal.AchievedAmount = decimal.NewFromInt(45000)
	assert.True(t, goal.Attainment().Equal(decimal.NewFromInt(150)))

	goal.TargetAmount = decimal.Zero
	assert.True(t, goal.Attainment().IsZero())
}
