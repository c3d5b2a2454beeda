package seed

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/filial96/escala-manager/backend/internal/config"
	"github.com/filial96/escala-manager/backend/internal/domain"
	"github.com/filial96/escala-manager/backend/internal/escala"
	"github.com/filial96/escala-manager/backend/internal/repository"
	"github.com/filial96/escala-manager/backend/internal/rotation"
	"github.com/filial96/escala-manager/backend/internal/utils"
)

// SeedUsers insere n usuários aleatórios com a senha padrão de seed.
func SeedUsers(r *repository.Repository, cfg *config.Config, n int) int {
	cnt := 0
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("não foi possível gerar o usuário aleatório", slog.String("error", err.Error()))
			continue
		}

		if err := r.CreateUser(user); err != nil {
			slog.Error("não foi possível inserir o usuário", slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	return cnt
}

// SeedEscala gera o horizonte inicial da escala a partir da próxima
// segunda-feira, usando os dois primeiros do cargo como semente.
func SeedEscala(r *repository.Repository, cfg *config.Config) error {
	now := time.Now()
	today := rotation.NewDate(now.Year(), now.Month(), now.Day())
	start := today.MondayOnOrBefore().AddDays(7)

	rc := escala.NewRecalculator(r, domain.Role(cfg.Escala.Role), false)
	return rc.GenerateHorizon(context.Background(), start, cfg.Escala.HorizonDays, nil)
}

var sampleTaskTitles = map[domain.TaskType][]string{
	domain.TaskEntrega:  {"Entrega de guarda-roupa", "Entrega de sofá 3 lugares", "Entrega de cama box"},
	domain.TaskMontagem: {"Montagem de cozinha planejada", "Montagem de estante", "Montagem de rack"},
	domain.TaskCobranca: {"Cobrança de carnê em atraso", "Renegociação de parcela", "Contato de cobrança"},
}

// SeedTasks insere n tarefas de exemplo, distribuídas entre os funcionários
// ativos.
func SeedTasks(r *repository.Repository, n int) int {
	users, err := r.GetAllUsers()
	if err != nil {
		slog.Error("não foi possível obter os funcionários", slog.String("error", err.Error()))
		return 0
	}

	types := []domain.TaskType{domain.TaskEntrega, domain.TaskMontagem, domain.TaskCobranca}

	cnt := 0
	for i := 0; i < n; i++ {
		taskType := types[rand.Intn(len(types))]
		titles := sampleTaskTitles[taskType]

		task := &domain.Task{
			Title:  titles[rand.Intn(len(titles))],
			Type:   taskType,
			Status: domain.TaskPendente,
		}

		if len(users) > 0 && rand.Intn(2) == 0 {
			task.AssigneeID = &users[rand.Intn(len(users))].ID
		}
		if rand.Intn(2) == 0 {
			now := time.Now()
			due := rotation.NewDate(now.Year(), now.Month(), now.Day()).AddDays(rand.Intn(14) + 1)
			task.DueDate = &due
		}

		if err := r.CreateTask(task); err != nil {
			slog.Error("não foi possível inserir a tarefa", slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	return cnt
}

// SeedGoals insere uma meta do mês corrente para cada funcionário ativo que
// ainda não tem.
func SeedGoals(r *repository.Repository) int {
	users, err := r.GetAllUsers()
	if err != nil {
		slog.Error("não foi possível obter os funcionários", slog.String("error", err.Error()))
		return 0
	}

	now := time.Now()

	cnt := 0
	for _, user := range users {
		if !user.IsActive || user.Role == domain.RoleGerente {
			continue
		}

		target := decimal.NewFromInt(int64(rand.Intn(30)+20) * 1000)
		achieved := target.Mul(decimal.NewFromInt(int64(rand.Intn(100))).Div(decimal.NewFromInt(100))).Round(2)

		goal := &domain.Goal{
			UserID:         user.ID,
			Year:           now.Year(),
			Month:          int(now.Month()),
			TargetAmount:   target,
			AchievedAmount: achieved,
		}

		if err := r.CreateGoal(goal); err != nil {
			slog.Error("não foi possível inserir a meta", slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	return cnt
}
