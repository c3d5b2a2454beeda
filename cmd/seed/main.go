package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/filial96/escala-manager/backend/internal/config"
	"github.com/filial96/escala-manager/backend/internal/repository"
	"github.com/filial96/escala-manager/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operação (1: inserir usuários aleatórios, 2: gerar escala inicial, 3: inserir tarefas de exemplo, 4: inserir metas do mês)")
	flag.IntVar(&n, "n", 5, "quantidade de registros a inserir")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// carrega a configuração
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("não foi possível carregar a configuração", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// cria o pool de conexões
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("não foi possível criar o pool de conexões", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open só cria o pool; o ping confirma que o banco está acessível
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("não foi possível conectar ao banco de dados", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("nenhuma operação informada")
	case 1:
		if n <= 0 {
			slog.Error("informe uma quantidade válida de usuários")
			return
		}
		cnt := seed.SeedUsers(repo, cfg, n)
		slog.Info("usuários inseridos com sucesso", slog.Int("count", cnt))
	case 2:
		if err := seed.SeedEscala(repo, cfg); err != nil {
			slog.Error("não foi possível gerar a escala inicial", slog.String("error", err.Error()))
			return
		}
		slog.Info("escala inicial gerada com sucesso", slog.Int("days", cfg.Escala.HorizonDays))
	case 3:
		if n <= 0 {
			slog.Error("informe uma quantidade válida de tarefas")
			return
		}
		cnt := seed.SeedTasks(repo, n)
		slog.Info("tarefas inseridas com sucesso", slog.Int("count", cnt))
	case 4:
		cnt := seed.SeedGoals(repo)
		slog.Info("metas inseridas com sucesso", slog.Int("count", cnt))
	default:
		slog.Error("operação inválida")
	}
}
