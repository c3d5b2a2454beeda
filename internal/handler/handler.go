package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_br_translations "github.com/go-playground/validator/v10/translations/pt_BR"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/filial96/escala-manager/backend/internal/config"
	"github.com/filial96/escala-manager/backend/internal/domain"
	"github.com/filial96/escala-manager/backend/internal/escala"
	"github.com/filial96/escala-manager/backend/internal/repository"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client
	recalculator  *escala.Recalculator

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	ptBR := pt_BR.New()
	uni := ut.New(ptBR, ptBR)
	trans, _ := uni.GetTranslator("pt_BR")
	if err := pt_br_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,
		recalculator:  escala.NewRecalculator(repo, domain.Role(cfg.Escala.Role), cfg.Escala.StrictSeed),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// autenticação
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// as rotas abaixo exigem login
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleGerente})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo) // toda a equipe pode consultar o quadro
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleGerente})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleGerente})).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/folgas", func(r chi.Router) {
			r.Post("/", h.CreateFolga)
			r.Get("/", h.ListFolgas)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.folga)
				r.With(h.RequiredRole([]domain.Role{domain.RoleGerente})).Delete("/", h.DeleteFolga)
			})
		})

		r.Route("/escalas", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleGerente})).Post("/generate", h.GenerateEscala)
			r.Get("/", h.ListEscala)
			r.Get("/carga", h.ListCarga)
		})

		r.Route("/tarefas", func(r chi.Router) {
			r.Post("/", h.CreateTask)
			r.Get("/", h.GetAllTasks)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.task)
				r.Get("/", h.GetTask)
				r.Patch("/", h.UpdateTask)
				r.Patch("/status", h.UpdateTaskStatus)
				r.With(h.RequiredRole([]domain.Role{domain.RoleGerente})).Delete("/", h.DeleteTask)
			})
		})

		r.Route("/metas", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleGerente})).Post("/", h.CreateGoal)
			r.Get("/", h.ListGoals)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.goal)
				r.Get("/", h.GetGoal)
				r.With(h.RequiredRole([]domain.Role{domain.RoleGerente})).Patch("/", h.UpdateGoal)
				r.With(h.RequiredRole([]domain.Role{domain.RoleGerente})).Delete("/", h.DeleteGoal)
			})
		})
	})
}
