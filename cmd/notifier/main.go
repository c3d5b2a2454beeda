package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/filial96/escala-manager/backend/internal/config"
	"github.com/filial96/escala-manager/backend/internal/domain"
)

// corpo dos e-mails por tipo de notificação
// os dados chegam como map desserializado do JSON, então as chaves dos
// templates seguem as tags json (camelCase minúsculo)
var templates = map[string]string{
	"create_user": `
		<p>Olá, {{.fullName}}!</p>
		<p>Seu acesso ao sistema da Filial 96 foi criado.</p>
		<p>Usuário: <strong>{{.username}}</strong><br>Senha: <strong>{{.password}}</strong></p>
		<p>Troque a senha no primeiro acesso.</p>`,
	"reset_password": `
		<p>Olá, {{.fullName}}!</p>
		<p>Seu código para redefinir a senha é <strong>{{.otp}}</strong>.</p>
		<p>Ele expira em {{.expiration}} minutos.</p>`,
	"change_email": `
		<p>Olá, {{.fullName}}!</p>
		<p>Seu código para confirmar o novo e-mail é <strong>{{.otp}}</strong>.</p>
		<p>Ele expira em {{.expiration}} minutos.</p>`,
	"escala_regenerated": `
		<p>Olá, {{.fullName}}!</p>
		<p>A escala de carga foi recalculada para o período de {{.from}} a {{.to}} por causa de uma folga.</p>
		<p>Confira a escala atualizada no sistema.</p>`,
	"task_assigned": `
		<p>Olá, {{.fullName}}!</p>
		<p>A tarefa <strong>{{.title}}</strong> ({{.type}}) foi atribuída a você.</p>
		{{if .dueDate}}<p>Prazo: {{.dueDate}}</p>{{end}}`,
}

var subjects = map[string]string{
	"create_user":        "Filial 96 - Dados de acesso",
	"reset_password":     "Filial 96 - Redefinição de senha",
	"change_email":       "Filial 96 - Confirmação de e-mail",
	"escala_regenerated": "Filial 96 - Escala recalculada",
	"task_assigned":      "Filial 96 - Nova tarefa atribuída",
}

func main() {
	/**********************************************
	 * cria o logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * carrega a configuração
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("não foi possível carregar a configuração", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * cria o cliente de e-mail
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("não foi possível criar o cliente de e-mail", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// valida a conexão com o servidor SMTP logo na subida
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("não foi possível conectar ao servidor de e-mail", slog.String("error", err.Error()))
		return
	}

	// compila os templates uma única vez
	parsed := make(map[string]*template.Template, len(templates))
	for name, body := range templates {
		tmpl, err := template.New(name).Parse(body)
		if err != nil {
			logger.Error("não foi possível compilar o template", slog.String("template", name), slog.String("error", err.Error()))
			return
		}
		parsed[name] = tmpl
	}

	/**********************************************
	 * conecta ao RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("não foi possível conectar ao RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("não foi possível abrir o canal", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"notification_queue", // nome da fila
		true,                 // durável
		false,                // não remove a fila quando fica sem consumidor
		false,                // não exclusiva
		false,                // espera a confirmação do RabbitMQ
		nil,                  // sem argumentos extras
	)
	if err != nil {
		logger.Error("não foi possível declarar a fila", slog.String("error", err.Error()))
		return
	}

	// escuta CTRL+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name, // fila
		"",     // identificação do consumidor atribuída pelo RabbitMQ
		false,  // sem ack automático
		false,  // não exclusiva
		false,  // no-local não é suportado pelo RabbitMQ
		false,  // espera a resposta do RabbitMQ
		nil,    // sem argumentos extras
	)
	if err != nil {
		logger.Error("não foi possível consumir as mensagens", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("mensagem recebida", slog.String("message", string(msg.Body)))

				notification := domain.NotificationMessage{}
				if err := json.Unmarshal(msg.Body, &notification); err != nil {
					logger.Error("falha ao desserializar a notificação", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				tmpl, ok := parsed[notification.Type]
				if !ok {
					logger.Error("tipo de notificação não suportado", slog.String("type", notification.Type))
					_ = msg.Nack(false, false)
					continue
				}

				email := mail.NewMsg()
				if err := email.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("não foi possível definir o remetente", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := email.To(notification.To); err != nil {
					logger.Error("não foi possível definir o destinatário", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				if err := email.SetBodyHTMLTemplate(tmpl, notification.Data); err != nil {
					logger.Error("não foi possível montar o corpo do e-mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				email.Subject(subjects[notification.Type])

				if err := client.DialAndSend(email); err != nil {
					logger.Error("falha ao enviar o e-mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // devolve a mensagem para a fila
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("aguardando mensagens... (CTRL+C para sair)")
	<-sigChan

	slog.Info("encerrando o notifier...")
	cancel()
	wg.Wait()
	slog.Info("notifier encerrado com sucesso")
}
