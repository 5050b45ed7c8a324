// Package notifier собирает приложение публикации уведомлений о скорых
// продлениях: хранилище, подключение к RabbitMQ и сервис обхода подписок.
package notifier

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/subtrack/internal/config"
	"github.com/magabrotheeeer/subtrack/internal/lib/rabbitmq"
	notifierservice "github.com/magabrotheeeer/subtrack/internal/services/notifier"
	"github.com/magabrotheeeer/subtrack/internal/storage/repository"
)

type App struct {
	conn            *amqp.Connection
	ch              *amqp.Channel
	db              *repository.Storage
	notifierService *notifierservice.NotifierService
	logger          *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	notifierService := notifierservice.NewNotifierService(db, logger)

	return &App{
		conn:            conn,
		ch:              ch,
		db:              db,
		notifierService: notifierService,
		logger:          logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.notifierService.Run(ctx, a.ch)

	a.logger.Info("notifier service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	_ = a.db.DB.Close()

	return nil
}
