// Package services содержит планировщик уведомлений о скорых продлениях:
// раз в сутки выбирает активные подписки с датой списания в ближайшие
// три дня и публикует их в очередь рассылки.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/subtrack/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/subtrack/internal/lib/renewal"
	"github.com/magabrotheeeer/subtrack/internal/lib/sl"
	"github.com/magabrotheeeer/subtrack/internal/models"
)

// SubscriptionRepository определяет выборку скорых продлений.
type SubscriptionRepository interface {
	ListRenewalsWithin(ctx context.Context, days int) ([]*models.RenewalInfo, error)
}

// NotifierService находит скорые продления и отправляет их в очередь.
type NotifierService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// NewNotifierService создает новый экземпляр NotifierService.
func NewNotifierService(repo SubscriptionRepository, log *slog.Logger) *NotifierService {
	return &NotifierService{
		repo: repo,
		log:  log,
	}
}

// Run запускает ежесуточный обход: первый проход выполняется сразу,
// далее по тикеру, до отмены контекста.
func (s *NotifierService) Run(ctx context.Context, channel *amqp.Channel) {
	s.publishUpcomingRenewals(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.publishUpcomingRenewals(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *NotifierService) publishUpcomingRenewals(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting sweep for upcoming renewals")
	renewals, err := s.repo.ListRenewalsWithin(ctx, renewal.NotifyWindowDays)
	if err != nil {
		s.log.Error("failed to find upcoming renewals", sl.Err(err))
		return
	}
	if len(renewals) == 0 {
		s.log.Info("no upcoming renewals found")
		return
	}
	s.log.Info("found upcoming renewals", "count", len(renewals))
	for _, info := range renewals {
		err = rabbitmq.PublishMessage(channel, rabbitmq.ExchangeNotifications, rabbitmq.RoutingKeyUpcoming, info)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
