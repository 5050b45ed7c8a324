// Package services рассчитывает сводную статистику расходов пользователя:
// нормализованные суммы, разбивки для графиков, календарь списаний
// и список ближайших продлений.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subtrack/internal/lib/billing"
	"github.com/magabrotheeeer/subtrack/internal/lib/renewal"
	"github.com/magabrotheeeer/subtrack/internal/models"
	"github.com/magabrotheeeer/subtrack/internal/stats"
)

// SubscriptionRepository определяет выборку всех подписок пользователя.
type SubscriptionRepository interface {
	ListAllByUser(ctx context.Context, userUID string) ([]*models.Subscription, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Summary сводные показатели расходов пользователя.
// Суммы учитывают только активные подписки.
type Summary struct {
	TotalMonthly     float64                  `json:"total_monthly"`
	TotalYearly      float64                  `json:"total_yearly"`
	UpcomingRenewals int                      `json:"upcoming_renewals"` // в ближайшие 7 дней
	CountByStatus    map[string]int           `json:"count_by_status"`
	MostExpensive    *models.SubscriptionView `json:"most_expensive,omitempty"`
}

// Charts разбивки расходов для графиков.
type Charts struct {
	ByCategory     map[string]float64 `json:"by_category"`      // месячная нормализация
	ByBillingCycle map[string]float64 `json:"by_billing_cycle"` // сырые стоимости за период
}

// CalendarMonth список списаний месяца, сгруппированный по дням.
type CalendarMonth struct {
	Days      map[string][]*models.SubscriptionView `json:"days"` // ключ: 2006-01-02
	Count     int                                   `json:"count"`
	TotalCost float64                               `json:"total_cost"`
}

// StatsService отвечает за расчёт статистики с кешированием сводки.
type StatsService struct {
	repo  SubscriptionRepository
	cache Cache
	log   *slog.Logger
}

// NewStatsService создает новый экземпляр StatsService.
func NewStatsService(repo SubscriptionRepository, cache Cache, log *slog.Logger) *StatsService {
	return &StatsService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Summary возвращает сводку расходов пользователя, кешируя результат на минуту.
func (s *StatsService) Summary(ctx context.Context, userUID string) (*Summary, error) {
	cacheKey := fmt.Sprintf("stats:summary:%s", userUID)
	var cached *Summary
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read summary from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	subs, err := s.repo.ListAllByUser(ctx, userUID)
	if err != nil {
		return nil, err
	}

	result := &Summary{
		TotalMonthly:     stats.TotalMonthlyCost(subs),
		TotalYearly:      stats.TotalYearlyCost(subs),
		UpcomingRenewals: stats.CountUpcomingRenewals(subs, renewal.StatsWindowDays, time.Now()),
		CountByStatus:    stats.CountByStatus(subs),
	}
	if top := stats.MostExpensive(subs); top != nil {
		result.MostExpensive = enrich(top)
	}

	if err := s.cache.Set(cacheKey, result, time.Minute); err != nil {
		s.log.Warn("failed to cache summary", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Charts возвращает разбивки расходов по категориям и периодам списания.
func (s *StatsService) Charts(ctx context.Context, userUID string) (*Charts, error) {
	subs, err := s.repo.ListAllByUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	return &Charts{
		ByCategory:     stats.GroupByCategory(subs),
		ByBillingCycle: stats.GroupByBillingCycle(subs),
	}, nil
}

// Calendar возвращает списания выбранного месяца, сгруппированные по дням.
func (s *StatsService) Calendar(ctx context.Context, userUID string, year int, month time.Month) (*CalendarMonth, error) {
	subs, err := s.repo.ListAllByUser(ctx, userUID)
	if err != nil {
		return nil, err
	}

	buckets := stats.CalendarBuckets(subs, year, month)
	count, totalCost := stats.CalendarTotals(buckets)

	days := make(map[string][]*models.SubscriptionView, len(buckets))
	for day, items := range buckets {
		views := make([]*models.SubscriptionView, 0, len(items))
		for _, sub := range items {
			views = append(views, enrich(sub))
		}
		days[day] = views
	}

	return &CalendarMonth{
		Days:      days,
		Count:     count,
		TotalCost: totalCost,
	}, nil
}

// Upcoming возвращает активные подписки с продлением в ближайшие days дней.
// При days <= 0 используется окно по умолчанию в 30 дней.
func (s *StatsService) Upcoming(ctx context.Context, userUID string, days int) ([]*models.SubscriptionView, error) {
	if days <= 0 {
		days = renewal.ListWindowDays
	}
	subs, err := s.repo.ListAllByUser(ctx, userUID)
	if err != nil {
		return nil, err
	}

	upcoming := stats.UpcomingRenewals(subs, days, time.Now())
	result := make([]*models.SubscriptionView, 0, len(upcoming))
	for _, sub := range upcoming {
		result = append(result, enrich(sub))
	}
	return result, nil
}

func enrich(sub *models.Subscription) *models.SubscriptionView {
	now := time.Now()
	return &models.SubscriptionView{
		Subscription:     *sub,
		MonthlyCost:      billing.MonthlyCost(sub.Cost, sub.BillingCycle),
		YearlyCost:       billing.YearlyCost(sub.Cost, sub.BillingCycle),
		DaysUntilRenewal: renewal.DaysUntil(sub.NextBillingDate, now),
		Urgency:          renewal.Classify(sub.NextBillingDate, now),
	}
}
