// Package services содержит бизнес-логику управления подписками:
// создание, частичное обновление, жизненный цикл даты следующего списания
// и кеширование записей.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/subtrack/internal/lib/billing"
	"github.com/magabrotheeeer/subtrack/internal/lib/renewal"
	"github.com/magabrotheeeer/subtrack/internal/models"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новую подписку и возвращает её ID.
	CreateSubscription(ctx context.Context, sub models.Subscription) (string, error)
	// ReadSubscription возвращает подписку пользователя по ID.
	ReadSubscription(ctx context.Context, id, userUID string) (*models.Subscription, error)
	// UpdateSubscription перезаписывает подписку и возвращает количество изменённых записей.
	UpdateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	// RemoveSubscription удаляет подписку и возвращает количество удалённых записей.
	RemoveSubscription(ctx context.Context, id, userUID string) (int, error)
	// ListSubscriptions возвращает список подписок пользователя с пагинацией.
	ListSubscriptions(ctx context.Context, userUID string, limit, offset int) ([]*models.Subscription, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// SubscriptionService реализует бизнес-логику работы с подписками, включая кеширование.
type SubscriptionService struct {
	repo  SubscriptionRepository
	cache Cache
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

const dateLayout = "2006-01-02"

// Create создает новую подписку для пользователя, кеширует её и возвращает ID.
// Если дата следующего списания не задана явно, она рассчитывается
// от даты начала по периоду подписки.
func (s *SubscriptionService) Create(ctx context.Context, userUID string, req models.DummySubscription) (string, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return "", fmt.Errorf("invalid start date: %w", err)
	}

	var nextBillingDate time.Time
	if req.NextBillingDate != "" {
		nextBillingDate, err = time.Parse(dateLayout, req.NextBillingDate)
		if err != nil {
			return "", fmt.Errorf("invalid next billing date: %w", err)
		}
	} else {
		nextBillingDate = renewal.NextBillingDate(startDate, req.BillingCycle)
	}

	status := req.Status
	if status == "" {
		status = models.StatusActive
	}
	category := req.Category
	if category == "" {
		category = models.CategoryOther
	}

	now := time.Now()
	sub := models.Subscription{
		ID:              uuid.New().String(),
		UserUID:         userUID,
		Name:            req.Name,
		Description:     req.Description,
		URL:             req.URL,
		Logo:            req.Logo,
		Color:           req.Color,
		Cost:            req.Cost,
		BillingCycle:    req.BillingCycle,
		Category:        category,
		StartDate:       startDate,
		NextBillingDate: nextBillingDate,
		Status:          status,
		ServiceID:       req.ServiceID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	id, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return "", err
	}

	s.log.Info("created new subscription", slog.String("id", id))

	cacheKey := fmt.Sprintf("subscription:%s", id)
	if err := s.cache.Set(cacheKey, sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), slog.Any("err", err))
	}
	s.invalidateSummary(userUID)

	return id, nil
}

// invalidateSummary сбрасывает кешированную сводку пользователя
// после любого изменения его подписок.
func (s *SubscriptionService) invalidateSummary(userUID string) {
	cacheKey := fmt.Sprintf("stats:summary:%s", userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate summary cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
}

// Read возвращает подписку по ID, используя кеш или репозиторий.
// Результат обогащается производными полями.
func (s *SubscriptionService) Read(ctx context.Context, id, userUID string) (*models.SubscriptionView, error) {
	var sub *models.Subscription
	cacheKey := fmt.Sprintf("subscription:%s", id)
	found, err := s.cache.Get(cacheKey, &sub)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
		found = false
	}
	if found && sub.UserUID == userUID {
		return s.enrich(sub), nil
	}

	sub, err = s.repo.ReadSubscription(ctx, id, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, sub, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.enrich(sub), nil
}

// Update применяет частичное обновление подписки. Дата следующего списания
// пересчитывается от текущего момента только при смене периода списания;
// заданная явно дата сохраняется как есть.
func (s *SubscriptionService) Update(ctx context.Context, id, userUID string, req models.DummyUpdate) (*models.SubscriptionView, error) {
	sub, err := s.repo.ReadSubscription(ctx, id, userUID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sub.Name = *req.Name
	}
	if req.Description != nil {
		sub.Description = *req.Description
	}
	if req.URL != nil {
		sub.URL = *req.URL
	}
	if req.Logo != nil {
		sub.Logo = *req.Logo
	}
	if req.Color != nil {
		sub.Color = *req.Color
	}
	if req.Cost != nil {
		sub.Cost = *req.Cost
	}
	if req.Category != nil {
		sub.Category = *req.Category
	}
	if req.Status != nil {
		sub.Status = *req.Status
	}
	if req.ServiceID != nil {
		sub.ServiceID = *req.ServiceID
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date: %w", err)
		}
		sub.StartDate = startDate
	}

	if req.BillingCycle != nil && *req.BillingCycle != sub.BillingCycle {
		sub.BillingCycle = *req.BillingCycle
		sub.NextBillingDate = renewal.NextBillingDate(time.Now(), *req.BillingCycle)
	} else if req.BillingCycle != nil {
		sub.BillingCycle = *req.BillingCycle
	}
	if req.NextBillingDate != nil {
		nextBillingDate, err := time.Parse(dateLayout, *req.NextBillingDate)
		if err != nil {
			return nil, fmt.Errorf("invalid next billing date: %w", err)
		}
		sub.NextBillingDate = nextBillingDate
	}

	sub.UpdatedAt = time.Now()

	n, err := s.repo.UpdateSubscription(ctx, *sub)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("subscription %s not updated", id)
	}
	s.log.Info("updated subscription", slog.String("id", id))

	cacheKey := fmt.Sprintf("subscription:%s", id)
	if err := s.cache.Set(cacheKey, sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), slog.Any("err", err))
	}
	s.invalidateSummary(userUID)

	return s.enrich(sub), nil
}

// Remove удаляет подписку по ID и инвалидирует кеш.
func (s *SubscriptionService) Remove(ctx context.Context, id, userUID string) (int, error) {
	cacheKey := fmt.Sprintf("subscription:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.RemoveSubscription(ctx, id, userUID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.invalidateSummary(userUID)
	}
	return count, nil
}

// List возвращает подписки пользователя с пагинацией,
// обогащённые производными полями.
func (s *SubscriptionService) List(ctx context.Context, userUID string, limit, offset int) ([]*models.SubscriptionView, error) {
	subs, err := s.repo.ListSubscriptions(ctx, userUID, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*models.SubscriptionView, 0, len(subs))
	for _, sub := range subs {
		result = append(result, s.enrich(sub))
	}
	return result, nil
}

func (s *SubscriptionService) enrich(sub *models.Subscription) *models.SubscriptionView {
	now := time.Now()
	return &models.SubscriptionView{
		Subscription:     *sub,
		MonthlyCost:      billing.MonthlyCost(sub.Cost, sub.BillingCycle),
		YearlyCost:       billing.YearlyCost(sub.Cost, sub.BillingCycle),
		DaysUntilRenewal: renewal.DaysUntil(sub.NextBillingDate, now),
		Urgency:          renewal.Classify(sub.NextBillingDate, now),
	}
}
