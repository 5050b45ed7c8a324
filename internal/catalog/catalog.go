// Package catalog содержит справочник известных сервисов подписок
// и имитацию подключения к ним. Реальные OAuth-интеграции сервисов
// здесь заменены статическими данными тарифов.
package catalog

import (
	"errors"
	"time"

	"github.com/magabrotheeeer/subtrack/internal/models"
)

// ErrUnknownService возвращается при попытке подключить сервис, которого нет в справочнике.
var ErrUnknownService = errors.New("unknown service")

// Plan тарифный план известного сервиса.
type Plan struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	BillingCycle string  `json:"billing_cycle"`
}

// Service описание известного сервиса подписки.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	URL         string  `json:"url"`
	Category    string  `json:"category"`
	DefaultPlan string  `json:"default_plan"`
	DefaultCost float64 `json:"default_cost"`
	CanEdit     bool    `json:"can_edit"`
	CanCancel   bool    `json:"can_cancel"`
	Plans       []Plan  `json:"plans,omitempty"`
}

// ConnectionInfo результат имитации подключения к сервису:
// данные действующей подписки, как их вернул бы API сервиса.
type ConnectionInfo struct {
	ServiceID         string    `json:"service_id"`
	Plan              string    `json:"plan"`
	Cost              float64   `json:"cost"`
	BillingCycle      string    `json:"billing_cycle"`
	StartDate         time.Time `json:"start_date"`
	NextBillingDate   time.Time `json:"next_billing_date"`
	Status            string    `json:"status"`
	IntegrationStatus string    `json:"integration_status"`
	AvailablePlans    []Plan    `json:"available_plans,omitempty"`
}

var services = []Service{
	{
		ID: "netflix", Name: "Netflix", Color: "#E50914",
		URL:      "https://www.netflix.com/login",
		Category: models.CategoryEntertainment,
		DefaultPlan: "Standard with ads", DefaultCost: 6.99,
		CanEdit: true, CanCancel: true,
		Plans: []Plan{
			{Name: "Standard with ads", Price: 6.99, BillingCycle: models.CycleMonthly},
			{Name: "Standard", Price: 15.49, BillingCycle: models.CycleMonthly},
			{Name: "Premium", Price: 22.99, BillingCycle: models.CycleMonthly},
		},
	},
	{
		ID: "spotify", Name: "Spotify", Color: "#1ED760",
		URL:      "https://accounts.spotify.com/login",
		Category: models.CategoryMusic,
		DefaultPlan: "Premium Individual", DefaultCost: 9.99,
		CanEdit: true, CanCancel: true,
		Plans: []Plan{
			{Name: "Premium Individual", Price: 9.99, BillingCycle: models.CycleMonthly},
			{Name: "Premium Duo", Price: 14.99, BillingCycle: models.CycleMonthly},
			{Name: "Premium Family", Price: 16.99, BillingCycle: models.CycleMonthly},
			{Name: "Premium Student", Price: 4.99, BillingCycle: models.CycleMonthly},
		},
	},
	{
		ID: "disney", Name: "Disney+", Color: "#0063e5",
		URL:      "https://www.disneyplus.com/login",
		Category: models.CategoryEntertainment,
		DefaultPlan: "Disney+ Basic", DefaultCost: 7.99,
		CanEdit: true, CanCancel: true,
		Plans: []Plan{
			{Name: "Disney+ Basic", Price: 7.99, BillingCycle: models.CycleMonthly},
			{Name: "Disney+ Premium", Price: 13.99, BillingCycle: models.CycleMonthly},
			{Name: "Disney+ Annual", Price: 139.99, BillingCycle: models.CycleYearly},
		},
	},
	{
		ID: "hulu", Name: "Hulu", Color: "#3DBB3D",
		URL:      "https://auth.hulu.com/web/login",
		Category: models.CategoryEntertainment,
		DefaultPlan: "Hulu (With Ads)", DefaultCost: 7.99,
		CanEdit: true, CanCancel: true,
		Plans: []Plan{
			{Name: "Hulu (With Ads)", Price: 7.99, BillingCycle: models.CycleMonthly},
			{Name: "Hulu (No Ads)", Price: 17.99, BillingCycle: models.CycleMonthly},
		},
	},
	{
		ID: "amazon", Name: "Amazon Prime", Color: "#00A8E1",
		URL:      "https://www.amazon.com/ap/signin",
		Category: models.CategoryOther,
		DefaultPlan: "Prime Monthly", DefaultCost: 14.99,
	},
	{
		ID: "youtube", Name: "YouTube Premium", Color: "#FF0000",
		URL:      "https://accounts.google.com/signin",
		Category: models.CategoryEntertainment,
		DefaultPlan: "Individual", DefaultCost: 11.99,
		CanEdit: true, CanCancel: true,
		Plans: []Plan{
			{Name: "Individual", Price: 11.99, BillingCycle: models.CycleMonthly},
			{Name: "Family", Price: 22.99, BillingCycle: models.CycleMonthly},
			{Name: "Student", Price: 7.99, BillingCycle: models.CycleMonthly},
		},
	},
	{
		ID: "appletv", Name: "Apple TV+", Color: "#000000",
		URL:      "https://tv.apple.com/signin",
		Category: models.CategoryEntertainment,
		DefaultPlan: "Monthly Plan", DefaultCost: 6.99,
		CanCancel: true,
	},
	{
		ID: "hbomax", Name: "HBO Max", Color: "#5822b4",
		URL:      "https://www.hbomax.com/signin",
		Category: models.CategoryEntertainment,
		DefaultPlan: "With Ads", DefaultCost: 9.99,
		CanEdit: true, CanCancel: true,
	},
	{
		ID: "other", Name: "Other Service", Color: "#666666",
		Category: models.CategoryOther,
		DefaultPlan: "Standard", DefaultCost: 9.99,
	},
}

// Services возвращает справочник известных сервисов в фиксированном порядке.
func Services() []Service {
	result := make([]Service, len(services))
	copy(result, services)
	return result
}

// Find ищет сервис по его ID.
func Find(serviceID string) (*Service, bool) {
	for i := range services {
		if services[i].ID == serviceID {
			svc := services[i]
			return &svc, true
		}
	}
	return nil, false
}

// Connect имитирует подключение к сервису и возвращает данные подписки
// с тарифом по умолчанию. Для сервиса "other" возвращается (nil, nil):
// пользователь вводит данные вручную.
func Connect(serviceID string, now time.Time) (*ConnectionInfo, error) {
	svc, ok := Find(serviceID)
	if !ok {
		return nil, ErrUnknownService
	}
	if svc.ID == "other" {
		return nil, nil
	}

	return &ConnectionInfo{
		ServiceID:         svc.ID,
		Plan:              svc.DefaultPlan,
		Cost:              svc.DefaultCost,
		BillingCycle:      models.CycleMonthly,
		StartDate:         now,
		NextBillingDate:   now.AddDate(0, 0, 30),
		Status:            models.StatusActive,
		IntegrationStatus: "connected",
		AvailablePlans:    svc.Plans,
	}, nil
}
