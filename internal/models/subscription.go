// Package models содержит доменные структуры, описывающие подписку,
// а также вспомогательные типы для приёма данных из внешних источников (JSON-запросы).
package models

import "time"

// Возможные значения периодичности списания.
const (
	CycleWeekly    = "weekly"
	CycleMonthly   = "monthly"
	CycleQuarterly = "quarterly"
	CycleYearly    = "yearly"
)

// Возможные статусы подписки. В агрегатах и окнах продления
// участвуют только подписки со статусом StatusActive.
const (
	StatusActive    = "active"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// Возможные категории подписки.
const (
	CategoryEntertainment = "entertainment"
	CategorySoftware      = "software"
	CategoryMusic         = "music"
	CategoryNews          = "news"
	CategoryGaming        = "gaming"
	CategoryOther         = "other"
)

// Cycles возвращает все поддерживаемые периоды списания в фиксированном порядке.
func Cycles() []string {
	return []string{CycleWeekly, CycleMonthly, CycleQuarterly, CycleYearly}
}

// Statuses возвращает все статусы подписки в фиксированном порядке.
func Statuses() []string {
	return []string{StatusActive, StatusPending, StatusCancelled, StatusExpired}
}

// Subscription представляет собой основную модель подписки,
// используемую в бизнес-логике и хранилище.
//
// NextBillingDate хранится независимо от StartDate: поле пересчитывается
// только при смене BillingCycle во время обновления, прямые правки
// пользователя сохраняются как есть.
type Subscription struct {
	ID              string    `json:"id"`       // Уникальный идентификатор (uuid), неизменяемый
	UserUID         string    `json:"user_uid"` // Владелец подписки
	Name            string    `json:"name"`     // Отображаемое название
	Description     string    `json:"description,omitempty"`
	URL             string    `json:"url,omitempty"`
	Logo            string    `json:"logo,omitempty"`
	Color           string    `json:"color,omitempty"`
	Cost            float64   `json:"cost"`                 // Стоимость за один период, >= 0
	BillingCycle    string    `json:"billing_cycle"`        // weekly | monthly | quarterly | yearly
	Category        string    `json:"category"`             // Категория из закрытого списка
	StartDate       time.Time `json:"start_date"`           // Дата начала подписки
	NextBillingDate time.Time `json:"next_billing_date"`    // Дата следующего списания
	Status          string    `json:"status"`               // active | pending | cancelled | expired
	ServiceID       string    `json:"service_id,omitempty"` // Ссылка на шаблон известного сервиса, например "netflix"
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DummySubscription используется для приёма данных из JSON-запроса на создание,
// прежде чем конвертировать их в Subscription. Даты приходят строками
// в формате 2006-01-02, чтобы их можно было валидировать и парсить вручную.
type DummySubscription struct {
	Name            string  `json:"name" validate:"required"` // Название, непустое
	Description     string  `json:"description,omitempty" validate:"omitempty"`
	URL             string  `json:"url,omitempty" validate:"omitempty"`
	Logo            string  `json:"logo,omitempty" validate:"omitempty"`
	Color           string  `json:"color,omitempty" validate:"omitempty"`
	Cost            float64 `json:"cost" validate:"gte=0"` // Стоимость (>= 0)
	BillingCycle    string  `json:"billing_cycle" validate:"required,oneof=weekly monthly quarterly yearly"`
	Category        string  `json:"category,omitempty" validate:"omitempty,oneof=entertainment software music news gaming other"`
	StartDate       string  `json:"start_date" validate:"required"` // Дата начала в формате 2006-01-02
	NextBillingDate string  `json:"next_billing_date,omitempty" validate:"omitempty"`
	Status          string  `json:"status,omitempty" validate:"omitempty,oneof=active pending cancelled expired"`
	ServiceID       string  `json:"service_id,omitempty" validate:"omitempty"`
}

// DummyUpdate используется для приёма частичного обновления подписки.
// Нулевые указатели означают "поле не меняется".
type DummyUpdate struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty"`
	Description     *string  `json:"description,omitempty" validate:"omitempty"`
	URL             *string  `json:"url,omitempty" validate:"omitempty"`
	Logo            *string  `json:"logo,omitempty" validate:"omitempty"`
	Color           *string  `json:"color,omitempty" validate:"omitempty"`
	Cost            *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
	BillingCycle    *string  `json:"billing_cycle,omitempty" validate:"omitempty,oneof=weekly monthly quarterly yearly"`
	Category        *string  `json:"category,omitempty" validate:"omitempty,oneof=entertainment software music news gaming other"`
	StartDate       *string  `json:"start_date,omitempty" validate:"omitempty"`
	NextBillingDate *string  `json:"next_billing_date,omitempty" validate:"omitempty"`
	Status          *string  `json:"status,omitempty" validate:"omitempty,oneof=active pending cancelled expired"`
	ServiceID       *string  `json:"service_id,omitempty" validate:"omitempty"`
}

// SubscriptionView — подписка, обогащённая производными полями для выдачи наружу.
type SubscriptionView struct {
	Subscription
	MonthlyCost      float64 `json:"monthly_cost"`       // Приведённая месячная стоимость
	YearlyCost       float64 `json:"yearly_cost"`        // Приведённая годовая стоимость
	DaysUntilRenewal int     `json:"days_until_renewal"` // Дней до продления, не бывает отрицательным
	Urgency          string  `json:"urgency"`            // overdue | urgent | normal
}

// RenewalInfo — данные о скором продлении подписки для уведомления владельца.
type RenewalInfo struct {
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	Name            string    `json:"name"`
	Cost            float64   `json:"cost"`
	NextBillingDate time.Time `json:"next_billing_date"`
}
