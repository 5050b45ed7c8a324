// Package stats считает сводные показатели дашборда по коллекции подписок
// пользователя. Все функции чистые: работают над уже загруженным срезом,
// не выполняют I/O и на пустом входе возвращают нули и пустые структуры,
// а не ошибки.
//
// Если не указано иное, в расчёт входят только подписки со статусом active.
package stats

import (
	"sort"
	"time"

	"github.com/magabrotheeeer/subtrack/internal/lib/billing"
	"github.com/magabrotheeeer/subtrack/internal/lib/renewal"
	"github.com/magabrotheeeer/subtrack/internal/models"
)

// TotalMonthlyCost возвращает сумму месячных эквивалентов стоимости
// активных подписок.
func TotalMonthlyCost(subs []*models.Subscription) float64 {
	var total float64
	for _, sub := range subs {
		if sub.Status != models.StatusActive {
			continue
		}
		total += billing.MonthlyCost(sub.Cost, sub.BillingCycle)
	}
	return total
}

// TotalYearlyCost возвращает годовую стоимость активных подписок.
// Каноническая форма — TotalMonthlyCost * 12; она совпадает с суммой
// billing.YearlyCost по каждой подписке в пределах погрешности float,
// кроме недельного периода, где коэффициенты намеренно различаются.
func TotalYearlyCost(subs []*models.Subscription) float64 {
	return TotalMonthlyCost(subs) * 12
}

// MostExpensive возвращает активную подписку с наибольшей месячной
// приведённой стоимостью. На пустом входе возвращает nil.
// При равенстве побеждает первая встреченная.
func MostExpensive(subs []*models.Subscription) *models.Subscription {
	var max *models.Subscription
	var maxCost float64
	for _, sub := range subs {
		if sub.Status != models.StatusActive {
			continue
		}
		monthly := billing.MonthlyCost(sub.Cost, sub.BillingCycle)
		if max == nil || monthly > maxCost {
			max = sub
			maxCost = monthly
		}
	}
	return max
}

// CountByStatus возвращает количество подписок по каждому статусу.
// Считается по полной коллекции, без фильтра на active; все четыре
// статуса присутствуют в результате, в том числе с нулём.
func CountByStatus(subs []*models.Subscription) map[string]int {
	counts := make(map[string]int, 4)
	for _, status := range models.Statuses() {
		counts[status] = 0
	}
	for _, sub := range subs {
		counts[sub.Status]++
	}
	return counts
}

// CountUpcomingRenewals возвращает число активных подписок, продление
// которых попадает в окно [0, windowDays] дней от now.
func CountUpcomingRenewals(subs []*models.Subscription, windowDays int, now time.Time) int {
	return len(UpcomingRenewals(subs, windowDays, now))
}

// UpcomingRenewals возвращает активные подписки с продлением в окне
// [0, windowDays] календарных дней от now, отсортированные по дате продления.
// Просроченные (день строго раньше сегодняшнего) в окно не попадают.
func UpcomingRenewals(subs []*models.Subscription, windowDays int, now time.Time) []*models.Subscription {
	var upcoming []*models.Subscription
	for _, sub := range subs {
		if sub.Status != models.StatusActive {
			continue
		}
		days := renewal.DaysBetween(sub.NextBillingDate, now)
		if days >= 0 && days <= windowDays {
			upcoming = append(upcoming, sub)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].NextBillingDate.Before(upcoming[j].NextBillingDate)
	})
	return upcoming
}

// GroupByCategory возвращает суммарную месячную приведённую стоимость
// активных подписок по категориям. Метки категорий капитализируются
// для отображения: "entertainment" -> "Entertainment".
func GroupByCategory(subs []*models.Subscription) map[string]float64 {
	groups := make(map[string]float64)
	for _, sub := range subs {
		if sub.Status != models.StatusActive {
			continue
		}
		category := sub.Category
		if category == "" {
			category = models.CategoryOther
		}
		groups[capitalize(category)] += billing.MonthlyCost(sub.Cost, sub.BillingCycle)
	}
	return groups
}

// GroupByBillingCycle возвращает суммарную сырую (неприведённую) стоимость
// активных подписок по каждому периоду списания. В результате присутствуют
// все четыре периода; нулевые корзины отбрасывает уже слой отображения.
func GroupByBillingCycle(subs []*models.Subscription) map[string]float64 {
	groups := make(map[string]float64, 4)
	for _, cycle := range models.Cycles() {
		groups[cycle] = 0
	}
	for _, sub := range subs {
		if sub.Status != models.StatusActive {
			continue
		}
		if _, ok := groups[sub.BillingCycle]; ok {
			groups[sub.BillingCycle] += sub.Cost
		}
	}
	return groups
}

// CalendarBuckets группирует активные подписки, чья дата следующего списания
// попадает в указанный календарный месяц, по ключу даты в формате 2006-01-02.
// Учитывается только единственная сохранённая дата, без проекции цикла
// на последующие повторения внутри месяца.
func CalendarBuckets(subs []*models.Subscription, year int, month time.Month) map[string][]*models.Subscription {
	buckets := make(map[string][]*models.Subscription)
	for _, sub := range subs {
		if sub.Status != models.StatusActive {
			continue
		}
		y, m, _ := sub.NextBillingDate.Date()
		if y != year || m != month {
			continue
		}
		key := sub.NextBillingDate.Format("2006-01-02")
		buckets[key] = append(buckets[key], sub)
	}
	return buckets
}

// CalendarTotals возвращает число продлений и их суммарную сырую стоимость
// за календарный месяц по корзинам из CalendarBuckets.
func CalendarTotals(buckets map[string][]*models.Subscription) (count int, totalCost float64) {
	for _, subs := range buckets {
		count += len(subs)
		for _, sub := range subs {
			totalCost += sub.Cost
		}
	}
	return count, totalCost
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
