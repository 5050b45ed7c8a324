// Package renewal содержит календарную арифметику жизненного цикла подписки:
// расчёт даты следующего списания, дней до продления и степени срочности.
//
// Сложение месяцев и лет выполняется с прижатием к концу месяца
// (31 января + 1 месяц = последний день февраля), как принято
// в календарных библиотеках.
package renewal

import (
	"time"

	"github.com/magabrotheeeer/subtrack/internal/models"
)

// Пороговые окна продления в днях. Три разных порога используются
// в трёх разных местах и не сводятся к одному:
// NotifyWindowDays — триггер проактивного уведомления,
// StatsWindowDays — счётчик на карточке статистики,
// ListWindowDays — список ближайших продлений на дашборде.
const (
	NotifyWindowDays = 3
	StatsWindowDays  = 7
	ListWindowDays   = 30
)

// Степени срочности продления для индикации в интерфейсе.
const (
	UrgencyOverdue = "overdue"
	UrgencyUrgent  = "urgent"
	UrgencyNormal  = "normal"
)

// NextBillingDate возвращает дату следующего списания после from
// для периода cycle. Неизвестный период трактуется как monthly —
// это намеренный тихий фолбэк, применяемый везде единообразно.
func NextBillingDate(from time.Time, cycle string) time.Time {
	switch cycle {
	case models.CycleWeekly:
		return from.AddDate(0, 0, 7)
	case models.CycleQuarterly:
		return addMonths(from, 3)
	case models.CycleYearly:
		return addMonths(from, 12)
	default:
		return addMonths(from, 1)
	}
}

// DaysBetween возвращает число календарных дней от now до next,
// отрицательное для прошедших дат. Используется там, где нужно отличать
// просроченную дату от продления "сегодня".
func DaysBetween(next, now time.Time) int {
	return int(startOfDay(next).Sub(startOfDay(now)).Hours() / 24)
}

// DaysUntil возвращает число календарных дней от now до next.
// Отрицательная разница прижимается к нулю: функция никогда не сообщает
// отрицательные дни, для просрочки есть IsOverdue.
func DaysUntil(next, now time.Time) int {
	days := DaysBetween(next, now)
	if days < 0 {
		return 0
	}
	return days
}

// IsOverdue сообщает, просрочена ли дата списания: true тогда и только
// тогда, когда next строго раньше now. Равенство просрочкой не считается.
func IsOverdue(next, now time.Time) bool {
	return next.Before(now)
}

// Classify возвращает степень срочности продления относительно now.
func Classify(next, now time.Time) string {
	if IsOverdue(next, now) {
		return UrgencyOverdue
	}
	if DaysUntil(next, now) <= NotifyWindowDays {
		return UrgencyUrgent
	}
	return UrgencyNormal
}

// addMonths прибавляет months календарных месяцев с прижатием дня
// к последнему дню целевого месяца при переполнении.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	m := int(month) - 1 + months
	year += m / 12
	m %= 12
	if m < 0 {
		m += 12
		year--
	}
	target := time.Month(m + 1)
	if last := daysIn(year, target); day > last {
		day = last
	}
	h, min, sec := t.Clock()
	return time.Date(year, target, day, h, min, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	// Нулевой день следующего месяца — последний день текущего.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
