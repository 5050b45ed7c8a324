// Package billing приводит стоимость подписки с произвольным периодом
// списания к сопоставимым месячному и годовому эквивалентам.
//
// Коэффициенты для недельного периода несимметричны: месячное приведение
// использует приближение 4.33 недели в месяце, годовое — точные 52 недели.
// Оба коэффициента зафиксированы намеренно, от них зависят итоговые суммы
// на дашборде; выравнивать их между собой нельзя.
package billing

import "github.com/magabrotheeeer/subtrack/internal/models"

// WeeksPerMonth — среднее число недель в месяце для месячного приведения.
// Именно 4.33, а не 52/12.
const WeeksPerMonth = 4.33

// WeeksPerYear — число недель в году для годового приведения.
const WeeksPerYear = 52

// MonthlyCost возвращает месячный эквивалент стоимости cost с периодом cycle.
// Неизвестный период трактуется как monthly (единая политика по умолчанию,
// такая же, как в расчёте дат списания).
func MonthlyCost(cost float64, cycle string) float64 {
	switch cycle {
	case models.CycleWeekly:
		return cost * WeeksPerMonth
	case models.CycleQuarterly:
		return cost / 3
	case models.CycleYearly:
		return cost / 12
	default:
		return cost
	}
}

// YearlyCost возвращает годовой эквивалент стоимости cost с периодом cycle.
// Для недельного периода используются точные 52 недели — результат
// сознательно не равен MonthlyCost(cost, cycle) * 12.
// Неизвестный период трактуется как monthly.
func YearlyCost(cost float64, cycle string) float64 {
	switch cycle {
	case models.CycleWeekly:
		return cost * WeeksPerYear
	case models.CycleQuarterly:
		return cost * 4
	case models.CycleYearly:
		return cost
	default:
		return cost * 12
	}
}
