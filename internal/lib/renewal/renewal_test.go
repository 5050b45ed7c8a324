package renewal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/subtrack/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextBillingDate(t *testing.T) {
	tests := []struct {
		name  string
		from  time.Time
		cycle string
		want  time.Time
	}{
		{"weekly adds seven days", date(2025, time.March, 10), models.CycleWeekly, date(2025, time.March, 17)},
		{"monthly adds one month", date(2025, time.March, 10), models.CycleMonthly, date(2025, time.April, 10)},
		{"monthly clamps to end of february", date(2025, time.January, 31), models.CycleMonthly, date(2025, time.February, 28)},
		{"monthly clamps in leap year", date(2024, time.January, 31), models.CycleMonthly, date(2024, time.February, 29)},
		{"quarterly adds three months", date(2025, time.November, 30), models.CycleQuarterly, date(2026, time.February, 28)},
		{"yearly adds one year", date(2025, time.June, 15), models.CycleYearly, date(2026, time.June, 15)},
		{"yearly clamps leap day", date(2024, time.February, 29), models.CycleYearly, date(2025, time.February, 28)},
		{"unknown cycle behaves as monthly", date(2025, time.March, 10), "someday", date(2025, time.April, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextBillingDate(tt.from, tt.cycle))
		})
	}
}

func TestNextBillingDate_TwoMonthlyApproximatesQuarterly(t *testing.T) {
	// Для дат начала месяца без переполнения monthly трижды даёт то же,
	// что quarterly за один шаг. Закон приблизительный, календарь нерегулярен.
	from := date(2025, time.April, 1)
	step := NextBillingDate(NextBillingDate(NextBillingDate(from, models.CycleMonthly), models.CycleMonthly), models.CycleMonthly)
	assert.Equal(t, NextBillingDate(from, models.CycleQuarterly), step)
}

func TestDaysBetween(t *testing.T) {
	now := date(2025, time.May, 10)

	assert.Equal(t, -5, DaysBetween(date(2025, time.May, 5), now))
	assert.Equal(t, 0, DaysBetween(now, now))
	assert.Equal(t, 7, DaysBetween(date(2025, time.May, 17), now))
	// Разница календарная: время суток "сейчас" не влияет.
	assert.Equal(t, 1, DaysBetween(date(2025, time.May, 11), now.Add(23*time.Hour)))
}

func TestDaysUntil(t *testing.T) {
	now := date(2025, time.May, 10)

	assert.Equal(t, 0, DaysUntil(now, now))
	assert.Equal(t, 3, DaysUntil(date(2025, time.May, 13), now))
	assert.Equal(t, 31, DaysUntil(date(2025, time.June, 10), now))
	// Прошедшие даты прижимаются к нулю.
	assert.Equal(t, 0, DaysUntil(date(2025, time.May, 5), now))
	assert.Equal(t, 0, DaysUntil(date(2020, time.January, 1), now))
}

func TestIsOverdue(t *testing.T) {
	now := date(2025, time.May, 10)

	assert.False(t, IsOverdue(now, now), "equality is not overdue")
	assert.True(t, IsOverdue(now.Add(-time.Second), now))
	assert.True(t, IsOverdue(date(2025, time.May, 5), now))
	assert.False(t, IsOverdue(date(2025, time.May, 11), now))
}

func TestClassify(t *testing.T) {
	now := date(2025, time.May, 10)

	tests := []struct {
		name string
		next time.Time
		want string
	}{
		{"five days overdue", date(2025, time.May, 5), UrgencyOverdue},
		{"renews today", now, UrgencyUrgent},
		{"renews in three days", date(2025, time.May, 13), UrgencyUrgent},
		{"renews in four days", date(2025, time.May, 14), UrgencyNormal},
		{"renews next month", date(2025, time.June, 20), UrgencyNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.next, now))
		})
	}
}
