package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/subtrack/internal/models"
)

func TestMonthlyCost(t *testing.T) {
	tests := []struct {
		name  string
		cost  float64
		cycle string
		want  float64
	}{
		{"weekly uses 4.33 approximation", 10, models.CycleWeekly, 43.3},
		{"monthly unchanged", 15.99, models.CycleMonthly, 15.99},
		{"quarterly divided by 3", 30, models.CycleQuarterly, 10},
		{"yearly divided by 12", 119, models.CycleYearly, 119.0 / 12},
		{"unknown cycle falls back to monthly", 9.99, "biweekly", 9.99},
		{"zero cost", 0, models.CycleYearly, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MonthlyCost(tt.cost, tt.cycle), 1e-9)
		})
	}
}

func TestMonthlyCost_WeeklyIsNotExact(t *testing.T) {
	// Коэффициент 4.33 — приближение, не 52/12.
	got := MonthlyCost(12, models.CycleWeekly)
	assert.InDelta(t, 51.96, got, 1e-9)
	assert.NotEqual(t, 12*52.0/12.0, got)
}

func TestYearlyCost(t *testing.T) {
	tests := []struct {
		name  string
		cost  float64
		cycle string
		want  float64
	}{
		{"weekly uses exact 52", 10, models.CycleWeekly, 520},
		{"monthly times 12", 15.99, models.CycleMonthly, 191.88},
		{"quarterly times 4", 30, models.CycleQuarterly, 120},
		{"yearly unchanged", 119, models.CycleYearly, 119},
		{"unknown cycle falls back to monthly", 9.99, "biweekly", 119.88},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, YearlyCost(tt.cost, tt.cycle), 1e-9)
		})
	}
}

func TestWeeklyPathsAreNotReciprocal(t *testing.T) {
	// Годовой путь (52) не обязан совпадать с месячным (4.33) * 12.
	cost := 7.5
	assert.NotEqual(t, MonthlyCost(cost, models.CycleWeekly)*12, YearlyCost(cost, models.CycleWeekly))
}
