package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subtrack/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListAllByUser(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newTestService(repo *MockRepository, cache *MockCache) *StatsService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStatsService(repo, cache, log)
}

func testSubscriptions() []*models.Subscription {
	return []*models.Subscription{
		{
			ID: "1", Name: "Netflix", Cost: 15.99,
			BillingCycle:    models.CycleMonthly,
			Category:        models.CategoryEntertainment,
			Status:          models.StatusActive,
			NextBillingDate: time.Now().AddDate(0, 0, 5),
		},
		{
			ID: "2", Name: "Prime", Cost: 119.0,
			BillingCycle:    models.CycleYearly,
			Category:        models.CategoryOther,
			Status:          models.StatusActive,
			NextBillingDate: time.Now().AddDate(0, 8, 0),
		},
		{
			ID: "3", Name: "Old", Cost: 50.0,
			BillingCycle:    models.CycleMonthly,
			Category:        models.CategorySoftware,
			Status:          models.StatusCancelled,
			NextBillingDate: time.Now().AddDate(0, 0, 1),
		},
	}
}

func TestSummary(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := newTestService(repo, cache)

	cache.On("Get", "stats:summary:uid-1", mock.Anything).Return(false, nil)
	cache.On("Set", "stats:summary:uid-1", mock.Anything, time.Minute).Return(nil)
	repo.On("ListAllByUser", mock.Anything, "uid-1").Return(testSubscriptions(), nil)

	summary, err := svc.Summary(context.Background(), "uid-1")
	require.NoError(t, err)

	// 15.99 + 119/12: отменённая подписка не участвует
	assert.InDelta(t, 15.99+119.0/12, summary.TotalMonthly, 0.001)
	assert.InDelta(t, summary.TotalMonthly*12, summary.TotalYearly, 0.001)
	assert.Equal(t, 1, summary.UpcomingRenewals, "only active renewals inside the 7-day window")
	assert.Equal(t, 2, summary.CountByStatus[models.StatusActive])
	assert.Equal(t, 1, summary.CountByStatus[models.StatusCancelled])
	require.NotNil(t, summary.MostExpensive)
	assert.Equal(t, "Netflix", summary.MostExpensive.Name)
}

func TestSummary_CacheHit(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := newTestService(repo, cache)

	cache.On("Get", "stats:summary:uid-1", mock.Anything).Return(true, nil)

	_, err := svc.Summary(context.Background(), "uid-1")
	require.NoError(t, err)
	repo.AssertNotCalled(t, "ListAllByUser", mock.Anything, mock.Anything)
}

func TestSummary_Empty(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := newTestService(repo, cache)

	cache.On("Get", mock.Anything, mock.Anything).Return(false, nil)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo.On("ListAllByUser", mock.Anything, "uid-1").Return([]*models.Subscription{}, nil)

	summary, err := svc.Summary(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Zero(t, summary.TotalMonthly)
	assert.Zero(t, summary.TotalYearly)
	assert.Zero(t, summary.UpcomingRenewals)
	assert.Nil(t, summary.MostExpensive)
	assert.Equal(t, 0, summary.CountByStatus[models.StatusActive])
}

func TestCharts(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockCache))

	repo.On("ListAllByUser", mock.Anything, "uid-1").Return(testSubscriptions(), nil)

	charts, err := svc.Charts(context.Background(), "uid-1")
	require.NoError(t, err)

	assert.InDelta(t, 15.99, charts.ByCategory["Entertainment"], 0.001)
	assert.InDelta(t, 119.0/12, charts.ByCategory["Other"], 0.001)
	assert.InDelta(t, 15.99, charts.ByBillingCycle[models.CycleMonthly], 0.001)
	assert.InDelta(t, 119.0, charts.ByBillingCycle[models.CycleYearly], 0.001)
}

func TestCalendar(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockCache))

	subs := []*models.Subscription{
		{
			ID: "1", Name: "Netflix", Cost: 15.99,
			BillingCycle:    models.CycleMonthly,
			Status:          models.StatusActive,
			NextBillingDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "2", Name: "Spotify", Cost: 9.99,
			BillingCycle:    models.CycleMonthly,
			Status:          models.StatusActive,
			NextBillingDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "3", Name: "Prime", Cost: 119.0,
			BillingCycle:    models.CycleYearly,
			Status:          models.StatusActive,
			NextBillingDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	repo.On("ListAllByUser", mock.Anything, "uid-1").Return(subs, nil)

	calendar, err := svc.Calendar(context.Background(), "uid-1", 2026, time.September)
	require.NoError(t, err)

	require.Len(t, calendar.Days["2026-09-15"], 2)
	assert.Equal(t, 2, calendar.Count)
	assert.InDelta(t, 15.99+9.99, calendar.TotalCost, 0.001)
}

func TestUpcoming(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockCache))

	repo.On("ListAllByUser", mock.Anything, "uid-1").Return(testSubscriptions(), nil)

	upcoming, err := svc.Upcoming(context.Background(), "uid-1", 0)
	require.NoError(t, err)

	// В 30-дневное окно попадает только активная подписка Netflix
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Netflix", upcoming[0].Name)
	assert.Equal(t, 5, upcoming[0].DaysUntilRenewal)
}
