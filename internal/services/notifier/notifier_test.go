package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subtrack/internal/lib/renewal"
	"github.com/magabrotheeeer/subtrack/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListRenewalsWithin(ctx context.Context, days int) ([]*models.RenewalInfo, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RenewalInfo), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestPublishUpcomingRenewals_Empty(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListRenewalsWithin", mock.Anything, renewal.NotifyWindowDays).
		Return([]*models.RenewalInfo{}, nil).Once()

	service := NewNotifierService(repo, newNoopLogger())
	service.publishUpcomingRenewals(context.Background(), nil)

	repo.AssertExpectations(t)
}

func TestPublishUpcomingRenewals_RepositoryError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListRenewalsWithin", mock.Anything, renewal.NotifyWindowDays).
		Return(nil, errors.New("db error")).Once()

	// Ошибка хранилища не прерывает планировщик, только логируется
	service := NewNotifierService(repo, newNoopLogger())
	service.publishUpcomingRenewals(context.Background(), nil)

	repo.AssertExpectations(t)
}
