// Package memstore реализует хранилище подписок и пользователей в памяти
// процесса. Используется в локальном режиме, когда PostgreSQL недоступен:
// данные живут до перезапуска приложения.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/subtrack/internal/models"
	"github.com/magabrotheeeer/subtrack/internal/storage"
)

// Storage хранит записи в картах под мьютексом, поведение методов
// совпадает с реализацией на PostgreSQL.
type Storage struct {
	mu            sync.RWMutex
	subscriptions map[string]models.Subscription
	users         map[string]models.User
}

// New создает пустое хранилище в памяти.
func New() *Storage {
	return &Storage{
		subscriptions: make(map[string]models.Subscription),
		users:         make(map[string]models.User),
	}
}

// CreateSubscription сохраняет новую подписку и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (string, error) {
	const op = "memstore.CreateSubscription"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptions[sub.ID] = sub
	return sub.ID, nil
}

// ReadSubscription возвращает подписку пользователя по её ID.
func (s *Storage) ReadSubscription(ctx context.Context, id, userUID string) (*models.Subscription, error) {
	const op = "memstore.ReadSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subscriptions[id]
	if !ok || sub.UserUID != userUID {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	result := sub
	return &result, nil
}

// UpdateSubscription перезаписывает подписку и возвращает количество изменённых строк.
func (s *Storage) UpdateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "memstore.UpdateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.subscriptions[sub.ID]
	if !ok || existing.UserUID != sub.UserUID {
		return 0, nil
	}
	s.subscriptions[sub.ID] = sub
	return 1, nil
}

// RemoveSubscription удаляет подписку пользователя и возвращает количество удалённых строк.
func (s *Storage) RemoveSubscription(ctx context.Context, id, userUID string) (int, error) {
	const op = "memstore.RemoveSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subscriptions[id]
	if !ok || sub.UserUID != userUID {
		return 0, nil
	}
	delete(s.subscriptions, id)
	return 1, nil
}

func (s *Storage) listByUser(userUID string) []*models.Subscription {
	var result []*models.Subscription
	for _, sub := range s.subscriptions {
		if sub.UserUID != userUID {
			continue
		}
		item := sub
		result = append(result, &item)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].NextBillingDate.Equal(result[j].NextBillingDate) {
			return result[i].ID < result[j].ID
		}
		return result[i].NextBillingDate.Before(result[j].NextBillingDate)
	})
	return result
}

// ListSubscriptions возвращает список подписок пользователя с пагинацией.
func (s *Storage) ListSubscriptions(ctx context.Context, userUID string, limit, offset int) ([]*models.Subscription, error) {
	const op = "memstore.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.listByUser(userUID)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// ListAllByUser возвращает все подписки пользователя без пагинации.
func (s *Storage) ListAllByUser(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	const op = "memstore.ListAllByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listByUser(userUID), nil
}

// ListRenewalsWithin находит активные подписки с продлением в ближайшие days дней
// (включая сегодня), вместе с данными владельца.
func (s *Storage) ListRenewalsWithin(ctx context.Context, days int) ([]*models.RenewalInfo, error) {
	const op = "memstore.ListRenewalsWithin"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := today.AddDate(0, 0, days)

	var result []*models.RenewalInfo
	for _, sub := range s.subscriptions {
		if sub.Status != models.StatusActive {
			continue
		}
		next := time.Date(sub.NextBillingDate.Year(), sub.NextBillingDate.Month(),
			sub.NextBillingDate.Day(), 0, 0, 0, 0, now.Location())
		if next.Before(today) || next.After(end) {
			continue
		}
		owner, ok := s.users[sub.UserUID]
		if !ok {
			continue
		}
		result = append(result, &models.RenewalInfo{
			Email:           owner.Email,
			Username:        owner.Username,
			Name:            sub.Name,
			Cost:            sub.Cost,
			NextBillingDate: sub.NextBillingDate,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].NextBillingDate.Before(result[j].NextBillingDate)
	})
	return result, nil
}

// RegisterUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "memstore.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, user.Username) {
			return "", fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
	}
	user.UID = uuid.New().String()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.UID] = user
	return user.UID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "memstore.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			result := u
			return &result, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "memstore.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userUID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	result := u
	return &result, nil
}
