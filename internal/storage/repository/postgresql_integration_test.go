package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/subtrack/internal/migrations"
	"github.com/magabrotheeeer/subtrack/internal/models"
	"github.com/magabrotheeeer/subtrack/internal/storage"
)

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL и применяет миграции.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var store *Storage
	for range 10 {
		store, err = New(dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(store.DB, migrationsPath))

	cleanup := func() {
		if store != nil && store.DB != nil {
			_ = store.DB.Close()
		}
		_ = pgContainer.Terminate(ctx)
	}

	return store, cleanup
}

func createTestUser(t *testing.T, store *Storage, username string) string {
	uid, err := store.RegisterUser(context.Background(), models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "hashedpassword",
		Role:         "user",
	})
	require.NoError(t, err)
	return uid
}

func testSubscription(userUID, name string, next time.Time) models.Subscription {
	now := time.Now().UTC()
	return models.Subscription{
		ID:              uuid.New().String(),
		UserUID:         userUID,
		Name:            name,
		Cost:            15.99,
		BillingCycle:    models.CycleMonthly,
		Category:        models.CategoryEntertainment,
		StartDate:       next.AddDate(0, -1, 0),
		NextBillingDate: next,
		Status:          models.StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestStorage_CreateAndReadSubscription(t *testing.T) {
	store, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	userUID := createTestUser(t, store, "testuser")

	sub := testSubscription(userUID, "Netflix", time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))
	id, err := store.CreateSubscription(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, id)

	got, err := store.ReadSubscription(ctx, id, userUID)
	require.NoError(t, err)
	assert.Equal(t, "Netflix", got.Name)
	assert.Equal(t, models.CycleMonthly, got.BillingCycle)
	assert.InDelta(t, 15.99, got.Cost, 0.001)

	// Чужой пользователь не видит запись
	_, err = store.ReadSubscription(ctx, id, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_UpdateSubscription(t *testing.T) {
	store, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	userUID := createTestUser(t, store, "testuser")

	sub := testSubscription(userUID, "Spotify", time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	_, err := store.CreateSubscription(ctx, sub)
	require.NoError(t, err)

	sub.Name = "Spotify Premium"
	sub.Cost = 19.99
	n, err := store.UpdateSubscription(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := store.ReadSubscription(ctx, sub.ID, userUID)
	require.NoError(t, err)
	assert.Equal(t, "Spotify Premium", got.Name)
	assert.InDelta(t, 19.99, got.Cost, 0.001)

	missing := testSubscription(userUID, "Ghost", time.Now().UTC())
	n, err = store.UpdateSubscription(ctx, missing)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStorage_RemoveSubscription(t *testing.T) {
	store, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	userUID := createTestUser(t, store, "testuser")

	sub := testSubscription(userUID, "Hulu", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	_, err := store.CreateSubscription(ctx, sub)
	require.NoError(t, err)

	n, err := store.RemoveSubscription(ctx, sub.ID, uuid.New().String())
	require.NoError(t, err)
	assert.Equal(t, 0, n, "foreign user must not delete the entry")

	n, err = store.RemoveSubscription(ctx, sub.ID, userUID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = store.ReadSubscription(ctx, sub.ID, userUID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_ListSubscriptions(t *testing.T) {
	store, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	userUID := createTestUser(t, store, "testuser")
	otherUID := createTestUser(t, store, "other")

	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	subs := []models.Subscription{
		testSubscription(userUID, "third", base.AddDate(0, 0, 20)),
		testSubscription(userUID, "first", base),
		testSubscription(userUID, "second", base.AddDate(0, 0, 5)),
		testSubscription(otherUID, "foreign", base),
	}
	for _, sub := range subs {
		_, err := store.CreateSubscription(ctx, sub)
		require.NoError(t, err)
	}

	got, err := store.ListSubscriptions(ctx, userUID, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, "second", got[1].Name)
	assert.Equal(t, "third", got[2].Name)

	page, err := store.ListSubscriptions(ctx, userUID, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "second", page[0].Name)

	all, err := store.ListAllByUser(ctx, userUID)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	empty, err := store.ListSubscriptions(ctx, uuid.New().String(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStorage_ListRenewalsWithin(t *testing.T) {
	store, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	userUID := createTestUser(t, store, "alice")

	today := time.Now().UTC()
	soon := testSubscription(userUID, "soon", today.AddDate(0, 0, 2))
	far := testSubscription(userUID, "far", today.AddDate(0, 0, 15))
	past := testSubscription(userUID, "past", today.AddDate(0, 0, -2))
	cancelled := testSubscription(userUID, "cancelled", today.AddDate(0, 0, 1))
	cancelled.Status = models.StatusCancelled

	for _, sub := range []models.Subscription{soon, far, past, cancelled} {
		_, err := store.CreateSubscription(ctx, sub)
		require.NoError(t, err)
	}

	result, err := store.ListRenewalsWithin(ctx, 3)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "soon", result[0].Name)
	assert.Equal(t, "alice@example.com", result[0].Email)
	assert.Equal(t, "alice", result[0].Username)
}

func TestStorage_Users(t *testing.T) {
	store, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	uid := createTestUser(t, store, "bob")

	u, err := store.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, uid, u.UID)
	assert.Equal(t, "bob@example.com", u.Email)

	byUID, err := store.GetUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "bob", byUID.Username)

	_, err = store.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	// username уникален
	_, err = store.RegisterUser(ctx, models.User{
		Email:        "bob2@example.com",
		Username:     "bob",
		PasswordHash: "hash",
		Role:         "user",
	})
	assert.Error(t, err)
}
