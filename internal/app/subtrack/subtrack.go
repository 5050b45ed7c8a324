// Package subtrack собирает основное HTTP-приложение: хранилище, кеш,
// сервисы и маршруты, а также управляет жизненным циклом HTTP-сервера.
package subtrack

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/subtrack/internal/cache"
	"github.com/magabrotheeeer/subtrack/internal/config"
	"github.com/magabrotheeeer/subtrack/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subtrack/internal/lib/jwt"
	"github.com/magabrotheeeer/subtrack/internal/migrations"
	authservice "github.com/magabrotheeeer/subtrack/internal/services/auth"
	statsservice "github.com/magabrotheeeer/subtrack/internal/services/stats"
	subservice "github.com/magabrotheeeer/subtrack/internal/services/subscription"
	"github.com/magabrotheeeer/subtrack/internal/storage/memstore"
	"github.com/magabrotheeeer/subtrack/internal/storage/repository"
)

// SubscriptionStorage объединяет операции хранилища, необходимые сервисам приложения.
// Реализуется и repository.Storage (PostgreSQL), и memstore.Storage.
type SubscriptionStorage interface {
	subservice.SubscriptionRepository
	statsservice.SubscriptionRepository
	authservice.UserRepository
}

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *sql.DB
}

// New собирает приложение из конфигурации: выбирает хранилище по драйверу,
// подключает Redis, инициализирует сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var store SubscriptionStorage
	var db *sql.DB
	var readyCheck func() error

	switch cfg.Driver {
	case "memory":
		store = memstore.New()
	case "postgres", "":
		pgStore, err := repository.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(pgStore.DB, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		store = pgStore
		db = pgStore.DB
		readyCheck = func() error { return repository.CheckDatabaseReady(pgStore) }
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(store, jwtMaker)
	subscriptionService := subservice.NewSubscriptionService(store, cacheRedis, logger)
	statsService := statsservice.NewStatsService(store, cacheRedis, logger)

	middlewarectx.InitPrometheus()

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, subscriptionService, statsService, readyCheck)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.db != nil {
			_ = a.db.Close()
		}
		return err
	}
}
