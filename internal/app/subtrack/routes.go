package subtrack

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/subtrack/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/subtrack/internal/http/handlers/auth/register"
	catalogconnect "github.com/magabrotheeeer/subtrack/internal/http/handlers/catalog/connect"
	cataloglist "github.com/magabrotheeeer/subtrack/internal/http/handlers/catalog/list"
	"github.com/magabrotheeeer/subtrack/internal/http/handlers/stats/calendar"
	"github.com/magabrotheeeer/subtrack/internal/http/handlers/stats/charts"
	"github.com/magabrotheeeer/subtrack/internal/http/handlers/stats/summary"
	"github.com/magabrotheeeer/subtrack/internal/http/handlers/stats/upcoming"
	"github.com/magabrotheeeer/subtrack/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/subtrack/internal/http/handlers/subscription/health"
	"github.com/magabrotheeeer/subtrack/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/subtrack/internal/http/handlers/subscription/read"
	"github.com/magabrotheeeer/subtrack/internal/http/handlers/subscription/remove"
	"github.com/magabrotheeeer/subtrack/internal/http/handlers/subscription/update"
	"github.com/magabrotheeeer/subtrack/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/subtrack/internal/services/auth"
	statsservice "github.com/magabrotheeeer/subtrack/internal/services/stats"
	subservice "github.com/magabrotheeeer/subtrack/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	subscriptionService *subservice.SubscriptionService,
	statsService *statsservice.StatsService,
	readyCheck func() error,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/subscriptions", create.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/list", list.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/{id}", read.New(logger, subscriptionService).ServeHTTP)
			r.Put("/subscriptions/{id}", update.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/subscriptions/{id}", remove.New(logger, subscriptionService).ServeHTTP)

			r.Get("/stats/summary", summary.New(logger, statsService).ServeHTTP)
			r.Get("/stats/charts", charts.New(logger, statsService).ServeHTTP)
			r.Get("/stats/calendar", calendar.New(logger, statsService).ServeHTTP)
			r.Get("/stats/upcoming", upcoming.New(logger, statsService).ServeHTTP)

			r.Get("/services", cataloglist.New(logger).ServeHTTP)
			r.Post("/services/{id}/connect", catalogconnect.New(logger).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, readyCheck).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
