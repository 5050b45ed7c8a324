// Package summary реализует HTTP-обработчик сводной статистики по подпискам пользователя.
package summary

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subtrack/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subtrack/internal/http/response"
	"github.com/magabrotheeeer/subtrack/internal/lib/sl"
	stats "github.com/magabrotheeeer/subtrack/internal/services/stats"
)

// Service описывает интерфейс бизнес-логики сводной статистики.
type Service interface {
	Summary(ctx context.Context, userUID string) (*stats.Summary, error)
}

// Handler управляет HTTP-запросами на получение сводной статистики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводная статистика
// @Description Возвращает суммарные расходы, количество подписок по статусам, ближайшие продления и самую дорогую подписку.
// @Tags Stats
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Сводная статистика"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /stats/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.summary"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	result, err := h.service.Summary(r.Context(), userUID)
	if err != nil {
		log.Error("failed to build summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build summary"))
		return
	}

	log.Info("summary built")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"summary": result,
	}))
}
