// Package upcoming реализует HTTP-обработчик списка ближайших продлений подписок.
package upcoming

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subtrack/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subtrack/internal/http/response"
	"github.com/magabrotheeeer/subtrack/internal/lib/sl"
	"github.com/magabrotheeeer/subtrack/internal/models"
)

// Service описывает интерфейс бизнес-логики списка ближайших продлений.
type Service interface {
	Upcoming(ctx context.Context, userUID string, days int) ([]*models.SubscriptionView, error)
}

// Handler управляет HTTP-запросами на получение ближайших продлений.
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
// @Summary Ближайшие продления
// @Description Возвращает активные подписки, продлевающиеся в ближайшие дни, отсортированные по дате.
// @Tags Stats
// @Produce  json
// @Security BearerAuth
// @Param days query int false "Размер окна в днях" default(30)
// @Success 200 {object} map[string]any "Список ближайших продлений"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /stats/upcoming [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.upcoming"
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

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			log.Error("invalid days", slog.String("days", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid days"))
			return
		}
		days = n
	}

	views, err := h.service.Upcoming(r.Context(), userUID, days)
	if err != nil {
		log.Error("failed to list upcoming renewals", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list upcoming renewals"))
		return
	}

	log.Info("upcoming renewals listed", slog.Int("count", len(views)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"upcoming": views,
		"count":    len(views),
	}))
}
