// Package calendar реализует HTTP-обработчик календаря списаний за месяц.
package calendar

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subtrack/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subtrack/internal/http/response"
	"github.com/magabrotheeeer/subtrack/internal/lib/sl"
	stats "github.com/magabrotheeeer/subtrack/internal/services/stats"
)

// Service описывает интерфейс бизнес-логики календаря списаний.
type Service interface {
	Calendar(ctx context.Context, userUID string, year int, month time.Month) (*stats.CalendarMonth, error)
}

// Handler управляет HTTP-запросами на получение календаря списаний.
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
// @Summary Календарь списаний
// @Description Возвращает списания за указанный месяц, сгруппированные по дням. Без параметров используется текущий месяц.
// @Tags Stats
// @Produce  json
// @Security BearerAuth
// @Param year query int false "Год"
// @Param month query int false "Месяц (1-12)"
// @Success 200 {object} map[string]any "Календарь списаний"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /stats/calendar [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.calendar"
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

	now := time.Now()
	year := now.Year()
	month := now.Month()

	if raw := r.URL.Query().Get("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1970 || n > 2200 {
			log.Error("invalid year", slog.String("year", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid year"))
			return
		}
		year = n
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 12 {
			log.Error("invalid month", slog.String("month", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid month"))
			return
		}
		month = time.Month(n)
	}

	result, err := h.service.Calendar(r.Context(), userUID, year, month)
	if err != nil {
		log.Error("failed to build calendar", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build calendar"))
		return
	}

	log.Info("calendar built", slog.Int("year", year), slog.Int("month", int(month)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"calendar": result,
	}))
}
