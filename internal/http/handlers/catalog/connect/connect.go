// Package connect реализует HTTP-обработчик подключения сервиса из каталога.
//
// Подключение имитирует интеграцию с внешним сервисом: для известного сервиса
// возвращаются тариф, стоимость и дата следующего списания по умолчанию,
// из которых клиент может создать подписку.
package connect

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subtrack/internal/catalog"
	"github.com/magabrotheeeer/subtrack/internal/http/response"
	"github.com/magabrotheeeer/subtrack/internal/lib/sl"
)

// Handler управляет HTTP-запросами на подключение сервиса из каталога.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Подключить сервис
// @Description Возвращает параметры подключения известного сервиса. Для сервиса "other" возвращается признак ручного ввода.
// @Tags Catalog
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID сервиса из каталога"
// @Success 200 {object} map[string]any "Параметры подключения"
// @Failure 404 {object} response.ErrorResponse "Неизвестный сервис"
// @Router /services/{id}/connect [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.connect"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing service id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing service id"))
		return
	}

	info, err := catalog.Connect(id, time.Now())
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownService) {
			log.Info("unknown service", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("unknown service"))
			return
		}
		log.Error("failed to connect service", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not connect service"))
		return
	}
	if info == nil {
		log.Info("manual entry requested", slog.String("id", id))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"manual_entry": true,
		}))
		return
	}

	log.Info("service connected", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"connection": info,
	}))
}
