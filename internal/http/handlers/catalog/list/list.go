// Package list реализует HTTP-обработчик каталога известных сервисов подписок.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subtrack/internal/catalog"
	"github.com/magabrotheeeer/subtrack/internal/http/response"
)

// Handler управляет HTTP-запросами на получение каталога сервисов.
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
// @Summary Каталог сервисов
// @Description Возвращает список известных сервисов подписок с тарифами и ценами по умолчанию.
// @Tags Catalog
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Каталог сервисов"
// @Router /services [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	services := catalog.Services()

	log.Info("catalog listed", slog.Int("count", len(services)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"services": services,
		"count":    len(services),
	}))
}
