package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subtrack/internal/http/response"
)

type Handler struct {
	log   *slog.Logger
	check func() error
}

// New создает обработчик проверки работоспособности.
// check может быть nil, если хранилище не требует проверки готовности.
func New(log *slog.Logger, check func() error) *Handler {
	return &Handler{
		log:   log,
		check: check,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.check != nil {
		if err := h.check(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("storage not ready"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
