package connect

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
)

func TestConnectHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "подключение известного сервиса",
			id:             "netflix",
			expectedStatus: http.StatusOK,
			expectedBody:   `"service_id":"netflix"`,
		},
		{
			name:           "ручной ввод для other",
			id:             "other",
			expectedStatus: http.StatusOK,
			expectedBody:   `"manual_entry":true`,
		},
		{
			name:           "неизвестный сервис",
			id:             "vhs-rental",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"unknown service"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := New(logger)

			req := httptest.NewRequest(http.MethodPost, "/services/"+tt.id+"/connect", nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}
