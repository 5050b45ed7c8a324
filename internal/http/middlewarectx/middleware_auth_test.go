package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subtrack/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subtrack/internal/models"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*AuthServiceMock)
		wantStatus     int
		wantNextCalled bool
	}{
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "good-token").Return(&models.User{
					Username: "alice",
					Role:     "user",
					UID:      "uid-1",
				}, nil)
			},
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "missing header",
			authHeader:     "",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatus:     http.StatusUnauthorized,
			wantNextCalled: false,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic abc",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatus:     http.StatusUnauthorized,
			wantNextCalled: false,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "bad-token").
					Return(nil, errors.New("token is malformed"))
			},
			wantStatus:     http.StatusUnauthorized,
			wantNextCalled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMock(authMock)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, "alice", r.Context().Value(middlewarectx.User))
				assert.Equal(t, "user", r.Context().Value(middlewarectx.Role))
				assert.Equal(t, "uid-1", r.Context().Value(middlewarectx.UserUID))
				w.WriteHeader(http.StatusOK)
			})

			handler := middlewarectx.JWTMiddleware(authMock, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			authMock.AssertExpectations(t)
		})
	}
}
