package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subtrack/internal/lib/jwt"
	"github.com/magabrotheeeer/subtrack/internal/lib/password"
	"github.com/magabrotheeeer/subtrack/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newTestService(repo UserRepository) *AuthService {
	return NewAuthService(repo, jwt.NewMaker("test-secret", time.Hour))
}

func TestRegister(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo)

	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "alice" && u.Role == "user" && u.PasswordHash != "secret123"
	})).Return("uid-1", nil)

	uid, err := svc.Register(context.Background(), "alice@example.com", "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
	repo.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo)

	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	repo.On("GetUserByUsername", mock.Anything, "alice").Return(&models.User{
		UID:          "uid-1",
		Username:     "alice",
		PasswordHash: hash,
		Role:         "user",
	}, nil)

	token, role, err := svc.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user", role)

	// Токен содержит данные пользователя
	user, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "uid-1", user.UID)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo)

	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	repo.On("GetUserByUsername", mock.Anything, "alice").Return(&models.User{
		Username:     "alice",
		PasswordHash: hash,
		Role:         "user",
	}, nil)

	_, _, err = svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService(new(MockUserRepository))

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	assert.Error(t, err)
}
