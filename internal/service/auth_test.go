package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bookly/config"
	"bookly/internal/domain"
)

// mockAuthRepo is a test double for repository.AuthRepository.
type mockAuthRepo struct {
	sessions map[string]domain.Session
	err      error
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{sessions: make(map[string]domain.Session)}
}

func (m *mockAuthRepo) CreateSession(ctx context.Context, session domain.Session) error {
	if m.err != nil {
		return m.err
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *mockAuthRepo) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, session := range m.sessions {
		if session.RefreshToken == refreshToken {
			s := session
			return &s, nil
		}
	}
	return nil, assert.AnError
}

func (m *mockAuthRepo) DeleteSession(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return m.err
}

func (m *mockAuthRepo) DeleteSessionsByUserID(ctx context.Context, userID int64) error {
	for id, session := range m.sessions {
		if session.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return m.err
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SigningKey:      "test-signing-key",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	authRepo := newMockAuthRepo()
	userRepo := newMockUserRepo()
	svc := NewAuthService(authRepo, userRepo, testJWTConfig(), zap.NewNop())
	ctx := context.Background()

	userID, err := svc.Register(ctx, domain.RegisterRequest{
		FirstName: "Анна",
		LastName:  "Иванова",
		Email:     "anna@example.com",
		Phone:     "+79990001122",
		Password:  "secret123",
		Role:      domain.UserRoleClient,
	})
	require.NoError(t, err)
	require.NotZero(t, userID)

	// Пользователь сохраняется с bcrypt-хешем, а не с исходным паролем.
	stored := userRepo.users[userID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))

	tokens, err := svc.Login(ctx, domain.LoginRequest{
		Login:    "anna@example.com",
		Password: "secret123",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Len(t, authRepo.sessions, 1)

	gotID, role, err := svc.ParseToken(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, domain.UserRoleClient, role)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(newMockAuthRepo(), newMockUserRepo(), testJWTConfig(), zap.NewNop())
	ctx := context.Background()

	req := domain.RegisterRequest{
		FirstName: "Анна",
		LastName:  "Иванова",
		Email:     "anna@example.com",
		Phone:     "+79990001122",
		Password:  "secret123",
		Role:      domain.UserRoleClient,
	}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.Error(t, err)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := NewAuthService(newMockAuthRepo(), newMockUserRepo(), testJWTConfig(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		FirstName: "Анна",
		LastName:  "Иванова",
		Email:     "anna@example.com",
		Phone:     "+79990001122",
		Password:  "secret123",
		Role:      domain.UserRoleClient,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{
		Login:    "anna@example.com",
		Password: "wrong",
	}, "test-agent", "127.0.0.1")
	assert.Error(t, err)
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	authRepo := newMockAuthRepo()
	svc := NewAuthService(authRepo, newMockUserRepo(), testJWTConfig(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		FirstName: "Анна",
		LastName:  "Иванова",
		Email:     "anna@example.com",
		Phone:     "+79990001122",
		Password:  "secret123",
		Role:      domain.UserRoleClient,
	})
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, domain.LoginRequest{
		Login:    "anna@example.com",
		Password: "secret123",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, tokens.RefreshToken, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)
	assert.Len(t, authRepo.sessions, 1)

	err = svc.Logout(ctx, refreshed.RefreshToken)
	require.NoError(t, err)
	assert.Empty(t, authRepo.sessions)

	_, err = svc.RefreshTokens(ctx, tokens.RefreshToken, "test-agent", "127.0.0.1")
	assert.Error(t, err)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	svc := NewAuthService(newMockAuthRepo(), newMockUserRepo(), testJWTConfig(), zap.NewNop())

	_, _, err := svc.ParseToken(context.Background(), "not-a-token")
	assert.Error(t, err)
}
