package service

import (
	"context"
	"testing"

	"ai-lessonlab-be/internal/config"
	"ai-lessonlab-be/internal/dto"
	"ai-lessonlab-be/internal/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(factory *fakeRepositoryFactory) IAuthService {
	return NewAuthService(factory, config.AuthConfig{
		JWTSecret:           "test-secret",
		AccessTokenExpireMn: 30,
	}, nil, nil)
}

func TestRegister_Success(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestAuthService(factory)

	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "Alice_1",
		FullName: "Alice Smith",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice_1", res.Username, "username must be lowercased")
	assert.True(t, res.IsActive)
	assert.False(t, res.IsAdmin)
	assert.NotZero(t, res.Id)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestAuthService(factory)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		FullName: "Alice",
		Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "ALICE",
		FullName: "Other Alice",
		Password: "secret1",
	})
	require.Error(t, err)

	appErr, ok := apperrors.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestAuthService(factory)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice",
		Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "bob",
		Email:    "alice@example.com",
		FullName: "Bob",
		Password: "secret1",
	})
	require.Error(t, err)

	appErr, ok := apperrors.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)
}

func TestRegister_InvalidInput(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestAuthService(factory)
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.RegisterRequest
	}{
		{"short username", dto.RegisterRequest{Username: "ab", FullName: "A", Password: "secret1"}},
		{"bad username chars", dto.RegisterRequest{Username: "bad user!", FullName: "A", Password: "secret1"}},
		{"short password", dto.RegisterRequest{Username: "carol", FullName: "C", Password: "a1"}},
		{"password without digit", dto.RegisterRequest{Username: "carol", FullName: "C", Password: "abcdef"}},
		{"password without letter", dto.RegisterRequest{Username: "carol", FullName: "C", Password: "123456"}},
		{"blank full name", dto.RegisterRequest{Username: "carol", FullName: "   ", Password: "secret1"}},
		{"bad phone", dto.RegisterRequest{Username: "carol", FullName: "C", Password: "secret1", Phone: "abc"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, &tc.req)
			require.Error(t, err)
			appErr, ok := apperrors.GetAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestAuthService(factory)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice",
		FullName: "Alice",
		Password: "secret1",
	})
	require.NoError(t, err)

	res, err := svc.Login(ctx, &dto.LoginRequest{Username: "Alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)

	token, err := jwt.Parse(res.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["sub"])
	assert.Equal(t, "user", claims["role"])
	assert.NotNil(t, claims["exp"])
}

func TestLogin_WrongPassword(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestAuthService(factory)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice",
		FullName: "Alice",
		Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong9"})
	require.Error(t, err)

	appErr, ok := apperrors.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAuthentication, appErr.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestAuthService(factory)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "secret1"})
	require.Error(t, err)

	appErr, ok := apperrors.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAuthentication, appErr.Code)
}

func TestBootstrapAdmin_OnlyOnce(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestAuthService(factory)
	ctx := context.Background()

	res, err := svc.BootstrapAdmin(ctx, &dto.RegisterRequest{
		Username: "admin",
		FullName: "Admin",
		Password: "admin1",
	})
	require.NoError(t, err)
	assert.True(t, res.IsAdmin)

	_, err = svc.BootstrapAdmin(ctx, &dto.RegisterRequest{
		Username: "admin2",
		FullName: "Admin Two",
		Password: "admin1",
	})
	require.Error(t, err)

	appErr, ok := apperrors.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAuthorization, appErr.Code)
}

func TestGetProfile(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestAuthService(factory)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice",
		FullName: "Alice",
		Password: "secret1",
	})
	require.NoError(t, err)

	res, err := svc.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", res.FullName)

	_, err = svc.GetProfile(ctx, "ghost")
	require.Error(t, err)
	appErr, ok := apperrors.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAuthentication, appErr.Code)
}
