package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/scheduling-api/internal/models"
	"github.com/campushq/scheduling-api/internal/store"
	appErrors "github.com/campushq/scheduling-api/pkg/errors"
)

func newAuthFixture(t *testing.T) (*AuthService, *store.UserStore) {
	t.Helper()

	users := store.NewUserStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.True(t, users.Create(models.User{
		ID:           "u1",
		Email:        "admin@campus.local",
		FullName:     "Admin",
		Role:         "admin",
		PasswordHash: string(hash),
		Active:       true,
	}))

	svc := NewAuthService(users, store.NewTokenStore(), nil, nil, AuthConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "campus-scheduling",
	})
	return svc, users
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, models.LoginRequest{Email: "admin@campus.local", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "admin", result.User.Role)

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "campus-scheduling", claims.Issuer)
}

func TestAuthServiceLoginRejections(t *testing.T) {
	svc, users := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, models.LoginRequest{Email: "admin@campus.local", Password: "wrong"})
	assertAppError(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "ghost@campus.local", Password: "s3cret"})
	assertAppError(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "not-an-email", Password: "s3cret"})
	assertAppError(t, err, appErrors.ErrValidation)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	require.True(t, users.Create(models.User{
		ID: "u2", Email: "inactive@campus.local", PasswordHash: string(hash), Active: false,
	}))
	_, err = svc.Login(ctx, models.LoginRequest{Email: "inactive@campus.local", Password: "pw"})
	assertAppError(t, err, appErrors.ErrInactiveAccount)
}

func TestAuthServiceRefreshRotates(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, models.LoginRequest{Email: "admin@campus.local", Password: "s3cret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, models.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// the consumed token cannot be replayed
	_, err = svc.Refresh(ctx, models.RefreshRequest{RefreshToken: login.RefreshToken})
	assertAppError(t, err, appErrors.ErrUnauthorized)
}

func TestAuthServiceLogout(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, models.LoginRequest{Email: "admin@campus.local", Password: "s3cret"})
	require.NoError(t, err)

	err = svc.Logout(ctx, "someone-else", models.LogoutRequest{RefreshToken: login.RefreshToken})
	assertAppError(t, err, appErrors.ErrForbidden)

	require.NoError(t, svc.Logout(ctx, "u1", models.LogoutRequest{RefreshToken: login.RefreshToken}))

	_, err = svc.Refresh(ctx, models.RefreshRequest{RefreshToken: login.RefreshToken})
	assertAppError(t, err, appErrors.ErrUnauthorized)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.ValidateToken("not.a.token")
	assertAppError(t, err, appErrors.ErrUnauthorized)
}
