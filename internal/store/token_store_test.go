package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/scheduling-api/internal/models"
)

func TestTokenStoreLifecycle(t *testing.T) {
	s := NewTokenStore()

	s.Create(models.RefreshToken{
		ID:        "t1",
		UserID:    "u1",
		Token:     "opaque-1",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	})

	stored, ok := s.Find("opaque-1")
	require.True(t, ok)
	assert.Equal(t, "u1", stored.UserID)

	s.Revoke("opaque-1")
	_, ok = s.Find("opaque-1")
	assert.False(t, ok)
}

func TestTokenStoreExpiry(t *testing.T) {
	s := NewTokenStore()

	s.Create(models.RefreshToken{
		ID:        "t1",
		UserID:    "u1",
		Token:     "expired",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	})

	_, ok := s.Find("expired")
	assert.False(t, ok)
}

func TestTokenStoreRevokeAllForUser(t *testing.T) {
	s := NewTokenStore()
	future := time.Now().UTC().Add(time.Hour)

	s.Create(models.RefreshToken{ID: "t1", UserID: "u1", Token: "a", ExpiresAt: future})
	s.Create(models.RefreshToken{ID: "t2", UserID: "u1", Token: "b", ExpiresAt: future})
	s.Create(models.RefreshToken{ID: "t3", UserID: "u2", Token: "c", ExpiresAt: future})

	s.RevokeAllForUser("u1")

	_, ok := s.Find("a")
	assert.False(t, ok)
	_, ok = s.Find("b")
	assert.False(t, ok)
	_, ok = s.Find("c")
	assert.True(t, ok)
}
