package store

import (
	"sync"
	"time"

	"github.com/campushq/scheduling-api/internal/models"
)

// TokenStore holds issued refresh tokens. Sessions live and die with the
// process, matching the in-memory scheduling state.
type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken
}

// NewTokenStore returns an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]models.RefreshToken)}
}

// Create stores a refresh token keyed by its opaque value.
func (s *TokenStore) Create(token models.RefreshToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.Token] = token
}

// Find returns a token that is present, unrevoked and unexpired.
func (s *TokenStore) Find(value string) (models.RefreshToken, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[value]
	if !ok || token.Revoked || time.Now().UTC().After(token.ExpiresAt) {
		return models.RefreshToken{}, false
	}
	return token, true
}

// Revoke marks a token revoked. Revoking an unknown token is a no-op.
func (s *TokenStore) Revoke(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token, ok := s.tokens[value]; ok {
		token.Revoked = true
		s.tokens[value] = token
	}
}

// RevokeAllForUser revokes every token issued to the user.
func (s *TokenStore) RevokeAllForUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for value, token := range s.tokens {
		if token.UserID == userID {
			token.Revoked = true
			s.tokens[value] = token
		}
	}
}
