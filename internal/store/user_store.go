package store

import (
	"sync"
	"time"

	"github.com/campushq/scheduling-api/internal/models"
)

// UserStore holds API accounts. Accounts are seeded at startup; the
// service exposes no self-registration surface.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string
}

// NewUserStore returns an empty store.
func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

// Create registers a user. Reusing an id or email reports false.
func (s *UserStore) Create(user models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[user.ID]; ok {
		return false
	}
	if _, ok := s.byEmail[user.Email]; ok {
		return false
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user.ID
	return true
}

// FindByEmail returns the user registered under the email.
func (s *UserStore) FindByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return models.User{}, false
	}
	user, ok := s.byID[id]
	return user, ok
}

// FindByID returns the user with the given id.
func (s *UserStore) FindByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	return user, ok
}
