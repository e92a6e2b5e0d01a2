// Package store holds the in-memory registries for university entities.
// All entities live in owned collections keyed by id; relations between
// them are id references resolved through lookups, never shared pointers.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/campushq/scheduling-api/internal/models"
)

// ClassroomStore is the classroom registry. Classrooms are created
// administratively and are never deleted during normal operation.
type ClassroomStore struct {
	mu    sync.RWMutex
	items map[string]models.Classroom
}

// NewClassroomStore returns an empty registry.
func NewClassroomStore() *ClassroomStore {
	return &ClassroomStore{items: make(map[string]models.Classroom)}
}

// Create registers a classroom. Reusing an id reports false with no change.
func (s *ClassroomStore) Create(room models.Classroom) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[room.ID]; ok {
		return false
	}
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now().UTC()
	}
	s.items[room.ID] = room
	return true
}

// Get returns the classroom with the given id.
func (s *ClassroomStore) Get(id string) (models.Classroom, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.items[id]
	return room, ok
}

// List returns all classrooms ordered by id.
func (s *ClassroomStore) List() []models.Classroom {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Classroom, 0, len(s.items))
	for _, room := range s.items {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
