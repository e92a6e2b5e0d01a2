package store

import (
	"sort"
	"sync"
	"time"

	"github.com/campushq/scheduling-api/internal/models"
)

// DirectoryStore registers courses, professors and students. The
// scheduling core only ever asks it whether a reference exists; entity
// fields are opaque once resolved.
type DirectoryStore struct {
	mu         sync.RWMutex
	courses    map[string]models.Course
	professors map[string]models.Professor
	students   map[string]models.Student
}

// NewDirectoryStore returns an empty directory.
func NewDirectoryStore() *DirectoryStore {
	return &DirectoryStore{
		courses:    make(map[string]models.Course),
		professors: make(map[string]models.Professor),
		students:   make(map[string]models.Student),
	}
}

// CreateCourse registers a course. Reusing an id reports false.
func (s *DirectoryStore) CreateCourse(course models.Course) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[course.ID]; ok {
		return false
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}
	s.courses[course.ID] = course
	return true
}

// GetCourse returns the course with the given id.
func (s *DirectoryStore) GetCourse(id string) (models.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses[id]
	return course, ok
}

// ListCourses returns all courses ordered by id.
func (s *DirectoryStore) ListCourses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Course, 0, len(s.courses))
	for _, course := range s.courses {
		out = append(out, course)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreateProfessor registers a professor. Reusing an id reports false.
func (s *DirectoryStore) CreateProfessor(prof models.Professor) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.professors[prof.ID]; ok {
		return false
	}
	if prof.CreatedAt.IsZero() {
		prof.CreatedAt = time.Now().UTC()
	}
	s.professors[prof.ID] = prof
	return true
}

// GetProfessor returns the professor with the given id.
func (s *DirectoryStore) GetProfessor(id string) (models.Professor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prof, ok := s.professors[id]
	return prof, ok
}

// ListProfessors returns all professors ordered by id.
func (s *DirectoryStore) ListProfessors() []models.Professor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Professor, 0, len(s.professors))
	for _, prof := range s.professors {
		out = append(out, prof)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreateStudent registers a student. Reusing an id reports false.
func (s *DirectoryStore) CreateStudent(student models.Student) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[student.ID]; ok {
		return false
	}
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now().UTC()
	}
	s.students[student.ID] = student
	return true
}

// GetStudent returns the student with the given id.
func (s *DirectoryStore) GetStudent(id string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	student, ok := s.students[id]
	return student, ok
}

// ListStudents returns all students ordered by id.
func (s *DirectoryStore) ListStudents() []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Student, 0, len(s.students))
	for _, student := range s.students {
		out = append(out, student)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
