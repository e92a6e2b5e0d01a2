package store

import (
	"sort"
	"sync"
	"time"

	"github.com/campushq/scheduling-api/internal/models"
)

// ExamStore holds scheduled exams and their per-student results. Results
// are append-only: the first grade written for a student wins and there is
// no correction path.
type ExamStore struct {
	mu    sync.RWMutex
	items map[string]*models.Exam
}

// NewExamStore returns an empty store.
func NewExamStore() *ExamStore {
	return &ExamStore{items: make(map[string]*models.Exam)}
}

// Create registers an exam. Reusing an id reports false with no change.
func (s *ExamStore) Create(exam models.Exam) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[exam.ID]; ok {
		return false
	}
	if exam.Results == nil {
		exam.Results = make(map[string]string)
	}
	if exam.CreatedAt.IsZero() {
		exam.CreatedAt = time.Now().UTC()
	}
	s.items[exam.ID] = &exam
	return true
}

// Delete removes an exam. Only the exam service uses it, to roll back a
// registration whose classroom booking failed; there is no public delete.
func (s *ExamStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// Get returns a deep copy of the exam with the given id.
func (s *ExamStore) Get(id string) (models.Exam, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exam, ok := s.items[id]
	if !ok {
		return models.Exam{}, false
	}
	return copyExam(exam), true
}

// ListByCourse returns the exams registered for a course, ordered by id.
func (s *ExamStore) ListByCourse(courseID string) []models.Exam {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Exam
	for _, exam := range s.items {
		if exam.CourseID == courseID {
			out = append(out, copyExam(exam))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RecordResult stores a grade for a student. It reports false with no
// mutation when a result already exists for that student.
func (s *ExamStore) RecordResult(examID, studentID, grade string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, ok := s.items[examID]
	if !ok {
		return false, false
	}
	if _, exists := exam.Results[studentID]; exists {
		return true, false
	}
	exam.Results[studentID] = grade
	return true, true
}

func copyExam(exam *models.Exam) models.Exam {
	out := *exam
	out.Results = make(map[string]string, len(exam.Results))
	for student, grade := range exam.Results {
		out.Results[student] = grade
	}
	return out
}
