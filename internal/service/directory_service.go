package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushq/scheduling-api/internal/models"
	appErrors "github.com/campushq/scheduling-api/pkg/errors"
)

type directoryRegistry interface {
	directoryReader
	CreateCourse(course models.Course) bool
	ListCourses() []models.Course
	CreateProfessor(prof models.Professor) bool
	ListProfessors() []models.Professor
	CreateStudent(student models.Student) bool
	ListStudents() []models.Student
}

// CreateCourseRequest registers a course.
type CreateCourseRequest struct {
	CourseID string `json:"course_id"`
	Name     string `json:"name" validate:"required"`
	Credits  int    `json:"credits" validate:"gte=0"`
}

// CreateProfessorRequest registers a professor.
type CreateProfessorRequest struct {
	ProfessorID string `json:"professor_id"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// CreateStudentRequest registers a student.
type CreateStudentRequest struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// DirectoryService manages the course, professor and student registers
// that schedules and exams reference by id.
type DirectoryService struct {
	store     directoryRegistry
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDirectoryService instantiates DirectoryService.
func NewDirectoryService(store directoryRegistry, validate *validator.Validate, logger *zap.Logger) *DirectoryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{store: store, validator: validate, logger: logger}
}

// CreateCourse registers a new course.
func (s *DirectoryService) CreateCourse(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := models.Course{ID: req.CourseID, Name: req.Name, Credits: req.Credits}
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if !s.store.CreateCourse(course) {
		return nil, appErrors.Clone(appErrors.ErrAlreadyExists, fmt.Sprintf("course %s already exists", course.ID))
	}
	stored, _ := s.store.GetCourse(course.ID)
	return &stored, nil
}

// GetCourse returns one course.
func (s *DirectoryService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	course, ok := s.store.GetCourse(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return &course, nil
}

// ListCourses returns all courses sorted by id.
func (s *DirectoryService) ListCourses(ctx context.Context) []models.Course {
	return s.store.ListCourses()
}

// CreateProfessor registers a new professor.
func (s *DirectoryService) CreateProfessor(ctx context.Context, req CreateProfessorRequest) (*models.Professor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload")
	}
	prof := models.Professor{ID: req.ProfessorID, Name: req.Name, Email: req.Email}
	if prof.ID == "" {
		prof.ID = uuid.NewString()
	}
	if !s.store.CreateProfessor(prof) {
		return nil, appErrors.Clone(appErrors.ErrAlreadyExists, fmt.Sprintf("professor %s already exists", prof.ID))
	}
	stored, _ := s.store.GetProfessor(prof.ID)
	return &stored, nil
}

// GetProfessor returns one professor.
func (s *DirectoryService) GetProfessor(ctx context.Context, id string) (*models.Professor, error) {
	prof, ok := s.store.GetProfessor(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
	}
	return &prof, nil
}

// ListProfessors returns all professors sorted by id.
func (s *DirectoryService) ListProfessors(ctx context.Context) []models.Professor {
	return s.store.ListProfessors()
}

// CreateStudent registers a new student.
func (s *DirectoryService) CreateStudent(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := models.Student{ID: req.StudentID, Name: req.Name, Email: req.Email}
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if !s.store.CreateStudent(student) {
		return nil, appErrors.Clone(appErrors.ErrAlreadyExists, fmt.Sprintf("student %s already exists", student.ID))
	}
	stored, _ := s.store.GetStudent(student.ID)
	return &stored, nil
}

// GetStudent returns one student.
func (s *DirectoryService) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	student, ok := s.store.GetStudent(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return &student, nil
}

// ListStudents returns all students sorted by id.
func (s *DirectoryService) ListStudents(ctx context.Context) []models.Student {
	return s.store.ListStudents()
}
