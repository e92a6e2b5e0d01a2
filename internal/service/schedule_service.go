package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushq/scheduling-api/internal/models"
	"github.com/campushq/scheduling-api/internal/scheduling"
	appErrors "github.com/campushq/scheduling-api/pkg/errors"
	"github.com/campushq/scheduling-api/pkg/middleware/requestid"
)

type directoryReader interface {
	GetCourse(id string) (models.Course, bool)
	GetProfessor(id string) (models.Professor, bool)
	GetStudent(id string) (models.Student, bool)
}

// CreateScheduleRequest describes payload for creating a schedule.
type CreateScheduleRequest struct {
	ScheduleID  string `json:"schedule_id"`
	CourseID    string `json:"course_id" validate:"required"`
	ProfessorID string `json:"professor_id" validate:"required"`
	ClassroomID string `json:"classroom_id" validate:"required"`
	Date        string `json:"date" validate:"required"`
	TimeSlot    string `json:"time_slot" validate:"required"`
}

// UpdateScheduleRequest carries a partial schedule update. Omitted fields
// keep their current values; at least one must be provided.
type UpdateScheduleRequest struct {
	TimeSlot    *string `json:"time_slot"`
	ClassroomID *string `json:"classroom_id"`
	Date        *string `json:"date"`
}

// ScheduleService coordinates conflict-checked schedule assignment.
type ScheduleService struct {
	book      *scheduling.Book
	directory directoryReader
	rooms     classroomRegistry
	cache     *CacheService
	audit     *AuditService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService instantiates ScheduleService.
func NewScheduleService(book *scheduling.Book, directory directoryReader, rooms classroomRegistry, cache *CacheService, audit *AuditService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{book: book, directory: directory, rooms: rooms, cache: cache, audit: audit, metrics: metrics, validator: validate, logger: logger}
}

// Create assigns a new schedule after resolving its references and
// running the conflict check.
func (s *ScheduleService) Create(ctx context.Context, req CreateScheduleRequest) (*models.ScheduleDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	if err := scheduling.ValidateDate(req.Date); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if err := scheduling.ValidateSlot(req.TimeSlot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	course, ok := s.directory.GetCourse(req.CourseID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	professor, ok := s.directory.GetProfessor(req.ProfessorID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
	}
	room, ok := s.rooms.Get(req.ClassroomID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
	}

	entry := models.Schedule{
		ID:          req.ScheduleID,
		CourseID:    course.ID,
		ProfessorID: professor.ID,
		ClassroomID: room.ID,
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	committed, err := s.book.Assign(entry)
	s.recordDecision(ctx, models.BookingKindAssign, entry, err)
	if err != nil {
		return nil, s.bookingError(err, "failed to assign schedule")
	}

	s.cache.Invalidate(ctx, "schedules:*")
	s.cache.Invalidate(ctx, "classrooms:*")
	s.logger.Info("schedule assigned",
		zap.String("schedule_id", committed.ID),
		zap.String("classroom_id", committed.ClassroomID),
		zap.String("professor_id", committed.ProfessorID),
		zap.String("date", committed.Date),
		zap.String("time_slot", committed.TimeSlot),
	)

	detail := s.resolveDetail(committed)
	return &detail, nil
}

// Update re-validates and applies a partial schedule change as one
// transactional step.
func (s *ScheduleService) Update(ctx context.Context, id string, req UpdateScheduleRequest) (*models.ScheduleDetail, error) {
	if req.TimeSlot == nil && req.ClassroomID == nil && req.Date == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no update fields provided")
	}

	change := models.ScheduleChange{}
	if req.Date != nil {
		if err := scheduling.ValidateDate(*req.Date); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
		change.Date = *req.Date
	}
	if req.TimeSlot != nil {
		if err := scheduling.ValidateSlot(*req.TimeSlot); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
		change.TimeSlot = *req.TimeSlot
	}
	if req.ClassroomID != nil {
		if _, ok := s.rooms.Get(*req.ClassroomID); !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		change.ClassroomID = *req.ClassroomID
	}

	updated, err := s.book.Update(id, change)
	if err != nil {
		updated.ID = id
	}
	s.recordDecision(ctx, models.BookingKindUpdate, updated, err)
	if err != nil {
		return nil, s.bookingError(err, "failed to update schedule")
	}

	s.cache.Invalidate(ctx, "schedules:*")
	s.cache.Invalidate(ctx, "classrooms:*")

	detail := s.resolveDetail(updated)
	return &detail, nil
}

// Get returns one schedule with resolved references.
func (s *ScheduleService) Get(ctx context.Context, id string) (*models.ScheduleDetail, error) {
	entry, ok := s.book.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
	}
	detail := s.resolveDetail(entry)
	return &detail, nil
}

// List returns all active schedules with pagination metadata.
func (s *ScheduleService) List(ctx context.Context, page, pageSize int) ([]models.ScheduleDetail, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	cacheKey := ""
	if s.cache.Enabled() {
		cacheKey = cacheListKey("schedules:list", page, pageSize)
		var cached scheduleListPayload
		if s.cache.Get(ctx, cacheKey, &cached) {
			return cached.Items, cached.Pagination, nil
		}
	}

	entries := s.book.List()
	total := len(entries)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	details := make([]models.ScheduleDetail, 0, end-start)
	for _, entry := range entries[start:end] {
		details = append(details, s.resolveDetail(entry))
	}
	pagination := &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}

	if cacheKey != "" {
		s.cache.Set(ctx, cacheKey, scheduleListPayload{Items: details, Pagination: pagination})
	}
	return details, pagination, nil
}

// ListByProfessor returns the professor's schedules.
func (s *ScheduleService) ListByProfessor(ctx context.Context, professorID string) ([]models.ScheduleDetail, error) {
	if _, ok := s.directory.GetProfessor(professorID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
	}
	return s.resolveAll(s.book.ListByProfessor(professorID)), nil
}

// ListByClassroom returns the classroom's schedules.
func (s *ScheduleService) ListByClassroom(ctx context.Context, classroomID string) ([]models.ScheduleDetail, error) {
	if _, ok := s.rooms.Get(classroomID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
	}
	return s.resolveAll(s.book.ListByClassroom(classroomID)), nil
}

type scheduleListPayload struct {
	Items      []models.ScheduleDetail `json:"items"`
	Pagination *models.Pagination      `json:"pagination"`
}

func cacheListKey(prefix string, page, pageSize int) string {
	return fmt.Sprintf("%s:%d:%d", prefix, page, pageSize)
}

func (s *ScheduleService) resolveAll(entries []models.Schedule) []models.ScheduleDetail {
	details := make([]models.ScheduleDetail, 0, len(entries))
	for _, entry := range entries {
		details = append(details, s.resolveDetail(entry))
	}
	return details
}

func (s *ScheduleService) resolveDetail(entry models.Schedule) models.ScheduleDetail {
	detail := models.ScheduleDetail{Schedule: entry}
	if course, ok := s.directory.GetCourse(entry.CourseID); ok {
		detail.CourseName = course.Name
	}
	if professor, ok := s.directory.GetProfessor(entry.ProfessorID); ok {
		detail.ProfessorName = professor.Name
	}
	if room, ok := s.rooms.Get(entry.ClassroomID); ok {
		detail.ClassroomLocation = room.Location
	}
	return detail
}

func (s *ScheduleService) recordDecision(ctx context.Context, kind string, entry models.Schedule, err error) {
	outcome := models.BookingOutcomeCommitted
	detail := ""
	switch {
	case err == nil:
	case isConflict(err):
		outcome = models.BookingOutcomeConflict
		detail = err.Error()
	default:
		outcome = models.BookingOutcomeRejected
		detail = err.Error()
	}
	if s.metrics != nil {
		s.metrics.RecordBookingDecision(kind, outcome)
	}
	s.audit.Record(models.BookingEvent{
		Kind:        kind,
		Outcome:     outcome,
		SubjectID:   entry.ID,
		ClassroomID: entry.ClassroomID,
		ProfessorID: entry.ProfessorID,
		Date:        entry.Date,
		TimeSlot:    entry.TimeSlot,
		Detail:      detail,
		RequestID:   requestid.FromContext(ctx),
	})
}

func (s *ScheduleService) bookingError(err error, fallback string) error {
	var conflictErr *models.ScheduleConflictError
	switch {
	case errors.As(err, &conflictErr):
		return appErrors.Wrap(conflictErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, conflictErr.Message)
	case errors.Is(err, scheduling.ErrScheduleNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
	case errors.Is(err, scheduling.ErrScheduleExists):
		return appErrors.Clone(appErrors.ErrAlreadyExists, "schedule id already in use")
	case errors.Is(err, scheduling.ErrClassroomNotRegistered):
		return appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fallback)
	}
}

func isConflict(err error) bool {
	var conflictErr *models.ScheduleConflictError
	return errors.As(err, &conflictErr)
}
