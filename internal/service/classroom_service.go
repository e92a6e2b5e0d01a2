package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/scheduling-api/internal/models"
	"github.com/campushq/scheduling-api/internal/scheduling"
	appErrors "github.com/campushq/scheduling-api/pkg/errors"
	"github.com/campushq/scheduling-api/pkg/middleware/requestid"
)

type classroomRegistry interface {
	Create(room models.Classroom) bool
	Get(id string) (models.Classroom, bool)
	List() []models.Classroom
}

// CreateClassroomRequest describes payload for registering a classroom.
type CreateClassroomRequest struct {
	ClassroomID string `json:"classroom_id" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Capacity    int    `json:"capacity" validate:"required,gt=0"`
}

// AllocateClassroomRequest holds an administrative slot allocation.
type AllocateClassroomRequest struct {
	Date     string `json:"date" validate:"required"`
	TimeSlot string `json:"time_slot" validate:"required"`
}

// ClassroomService manages the classroom registry and administrative slot
// allocations.
type ClassroomService struct {
	registry  classroomRegistry
	book      *scheduling.Book
	cache     *CacheService
	audit     *AuditService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassroomService instantiates ClassroomService.
func NewClassroomService(registry classroomRegistry, book *scheduling.Book, cache *CacheService, audit *AuditService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ClassroomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{registry: registry, book: book, cache: cache, audit: audit, metrics: metrics, validator: validate, logger: logger}
}

// Create registers a classroom and its booking ledger.
func (s *ClassroomService) Create(ctx context.Context, req CreateClassroomRequest) (*models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid classroom payload")
	}

	room := models.Classroom{
		ID:        req.ClassroomID,
		Location:  req.Location,
		Capacity:  req.Capacity,
		CreatedAt: time.Now().UTC(),
	}
	if !s.registry.Create(room) {
		return nil, appErrors.Clone(appErrors.ErrAlreadyExists, fmt.Sprintf("classroom %s already exists", room.ID))
	}
	s.book.RegisterClassroom(room.ID)
	s.cache.Invalidate(ctx, "classrooms:*")

	s.logger.Info("classroom registered", zap.String("classroom_id", room.ID), zap.String("location", room.Location))
	return &room, nil
}

// List returns all classrooms with their ledger summaries.
func (s *ClassroomService) List(ctx context.Context) ([]models.ClassroomDetail, error) {
	const cacheKey = "classrooms:all"
	var cached []models.ClassroomDetail
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	rooms := s.registry.List()
	details := make([]models.ClassroomDetail, 0, len(rooms))
	for _, room := range rooms {
		info, err := s.book.LedgerInfo(room.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "classroom registry out of sync with ledger")
		}
		details = append(details, models.ClassroomDetail{Classroom: room, Ledger: info})
	}

	s.cache.Set(ctx, cacheKey, details)
	return details, nil
}

// Get returns one classroom with its ledger summary.
func (s *ClassroomService) Get(ctx context.Context, id string) (*models.ClassroomDetail, error) {
	room, ok := s.registry.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
	}
	info, err := s.book.LedgerInfo(room.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "classroom registry out of sync with ledger")
	}
	return &models.ClassroomDetail{Classroom: room, Ledger: info}, nil
}

// Allocate books a (date, slot) pair administratively, without a schedule
// entry. Past dates are rejected before the ledger is touched.
func (s *ClassroomService) Allocate(ctx context.Context, classroomID string, req AllocateClassroomRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid allocation payload")
	}
	if err := scheduling.ValidateDate(req.Date); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if err := scheduling.ValidateSlot(req.TimeSlot); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if req.Date < time.Now().UTC().Format("2006-01-02") {
		return appErrors.Clone(appErrors.ErrValidation, "cannot allocate classroom for past dates")
	}

	if _, ok := s.registry.Get(classroomID); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
	}

	err := s.book.AllocateDirect(classroomID, req.Date, req.TimeSlot)
	s.recordAllocation(ctx, classroomID, req, err)
	if err != nil {
		var conflictErr *models.ScheduleConflictError
		if errors.As(err, &conflictErr) {
			return appErrors.Wrap(conflictErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "classroom already allocated for the given date and time")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate classroom")
	}

	s.cache.Invalidate(ctx, "classrooms:*")
	return nil
}

func (s *ClassroomService) recordAllocation(ctx context.Context, classroomID string, req AllocateClassroomRequest, err error) {
	outcome := models.BookingOutcomeCommitted
	detail := ""
	if err != nil {
		outcome = models.BookingOutcomeConflict
		detail = err.Error()
	}
	if s.metrics != nil {
		s.metrics.RecordBookingDecision(models.BookingKindAllocate, outcome)
	}
	s.audit.Record(models.BookingEvent{
		Kind:        models.BookingKindAllocate,
		Outcome:     outcome,
		ClassroomID: classroomID,
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
		Detail:      detail,
		RequestID:   requestid.FromContext(ctx),
	})
}
