package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushq/scheduling-api/internal/models"
	"github.com/campushq/scheduling-api/internal/scheduling"
	appErrors "github.com/campushq/scheduling-api/pkg/errors"
	"github.com/campushq/scheduling-api/pkg/export"
	"github.com/campushq/scheduling-api/pkg/middleware/requestid"
)

type examRegistry interface {
	Create(exam models.Exam) bool
	Delete(id string)
	Get(id string) (models.Exam, bool)
	ListByCourse(courseID string) []models.Exam
	RecordResult(examID, studentID, grade string) (found bool, stored bool)
}

// ScheduleExamRequest describes payload for booking an exam sitting.
type ScheduleExamRequest struct {
	ExamID          string `json:"exam_id"`
	CourseID        string `json:"course_id" validate:"required"`
	Date            string `json:"date" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	ClassroomID     string `json:"classroom_id" validate:"required"`
}

// RecordResultRequest stores one grade for one student.
type RecordResultRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Grade     string `json:"grade" validate:"required"`
}

// ExportFile is a rendered results export.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExamService books exam sittings through the classroom ledgers and
// collects per-student results. The exam path never checks professor
// conflicts; it only contends for the classroom slot.
type ExamService struct {
	exams     examRegistry
	book      *scheduling.Book
	directory directoryReader
	rooms     classroomRegistry
	audit     *AuditService
	metrics   *MetricsService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExamService instantiates ExamService.
func NewExamService(exams examRegistry, book *scheduling.Book, directory directoryReader, rooms classroomRegistry, audit *AuditService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ExamService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamService{
		exams:     exams,
		book:      book,
		directory: directory,
		rooms:     rooms,
		audit:     audit,
		metrics:   metrics,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
	}
}

// Schedule derives the exam slot from its duration and books it on the
// classroom ledger.
func (s *ExamService) Schedule(ctx context.Context, req ScheduleExamRequest) (*models.Exam, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam payload")
	}
	if err := scheduling.ValidateDate(req.Date); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	course, ok := s.directory.GetCourse(req.CourseID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	if _, ok := s.rooms.Get(req.ClassroomID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
	}

	exam := models.Exam{
		ID:              req.ExamID,
		CourseID:        course.ID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		ClassroomID:     req.ClassroomID,
		TimeSlot:        scheduling.SlotForDuration(req.DurationMinutes),
	}
	if exam.ID == "" {
		exam.ID = uuid.NewString()
	}

	// Register before booking so a duplicate exam id cannot leak a held
	// slot; the registration is rolled back when the booking fails.
	if !s.exams.Create(exam) {
		return nil, appErrors.Clone(appErrors.ErrAlreadyExists, fmt.Sprintf("exam %s already exists", exam.ID))
	}

	err := s.book.AllocateDirect(exam.ClassroomID, exam.Date, exam.TimeSlot)
	s.recordExamDecision(ctx, exam, err)
	if err != nil {
		s.exams.Delete(exam.ID)
		var conflictErr *models.ScheduleConflictError
		if errors.As(err, &conflictErr) {
			return nil, appErrors.Wrap(conflictErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "classroom unavailable for the derived exam slot")
		}
		if errors.Is(err, scheduling.ErrClassroomNotRegistered) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to book exam slot")
	}

	stored, _ := s.exams.Get(exam.ID)
	s.logger.Info("exam scheduled",
		zap.String("exam_id", stored.ID),
		zap.String("course_id", stored.CourseID),
		zap.String("classroom_id", stored.ClassroomID),
		zap.String("date", stored.Date),
		zap.String("time_slot", stored.TimeSlot),
	)
	return &stored, nil
}

// RecordResult stores one grade. The first write per student wins; there
// is no correction path for a recorded grade.
func (s *ExamService) RecordResult(ctx context.Context, examID string, req RecordResultRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result payload")
	}
	if _, ok := s.directory.GetStudent(req.StudentID); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	found, stored := s.exams.RecordResult(examID, req.StudentID, req.Grade)
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "exam not found")
	}
	if !stored {
		return appErrors.Clone(appErrors.ErrAlreadyExists, "result already exists for this student")
	}
	return nil
}

// Info returns the exam read model including average grade statistics.
func (s *ExamService) Info(ctx context.Context, examID string) (*models.ExamInfo, error) {
	exam, ok := s.exams.Get(examID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
	}

	info := &models.ExamInfo{
		ID:                exam.ID,
		CourseID:          exam.CourseID,
		Date:              exam.Date,
		DurationMinutes:   exam.DurationMinutes,
		ClassroomID:       exam.ClassroomID,
		TimeSlot:          exam.TimeSlot,
		StudentsCompleted: len(exam.Results),
		AverageGrade:      "N/A",
	}
	if course, ok := s.directory.GetCourse(exam.CourseID); ok {
		info.CourseName = course.Name
	}
	if avg, ok := averageGrade(exam.Results); ok {
		info.AverageGrade = avg
	}
	return info, nil
}

// ListByCourse returns the exams registered for a course.
func (s *ExamService) ListByCourse(ctx context.Context, courseID string) ([]models.Exam, error) {
	if _, ok := s.directory.GetCourse(courseID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return s.exams.ListByCourse(courseID), nil
}

// ExportResults renders the exam's results as CSV or PDF.
func (s *ExamService) ExportResults(ctx context.Context, examID, format string) (*ExportFile, error) {
	exam, ok := s.exams.Get(examID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
	}

	students := make([]string, 0, len(exam.Results))
	for student := range exam.Results {
		students = append(students, student)
	}
	sort.Strings(students)

	data := export.Dataset{Headers: []string{"student_id", "grade"}}
	for _, student := range students {
		data.Rows = append(data.Rows, map[string]string{
			"student_id": student,
			"grade":      exam.Results[student],
		})
	}

	summary := "average: N/A"
	if avg, ok := averageGrade(exam.Results); ok {
		summary = fmt.Sprintf("average: %.2f", avg)
	}

	switch format {
	case "csv", "":
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("exam-%s-results.csv", exam.ID),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case "pdf":
		content, err := s.pdf.Render(data, fmt.Sprintf("Exam %s Results", exam.ID), summary)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("exam-%s-results.pdf", exam.ID),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

// averageGrade computes the mean over numeric-parsable grades. Letter
// grades are excluded, not converted through a grade scale.
func averageGrade(results map[string]string) (float64, bool) {
	var sum float64
	var count int
	for _, grade := range results {
		value, err := strconv.ParseFloat(grade, 64)
		if err != nil {
			continue
		}
		sum += value
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func (s *ExamService) recordExamDecision(ctx context.Context, exam models.Exam, err error) {
	outcome := models.BookingOutcomeCommitted
	detail := ""
	if err != nil {
		outcome = models.BookingOutcomeConflict
		if !isConflict(err) {
			outcome = models.BookingOutcomeRejected
		}
		detail = err.Error()
	}
	if s.metrics != nil {
		s.metrics.RecordBookingDecision(models.BookingKindExam, outcome)
	}
	s.audit.Record(models.BookingEvent{
		Kind:        models.BookingKindExam,
		Outcome:     outcome,
		SubjectID:   exam.ID,
		ClassroomID: exam.ClassroomID,
		Date:        exam.Date,
		TimeSlot:    exam.TimeSlot,
		Detail:      detail,
		RequestID:   requestid.FromContext(ctx),
	})
}
