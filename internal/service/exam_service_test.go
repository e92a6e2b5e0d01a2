package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/scheduling-api/internal/models"
	"github.com/campushq/scheduling-api/internal/scheduling"
	"github.com/campushq/scheduling-api/internal/store"
	appErrors "github.com/campushq/scheduling-api/pkg/errors"
	"github.com/campushq/scheduling-api/pkg/jobs"
)

type examFixture struct {
	svc   *ExamService
	book  *scheduling.Book
	exams *store.ExamStore
}

func newExamFixture(t *testing.T) *examFixture {
	t.Helper()

	book := scheduling.NewBook()
	classrooms := store.NewClassroomStore()
	directory := store.NewDirectoryStore()
	exams := store.NewExamStore()

	require.True(t, classrooms.Create(models.Classroom{ID: "101", Capacity: 40}))
	require.True(t, book.RegisterClassroom("101"))
	require.True(t, directory.CreateCourse(models.Course{ID: "math", Name: "Mathematics", Credits: 5}))
	require.True(t, directory.CreateStudent(models.Student{ID: "alice", Name: "Alice"}))
	require.True(t, directory.CreateStudent(models.Student{ID: "bob", Name: "Bob"}))
	require.True(t, directory.CreateStudent(models.Student{ID: "carol", Name: "Carol"}))

	audit, _ := NewAuditService(nil, jobs.QueueConfig{})
	svc := NewExamService(exams, book, directory, classrooms, audit, NewMetricsService(), nil, nil)
	return &examFixture{svc: svc, book: book, exams: exams}
}

func TestExamServiceScheduleDerivesSlot(t *testing.T) {
	f := newExamFixture(t)

	exam, err := f.svc.Schedule(context.Background(), ScheduleExamRequest{
		ExamID:          "e1",
		CourseID:        "math",
		Date:            "2026-09-14",
		DurationMinutes: 90,
		ClassroomID:     "101",
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00-10:30", exam.TimeSlot)
	assert.True(t, f.book.IsAllocated("101", "2026-09-14", "09:00-10:30"))
}

func TestExamServiceScheduleRejections(t *testing.T) {
	f := newExamFixture(t)
	ctx := context.Background()

	base := ScheduleExamRequest{
		CourseID:        "math",
		Date:            "2026-09-14",
		DurationMinutes: 60,
		ClassroomID:     "101",
	}

	bad := base
	bad.DurationMinutes = 0
	_, err := f.svc.Schedule(ctx, bad)
	assertAppError(t, err, appErrors.ErrValidation)

	bad = base
	bad.DurationMinutes = -30
	_, err = f.svc.Schedule(ctx, bad)
	assertAppError(t, err, appErrors.ErrValidation)

	bad = base
	bad.Date = "next tuesday"
	_, err = f.svc.Schedule(ctx, bad)
	assertAppError(t, err, appErrors.ErrValidation)

	bad = base
	bad.CourseID = "ghost"
	_, err = f.svc.Schedule(ctx, bad)
	assertAppError(t, err, appErrors.ErrNotFound)

	bad = base
	bad.ClassroomID = "999"
	_, err = f.svc.Schedule(ctx, bad)
	assertAppError(t, err, appErrors.ErrNotFound)
}

func TestExamServiceScheduleConflictRollsBack(t *testing.T) {
	f := newExamFixture(t)
	ctx := context.Background()

	require.NoError(t, f.book.AllocateDirect("101", "2026-09-14", "09:00-10:00"))

	_, err := f.svc.Schedule(ctx, ScheduleExamRequest{
		ExamID:          "e1",
		CourseID:        "math",
		Date:            "2026-09-14",
		DurationMinutes: 60,
		ClassroomID:     "101",
	})
	assertAppError(t, err, appErrors.ErrConflict)

	// the failed booking must not leave a registered exam behind
	_, ok := f.exams.Get("e1")
	assert.False(t, ok)
}

func TestExamServiceScheduleDuplicateID(t *testing.T) {
	f := newExamFixture(t)
	ctx := context.Background()

	req := ScheduleExamRequest{
		ExamID:          "e1",
		CourseID:        "math",
		Date:            "2026-09-14",
		DurationMinutes: 60,
		ClassroomID:     "101",
	}
	_, err := f.svc.Schedule(ctx, req)
	require.NoError(t, err)

	req.Date = "2026-09-15"
	_, err = f.svc.Schedule(ctx, req)
	assertAppError(t, err, appErrors.ErrAlreadyExists)

	// the duplicate attempt must not book its slot
	assert.False(t, f.book.IsAllocated("101", "2026-09-15", "09:00-10:00"))
}

func TestExamServiceRecordResult(t *testing.T) {
	f := newExamFixture(t)
	ctx := context.Background()

	_, err := f.svc.Schedule(ctx, ScheduleExamRequest{
		ExamID: "e1", CourseID: "math", Date: "2026-09-14",
		DurationMinutes: 60, ClassroomID: "101",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.RecordResult(ctx, "e1", RecordResultRequest{StudentID: "alice", Grade: "90"}))

	err = f.svc.RecordResult(ctx, "e1", RecordResultRequest{StudentID: "alice", Grade: "95"})
	assertAppError(t, err, appErrors.ErrAlreadyExists)

	err = f.svc.RecordResult(ctx, "e1", RecordResultRequest{StudentID: "ghost", Grade: "90"})
	assertAppError(t, err, appErrors.ErrNotFound)

	err = f.svc.RecordResult(ctx, "missing", RecordResultRequest{StudentID: "bob", Grade: "80"})
	assertAppError(t, err, appErrors.ErrNotFound)
}

func TestExamServiceInfoAverages(t *testing.T) {
	f := newExamFixture(t)
	ctx := context.Background()

	_, err := f.svc.Schedule(ctx, ScheduleExamRequest{
		ExamID: "e1", CourseID: "math", Date: "2026-09-14",
		DurationMinutes: 90, ClassroomID: "101",
	})
	require.NoError(t, err)

	info, err := f.svc.Info(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, 0, info.StudentsCompleted)
	assert.Equal(t, "N/A", info.AverageGrade)
	assert.Equal(t, "Mathematics", info.CourseName)

	require.NoError(t, f.svc.RecordResult(ctx, "e1", RecordResultRequest{StudentID: "alice", Grade: "90"}))
	require.NoError(t, f.svc.RecordResult(ctx, "e1", RecordResultRequest{StudentID: "bob", Grade: "80"}))

	info, err = f.svc.Info(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, 2, info.StudentsCompleted)
	assert.Equal(t, 85.0, info.AverageGrade)

	// letter grades count toward completion but not the average
	require.NoError(t, f.svc.RecordResult(ctx, "e1", RecordResultRequest{StudentID: "carol", Grade: "A"}))
	info, err = f.svc.Info(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, 3, info.StudentsCompleted)
	assert.Equal(t, 85.0, info.AverageGrade)

	_, err = f.svc.Info(ctx, "missing")
	assertAppError(t, err, appErrors.ErrNotFound)
}

func TestExamServiceInfoLetterGradesOnly(t *testing.T) {
	f := newExamFixture(t)
	ctx := context.Background()

	_, err := f.svc.Schedule(ctx, ScheduleExamRequest{
		ExamID: "e1", CourseID: "math", Date: "2026-09-14",
		DurationMinutes: 60, ClassroomID: "101",
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.RecordResult(ctx, "e1", RecordResultRequest{StudentID: "alice", Grade: "A"}))

	info, err := f.svc.Info(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "N/A", info.AverageGrade)
}

func TestExamServiceExportCSV(t *testing.T) {
	f := newExamFixture(t)
	ctx := context.Background()

	_, err := f.svc.Schedule(ctx, ScheduleExamRequest{
		ExamID: "e1", CourseID: "math", Date: "2026-09-14",
		DurationMinutes: 60, ClassroomID: "101",
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.RecordResult(ctx, "e1", RecordResultRequest{StudentID: "bob", Grade: "80"}))
	require.NoError(t, f.svc.RecordResult(ctx, "e1", RecordResultRequest{StudentID: "alice", Grade: "90"}))

	file, err := f.svc.ExportResults(ctx, "e1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	// rows come out sorted by student id
	assert.Equal(t, "student_id,grade\nalice,90\nbob,80\n", string(file.Content))

	_, err = f.svc.ExportResults(ctx, "e1", "xlsx")
	assertAppError(t, err, appErrors.ErrValidation)

	_, err = f.svc.ExportResults(ctx, "missing", "csv")
	assertAppError(t, err, appErrors.ErrNotFound)
}

func TestExamServiceExportPDF(t *testing.T) {
	f := newExamFixture(t)
	ctx := context.Background()

	_, err := f.svc.Schedule(ctx, ScheduleExamRequest{
		ExamID: "e1", CourseID: "math", Date: "2026-09-14",
		DurationMinutes: 60, ClassroomID: "101",
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.RecordResult(ctx, "e1", RecordResultRequest{StudentID: "alice", Grade: "90"}))

	file, err := f.svc.ExportResults(ctx, "e1", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.NotEmpty(t, file.Content)
}
