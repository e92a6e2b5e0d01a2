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

type scheduleFixture struct {
	svc        *ScheduleService
	book       *scheduling.Book
	classrooms *store.ClassroomStore
	directory  *store.DirectoryStore
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()

	book := scheduling.NewBook()
	classrooms := store.NewClassroomStore()
	directory := store.NewDirectoryStore()

	for _, room := range []string{"101", "102"} {
		require.True(t, classrooms.Create(models.Classroom{ID: room, Capacity: 40}))
		require.True(t, book.RegisterClassroom(room))
	}
	require.True(t, directory.CreateCourse(models.Course{ID: "math", Name: "Mathematics", Credits: 5}))
	require.True(t, directory.CreateCourse(models.Course{ID: "bio", Name: "Biology", Credits: 4}))
	require.True(t, directory.CreateProfessor(models.Professor{ID: "smith", Name: "Dr. Smith"}))
	require.True(t, directory.CreateProfessor(models.Professor{ID: "jones", Name: "Dr. Jones"}))

	audit, _ := NewAuditService(nil, jobs.QueueConfig{})
	svc := NewScheduleService(book, directory, classrooms, nil, audit, NewMetricsService(), nil, nil)
	return &scheduleFixture{svc: svc, book: book, classrooms: classrooms, directory: directory}
}

func assertAppError(t *testing.T, err error, want *appErrors.Error) {
	t.Helper()
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, want.Code, appErr.Code)
}

func TestScheduleServiceCreate(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := context.Background()

	detail, err := f.svc.Create(ctx, CreateScheduleRequest{
		ScheduleID:  "s1",
		CourseID:    "math",
		ProfessorID: "smith",
		ClassroomID: "101",
		Date:        "2026-09-14",
		TimeSlot:    "10:00-11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mathematics", detail.CourseName)
	assert.Equal(t, "Dr. Smith", detail.ProfessorName)
	assert.True(t, f.book.IsAllocated("101", "2026-09-14", "10:00-11:00"))
}

func TestScheduleServiceCreateGeneratesID(t *testing.T) {
	f := newScheduleFixture(t)

	detail, err := f.svc.Create(context.Background(), CreateScheduleRequest{
		CourseID:    "math",
		ProfessorID: "smith",
		ClassroomID: "101",
		Date:        "2026-09-14",
		TimeSlot:    "10:00-11:00",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, detail.ID)
}

func TestScheduleServiceCreateRejections(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := context.Background()

	base := CreateScheduleRequest{
		CourseID:    "math",
		ProfessorID: "smith",
		ClassroomID: "101",
		Date:        "2026-09-14",
		TimeSlot:    "10:00-11:00",
	}

	bad := base
	bad.Date = "14-09-2026"
	_, err := f.svc.Create(ctx, bad)
	assertAppError(t, err, appErrors.ErrValidation)

	bad = base
	bad.TimeSlot = "10am-11am"
	_, err = f.svc.Create(ctx, bad)
	assertAppError(t, err, appErrors.ErrValidation)

	bad = base
	bad.CourseID = "ghost"
	_, err = f.svc.Create(ctx, bad)
	assertAppError(t, err, appErrors.ErrNotFound)

	bad = base
	bad.ProfessorID = "ghost"
	_, err = f.svc.Create(ctx, bad)
	assertAppError(t, err, appErrors.ErrNotFound)

	bad = base
	bad.ClassroomID = "999"
	_, err = f.svc.Create(ctx, bad)
	assertAppError(t, err, appErrors.ErrNotFound)

	// nothing was booked along the way
	assert.False(t, f.book.IsAllocated("101", "2026-09-14", "10:00-11:00"))
}

func TestScheduleServiceCreateConflicts(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreateScheduleRequest{
		ScheduleID: "s1", CourseID: "math", ProfessorID: "smith",
		ClassroomID: "101", Date: "2026-09-14", TimeSlot: "10:00-11:00",
	})
	require.NoError(t, err)

	// classroom collision
	_, err = f.svc.Create(ctx, CreateScheduleRequest{
		ScheduleID: "s2", CourseID: "bio", ProfessorID: "jones",
		ClassroomID: "101", Date: "2026-09-14", TimeSlot: "10:00-11:00",
	})
	assertAppError(t, err, appErrors.ErrConflict)

	// professor collision across rooms
	_, err = f.svc.Create(ctx, CreateScheduleRequest{
		ScheduleID: "s3", CourseID: "bio", ProfessorID: "smith",
		ClassroomID: "102", Date: "2026-09-14", TimeSlot: "10:00-11:00",
	})
	assertAppError(t, err, appErrors.ErrConflict)

	// duplicate id
	_, err = f.svc.Create(ctx, CreateScheduleRequest{
		ScheduleID: "s1", CourseID: "bio", ProfessorID: "jones",
		ClassroomID: "102", Date: "2026-09-15", TimeSlot: "10:00-11:00",
	})
	assertAppError(t, err, appErrors.ErrAlreadyExists)
}

func TestScheduleServiceUpdate(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreateScheduleRequest{
		ScheduleID: "s1", CourseID: "math", ProfessorID: "smith",
		ClassroomID: "101", Date: "2026-09-14", TimeSlot: "10:00-11:00",
	})
	require.NoError(t, err)

	newRoom := "102"
	newSlot := "11:00-12:00"
	detail, err := f.svc.Update(ctx, "s1", UpdateScheduleRequest{ClassroomID: &newRoom, TimeSlot: &newSlot})
	require.NoError(t, err)
	assert.Equal(t, "102", detail.ClassroomID)
	assert.Equal(t, "11:00-12:00", detail.TimeSlot)

	assert.False(t, f.book.IsAllocated("101", "2026-09-14", "10:00-11:00"))
	assert.True(t, f.book.IsAllocated("102", "2026-09-14", "11:00-12:00"))
}

func TestScheduleServiceUpdateRejections(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreateScheduleRequest{
		ScheduleID: "s1", CourseID: "math", ProfessorID: "smith",
		ClassroomID: "101", Date: "2026-09-14", TimeSlot: "10:00-11:00",
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, "s1", UpdateScheduleRequest{})
	assertAppError(t, err, appErrors.ErrValidation)

	badSlot := "noon"
	_, err = f.svc.Update(ctx, "s1", UpdateScheduleRequest{TimeSlot: &badSlot})
	assertAppError(t, err, appErrors.ErrValidation)

	ghostRoom := "999"
	_, err = f.svc.Update(ctx, "s1", UpdateScheduleRequest{ClassroomID: &ghostRoom})
	assertAppError(t, err, appErrors.ErrNotFound)

	slot := "11:00-12:00"
	_, err = f.svc.Update(ctx, "missing", UpdateScheduleRequest{TimeSlot: &slot})
	assertAppError(t, err, appErrors.ErrNotFound)

	// the original booking is never disturbed by failed updates
	assert.True(t, f.book.IsAllocated("101", "2026-09-14", "10:00-11:00"))
}

func TestScheduleServiceListPagination(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := context.Background()

	slots := []string{"08:00-09:00", "09:00-10:00", "10:00-11:00"}
	for i, slot := range slots {
		_, err := f.svc.Create(ctx, CreateScheduleRequest{
			ScheduleID: string(rune('a' + i)), CourseID: "math", ProfessorID: "smith",
			ClassroomID: "101", Date: "2026-09-14", TimeSlot: slot,
		})
		require.NoError(t, err)
	}

	page, pagination, err := f.svc.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, 3, pagination.TotalCount)

	page, _, err = f.svc.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	page, _, err = f.svc.List(ctx, 9, 2)
	require.NoError(t, err)
	assert.Len(t, page, 0)
}

func TestScheduleServiceListByProfessor(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreateScheduleRequest{
		ScheduleID: "s1", CourseID: "math", ProfessorID: "smith",
		ClassroomID: "101", Date: "2026-09-14", TimeSlot: "10:00-11:00",
	})
	require.NoError(t, err)

	entries, err := f.svc.ListByProfessor(ctx, "smith")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = f.svc.ListByProfessor(ctx, "ghost")
	assertAppError(t, err, appErrors.ErrNotFound)
}
