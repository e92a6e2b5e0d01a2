package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/scheduling-api/internal/models"
	"github.com/campushq/scheduling-api/internal/scheduling"
	"github.com/campushq/scheduling-api/internal/store"
	appErrors "github.com/campushq/scheduling-api/pkg/errors"
	"github.com/campushq/scheduling-api/pkg/jobs"
)

func newClassroomService(t *testing.T) (*ClassroomService, *scheduling.Book) {
	t.Helper()
	book := scheduling.NewBook()
	audit, _ := NewAuditService(nil, jobs.QueueConfig{})
	svc := NewClassroomService(store.NewClassroomStore(), book, nil, audit, NewMetricsService(), nil, nil)
	return svc, book
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestClassroomServiceCreate(t *testing.T) {
	svc, book := newClassroomService(t)
	ctx := context.Background()

	room, err := svc.Create(ctx, CreateClassroomRequest{ClassroomID: "101", Location: "Main Building", Capacity: 40})
	require.NoError(t, err)
	assert.Equal(t, "101", room.ID)
	assert.True(t, book.HasClassroom("101"))

	_, err = svc.Create(ctx, CreateClassroomRequest{ClassroomID: "101", Location: "Main Building", Capacity: 40})
	assertAppError(t, err, appErrors.ErrAlreadyExists)

	_, err = svc.Create(ctx, CreateClassroomRequest{ClassroomID: "102", Location: "Annex", Capacity: 0})
	assertAppError(t, err, appErrors.ErrValidation)
}

func TestClassroomServiceListWithLedgerInfo(t *testing.T) {
	svc, book := newClassroomService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateClassroomRequest{ClassroomID: "101", Location: "Main Building", Capacity: 40})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateClassroomRequest{ClassroomID: "102", Location: "Annex", Capacity: 20})
	require.NoError(t, err)

	date := futureDate(7)
	require.NoError(t, book.AllocateDirect("101", date, "10:00-11:00"))

	details, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, 1, details[0].Ledger.BookedDays)
	assert.Equal(t, date, details[0].Ledger.EarliestBookedDate)
	assert.Equal(t, models.NoBookingSentinel, details[1].Ledger.EarliestBookedDate)
}

func TestClassroomServiceGet(t *testing.T) {
	svc, _ := newClassroomService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateClassroomRequest{ClassroomID: "101", Location: "Main Building", Capacity: 40})
	require.NoError(t, err)

	detail, err := svc.Get(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, "Main Building", detail.Location)

	_, err = svc.Get(ctx, "999")
	assertAppError(t, err, appErrors.ErrNotFound)
}

func TestClassroomServiceAllocate(t *testing.T) {
	svc, book := newClassroomService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateClassroomRequest{ClassroomID: "101", Location: "Main Building", Capacity: 40})
	require.NoError(t, err)

	date := futureDate(7)
	require.NoError(t, svc.Allocate(ctx, "101", AllocateClassroomRequest{Date: date, TimeSlot: "10:00-11:00"}))
	assert.True(t, book.IsAllocated("101", date, "10:00-11:00"))

	err = svc.Allocate(ctx, "101", AllocateClassroomRequest{Date: date, TimeSlot: "10:00-11:00"})
	assertAppError(t, err, appErrors.ErrConflict)
}

func TestClassroomServiceAllocateRejections(t *testing.T) {
	svc, _ := newClassroomService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateClassroomRequest{ClassroomID: "101", Location: "Main Building", Capacity: 40})
	require.NoError(t, err)

	err = svc.Allocate(ctx, "101", AllocateClassroomRequest{Date: "2020-01-01", TimeSlot: "10:00-11:00"})
	assertAppError(t, err, appErrors.ErrValidation)

	err = svc.Allocate(ctx, "101", AllocateClassroomRequest{Date: "not-a-date", TimeSlot: "10:00-11:00"})
	assertAppError(t, err, appErrors.ErrValidation)

	err = svc.Allocate(ctx, "101", AllocateClassroomRequest{Date: futureDate(7), TimeSlot: "ten to eleven"})
	assertAppError(t, err, appErrors.ErrValidation)

	err = svc.Allocate(ctx, "999", AllocateClassroomRequest{Date: futureDate(7), TimeSlot: "10:00-11:00"})
	assertAppError(t, err, appErrors.ErrNotFound)
}
