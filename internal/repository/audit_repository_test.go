package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/campushq/scheduling-api/internal/models"
)

func newAuditRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAuditRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newAuditRepoMock(t)
	defer cleanup()

	repo := NewAuditRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO booking_events")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	event := &models.BookingEvent{
		Kind:        models.BookingKindAssign,
		Outcome:     models.BookingOutcomeCommitted,
		SubjectID:   "s1",
		ClassroomID: "101",
		ProfessorID: "smith",
		Date:        "2026-09-14",
		TimeSlot:    "10:00-11:00",
		RequestID:   "req-1",
	}
	require.NoError(t, repo.Create(context.Background(), event))
	require.NotEmpty(t, event.ID)
	require.False(t, event.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryListByClassroom(t *testing.T) {
	db, mock, cleanup := newAuditRepoMock(t)
	defer cleanup()

	repo := NewAuditRepository(db)
	rows := sqlmock.NewRows([]string{"id", "kind", "outcome", "subject_id", "classroom_id", "professor_id", "booking_date", "time_slot", "detail", "request_id", "created_at"}).
		AddRow("ev-1", models.BookingKindExam, models.BookingOutcomeConflict, "e1", "101", "", "2026-09-14", "09:00-10:30", "classroom 101 already booked", "req-2", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, kind, outcome")).
		WithArgs("101", 50).
		WillReturnRows(rows)

	events, err := repo.ListByClassroom(context.Background(), "101", 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, models.BookingKindExam, events[0].Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}
