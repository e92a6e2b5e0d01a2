package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushq/scheduling-api/internal/models"
)

// AuditRepository persists booking events to Postgres. The trail is
// write-mostly history; the in-memory scheduling core stays authoritative.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create stores one booking event.
func (r *AuditRepository) Create(ctx context.Context, event *models.BookingEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO booking_events (id, kind, outcome, subject_id, classroom_id, professor_id, booking_date, time_slot, detail, request_id, created_at) VALUES (:id, :kind, :outcome, :subject_id, :classroom_id, :professor_id, :booking_date, :time_slot, :detail, :request_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create booking event: %w", err)
	}
	return nil
}

// ListByClassroom returns the most recent events for a classroom, newest
// first, capped at limit.
func (r *AuditRepository) ListByClassroom(ctx context.Context, classroomID string, limit int) ([]models.BookingEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	const query = `SELECT id, kind, outcome, subject_id, classroom_id, professor_id, booking_date, time_slot, detail, request_id, created_at FROM booking_events WHERE classroom_id = $1 ORDER BY created_at DESC LIMIT $2`
	var events []models.BookingEvent
	if err := r.db.SelectContext(ctx, &events, query, classroomID, limit); err != nil {
		return nil, fmt.Errorf("list booking events: %w", err)
	}
	return events, nil
}
