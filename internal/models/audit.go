package models

import "time"

// Booking event kinds.
const (
	BookingKindAssign   = "schedule_assign"
	BookingKindUpdate   = "schedule_update"
	BookingKindExam     = "exam_schedule"
	BookingKindAllocate = "classroom_allocate"
)

// Booking event outcomes.
const (
	BookingOutcomeCommitted = "committed"
	BookingOutcomeConflict  = "conflict"
	BookingOutcomeRejected  = "rejected"
)

// BookingEvent is one entry in the write-only booking audit trail. The
// in-memory scheduling core stays authoritative; events are history only.
type BookingEvent struct {
	ID          string    `db:"id" json:"id"`
	Kind        string    `db:"kind" json:"kind"`
	Outcome     string    `db:"outcome" json:"outcome"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	ClassroomID string    `db:"classroom_id" json:"classroom_id"`
	ProfessorID string    `db:"professor_id" json:"professor_id"`
	Date        string    `db:"booking_date" json:"date"`
	TimeSlot    string    `db:"time_slot" json:"time_slot"`
	Detail      string    `db:"detail" json:"detail"`
	RequestID   string    `db:"request_id" json:"request_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
