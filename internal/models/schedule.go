package models

import "time"

// Schedule binds a course and professor to a classroom slot on a date.
// Relations are id references resolved through the directory stores.
type Schedule struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	ProfessorID string    `json:"professor_id"`
	ClassroomID string    `json:"classroom_id"`
	Date        string    `json:"date"`
	TimeSlot    string    `json:"time_slot"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ScheduleChange carries the mutable fields of a schedule update. Empty
// strings keep the current value.
type ScheduleChange struct {
	TimeSlot    string
	ClassroomID string
	Date        string
}

// ScheduleDetail echoes a committed schedule with its resolved references.
type ScheduleDetail struct {
	Schedule
	CourseName        string `json:"course_name"`
	ProfessorName     string `json:"professor_name"`
	ClassroomLocation string `json:"classroom_location"`
}

// Conflict dimensions reported when an assignment is rejected.
const (
	ConflictClassroom = "CLASSROOM"
	ConflictProfessor = "PROFESSOR"
)

// ScheduleConflict describes the existing booking that caused a rejection.
type ScheduleConflict struct {
	ScheduleID  string `json:"schedule_id,omitempty"`
	CourseID    string `json:"course_id,omitempty"`
	ProfessorID string `json:"professor_id,omitempty"`
	ClassroomID string `json:"classroom_id"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
	Dimension   string `json:"dimension"`
}

// ScheduleConflictError is returned when a booking collides with an
// existing one on the same classroom or professor.
type ScheduleConflictError struct {
	Dimension string           `json:"dimension"`
	Message   string           `json:"message"`
	Conflict  ScheduleConflict `json:"conflict"`
}

// Error implements the error interface for conflict errors.
func (e *ScheduleConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}
