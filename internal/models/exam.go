package models

import "time"

// Exam is a single-sitting examination for a course. The classroom and
// time slot are bound when the exam is scheduled; results accumulate one
// grade per student afterwards.
type Exam struct {
	ID              string            `json:"id"`
	CourseID        string            `json:"course_id"`
	Date            string            `json:"date"`
	DurationMinutes int               `json:"duration_minutes"`
	ClassroomID     string            `json:"classroom_id"`
	TimeSlot        string            `json:"time_slot"`
	Results         map[string]string `json:"-"`
	CreatedAt       time.Time         `json:"created_at"`
}

// ExamInfo is the read model for an exam, including result statistics.
// AverageGrade holds a float64 mean of the numeric-parsable grades, or the
// string "N/A" when none exist.
type ExamInfo struct {
	ID                string      `json:"id"`
	CourseID          string      `json:"course_id"`
	CourseName        string      `json:"course_name"`
	Date              string      `json:"date"`
	DurationMinutes   int         `json:"duration_minutes"`
	ClassroomID       string      `json:"classroom_id"`
	TimeSlot          string      `json:"time_slot"`
	StudentsCompleted int         `json:"students_completed"`
	AverageGrade      interface{} `json:"average_grade"`
}

// ExamResult is one recorded grade.
type ExamResult struct {
	ExamID    string `json:"exam_id"`
	StudentID string `json:"student_id"`
	Grade     string `json:"grade"`
}
