package models

import "time"

// Course is an opaque reference target for schedules and exams. The
// scheduling core never re-validates its fields once resolved.
type Course struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"created_at"`
}

// Professor teaches courses and is a conflict dimension for schedules.
type Professor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Student sits exams and receives at most one grade per exam.
type Student struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
