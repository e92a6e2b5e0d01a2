package models

import "time"

// Classroom is a bookable room. Capacity is advisory only; it is never
// checked against enrollment.
type Classroom struct {
	ID        string    `json:"id"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// NoBookingSentinel is reported as the earliest booked date of an empty ledger.
const NoBookingSentinel = "none"

// LedgerInfo summarises a classroom's booking ledger.
type LedgerInfo struct {
	BookedDays         int    `json:"booked_days"`
	EarliestBookedDate string `json:"earliest_booked_date"`
}

// ClassroomDetail combines the classroom record with its ledger summary.
type ClassroomDetail struct {
	Classroom
	Ledger LedgerInfo `json:"ledger"`
}
