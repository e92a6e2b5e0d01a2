package scheduling

import (
	"github.com/campushq/scheduling-api/internal/models"
)

// Ledger is the authoritative record of booked (date, slot) pairs for one
// classroom. A pair appears at most once. Failure is signalled by boolean
// return, never by error.
//
// Ledger is not self-locking: every mutation runs under the Book mutex so
// ledger and book commit as one atomic unit.
type Ledger struct {
	booked map[string]map[string]struct{}
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{booked: make(map[string]map[string]struct{})}
}

// IsAllocated reports whether the slot is booked on the date. A date with
// no bookings reports false.
func (l *Ledger) IsAllocated(date, slot string) bool {
	slots, ok := l.booked[date]
	if !ok {
		return false
	}
	_, taken := slots[slot]
	return taken
}

// Allocate books the slot on the date. It returns false and changes
// nothing when the pair is already booked; a repeated identical attempt
// always fails cleanly.
func (l *Ledger) Allocate(date, slot string) bool {
	if l.IsAllocated(date, slot) {
		return false
	}
	slots, ok := l.booked[date]
	if !ok {
		slots = make(map[string]struct{})
		l.booked[date] = slots
	}
	slots[slot] = struct{}{}
	return true
}

// Release frees a booked pair. Releasing a pair that is not booked is a
// no-op. Only the schedule update path releases bookings.
func (l *Ledger) Release(date, slot string) {
	slots, ok := l.booked[date]
	if !ok {
		return
	}
	delete(slots, slot)
	if len(slots) == 0 {
		delete(l.booked, date)
	}
}

// Info summarises the ledger: the number of days with at least one booking
// and the earliest booked date, or the "none" sentinel when empty.
func (l *Ledger) Info() models.LedgerInfo {
	info := models.LedgerInfo{
		BookedDays:         len(l.booked),
		EarliestBookedDate: models.NoBookingSentinel,
	}
	for date := range l.booked {
		if info.EarliestBookedDate == models.NoBookingSentinel || date < info.EarliestBookedDate {
			info.EarliestBookedDate = date
		}
	}
	return info
}
