// Package scheduling implements the booking core: per-classroom ledgers of
// booked (date, slot) pairs and the schedule book that enforces classroom
// and professor conflict rules across them.
package scheduling

import (
	"fmt"
	"strings"
	"time"
)

// Slots are compared by exact string equality. "10:00-12:00" and
// "11:00-13:00" do not conflict; callers must preserve the HH:MM-HH:MM
// format byte-for-byte.

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// examStartHour is the fixed start for derived exam slots.
	examStartHour = 9
)

// ValidateDate checks the ISO YYYY-MM-DD format. Lexicographic order on
// valid dates equals chronological order, which the ledger relies on.
func ValidateDate(date string) error {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	if parsed.Format(dateLayout) != date {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	return nil
}

// ValidateSlot checks the HH:MM-HH:MM format. Interval ordering is not
// enforced; a zero-length slot such as "09:00-09:00" is representable.
func ValidateSlot(slot string) error {
	start, end, ok := strings.Cut(slot, "-")
	if !ok {
		return fmt.Errorf("invalid time slot %q: want HH:MM-HH:MM", slot)
	}
	for _, part := range []string{start, end} {
		parsed, err := time.Parse(timeLayout, part)
		if err != nil || parsed.Format(timeLayout) != part {
			return fmt.Errorf("invalid time slot %q: want HH:MM-HH:MM", slot)
		}
	}
	return nil
}

// SlotForDuration derives an exam slot from the fixed 09:00 start and a
// duration in minutes: 90 yields "09:00-10:30". The end is formatted, not
// range-checked, so durations past midnight produce hour values above 23.
func SlotForDuration(minutes int) string {
	return fmt.Sprintf("%02d:00-%02d:%02d", examStartHour, examStartHour+minutes/60, minutes%60)
}
