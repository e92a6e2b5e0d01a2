package scheduling

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/campushq/scheduling-api/internal/models"
)

// Sentinel errors for non-conflict failures.
var (
	ErrClassroomNotRegistered = errors.New("classroom not registered")
	ErrScheduleNotFound       = errors.New("schedule not found")
	ErrScheduleExists         = errors.New("schedule id already in use")
)

// Book holds every active schedule entry together with the ledgers of all
// registered classrooms. A single mutex serialises each
// conflict-check-then-commit sequence, so a reader never observes a
// schedule without its classroom booking or vice versa. Of two concurrent
// conflicting requests exactly one succeeds; lock acquisition order picks
// the winner.
type Book struct {
	mu      sync.Mutex
	entries []models.Schedule
	ledgers map[string]*Ledger
}

// NewBook returns an empty schedule book with no registered classrooms.
func NewBook() *Book {
	return &Book{ledgers: make(map[string]*Ledger)}
}

// RegisterClassroom creates a ledger for the classroom. Classrooms are
// registered administratively and never removed. Returns false when the
// id is already registered.
func (b *Book) RegisterClassroom(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.ledgers[id]; ok {
		return false
	}
	b.ledgers[id] = NewLedger()
	return true
}

// HasClassroom reports whether a ledger exists for the classroom.
func (b *Book) HasClassroom(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.ledgers[id]
	return ok
}

// Assign commits a new schedule entry. It scans every active entry for a
// date+slot collision on the same classroom or professor, then books the
// classroom ledger as a defensive double-check against direct allocations,
// and appends the entry. On any failure nothing is mutated.
func (b *Book) Assign(entry models.Schedule) (models.Schedule, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ledger, ok := b.ledgers[entry.ClassroomID]
	if !ok {
		return models.Schedule{}, ErrClassroomNotRegistered
	}

	for _, existing := range b.entries {
		if existing.ID == entry.ID {
			return models.Schedule{}, ErrScheduleExists
		}
	}

	if err := b.scanConflicts(entry.Date, entry.TimeSlot, entry.ClassroomID, entry.ProfessorID, ""); err != nil {
		return models.Schedule{}, err
	}

	if !ledger.Allocate(entry.Date, entry.TimeSlot) {
		return models.Schedule{}, directConflict(entry.ClassroomID, entry.Date, entry.TimeSlot)
	}

	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	b.entries = append(b.entries, entry)
	return entry, nil
}

// Update modifies an existing entry in place. The effective date, slot and
// classroom are re-validated against every other entry, and the target
// ledger is checked before anything is released, so a failed update never
// loses the old booking.
func (b *Book) Update(id string, change models.ScheduleChange) (models.Schedule, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := -1
	for i := range b.entries {
		if b.entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Schedule{}, ErrScheduleNotFound
	}
	current := b.entries[idx]

	effDate := current.Date
	if change.Date != "" {
		effDate = change.Date
	}
	effSlot := current.TimeSlot
	if change.TimeSlot != "" {
		effSlot = change.TimeSlot
	}
	effRoom := current.ClassroomID
	if change.ClassroomID != "" {
		effRoom = change.ClassroomID
	}

	newLedger, ok := b.ledgers[effRoom]
	if !ok {
		return models.Schedule{}, ErrClassroomNotRegistered
	}

	if err := b.scanConflicts(effDate, effSlot, effRoom, current.ProfessorID, current.ID); err != nil {
		return models.Schedule{}, err
	}

	moved := effDate != current.Date || effSlot != current.TimeSlot || effRoom != current.ClassroomID
	if moved {
		// The target pair may be held by a direct allocation or an exam
		// booking the conflict scan cannot see.
		if newLedger.IsAllocated(effDate, effSlot) {
			return models.Schedule{}, directConflict(effRoom, effDate, effSlot)
		}
		b.ledgers[current.ClassroomID].Release(current.Date, current.TimeSlot)
		newLedger.Allocate(effDate, effSlot)
	}

	current.Date = effDate
	current.TimeSlot = effSlot
	current.ClassroomID = effRoom
	current.UpdatedAt = time.Now().UTC()
	b.entries[idx] = current
	return current, nil
}

// AllocateDirect books a (date, slot) pair on a classroom ledger without a
// schedule entry. The administrative allocation endpoint and the exam
// booking path both commit through here; neither checks professor
// conflicts.
func (b *Book) AllocateDirect(classroomID, date, slot string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	ledger, ok := b.ledgers[classroomID]
	if !ok {
		return ErrClassroomNotRegistered
	}
	if !ledger.Allocate(date, slot) {
		return directConflict(classroomID, date, slot)
	}
	return nil
}

// ReleaseDirect frees a pair booked through AllocateDirect. Used only to
// roll back an exam registration that failed after its slot was booked.
func (b *Book) ReleaseDirect(classroomID, date, slot string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ledger, ok := b.ledgers[classroomID]; ok {
		ledger.Release(date, slot)
	}
}

// IsAllocated reports whether a pair is booked on a classroom ledger.
func (b *Book) IsAllocated(classroomID, date, slot string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	ledger, ok := b.ledgers[classroomID]
	if !ok {
		return false
	}
	return ledger.IsAllocated(date, slot)
}

// LedgerInfo returns the booking summary for a classroom.
func (b *Book) LedgerInfo(classroomID string) (models.LedgerInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ledger, ok := b.ledgers[classroomID]
	if !ok {
		return models.LedgerInfo{}, ErrClassroomNotRegistered
	}
	return ledger.Info(), nil
}

// Get returns a copy of the entry with the given id.
func (b *Book) Get(id string) (models.Schedule, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, entry := range b.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return models.Schedule{}, false
}

// List returns a copy of all active entries in assignment order.
func (b *Book) List() []models.Schedule {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.Schedule, len(b.entries))
	copy(out, b.entries)
	return out
}

// ListByProfessor returns the entries referencing the professor.
func (b *Book) ListByProfessor(professorID string) []models.Schedule {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []models.Schedule
	for _, entry := range b.entries {
		if entry.ProfessorID == professorID {
			out = append(out, entry)
		}
	}
	return out
}

// ListByClassroom returns the entries referencing the classroom.
func (b *Book) ListByClassroom(classroomID string) []models.Schedule {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []models.Schedule
	for _, entry := range b.entries {
		if entry.ClassroomID == classroomID {
			out = append(out, entry)
		}
	}
	return out
}

// scanConflicts walks every entry except ignoreID looking for a date+slot
// collision on classroom or professor. The predicate is symmetric and
// exhaustive; first match short-circuits. Callers hold b.mu.
func (b *Book) scanConflicts(date, slot, classroomID, professorID, ignoreID string) error {
	for _, existing := range b.entries {
		if existing.ID == ignoreID {
			continue
		}
		if existing.Date != date || existing.TimeSlot != slot {
			continue
		}
		if existing.ClassroomID == classroomID {
			return entryConflict(models.ConflictClassroom, "classroom already booked for this slot", existing)
		}
		if existing.ProfessorID == professorID {
			return entryConflict(models.ConflictProfessor, "professor already scheduled for this slot", existing)
		}
	}
	return nil
}

func entryConflict(dimension, message string, existing models.Schedule) *models.ScheduleConflictError {
	return &models.ScheduleConflictError{
		Dimension: dimension,
		Message:   message,
		Conflict: models.ScheduleConflict{
			ScheduleID:  existing.ID,
			CourseID:    existing.CourseID,
			ProfessorID: existing.ProfessorID,
			ClassroomID: existing.ClassroomID,
			Date:        existing.Date,
			TimeSlot:    existing.TimeSlot,
			Dimension:   dimension,
		},
	}
}

func directConflict(classroomID, date, slot string) *models.ScheduleConflictError {
	return &models.ScheduleConflictError{
		Dimension: models.ConflictClassroom,
		Message:   fmt.Sprintf("classroom %s already booked for %s %s", classroomID, date, slot),
		Conflict: models.ScheduleConflict{
			ClassroomID: classroomID,
			Date:        date,
			TimeSlot:    slot,
			Dimension:   models.ConflictClassroom,
		},
	}
}
