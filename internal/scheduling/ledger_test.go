package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/scheduling-api/internal/models"
)

func TestLedgerAllocateAndRelease(t *testing.T) {
	ledger := NewLedger()

	require.True(t, ledger.Allocate("2026-09-14", "10:00-11:00"))
	assert.True(t, ledger.IsAllocated("2026-09-14", "10:00-11:00"))

	// second allocation of the same tuple is refused, state unchanged
	assert.False(t, ledger.Allocate("2026-09-14", "10:00-11:00"))
	assert.True(t, ledger.IsAllocated("2026-09-14", "10:00-11:00"))

	// slots match by exact string only
	assert.True(t, ledger.Allocate("2026-09-14", "10:00-11:30"))
	assert.True(t, ledger.Allocate("2026-09-15", "10:00-11:00"))

	ledger.Release("2026-09-14", "10:00-11:00")
	assert.False(t, ledger.IsAllocated("2026-09-14", "10:00-11:00"))
	assert.True(t, ledger.IsAllocated("2026-09-14", "10:00-11:30"))
}

func TestLedgerInfo(t *testing.T) {
	ledger := NewLedger()

	info := ledger.Info()
	assert.Equal(t, 0, info.BookedDays)
	assert.Equal(t, models.NoBookingSentinel, info.EarliestBookedDate)

	require.True(t, ledger.Allocate("2026-09-20", "10:00-11:00"))
	require.True(t, ledger.Allocate("2026-09-14", "10:00-11:00"))
	require.True(t, ledger.Allocate("2026-09-14", "11:00-12:00"))

	info = ledger.Info()
	assert.Equal(t, 2, info.BookedDays)
	assert.Equal(t, "2026-09-14", info.EarliestBookedDate)

	// releasing the last slot of a day removes the day entirely
	ledger.Release("2026-09-14", "10:00-11:00")
	ledger.Release("2026-09-14", "11:00-12:00")
	info = ledger.Info()
	assert.Equal(t, 1, info.BookedDays)
	assert.Equal(t, "2026-09-20", info.EarliestBookedDate)
}
