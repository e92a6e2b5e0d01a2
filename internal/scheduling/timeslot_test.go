package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDate(t *testing.T) {
	require.NoError(t, ValidateDate("2026-09-14"))

	for _, invalid := range []string{"14-09-2026", "2026/09/14", "2026-13-01", "2026-9-4", "", "tomorrow"} {
		assert.Error(t, ValidateDate(invalid), invalid)
	}
}

func TestValidateSlot(t *testing.T) {
	require.NoError(t, ValidateSlot("09:00-10:30"))
	require.NoError(t, ValidateSlot("23:00-23:59"))
	// zero-length slots are representable
	require.NoError(t, ValidateSlot("09:00-09:00"))

	for _, invalid := range []string{"9:00-10:30", "09:00", "09:00–10:30", "09:00-25:00", "09.00-10.30", ""} {
		assert.Error(t, ValidateSlot(invalid), invalid)
	}
}

func TestSlotForDuration(t *testing.T) {
	assert.Equal(t, "09:00-10:30", SlotForDuration(90))
	assert.Equal(t, "09:00-10:00", SlotForDuration(60))
	assert.Equal(t, "09:00-11:00", SlotForDuration(120))
	assert.Equal(t, "09:00-09:45", SlotForDuration(45))
	assert.Equal(t, "09:00-09:00", SlotForDuration(0))
}
