package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/scheduling-api/internal/models"
)

func TestExamStoreCreateAndDelete(t *testing.T) {
	s := NewExamStore()

	exam := models.Exam{ID: "e1", CourseID: "math", Date: "2026-09-14", DurationMinutes: 90, ClassroomID: "101", TimeSlot: "09:00-10:30"}
	require.True(t, s.Create(exam))
	assert.False(t, s.Create(exam))

	stored, ok := s.Get("e1")
	require.True(t, ok)
	assert.Equal(t, "math", stored.CourseID)

	s.Delete("e1")
	_, ok = s.Get("e1")
	assert.False(t, ok)
}

func TestExamStoreRecordResult(t *testing.T) {
	s := NewExamStore()
	require.True(t, s.Create(models.Exam{ID: "e1", CourseID: "math"}))

	found, stored := s.RecordResult("e1", "alice", "90")
	assert.True(t, found)
	assert.True(t, stored)

	// first write wins
	found, stored = s.RecordResult("e1", "alice", "95")
	assert.True(t, found)
	assert.False(t, stored)

	found, _ = s.RecordResult("missing", "alice", "90")
	assert.False(t, found)

	exam, ok := s.Get("e1")
	require.True(t, ok)
	assert.Equal(t, "90", exam.Results["alice"])
}

func TestExamStoreGetReturnsCopy(t *testing.T) {
	s := NewExamStore()
	require.True(t, s.Create(models.Exam{ID: "e1", CourseID: "math"}))
	s.RecordResult("e1", "alice", "90")

	exam, _ := s.Get("e1")
	exam.Results["bob"] = "50"

	fresh, _ := s.Get("e1")
	assert.NotContains(t, fresh.Results, "bob")
}

func TestExamStoreListByCourse(t *testing.T) {
	s := NewExamStore()
	require.True(t, s.Create(models.Exam{ID: "e1", CourseID: "math"}))
	require.True(t, s.Create(models.Exam{ID: "e2", CourseID: "math"}))
	require.True(t, s.Create(models.Exam{ID: "e3", CourseID: "bio"}))

	assert.Len(t, s.ListByCourse("math"), 2)
	assert.Len(t, s.ListByCourse("none"), 0)
}
