package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/scheduling-api/internal/models"
	"github.com/campushq/scheduling-api/internal/scheduling"
	"github.com/campushq/scheduling-api/internal/service"
	"github.com/campushq/scheduling-api/internal/store"
	"github.com/campushq/scheduling-api/pkg/jobs"
)

func newScheduleRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	book := scheduling.NewBook()
	classrooms := store.NewClassroomStore()
	directory := store.NewDirectoryStore()

	require.True(t, classrooms.Create(models.Classroom{ID: "101", Capacity: 40}))
	require.True(t, book.RegisterClassroom("101"))
	require.True(t, directory.CreateCourse(models.Course{ID: "math", Name: "Mathematics"}))
	require.True(t, directory.CreateProfessor(models.Professor{ID: "smith", Name: "Dr. Smith"}))

	audit, _ := service.NewAuditService(nil, jobs.QueueConfig{})
	svc := service.NewScheduleService(book, directory, classrooms, nil, audit, service.NewMetricsService(), nil, nil)
	h := NewScheduleHandler(svc)

	r := gin.New()
	r.GET("/schedules", h.List)
	r.GET("/schedules/:id", h.Get)
	r.POST("/schedules", h.Create)
	r.PATCH("/schedules/:id", h.Update)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest(method, path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScheduleHandlerCreateAndGet(t *testing.T) {
	r := newScheduleRouter(t)

	w := postJSON(t, r, http.MethodPost, "/schedules", service.CreateScheduleRequest{
		ScheduleID:  "s1",
		CourseID:    "math",
		ProfessorID: "smith",
		ClassroomID: "101",
		Date:        "2026-09-14",
		TimeSlot:    "10:00-11:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.ScheduleDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Mathematics", created.Data.CourseName)

	req, _ := http.NewRequest(http.MethodGet, "/schedules/s1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestScheduleHandlerConflictStatus(t *testing.T) {
	r := newScheduleRouter(t)

	payload := service.CreateScheduleRequest{
		ScheduleID:  "s1",
		CourseID:    "math",
		ProfessorID: "smith",
		ClassroomID: "101",
		Date:        "2026-09-14",
		TimeSlot:    "10:00-11:00",
	}
	require.Equal(t, http.StatusCreated, postJSON(t, r, http.MethodPost, "/schedules", payload).Code)

	payload.ScheduleID = "s2"
	w := postJSON(t, r, http.MethodPost, "/schedules", payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	var failed struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failed))
	assert.Equal(t, "CONFLICT", failed.Error.Code)
}

func TestScheduleHandlerUpdateValidation(t *testing.T) {
	r := newScheduleRouter(t)

	w := postJSON(t, r, http.MethodPatch, "/schedules/s1", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerGetMissing(t *testing.T) {
	r := newScheduleRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/schedules/ghost", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleHandlerListEnvelope(t *testing.T) {
	r := newScheduleRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/schedules?page=1&limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data       []models.ScheduleDetail `json:"data"`
		Pagination *models.Pagination      `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 0, envelope.Pagination.TotalCount)
}
