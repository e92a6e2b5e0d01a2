package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/scheduling-api/internal/service"
	appErrors "github.com/campushq/scheduling-api/pkg/errors"
	"github.com/campushq/scheduling-api/pkg/response"
)

// DirectoryHandler manages course, professor and student endpoints.
type DirectoryHandler struct {
	service *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(svc *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: svc}
}

// CreateCourse godoc
// @Summary Register course
// @Tags Directory
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *DirectoryHandler) CreateCourse(c *gin.Context) {
	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.service.CreateCourse(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// GetCourse godoc
// @Summary Get course
// @Tags Directory
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *DirectoryHandler) GetCourse(c *gin.Context) {
	course, err := h.service.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// ListCourses godoc
// @Summary List courses
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *DirectoryHandler) ListCourses(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.ListCourses(c.Request.Context()), nil)
}

// CreateProfessor godoc
// @Summary Register professor
// @Tags Directory
// @Accept json
// @Produce json
// @Param payload body service.CreateProfessorRequest true "Professor payload"
// @Success 201 {object} response.Envelope
// @Router /professors [post]
func (h *DirectoryHandler) CreateProfessor(c *gin.Context) {
	var req service.CreateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	prof, err := h.service.CreateProfessor(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, prof)
}

// GetProfessor godoc
// @Summary Get professor
// @Tags Directory
// @Produce json
// @Param id path string true "Professor ID"
// @Success 200 {object} response.Envelope
// @Router /professors/{id} [get]
func (h *DirectoryHandler) GetProfessor(c *gin.Context) {
	prof, err := h.service.GetProfessor(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prof, nil)
}

// ListProfessors godoc
// @Summary List professors
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /professors [get]
func (h *DirectoryHandler) ListProfessors(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.ListProfessors(c.Request.Context()), nil)
}

// CreateStudent godoc
// @Summary Register student
// @Tags Directory
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *DirectoryHandler) CreateStudent(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.service.CreateStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// GetStudent godoc
// @Summary Get student
// @Tags Directory
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *DirectoryHandler) GetStudent(c *gin.Context) {
	student, err := h.service.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// ListStudents godoc
// @Summary List students
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *DirectoryHandler) ListStudents(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.ListStudents(c.Request.Context()), nil)
}
