package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/scheduling-api/internal/service"
	appErrors "github.com/campushq/scheduling-api/pkg/errors"
	"github.com/campushq/scheduling-api/pkg/response"
)

// ExamHandler manages exam endpoints.
type ExamHandler struct {
	service        *service.ExamService
	exportsEnabled bool
}

// NewExamHandler constructs handler.
func NewExamHandler(svc *service.ExamService, exportsEnabled bool) *ExamHandler {
	return &ExamHandler{service: svc, exportsEnabled: exportsEnabled}
}

// Schedule godoc
// @Summary Schedule an exam
// @Tags Exams
// @Accept json
// @Produce json
// @Param payload body service.ScheduleExamRequest true "Exam payload"
// @Success 201 {object} response.Envelope
// @Router /exams [post]
func (h *ExamHandler) Schedule(c *gin.Context) {
	var req service.ScheduleExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	exam, err := h.service.Schedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, exam)
}

// Info godoc
// @Summary Get exam details with result statistics
// @Tags Exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} response.Envelope
// @Router /exams/{id} [get]
func (h *ExamHandler) Info(c *gin.Context) {
	info, err := h.service.Info(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info, nil)
}

// RecordResult godoc
// @Summary Record an exam result
// @Tags Exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param payload body service.RecordResultRequest true "Result payload"
// @Success 204
// @Router /exams/{id}/results [post]
func (h *ExamHandler) RecordResult(c *gin.Context) {
	var req service.RecordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.RecordResult(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListByCourse godoc
// @Summary List exams for a course
// @Tags Exams
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/exams [get]
func (h *ExamHandler) ListByCourse(c *gin.Context) {
	exams, err := h.service.ListByCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exams, nil)
}

// ExportResults godoc
// @Summary Export exam results as CSV or PDF
// @Tags Exams
// @Produce json
// @Param id path string true "Exam ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /exams/{id}/results/export [get]
func (h *ExamHandler) ExportResults(c *gin.Context) {
	if !h.exportsEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "exports are disabled"))
		return
	}
	file, err := h.service.ExportResults(c.Request.Context(), c.Param("id"), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
