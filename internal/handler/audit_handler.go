package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushq/scheduling-api/internal/models"
	appErrors "github.com/campushq/scheduling-api/pkg/errors"
	"github.com/campushq/scheduling-api/pkg/response"
)

// BookingEventReader loads persisted booking events.
type BookingEventReader interface {
	ListByClassroom(ctx context.Context, classroomID string, limit int) ([]models.BookingEvent, error)
}

// AuditHandler exposes the booking event history.
type AuditHandler struct {
	events BookingEventReader
}

// NewAuditHandler constructs handler. events may be nil when the audit
// trail is disabled.
func NewAuditHandler(events BookingEventReader) *AuditHandler {
	return &AuditHandler{events: events}
}

// ListByClassroom godoc
// @Summary List booking events for a classroom
// @Tags Audit
// @Produce json
// @Param id path string true "Classroom ID"
// @Param limit query int false "Max events"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /classrooms/{id}/bookings [get]
func (h *AuditHandler) ListByClassroom(c *gin.Context) {
	if h.events == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "booking audit trail is disabled"))
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		limit = 50
	}
	events, err := h.events.ListByClassroom(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking events"))
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}
