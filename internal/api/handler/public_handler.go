package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"siscof/backend/internal/dto"
	"siscof/backend/internal/service"
	"siscof/backend/pkg/response"
)

// PublicHandler serves the unauthenticated read-only projection.
type PublicHandler struct {
	publicSvc service.PublicService
	exportSvc service.ExportService
}

func NewPublicHandler(publicSvc service.PublicService, exportSvc service.ExportService) *PublicHandler {
	return &PublicHandler{publicSvc: publicSvc, exportSvc: exportSvc}
}

// ListUnits lists approved churches with their approved cells.
// GET /api/v1/public/units
func (h *PublicHandler) ListUnits(c *gin.Context) {
	units, err := h.publicSvc.ListPublicUnits(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": units})
}

// ListSchedules lists an approved unit's schedules for a period.
// GET /api/v1/public/schedules?church_id=|cell_id=&period=
func (h *PublicHandler) ListSchedules(c *gin.Context) {
	var req dto.ScheduleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 16001, "invalid schedule query")
		return
	}

	schedules, err := h.publicSvc.ListPublicSchedules(c.Request.Context(), &req)
	if err != nil {
		h.handlePublicError(c, err)
		return
	}

	response.OK(c, gin.H{"list": schedules})
}

// ListAssignments returns the public roster of one schedule.
// GET /api/v1/public/schedules/:id/assignments
func (h *PublicHandler) ListAssignments(c *gin.Context) {
	scheduleID := c.Param("id")
	if scheduleID == "" {
		response.BadRequest(c, 16001, "schedule id is required")
		return
	}

	assignments, err := h.publicSvc.ListPublicAssignments(c.Request.Context(), scheduleID)
	if err != nil {
		h.handlePublicError(c, err)
		return
	}

	response.OK(c, gin.H{"list": assignments})
}

// UnitCalendar serves an approved unit's upcoming services as an
// iCalendar feed.
// GET /api/v1/public/units/:id/calendar.ics
func (h *PublicHandler) UnitCalendar(c *gin.Context) {
	unitID := c.Param("id")
	if unitID == "" {
		response.BadRequest(c, 16001, "unit id is required")
		return
	}

	feed, err := h.exportSvc.PublicUnitCalendar(c.Request.Context(), unitID)
	if err != nil {
		h.handlePublicError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="agenda.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

func (h *PublicHandler) handlePublicError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnitInvalid):
		response.BadRequest(c, 16101, "exactly one of church_id or cell_id must be provided")
	case errors.Is(err, service.ErrUnitNotFound):
		response.NotFound(c, 16102, "unit not found")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 16103, "schedule not found")
	default:
		response.InternalError(c)
	}
}
