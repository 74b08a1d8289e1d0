package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"siscof/backend/internal/dto"
	"siscof/backend/internal/service"
	pkgerrors "siscof/backend/pkg/errors"
	"siscof/backend/pkg/response"
)

// ScheduleHandler serves the schedule directory.
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ListSchedules lists one unit's schedules for a period.
// GET /api/v1/schedules?church_id=|cell_id=&period=
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	var req dto.ScheduleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 13001, "invalid schedule query")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	schedules, err := h.scheduleSvc.ListSchedules(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": schedules})
}

// GetSchedule returns one schedule header.
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "schedule id is required")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.GetSchedule(c.Request.Context(), id, caller)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// CreateSchedule creates an open schedule header.
// POST /api/v1/schedules
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid schedule payload")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.CreateSchedule(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, schedule)
}

// DeleteSchedule deletes an open schedule and its roster.
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "schedule id is required")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.DeleteSchedule(c.Request.Context(), id, caller); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnitInvalid):
		response.BadRequest(c, 13101, "exactly one of church_id or cell_id must be provided")
	case errors.Is(err, service.ErrServiceDateInvalid):
		response.BadRequest(c, 13102, "service_date must be formatted YYYY-MM-DD")
	case errors.Is(err, service.ErrUnitNotFound):
		response.NotFound(c, 13103, "unit not found")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13104, "schedule not found")
	case errors.Is(err, service.ErrServiceTypeNotFound):
		response.NotFound(c, 13105, "service type not found")
	case errors.Is(err, service.ErrScheduleClosed):
		response.BadRequest(c, 13106, "schedule is closed")
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, 13107, "permission denied for this unit")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 13108, "schedule was modified concurrently, refresh and retry")
	default:
		response.InternalError(c)
	}
}
