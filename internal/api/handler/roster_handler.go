package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"siscof/backend/internal/dto"
	"siscof/backend/internal/service"
	pkgerrors "siscof/backend/pkg/errors"
	"siscof/backend/pkg/response"
)

// RosterHandler serves a schedule's role assignments and the close action.
type RosterHandler struct {
	rosterSvc service.RosterService
}

func NewRosterHandler(rosterSvc service.RosterService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc}
}

// ListAssignments returns the roster in presentation order.
// GET /api/v1/schedules/:id/assignments
func (h *RosterHandler) ListAssignments(c *gin.Context) {
	scheduleID := c.Param("id")
	if scheduleID == "" {
		response.BadRequest(c, 14001, "schedule id is required")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	assignments, err := h.rosterSvc.ListAssignments(c.Request.Context(), scheduleID, caller)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, gin.H{"list": assignments})
}

// AddAssignment creates an empty slot for a role.
// POST /api/v1/schedules/:id/assignments
func (h *RosterHandler) AddAssignment(c *gin.Context) {
	scheduleID := c.Param("id")
	if scheduleID == "" {
		response.BadRequest(c, 14001, "schedule id is required")
		return
	}

	var req dto.AddAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid assignment payload")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	assignment, err := h.rosterSvc.AddAssignment(c.Request.Context(), scheduleID, &req, caller)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.Created(c, assignment)
}

// UpdateAssignment edits the core fields of a slot (open schedules only).
// PUT /api/v1/assignments/:id
func (h *RosterHandler) UpdateAssignment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "assignment id is required")
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid assignment payload")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	assignment, err := h.rosterSvc.UpdateAssignment(c.Request.Context(), id, &req, caller)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, assignment)
}

// UpdateAttendance records attendance on a closed schedule.
// PUT /api/v1/assignments/:id/attendance
func (h *RosterHandler) UpdateAttendance(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "assignment id is required")
		return
	}

	var req dto.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid attendance payload")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	assignment, err := h.rosterSvc.UpdateAttendance(c.Request.Context(), id, &req, caller)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, assignment)
}

// RemoveAssignment deletes a slot (open schedules only).
// DELETE /api/v1/assignments/:id
func (h *RosterHandler) RemoveAssignment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "assignment id is required")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.rosterSvc.RemoveAssignment(c.Request.Context(), id, caller); err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, nil)
}

// CloseSchedule transitions a schedule to closed with its figures.
// POST /api/v1/schedules/:id/close
func (h *RosterHandler) CloseSchedule(c *gin.Context) {
	scheduleID := c.Param("id")
	if scheduleID == "" {
		response.BadRequest(c, 14001, "schedule id is required")
		return
	}

	var req dto.CloseScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid close payload")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	schedule, err := h.rosterSvc.CloseSchedule(c.Request.Context(), scheduleID, &req, caller)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, schedule)
}

func (h *RosterHandler) handleRosterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 14101, "schedule not found")
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 14102, "assignment not found")
	case errors.Is(err, service.ErrRoleNotFound):
		response.NotFound(c, 14103, "role not found")
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 14104, "member not found")
	case errors.Is(err, service.ErrRoleSlotTaken):
		response.Conflict(c, 14105, "this role slot is already filled")
	case errors.Is(err, service.ErrScheduleClosed):
		response.BadRequest(c, 14106, "schedule is closed")
	case errors.Is(err, service.ErrScheduleNotClosed):
		response.BadRequest(c, 14107, "attendance can only be recorded on a closed schedule")
	case errors.Is(err, service.ErrClosingFiguresInvalid):
		response.BadRequest(c, 14108, "offering amount, tithe amount and verifier name are required")
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, 14109, "permission denied for this unit")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 14110, "record was modified concurrently, refresh and retry")
	default:
		response.InternalError(c)
	}
}
