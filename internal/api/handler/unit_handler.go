package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"siscof/backend/internal/service"
	"siscof/backend/pkg/response"
)

// approvalRequest flips the public-approval flag of a unit.
type approvalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// UnitHandler serves the authenticated unit listing plus the admin-only
// approval toggles.
type UnitHandler struct {
	unitSvc service.UnitService
}

func NewUnitHandler(unitSvc service.UnitService) *UnitHandler {
	return &UnitHandler{unitSvc: unitSvc}
}

// ListChurches lists every church.
// GET /api/v1/churches
func (h *UnitHandler) ListChurches(c *gin.Context) {
	churches, err := h.unitSvc.ListChurches(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": churches})
}

// ListCells lists a church's cells.
// GET /api/v1/churches/:id/cells
func (h *UnitHandler) ListCells(c *gin.Context) {
	churchID := c.Param("id")
	if churchID == "" {
		response.BadRequest(c, 15001, "church id is required")
		return
	}

	cells, err := h.unitSvc.ListCells(c.Request.Context(), churchID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": cells})
}

// ApproveChurch flips a church's public approval (admin only).
// PUT /api/v1/churches/:id/approval
func (h *UnitHandler) ApproveChurch(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "church id is required")
		return
	}

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "invalid approval payload")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.unitSvc.ApproveChurch(c.Request.Context(), id, *req.Approved, caller); err != nil {
		h.handleUnitError(c, err)
		return
	}

	response.OK(c, nil)
}

// ApproveCell flips a cell's public approval (admin only).
// PUT /api/v1/cells/:id/approval
func (h *UnitHandler) ApproveCell(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "cell id is required")
		return
	}

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "invalid approval payload")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.unitSvc.ApproveCell(c.Request.Context(), id, *req.Approved, caller); err != nil {
		h.handleUnitError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *UnitHandler) handleUnitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnitNotFound):
		response.NotFound(c, 15101, "unit not found")
	case errors.Is(err, service.ErrAdminOnly):
		response.Forbidden(c, 15102, "admin access required")
	default:
		response.InternalError(c)
	}
}
