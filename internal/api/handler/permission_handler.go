package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"siscof/backend/internal/dto"
	"siscof/backend/internal/service"
	"siscof/backend/pkg/response"
)

// PermissionHandler exposes the resolved capability set for a unit.
type PermissionHandler struct {
	permSvc service.PermissionService
}

func NewPermissionHandler(permSvc service.PermissionService) *PermissionHandler {
	return &PermissionHandler{permSvc: permSvc}
}

// GetCapabilities resolves the caller's capabilities for one unit.
// GET /api/v1/permissions?church_id=|cell_id=
func (h *PermissionHandler) GetCapabilities(c *gin.Context) {
	var req dto.UnitQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 12001, "invalid unit query")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	caps, err := h.permSvc.GetCapabilities(c.Request.Context(), caller, &req)
	if err != nil {
		if errors.Is(err, service.ErrUnitInvalid) {
			response.BadRequest(c, 12002, "exactly one of church_id or cell_id must be provided")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, caps)
}
