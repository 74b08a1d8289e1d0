package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"siscof/backend/internal/dto"
	"siscof/backend/internal/service"
	"siscof/backend/pkg/response"
)

// MemberHandler serves the member directory.
type MemberHandler struct {
	memberSvc service.MemberService
}

func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

// ListMembers lists one unit's members, optionally filtered by name.
// GET /api/v1/members?church_id=|cell_id=&search=&page=&page_size=
func (h *MemberHandler) ListMembers(c *gin.Context) {
	var req dto.MemberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 15001, "invalid member query")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	members, total, err := h.memberSvc.ListMembers(c.Request.Context(), &req, caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnitInvalid):
			response.BadRequest(c, 15103, "exactly one of church_id or cell_id must be provided")
		case errors.Is(err, service.ErrPermissionDenied):
			response.Forbidden(c, 15104, "permission denied for this unit")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OKPage(c, members, total, req.GetPage(), req.GetPageSize())
}

// GetMember returns one member by id.
// GET /api/v1/members/:id
func (h *MemberHandler) GetMember(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	member, err := h.memberSvc.GetMember(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			response.NotFound(c, 15105, "member not found")
		case errors.Is(err, service.ErrPermissionDenied):
			response.Forbidden(c, 15104, "permission denied for this unit")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, member)
}
