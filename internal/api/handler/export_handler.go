package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"siscof/backend/internal/service"
	"siscof/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves file downloads of a roster.
type ExportHandler struct {
	exportSvc service.ExportService
}

func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSchedule downloads one schedule's roster as .xlsx.
// GET /api/v1/schedules/:id/export
func (h *ExportHandler) ExportSchedule(c *gin.Context) {
	scheduleID := c.Param("id")
	if scheduleID == "" {
		response.BadRequest(c, 17001, "schedule id is required")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportScheduleXLSX(c.Request.Context(), scheduleID, caller)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 17101, "schedule not found")
	case errors.Is(err, service.ErrExportNoAssignments):
		response.BadRequest(c, 17102, "schedule has no assignments to export")
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, 17103, "permission denied for this unit")
	default:
		response.InternalError(c)
	}
}
