package handler

import (
	"github.com/gin-gonic/gin"

	"siscof/backend/internal/service"
	"siscof/backend/pkg/response"
)

// CatalogHandler serves the fixed reference catalogs.
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ListRoles returns the role catalog in rank order.
// GET /api/v1/roles
func (h *CatalogHandler) ListRoles(c *gin.Context) {
	roles, err := h.catalogSvc.ListRoles(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": roles})
}

// ListServiceTypes returns the service-type catalog.
// GET /api/v1/service-types
func (h *CatalogHandler) ListServiceTypes(c *gin.Context) {
	types, err := h.catalogSvc.ListServiceTypes(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": types})
}
