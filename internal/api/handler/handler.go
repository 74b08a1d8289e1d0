package handler

import "siscof/backend/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth       *AuthHandler
	Permission *PermissionHandler
	Catalog    *CatalogHandler
	Unit       *UnitHandler
	Member     *MemberHandler
	Schedule   *ScheduleHandler
	Roster     *RosterHandler
	Public     *PublicHandler
	Export     *ExportHandler
}

// NewHandler wires every handler against the service layer.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Permission: NewPermissionHandler(svc.Permission),
		Catalog:    NewCatalogHandler(svc.Catalog),
		Unit:       NewUnitHandler(svc.Unit),
		Member:     NewMemberHandler(svc.Member),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Roster:     NewRosterHandler(svc.Roster),
		Public:     NewPublicHandler(svc.Public, svc.Export),
		Export:     NewExportHandler(svc.Export),
	}
}
