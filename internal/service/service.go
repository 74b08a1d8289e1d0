package service

import (
	"go.uber.org/zap"

	"siscof/backend/config"
	"siscof/backend/internal/dto"
	"siscof/backend/internal/model"
	"siscof/backend/internal/repository"
	"siscof/backend/pkg/jwt"
	"siscof/backend/pkg/redis"
)

// Caller identifies the authenticated user a service operation runs for.
type Caller struct {
	UserID  string
	IsAdmin bool
}

// Service aggregates every service interface.
type Service struct {
	Auth       AuthService
	Permission PermissionService
	Catalog    CatalogService
	Unit       UnitService
	Member     MemberService
	Schedule   ScheduleService
	Roster     RosterService
	Public     PublicService
	Export     ExportService
}

// NewService wires the full service layer.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	perms := NewPermissionService(repo, logger)
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Permission: perms,
		Catalog:    NewCatalogService(repo, logger),
		Unit:       NewUnitService(repo, logger),
		Member:     NewMemberService(repo, perms, logger),
		Schedule:   NewScheduleService(repo, perms, logger),
		Roster:     NewRosterService(repo, perms, logger),
		Public:     NewPublicService(repo, logger),
		Export:     NewExportService(repo, perms, logger),
	}
}

// unitRefFromQuery converts the query form of a unit selector into a
// validated reference.
func unitRefFromQuery(q dto.UnitQuery) (model.UnitRef, error) {
	ref := model.UnitRef{ChurchID: q.ChurchID, CellID: q.CellID}
	if err := ref.Validate(); err != nil {
		return model.UnitRef{}, ErrUnitInvalid
	}
	return ref, nil
}
