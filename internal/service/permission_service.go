package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"siscof/backend/internal/dto"
	"siscof/backend/internal/model"
	"siscof/backend/internal/repository"
)

// CapabilitySet is the resolved set of unit-scoped capabilities for one
// caller. The zero value denies everything, so an unresolved or failed
// lookup can never grant a write.
type CapabilitySet struct {
	CanViewScale       bool
	CanEditScale       bool
	CanEditWorship     bool
	CanEditDepartments bool
	CanViewFinancial   bool
	CanEditFinancial   bool
}

// allCapabilities is what admins and pastors get.
var allCapabilities = CapabilitySet{
	CanViewScale:       true,
	CanEditScale:       true,
	CanEditWorship:     true,
	CanEditDepartments: true,
	CanViewFinancial:   true,
	CanEditFinancial:   true,
}

// PermissionService resolves the capability set for a (caller, unit) pair.
type PermissionService interface {
	Resolve(ctx context.Context, caller Caller, unit model.UnitRef) (CapabilitySet, error)
	GetCapabilities(ctx context.Context, caller Caller, req *dto.UnitQuery) (*dto.CapabilityResponse, error)
}

type permissionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewPermissionService(repo *repository.Repository, logger *zap.Logger) PermissionService {
	return &permissionService{repo: repo, logger: logger}
}

// Resolve derives the capability set from the caller's membership row in
// the unit. A caller without a membership row gets the zero set.
func (s *permissionService) Resolve(ctx context.Context, caller Caller, unit model.UnitRef) (CapabilitySet, error) {
	if caller.IsAdmin {
		return allCapabilities, nil
	}

	membership, err := s.repo.UnitRole.GetByUserAndUnit(ctx, caller.UserID, unit)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CapabilitySet{}, nil
		}
		s.logger.Error("resolving unit membership failed", zap.Error(err))
		return CapabilitySet{}, err
	}

	return capabilitiesForRole(membership.Role), nil
}

func (s *permissionService) GetCapabilities(ctx context.Context, caller Caller, req *dto.UnitQuery) (*dto.CapabilityResponse, error) {
	unit, err := unitRefFromQuery(*req)
	if err != nil {
		return nil, err
	}

	caps, err := s.Resolve(ctx, caller, unit)
	if err != nil {
		return nil, err
	}

	return &dto.CapabilityResponse{
		CanViewScale:       caps.CanViewScale,
		CanEditScale:       caps.CanEditScale,
		CanEditWorship:     caps.CanEditWorship,
		CanEditDepartments: caps.CanEditDepartments,
		CanViewFinancial:   caps.CanViewFinancial,
		CanEditFinancial:   caps.CanEditFinancial,
	}, nil
}

// capabilitiesForRole maps a unit membership role to its capability set.
func capabilitiesForRole(role string) CapabilitySet {
	switch role {
	case model.UnitRolePastor:
		return allCapabilities
	case model.UnitRoleLeader:
		return CapabilitySet{
			CanViewScale:       true,
			CanEditScale:       true,
			CanEditWorship:     true,
			CanEditDepartments: true,
		}
	case model.UnitRoleSecretary:
		return CapabilitySet{
			CanViewScale:     true,
			CanEditScale:     true,
			CanViewFinancial: true,
		}
	case model.UnitRoleTreasurer:
		return CapabilitySet{
			CanViewScale:     true,
			CanViewFinancial: true,
			CanEditFinancial: true,
		}
	case model.UnitRoleMember:
		return CapabilitySet{CanViewScale: true}
	default:
		return CapabilitySet{}
	}
}
