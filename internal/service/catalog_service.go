package service

import (
	"context"

	"go.uber.org/zap"

	"siscof/backend/internal/dto"
	"siscof/backend/internal/repository"
)

// CatalogService serves the fixed reference catalogs: liturgical roles in
// rank order and service types.
type CatalogService interface {
	ListRoles(ctx context.Context) ([]dto.RoleResponse, error)
	ListServiceTypes(ctx context.Context) ([]dto.ServiceTypeResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

func (s *catalogService) ListRoles(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := s.repo.Role.List(ctx)
	if err != nil {
		s.logger.Error("listing roles failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleResponse{
			ID:           r.RoleID,
			Name:         r.Name,
			Rank:         r.Rank,
			IsMultiple:   r.IsMultiple,
			RequiresLink: r.RequiresLink,
		})
	}
	return out, nil
}

func (s *catalogService) ListServiceTypes(ctx context.Context) ([]dto.ServiceTypeResponse, error) {
	types, err := s.repo.ServiceType.List(ctx)
	if err != nil {
		s.logger.Error("listing service types failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.ServiceTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, dto.ServiceTypeResponse{ID: t.ServiceTypeID, Name: t.Name})
	}
	return out, nil
}
