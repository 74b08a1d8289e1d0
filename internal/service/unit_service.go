package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"siscof/backend/internal/dto"
	"siscof/backend/internal/repository"
)

// ErrAdminOnly guards the operations reserved for platform admins.
var ErrAdminOnly = errors.New("operation requires an admin account")

// UnitService lists churches and cells for the authenticated side and
// lets admins flip the public-approval flag.
type UnitService interface {
	ListChurches(ctx context.Context) ([]dto.ChurchResponse, error)
	ListCells(ctx context.Context, churchID string) ([]dto.CellResponse, error)
	ApproveChurch(ctx context.Context, id string, approved bool, caller Caller) error
	ApproveCell(ctx context.Context, id string, approved bool, caller Caller) error
}

type unitService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewUnitService(repo *repository.Repository, logger *zap.Logger) UnitService {
	return &unitService{repo: repo, logger: logger}
}

func (s *unitService) ListChurches(ctx context.Context) ([]dto.ChurchResponse, error) {
	churches, err := s.repo.Church.List(ctx, false)
	if err != nil {
		s.logger.Error("listing churches failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.ChurchResponse, 0, len(churches))
	for _, c := range churches {
		out = append(out, dto.ChurchResponse{
			ID:         c.ChurchID,
			Name:       c.Name,
			City:       c.City,
			IsApproved: c.IsApproved,
		})
	}
	return out, nil
}

func (s *unitService) ListCells(ctx context.Context, churchID string) ([]dto.CellResponse, error) {
	cells, err := s.repo.Cell.ListByChurch(ctx, churchID, false)
	if err != nil {
		s.logger.Error("listing cells failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.CellResponse, 0, len(cells))
	for _, c := range cells {
		out = append(out, dto.CellResponse{
			ID:         c.CellID,
			Name:       c.Name,
			IsApproved: c.IsApproved,
		})
	}
	return out, nil
}

func (s *unitService) ApproveChurch(ctx context.Context, id string, approved bool, caller Caller) error {
	if !caller.IsAdmin {
		return ErrAdminOnly
	}

	church, err := s.repo.Church.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnitNotFound
		}
		s.logger.Error("loading church failed", zap.Error(err))
		return err
	}

	church.IsApproved = approved
	church.UpdatedBy = &caller.UserID
	if err := s.repo.Church.Update(ctx, church); err != nil {
		s.logger.Error("updating church failed", zap.Error(err))
		return err
	}

	s.logger.Info("church approval changed",
		zap.String("church_id", id), zap.Bool("approved", approved))
	return nil
}

func (s *unitService) ApproveCell(ctx context.Context, id string, approved bool, caller Caller) error {
	if !caller.IsAdmin {
		return ErrAdminOnly
	}

	cell, err := s.repo.Cell.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnitNotFound
		}
		s.logger.Error("loading cell failed", zap.Error(err))
		return err
	}

	cell.IsApproved = approved
	cell.UpdatedBy = &caller.UserID
	if err := s.repo.Cell.Update(ctx, cell); err != nil {
		s.logger.Error("updating cell failed", zap.Error(err))
		return err
	}

	s.logger.Info("cell approval changed",
		zap.String("cell_id", id), zap.Bool("approved", approved))
	return nil
}
