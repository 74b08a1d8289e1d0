package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"siscof/backend/internal/dto"
	"siscof/backend/internal/model"
	"siscof/backend/internal/repository"
)

// PublicService is the read-only projection for anonymous visitors. It is
// limited to approved units and never exposes financial figures; the
// roster ordering matches the administrative view exactly.
type PublicService interface {
	ListPublicUnits(ctx context.Context) ([]dto.PublicUnitResponse, error)
	ListPublicSchedules(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleSummaryResponse, error)
	ListPublicAssignments(ctx context.Context, scheduleID string) ([]dto.AssignmentResponse, error)
}

type publicService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewPublicService(repo *repository.Repository, logger *zap.Logger) PublicService {
	return &publicService{repo: repo, logger: logger}
}

func (s *publicService) ListPublicUnits(ctx context.Context) ([]dto.PublicUnitResponse, error) {
	churches, err := s.repo.Church.List(ctx, true)
	if err != nil {
		s.logger.Error("listing approved churches failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.PublicUnitResponse, 0, len(churches))
	for i := range churches {
		church := &churches[i]
		cells, err := s.repo.Cell.ListByChurch(ctx, church.ChurchID, true)
		if err != nil {
			s.logger.Error("listing approved cells failed", zap.Error(err))
			return nil, err
		}

		unit := dto.PublicUnitResponse{
			Church: dto.ChurchResponse{
				ID:         church.ChurchID,
				Name:       church.Name,
				City:       church.City,
				IsApproved: church.IsApproved,
			},
			Cells: make([]dto.CellResponse, 0, len(cells)),
		}
		for j := range cells {
			unit.Cells = append(unit.Cells, dto.CellResponse{
				ID:         cells[j].CellID,
				Name:       cells[j].Name,
				IsApproved: cells[j].IsApproved,
			})
		}
		out = append(out, unit)
	}
	return out, nil
}

func (s *publicService) ListPublicSchedules(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleSummaryResponse, error) {
	unit, err := unitRefFromQuery(req.UnitQuery)
	if err != nil {
		return nil, err
	}
	if err := s.requireApproved(ctx, unit); err != nil {
		return nil, err
	}

	from, to, limit := periodWindow(time.Now(), req.Period)
	schedules, err := s.repo.Schedule.ListByUnitAndRange(ctx, unit, from, to, limit)
	if err != nil {
		s.logger.Error("listing public schedules failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.ScheduleSummaryResponse, 0, len(schedules))
	for i := range schedules {
		out = append(out, toScheduleSummary(&schedules[i]))
	}
	return out, nil
}

func (s *publicService) ListPublicAssignments(ctx context.Context, scheduleID string) ([]dto.AssignmentResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []dto.AssignmentResponse{}, nil
		}
		s.logger.Error("loading schedule failed", zap.Error(err))
		return nil, err
	}
	if err := s.requireApproved(ctx, schedule.Unit()); err != nil {
		return nil, err
	}

	assignments, err := s.repo.Assignment.ListBySchedule(ctx, scheduleID)
	if err != nil {
		s.logger.Error("listing public assignments failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, toAssignmentResponse(&assignments[i]))
	}
	return out, nil
}

// requireApproved hides unapproved units behind NotFound so their
// existence is not observable from the public surface.
func (s *publicService) requireApproved(ctx context.Context, unit model.UnitRef) error {
	if unit.IsChurch() {
		church, err := s.repo.Church.GetByID(ctx, *unit.ChurchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnitNotFound
			}
			s.logger.Error("loading church failed", zap.Error(err))
			return err
		}
		if !church.IsApproved {
			return ErrUnitNotFound
		}
		return nil
	}

	cell, err := s.repo.Cell.GetByID(ctx, *unit.CellID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnitNotFound
		}
		s.logger.Error("loading cell failed", zap.Error(err))
		return err
	}
	if !cell.IsApproved {
		return ErrUnitNotFound
	}
	return nil
}
