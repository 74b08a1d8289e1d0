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

var (
	ErrUnitInvalid         = errors.New("exactly one of church_id or cell_id must be provided")
	ErrUnitNotFound        = errors.New("unit not found")
	ErrScheduleNotFound    = errors.New("schedule not found")
	ErrServiceTypeNotFound = errors.New("service type not found")
	ErrScheduleClosed      = errors.New("schedule is closed")
	ErrServiceDateInvalid  = errors.New("service_date must be formatted YYYY-MM-DD")
	ErrPermissionDenied    = errors.New("permission denied for this unit")
)

// upcomingPageSize caps the open-ended "upcoming" listing.
const upcomingPageSize = 20

const dateFormat = "2006-01-02"

// ScheduleService is the schedule directory: period-filtered listing plus
// header lifecycle. Roster and closing live in RosterService.
type ScheduleService interface {
	ListSchedules(ctx context.Context, req *dto.ScheduleListRequest, caller Caller) ([]dto.ScheduleSummaryResponse, error)
	GetSchedule(ctx context.Context, id string, caller Caller) (*dto.ScheduleResponse, error)
	CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest, caller Caller) (*dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, id string, caller Caller) error
}

type scheduleService struct {
	repo   *repository.Repository
	perms  PermissionService
	logger *zap.Logger
}

func NewScheduleService(repo *repository.Repository, perms PermissionService, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, perms: perms, logger: logger}
}

func (s *scheduleService) ListSchedules(ctx context.Context, req *dto.ScheduleListRequest, caller Caller) ([]dto.ScheduleSummaryResponse, error) {
	unit, err := unitRefFromQuery(req.UnitQuery)
	if err != nil {
		return nil, err
	}

	caps, err := s.perms.Resolve(ctx, caller, unit)
	if err != nil {
		return nil, err
	}
	if !caps.CanViewScale {
		return nil, ErrPermissionDenied
	}

	from, to, limit := periodWindow(time.Now(), req.Period)
	schedules, err := s.repo.Schedule.ListByUnitAndRange(ctx, unit, from, to, limit)
	if err != nil {
		s.logger.Error("listing schedules failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.ScheduleSummaryResponse, 0, len(schedules))
	for i := range schedules {
		out = append(out, toScheduleSummary(&schedules[i]))
	}
	return out, nil
}

func (s *scheduleService) GetSchedule(ctx context.Context, id string, caller Caller) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("loading schedule failed", zap.Error(err))
		return nil, err
	}

	caps, err := s.perms.Resolve(ctx, caller, schedule.Unit())
	if err != nil {
		return nil, err
	}
	if !caps.CanViewScale {
		return nil, ErrPermissionDenied
	}

	return toScheduleResponse(schedule, caps.CanViewFinancial), nil
}

func (s *scheduleService) CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest, caller Caller) (*dto.ScheduleResponse, error) {
	unit, err := unitRefFromQuery(req.UnitQuery)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnitExists(ctx, unit); err != nil {
		return nil, err
	}

	caps, err := s.perms.Resolve(ctx, caller, unit)
	if err != nil {
		return nil, err
	}
	if !caps.CanEditScale {
		return nil, ErrPermissionDenied
	}

	serviceDate, err := time.Parse(dateFormat, req.ServiceDate)
	if err != nil {
		return nil, ErrServiceDateInvalid
	}

	var serviceType *model.ServiceType
	if req.ServiceTypeID != nil {
		serviceType, err = s.repo.ServiceType.GetByID(ctx, *req.ServiceTypeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrServiceTypeNotFound
			}
			s.logger.Error("loading service type failed", zap.Error(err))
			return nil, err
		}
	}

	schedule := &model.Schedule{
		ChurchID:      unit.ChurchID,
		CellID:        unit.CellID,
		ServiceTypeID: req.ServiceTypeID,
		ServiceDate:   serviceDate,
		StartTime:     req.StartTime,
		Status:        model.ScheduleStatusOpen,
	}
	schedule.CreatedBy = &caller.UserID
	schedule.UpdatedBy = &caller.UserID

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.logger.Error("creating schedule failed", zap.Error(err))
		return nil, err
	}
	schedule.ServiceType = serviceType

	s.logger.Info("schedule created",
		zap.String("schedule_id", schedule.ScheduleID),
		zap.String("service_date", req.ServiceDate))

	return toScheduleResponse(schedule, caps.CanViewFinancial), nil
}

// DeleteSchedule removes an open schedule together with its assignments.
// Closed schedules are a financial record and cannot be deleted.
func (s *scheduleService) DeleteSchedule(ctx context.Context, id string, caller Caller) error {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("loading schedule failed", zap.Error(err))
		return err
	}
	if !schedule.IsOpen() {
		return ErrScheduleClosed
	}

	caps, err := s.perms.Resolve(ctx, caller, schedule.Unit())
	if err != nil {
		return err
	}
	if !caps.CanEditScale {
		return ErrPermissionDenied
	}

	if err := s.repo.Schedule.Delete(ctx, id, &caller.UserID); err != nil {
		s.logger.Error("deleting schedule failed", zap.Error(err))
		return err
	}

	s.logger.Info("schedule deleted", zap.String("schedule_id", id))
	return nil
}

func (s *scheduleService) checkUnitExists(ctx context.Context, unit model.UnitRef) error {
	var err error
	if unit.IsChurch() {
		_, err = s.repo.Church.GetByID(ctx, *unit.ChurchID)
	} else {
		_, err = s.repo.Cell.GetByID(ctx, *unit.CellID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnitNotFound
		}
		s.logger.Error("loading unit failed", zap.Error(err))
		return err
	}
	return nil
}

// periodWindow computes the [from, to) service-date window for a period
// filter. Weeks start on Sunday, months are calendar months; a nil to is
// unbounded and only the open-ended "upcoming" listing carries a cap.
func periodWindow(now time.Time, period string) (from time.Time, to *time.Time, limit int) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case dto.PeriodThisWeek:
		start := today.AddDate(0, 0, -int(today.Weekday()))
		end := start.AddDate(0, 0, 7)
		return start, &end, 0
	case dto.PeriodThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0)
		return start, &end, 0
	case dto.PeriodNextMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
		end := start.AddDate(0, 1, 0)
		return start, &end, 0
	default: // upcoming
		return today, nil, upcomingPageSize
	}
}

// ── mappers ──

func toServiceTypeResponse(st *model.ServiceType) *dto.ServiceTypeResponse {
	if st == nil {
		return nil
	}
	return &dto.ServiceTypeResponse{ID: st.ServiceTypeID, Name: st.Name}
}

func toScheduleSummary(s *model.Schedule) dto.ScheduleSummaryResponse {
	return dto.ScheduleSummaryResponse{
		ID:          s.ScheduleID,
		ServiceType: toServiceTypeResponse(s.ServiceType),
		ServiceDate: s.ServiceDate.Format(dateFormat),
		StartTime:   s.StartTime,
		Status:      s.Status,
	}
}

func toScheduleResponse(s *model.Schedule, withFinancials bool) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ID:          s.ScheduleID,
		ChurchID:    s.ChurchID,
		CellID:      s.CellID,
		ServiceType: toServiceTypeResponse(s.ServiceType),
		ServiceDate: s.ServiceDate.Format(dateFormat),
		StartTime:   s.StartTime,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
	if withFinancials {
		resp.OfferingAmount = s.OfferingAmount
		resp.TitheAmount = s.TitheAmount
		resp.VerifierName = s.VerifierName
	}
	if s.ClosedAt != nil {
		closedAt := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &closedAt
	}
	return resp
}
