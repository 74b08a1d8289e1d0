package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"siscof/backend/internal/dto"
	"siscof/backend/internal/model"
	"siscof/backend/internal/repository"
	pkgerrors "siscof/backend/pkg/errors"
)

var (
	ErrAssignmentNotFound    = errors.New("assignment not found")
	ErrRoleNotFound          = errors.New("role not found")
	ErrRoleSlotTaken         = errors.New("role already has an assignment on this schedule")
	ErrScheduleNotClosed     = errors.New("attendance can only be recorded on a closed schedule")
	ErrClosingFiguresInvalid = errors.New("offering amount, tithe amount and verifier name are required to close")
)

// RosterService owns one schedule's role assignments: the open→closed
// state machine, capability gating and the financial close.
type RosterService interface {
	ListAssignments(ctx context.Context, scheduleID string, caller Caller) ([]dto.AssignmentResponse, error)
	AddAssignment(ctx context.Context, scheduleID string, req *dto.AddAssignmentRequest, caller Caller) (*dto.AssignmentResponse, error)
	UpdateAssignment(ctx context.Context, id string, req *dto.UpdateAssignmentRequest, caller Caller) (*dto.AssignmentResponse, error)
	UpdateAttendance(ctx context.Context, id string, req *dto.UpdateAttendanceRequest, caller Caller) (*dto.AssignmentResponse, error)
	RemoveAssignment(ctx context.Context, id string, caller Caller) error
	CloseSchedule(ctx context.Context, scheduleID string, req *dto.CloseScheduleRequest, caller Caller) (*dto.ScheduleResponse, error)
}

type rosterService struct {
	repo   *repository.Repository
	perms  PermissionService
	logger *zap.Logger
}

func NewRosterService(repo *repository.Repository, perms PermissionService, logger *zap.Logger) RosterService {
	return &rosterService{repo: repo, perms: perms, logger: logger}
}

// ListAssignments returns the roster in presentation order. An unknown
// schedule id yields an empty roster rather than an error, so list views
// stay resilient to stale ids.
func (s *rosterService) ListAssignments(ctx context.Context, scheduleID string, caller Caller) ([]dto.AssignmentResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []dto.AssignmentResponse{}, nil
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

	assignments, err := s.repo.Assignment.ListBySchedule(ctx, scheduleID)
	if err != nil {
		s.logger.Error("listing assignments failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, toAssignmentResponse(&assignments[i]))
	}
	return out, nil
}

func (s *rosterService) AddAssignment(ctx context.Context, scheduleID string, req *dto.AddAssignmentRequest, caller Caller) (*dto.AssignmentResponse, error) {
	schedule, err := s.loadSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if !schedule.IsOpen() {
		return nil, ErrScheduleClosed
	}

	role, err := s.repo.Role.GetByID(ctx, req.RoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		s.logger.Error("loading role failed", zap.Error(err))
		return nil, err
	}

	if err := s.requireRosterEdit(ctx, caller, schedule, role); err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		ScheduleID: scheduleID,
		RoleID:     role.RoleID,
	}
	assignment.CreatedBy = &caller.UserID
	assignment.UpdatedBy = &caller.UserID

	if role.IsMultiple {
		err = s.repo.Assignment.Create(ctx, assignment)
	} else {
		err = s.repo.Assignment.CreateExclusive(ctx, assignment)
		if errors.Is(err, pkgerrors.ErrDuplicateSlot) {
			return nil, ErrRoleSlotTaken
		}
	}
	if err != nil {
		s.logger.Error("creating assignment failed", zap.Error(err))
		return nil, err
	}
	assignment.Role = role

	s.logger.Info("assignment added",
		zap.String("schedule_id", scheduleID),
		zap.String("role", role.Name))

	resp := toAssignmentResponse(assignment)
	return &resp, nil
}

// UpdateAssignment edits the core fields of a slot while the schedule is
// open. Member and custom name may be set together (the custom name is a
// display override); clearing both returns the slot to unfilled.
func (s *rosterService) UpdateAssignment(ctx context.Context, id string, req *dto.UpdateAssignmentRequest, caller Caller) (*dto.AssignmentResponse, error) {
	assignment, schedule, err := s.loadAssignmentWithSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	if !schedule.IsOpen() {
		return nil, ErrScheduleClosed
	}
	if err := s.requireRosterEdit(ctx, caller, schedule, assignment.Role); err != nil {
		return nil, err
	}

	if req.MemberID != nil {
		member, err := s.repo.Member.GetByID(ctx, *req.MemberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMemberNotFound
			}
			s.logger.Error("loading member failed", zap.Error(err))
			return nil, err
		}
		assignment.MemberID = &member.MemberID
	} else if req.ClearMember {
		assignment.MemberID = nil
	}

	if req.CustomName != nil {
		assignment.CustomName = req.CustomName
	} else if req.ClearCustom {
		assignment.CustomName = nil
	}

	if req.TitleLabel != nil {
		assignment.TitleLabel = req.TitleLabel
	}

	if req.Link != nil {
		assignment.Link = req.Link
	} else if req.ClearLink {
		assignment.Link = nil
	}

	assignment.UpdatedBy = &caller.UserID
	if err := s.repo.Assignment.Update(ctx, assignment); err != nil {
		if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
			s.logger.Error("updating assignment failed", zap.Error(err))
		}
		return nil, err
	}

	return s.reload(ctx, id)
}

// UpdateAttendance records whether the holder showed up. This is the only
// write a closed schedule accepts.
func (s *rosterService) UpdateAttendance(ctx context.Context, id string, req *dto.UpdateAttendanceRequest, caller Caller) (*dto.AssignmentResponse, error) {
	assignment, schedule, err := s.loadAssignmentWithSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	if schedule.IsOpen() {
		return nil, ErrScheduleNotClosed
	}

	caps, err := s.perms.Resolve(ctx, caller, schedule.Unit())
	if err != nil {
		return nil, err
	}
	if !caps.CanEditScale {
		return nil, ErrPermissionDenied
	}

	assignment.Attended = req.Attended
	// an absence reason only accompanies an absence
	if req.Attended != nil && *req.Attended {
		assignment.AbsenceReason = nil
	} else {
		assignment.AbsenceReason = req.AbsenceReason
	}
	assignment.UpdatedBy = &caller.UserID

	if err := s.repo.Assignment.UpdateAttendance(ctx, assignment); err != nil {
		if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
			s.logger.Error("updating attendance failed", zap.Error(err))
		}
		return nil, err
	}

	return s.reload(ctx, id)
}

// RemoveAssignment deletes a slot. Closed schedules keep their roster as a
// historical record, so removal is open-only.
func (s *rosterService) RemoveAssignment(ctx context.Context, id string, caller Caller) error {
	assignment, schedule, err := s.loadAssignmentWithSchedule(ctx, id)
	if err != nil {
		return err
	}
	if !schedule.IsOpen() {
		return ErrScheduleClosed
	}
	if err := s.requireRosterEdit(ctx, caller, schedule, assignment.Role); err != nil {
		return err
	}

	if err := s.repo.Assignment.Delete(ctx, id, &caller.UserID); err != nil {
		s.logger.Error("deleting assignment failed", zap.Error(err))
		return err
	}

	s.logger.Info("assignment removed", zap.String("assignment_id", id))
	return nil
}

// CloseSchedule is the single state transition: open → closed, together
// with the closing figures, in one version-guarded write. There is no
// reopen.
func (s *rosterService) CloseSchedule(ctx context.Context, scheduleID string, req *dto.CloseScheduleRequest, caller Caller) (*dto.ScheduleResponse, error) {
	schedule, err := s.loadSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if !schedule.IsOpen() {
		return nil, ErrScheduleClosed
	}

	caps, err := s.perms.Resolve(ctx, caller, schedule.Unit())
	if err != nil {
		return nil, err
	}
	if !caps.CanEditFinancial {
		return nil, ErrPermissionDenied
	}

	if req.OfferingAmount == nil || *req.OfferingAmount < 0 ||
		req.TitheAmount == nil || *req.TitheAmount < 0 ||
		strings.TrimSpace(req.VerifierName) == "" {
		return nil, ErrClosingFiguresInvalid
	}

	now := time.Now()
	verifier := strings.TrimSpace(req.VerifierName)
	schedule.OfferingAmount = req.OfferingAmount
	schedule.TitheAmount = req.TitheAmount
	schedule.VerifierName = &verifier
	schedule.ClosedBy = &caller.UserID
	schedule.ClosedAt = &now
	schedule.UpdatedBy = &caller.UserID

	if err := s.repo.Schedule.Close(ctx, schedule); err != nil {
		if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
			s.logger.Error("closing schedule failed", zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("schedule closed",
		zap.String("schedule_id", scheduleID),
		zap.String("closed_by", caller.UserID))

	return toScheduleResponse(schedule, caps.CanViewFinancial), nil
}

// ── helpers ──

func (s *rosterService) loadSchedule(ctx context.Context, id string) (*model.Schedule, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("loading schedule failed", zap.Error(err))
		return nil, err
	}
	return schedule, nil
}

func (s *rosterService) loadAssignmentWithSchedule(ctx context.Context, id string) (*model.Assignment, *model.Schedule, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAssignmentNotFound
		}
		s.logger.Error("loading assignment failed", zap.Error(err))
		return nil, nil, err
	}

	schedule, err := s.loadSchedule(ctx, assignment.ScheduleID)
	if err != nil {
		return nil, nil, err
	}
	return assignment, schedule, nil
}

// requireRosterEdit enforces the write gate for roster mutations:
// can_edit_scale covers every role; the narrower capabilities cover their
// own slice of the catalog — can_edit_worship the link-carrying worship
// roles, can_edit_departments the multi-slot department roles without a
// link (recepção, intercessão, músicos).
func (s *rosterService) requireRosterEdit(ctx context.Context, caller Caller, schedule *model.Schedule, role *model.Role) error {
	caps, err := s.perms.Resolve(ctx, caller, schedule.Unit())
	if err != nil {
		return err
	}
	if caps.CanEditScale {
		return nil
	}
	if role != nil && role.RequiresLink && caps.CanEditWorship {
		return nil
	}
	if role != nil && role.IsMultiple && !role.RequiresLink && caps.CanEditDepartments {
		return nil
	}
	return ErrPermissionDenied
}

func (s *rosterService) reload(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("reloading assignment failed", zap.Error(err))
		return nil, err
	}
	resp := toAssignmentResponse(assignment)
	return &resp, nil
}

func toAssignmentResponse(a *model.Assignment) dto.AssignmentResponse {
	resp := dto.AssignmentResponse{
		ID:            a.AssignmentID,
		ScheduleID:    a.ScheduleID,
		CustomName:    a.CustomName,
		TitleLabel:    a.TitleLabel,
		Link:          a.Link,
		Attended:      a.Attended,
		AbsenceReason: a.AbsenceReason,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.Format(time.RFC3339),
	}
	if a.Role != nil {
		resp.Role = &dto.RoleResponse{
			ID:           a.Role.RoleID,
			Name:         a.Role.Name,
			Rank:         a.Role.Rank,
			IsMultiple:   a.Role.IsMultiple,
			RequiresLink: a.Role.RequiresLink,
		}
	}
	if a.Member != nil {
		resp.Member = &dto.MemberResponse{ID: a.Member.MemberID, Name: a.Member.Name}
	}
	return resp
}
