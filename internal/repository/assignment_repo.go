package repository

import (
	"context"

	"gorm.io/gorm"

	"siscof/backend/internal/model"
	pkgerrors "siscof/backend/pkg/errors"
)

// AssignmentRepository is the data-access interface for roster slots.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	// CreateExclusive inserts the slot only if the schedule has no other
	// row for the same role. Returns pkgerrors.ErrDuplicateSlot otherwise.
	CreateExclusive(ctx context.Context, assignment *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	ListBySchedule(ctx context.Context, scheduleID string) ([]model.Assignment, error)
	CountByScheduleAndRole(ctx context.Context, scheduleID, roleID string) (int64, error)
	Update(ctx context.Context, assignment *model.Assignment) error
	UpdateAttendance(ctx context.Context, assignment *model.Assignment) error
	Delete(ctx context.Context, id string, deletedBy *string) error
}

type assignmentRepo struct {
	db *gorm.DB
}

func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) CreateExclusive(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.Assignment{}).
			Where("schedule_id = ? AND role_id = ?", assignment.ScheduleID, assignment.RoleID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return pkgerrors.ErrDuplicateSlot
		}
		return tx.Create(assignment).Error
	})
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Member").
		Where("assignment_id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListBySchedule returns the roster in presentation order: role rank first,
// then insertion order inside each role. The public view relies on the same
// ordering, so it lives here rather than in each caller.
func (r *assignmentRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Member").
		Joins("JOIN roles ON roles.role_id = assignments.role_id").
		Where("assignments.schedule_id = ?", scheduleID).
		Order("roles.rank ASC, assignments.created_at ASC, assignments.assignment_id ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) CountByScheduleAndRole(ctx context.Context, scheduleID, roleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("schedule_id = ? AND role_id = ?", scheduleID, roleID).
		Count(&count).Error
	return count, err
}

func (r *assignmentRepo) Update(ctx context.Context, assignment *model.Assignment) error {
	oldVersion := assignment.Version
	result := r.db.WithContext(ctx).
		Model(assignment).
		Where("assignment_id = ? AND version = ?", assignment.AssignmentID, oldVersion).
		Updates(map[string]interface{}{
			"member_id":   assignment.MemberID,
			"custom_name": assignment.CustomName,
			"title_label": assignment.TitleLabel,
			"link":        assignment.Link,
			"updated_by":  assignment.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	assignment.Version = oldVersion + 1
	return nil
}

func (r *assignmentRepo) UpdateAttendance(ctx context.Context, assignment *model.Assignment) error {
	oldVersion := assignment.Version
	result := r.db.WithContext(ctx).
		Model(assignment).
		Where("assignment_id = ? AND version = ?", assignment.AssignmentID, oldVersion).
		Updates(map[string]interface{}{
			"attended":       assignment.Attended,
			"absence_reason": assignment.AbsenceReason,
			"updated_by":     assignment.UpdatedBy,
			"version":        oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	assignment.Version = oldVersion + 1
	return nil
}

func (r *assignmentRepo) Delete(ctx context.Context, id string, deletedBy *string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Assignment{}).
			Where("assignment_id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Where("assignment_id = ?", id).
			Delete(&model.Assignment{}).Error
	})
}
