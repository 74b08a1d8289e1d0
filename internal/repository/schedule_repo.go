package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"siscof/backend/internal/model"
	pkgerrors "siscof/backend/pkg/errors"
)

// ScheduleRepository is the data-access interface for worship schedules.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	// ListByUnitAndRange returns the unit's schedules with service_date in
	// [from, to). A nil to means no upper bound; limit <= 0 means no cap.
	ListByUnitAndRange(ctx context.Context, unit model.UnitRef, from time.Time, to *time.Time, limit int) ([]model.Schedule, error)
	Close(ctx context.Context, schedule *model.Schedule) error
	Delete(ctx context.Context, id string, deletedBy *string) error
}

type scheduleRepo struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Preload("ServiceType").
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) ListByUnitAndRange(ctx context.Context, unit model.UnitRef, from time.Time, to *time.Time, limit int) ([]model.Schedule, error) {
	var schedules []model.Schedule

	db := r.db.WithContext(ctx).Preload("ServiceType")
	if unit.IsChurch() {
		db = db.Where("church_id = ?", *unit.ChurchID)
	} else {
		db = db.Where("cell_id = ?", *unit.CellID)
	}
	db = db.Where("service_date >= ?", from)
	if to != nil {
		db = db.Where("service_date < ?", *to)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}

	err := db.
		Order("service_date ASC, start_time ASC, created_at ASC").
		Find(&schedules).Error
	return schedules, err
}

// Close flips the schedule to closed and persists the closing figures in a
// single version-guarded update, so two concurrent closes cannot both win.
func (r *scheduleRepo) Close(ctx context.Context, schedule *model.Schedule) error {
	oldVersion := schedule.Version
	result := r.db.WithContext(ctx).
		Model(schedule).
		Where("schedule_id = ? AND version = ? AND status = ?",
			schedule.ScheduleID, oldVersion, model.ScheduleStatusOpen).
		Updates(map[string]interface{}{
			"status":          model.ScheduleStatusClosed,
			"offering_amount": schedule.OfferingAmount,
			"tithe_amount":    schedule.TitheAmount,
			"verifier_name":   schedule.VerifierName,
			"closed_by":       schedule.ClosedBy,
			"closed_at":       schedule.ClosedAt,
			"updated_by":      schedule.UpdatedBy,
			"version":         oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	schedule.Status = model.ScheduleStatusClosed
	schedule.Version = oldVersion + 1
	return nil
}

// Delete removes the schedule together with its roster rows.
func (r *scheduleRepo) Delete(ctx context.Context, id string, deletedBy *string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Assignment{}).
			Where("schedule_id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		if err := tx.Where("schedule_id = ?", id).
			Delete(&model.Assignment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Schedule{}).
			Where("schedule_id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Where("schedule_id = ?", id).
			Delete(&model.Schedule{}).Error
	})
}
