package repository

import (
	"context"

	"gorm.io/gorm"

	"siscof/backend/internal/model"
	pkgerrors "siscof/backend/pkg/errors"
)

// MemberRepository is the data-access interface for unit members.
type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id string) (*model.Member, error)
	ListByUnit(ctx context.Context, unit model.UnitRef, search string, offset, limit int) ([]model.Member, int64, error)
	Update(ctx context.Context, member *model.Member) error
	Delete(ctx context.Context, id string) error
}

type memberRepo struct {
	db *gorm.DB
}

func NewMemberRepo(db *gorm.DB) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) Create(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepo) GetByID(ctx context.Context, id string) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Where("member_id = ?", id).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) ListByUnit(ctx context.Context, unit model.UnitRef, search string, offset, limit int) ([]model.Member, int64, error) {
	var members []model.Member
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Member{})
	if unit.IsChurch() {
		db = db.Where("church_id = ?", *unit.ChurchID)
	} else {
		db = db.Where("cell_id = ?", *unit.CellID)
	}
	if search != "" {
		db = db.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *memberRepo) Update(ctx context.Context, member *model.Member) error {
	oldVersion := member.Version
	result := r.db.WithContext(ctx).
		Model(member).
		Where("member_id = ? AND version = ?", member.MemberID, oldVersion).
		Updates(map[string]interface{}{
			"name":       member.Name,
			"phone":      member.Phone,
			"updated_by": member.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	member.Version = oldVersion + 1
	return nil
}

func (r *memberRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("member_id = ?", id).
		Delete(&model.Member{}).Error
}
