package repository

import (
	"context"

	"gorm.io/gorm"

	"siscof/backend/internal/model"
	pkgerrors "siscof/backend/pkg/errors"
)

// ChurchRepository is the data-access interface for churches.
type ChurchRepository interface {
	Create(ctx context.Context, church *model.Church) error
	GetByID(ctx context.Context, id string) (*model.Church, error)
	List(ctx context.Context, approvedOnly bool) ([]model.Church, error)
	Update(ctx context.Context, church *model.Church) error
}

// CellRepository is the data-access interface for cells.
type CellRepository interface {
	Create(ctx context.Context, cell *model.Cell) error
	GetByID(ctx context.Context, id string) (*model.Cell, error)
	ListByChurch(ctx context.Context, churchID string, approvedOnly bool) ([]model.Cell, error)
	Update(ctx context.Context, cell *model.Cell) error
}

// UnitRoleRepository is the data-access interface for unit memberships.
type UnitRoleRepository interface {
	Create(ctx context.Context, role *model.UnitRole) error
	GetByUserAndUnit(ctx context.Context, userID string, unit model.UnitRef) (*model.UnitRole, error)
	ListByUser(ctx context.Context, userID string) ([]model.UnitRole, error)
	Delete(ctx context.Context, id string) error
}

// ── Church Repository ──

type churchRepo struct {
	db *gorm.DB
}

func NewChurchRepo(db *gorm.DB) ChurchRepository {
	return &churchRepo{db: db}
}

func (r *churchRepo) Create(ctx context.Context, church *model.Church) error {
	return r.db.WithContext(ctx).Create(church).Error
}

func (r *churchRepo) GetByID(ctx context.Context, id string) (*model.Church, error) {
	var church model.Church
	err := r.db.WithContext(ctx).
		Where("church_id = ?", id).
		First(&church).Error
	if err != nil {
		return nil, err
	}
	return &church, nil
}

func (r *churchRepo) List(ctx context.Context, approvedOnly bool) ([]model.Church, error) {
	var churches []model.Church
	db := r.db.WithContext(ctx)
	if approvedOnly {
		db = db.Where("is_approved = ?", true)
	}
	err := db.Order("name ASC").Find(&churches).Error
	return churches, err
}

func (r *churchRepo) Update(ctx context.Context, church *model.Church) error {
	oldVersion := church.Version
	result := r.db.WithContext(ctx).
		Model(church).
		Where("church_id = ? AND version = ?", church.ChurchID, oldVersion).
		Updates(map[string]interface{}{
			"name":        church.Name,
			"city":        church.City,
			"is_approved": church.IsApproved,
			"updated_by":  church.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	church.Version = oldVersion + 1
	return nil
}

// ── Cell Repository ──

type cellRepo struct {
	db *gorm.DB
}

func NewCellRepo(db *gorm.DB) CellRepository {
	return &cellRepo{db: db}
}

func (r *cellRepo) Create(ctx context.Context, cell *model.Cell) error {
	return r.db.WithContext(ctx).Create(cell).Error
}

func (r *cellRepo) GetByID(ctx context.Context, id string) (*model.Cell, error) {
	var cell model.Cell
	err := r.db.WithContext(ctx).
		Preload("Church").
		Where("cell_id = ?", id).
		First(&cell).Error
	if err != nil {
		return nil, err
	}
	return &cell, nil
}

func (r *cellRepo) ListByChurch(ctx context.Context, churchID string, approvedOnly bool) ([]model.Cell, error) {
	var cells []model.Cell
	db := r.db.WithContext(ctx).Where("church_id = ?", churchID)
	if approvedOnly {
		db = db.Where("is_approved = ?", true)
	}
	err := db.Order("name ASC").Find(&cells).Error
	return cells, err
}

func (r *cellRepo) Update(ctx context.Context, cell *model.Cell) error {
	oldVersion := cell.Version
	result := r.db.WithContext(ctx).
		Model(cell).
		Where("cell_id = ? AND version = ?", cell.CellID, oldVersion).
		Updates(map[string]interface{}{
			"name":        cell.Name,
			"is_approved": cell.IsApproved,
			"updated_by":  cell.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	cell.Version = oldVersion + 1
	return nil
}

// ── UnitRole Repository ──

type unitRoleRepo struct {
	db *gorm.DB
}

func NewUnitRoleRepo(db *gorm.DB) UnitRoleRepository {
	return &unitRoleRepo{db: db}
}

func (r *unitRoleRepo) Create(ctx context.Context, role *model.UnitRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *unitRoleRepo) GetByUserAndUnit(ctx context.Context, userID string, unit model.UnitRef) (*model.UnitRole, error) {
	var role model.UnitRole
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unit.IsChurch() {
		db = db.Where("church_id = ?", *unit.ChurchID)
	} else {
		db = db.Where("cell_id = ?", *unit.CellID)
	}
	if err := db.First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *unitRoleRepo) ListByUser(ctx context.Context, userID string) ([]model.UnitRole, error) {
	var roles []model.UnitRole
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&roles).Error
	return roles, err
}

func (r *unitRoleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("unit_role_id = ?", id).
		Delete(&model.UnitRole{}).Error
}
