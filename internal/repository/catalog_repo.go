package repository

import (
	"context"

	"gorm.io/gorm"

	"siscof/backend/internal/model"
)

// RoleRepository is the data-access interface for the fixed role catalog.
type RoleRepository interface {
	GetByID(ctx context.Context, id string) (*model.Role, error)
	List(ctx context.Context) ([]model.Role, error)
}

// ServiceTypeRepository is the data-access interface for service types.
type ServiceTypeRepository interface {
	GetByID(ctx context.Context, id string) (*model.ServiceType, error)
	List(ctx context.Context) ([]model.ServiceType, error)
}

// ── Role Repository ──

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) GetByID(ctx context.Context, id string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).
		Where("role_id = ?", id).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.WithContext(ctx).
		Order("rank ASC").
		Find(&roles).Error
	return roles, err
}

// ── ServiceType Repository ──

type serviceTypeRepo struct {
	db *gorm.DB
}

func NewServiceTypeRepo(db *gorm.DB) ServiceTypeRepository {
	return &serviceTypeRepo{db: db}
}

func (r *serviceTypeRepo) GetByID(ctx context.Context, id string) (*model.ServiceType, error) {
	var st model.ServiceType
	err := r.db.WithContext(ctx).
		Where("service_type_id = ?", id).
		First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *serviceTypeRepo) List(ctx context.Context) ([]model.ServiceType, error) {
	var types []model.ServiceType
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&types).Error
	return types, err
}
