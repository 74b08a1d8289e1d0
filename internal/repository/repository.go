package repository

import "gorm.io/gorm"

// Repository aggregates every repository interface.
type Repository struct {
	User        UserRepository
	Church      ChurchRepository
	Cell        CellRepository
	UnitRole    UnitRoleRepository
	Member      MemberRepository
	Role        RoleRepository
	ServiceType ServiceTypeRepository
	Schedule    ScheduleRepository
	Assignment  AssignmentRepository
}

// NewRepository wires every repository against the shared DB handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:        NewUserRepo(db),
		Church:      NewChurchRepo(db),
		Cell:        NewCellRepo(db),
		UnitRole:    NewUnitRoleRepo(db),
		Member:      NewMemberRepo(db),
		Role:        NewRoleRepo(db),
		ServiceType: NewServiceTypeRepo(db),
		Schedule:    NewScheduleRepo(db),
		Assignment:  NewAssignmentRepo(db),
	}
}
