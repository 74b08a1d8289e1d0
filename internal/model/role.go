package model

import "time"

// Role maps to the roles table — the catalog of liturgical functions a
// schedule slot can be created for. Seeded by migration, read-only in the
// scheduling flow.
type Role struct {
	RoleID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"role_id"`
	Name         string    `gorm:"type:varchar(80);not null;unique"               json:"name"`
	Rank         int       `gorm:"not null"                                       json:"rank"`
	IsMultiple   bool      `gorm:"not null;default:false"                         json:"is_multiple"`
	RequiresLink bool      `gorm:"not null;default:false"                         json:"requires_link"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

func (Role) TableName() string { return "roles" }

// ServiceType maps to the service_types table (culto, vigília, ...).
type ServiceType struct {
	ServiceTypeID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"service_type_id"`
	Name          string    `gorm:"type:varchar(80);not null;unique"               json:"name"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

func (ServiceType) TableName() string { return "service_types" }
