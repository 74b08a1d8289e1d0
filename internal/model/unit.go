package model

import "errors"

// Church maps to the churches table.
type Church struct {
	ChurchID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"church_id"`
	Name       string `gorm:"type:varchar(120);not null"                     json:"name"`
	City       string `gorm:"type:varchar(100)"                              json:"city,omitempty"`
	IsApproved bool   `gorm:"not null;default:false"                         json:"is_approved"`
	VersionedModel
}

func (Church) TableName() string { return "churches" }

// Cell maps to the cells table. A cell always belongs to a church.
type Cell struct {
	CellID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"cell_id"`
	ChurchID   string `gorm:"type:uuid;not null"                             json:"church_id"`
	Name       string `gorm:"type:varchar(120);not null"                     json:"name"`
	IsApproved bool   `gorm:"not null;default:false"                         json:"is_approved"`
	VersionedModel

	Church *Church `gorm:"foreignKey:ChurchID;references:ChurchID" json:"church,omitempty"`
}

func (Cell) TableName() string { return "cells" }

// ErrUnitRefInvalid is returned when a unit reference does not name
// exactly one of church or cell.
var ErrUnitRefInvalid = errors.New("unit reference must name exactly one of church or cell")

// UnitRef identifies the organizational scope a schedule or membership
// belongs to: exactly one of church or cell.
type UnitRef struct {
	ChurchID *string
	CellID   *string
}

// ChurchUnit builds a church-scoped reference.
func ChurchUnit(churchID string) UnitRef { return UnitRef{ChurchID: &churchID} }

// CellUnit builds a cell-scoped reference.
func CellUnit(cellID string) UnitRef { return UnitRef{CellID: &cellID} }

// Validate checks the exactly-one invariant.
func (u UnitRef) Validate() error {
	if (u.ChurchID == nil) == (u.CellID == nil) {
		return ErrUnitRefInvalid
	}
	if u.ChurchID != nil && *u.ChurchID == "" {
		return ErrUnitRefInvalid
	}
	if u.CellID != nil && *u.CellID == "" {
		return ErrUnitRefInvalid
	}
	return nil
}

// IsChurch reports whether the reference points at a church.
func (u UnitRef) IsChurch() bool { return u.ChurchID != nil }

// ── unit-level membership roles ──

const (
	UnitRolePastor    = "pastor"
	UnitRoleLeader    = "leader"
	UnitRoleSecretary = "secretary"
	UnitRoleTreasurer = "treasurer"
	UnitRoleMember    = "member"
)

// UnitRole maps to the unit_roles table: one user's role within one unit.
// The permission resolver derives the capability set from these rows.
type UnitRole struct {
	UnitRoleID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"unit_role_id"`
	UserID     string  `gorm:"type:uuid;not null"                             json:"user_id"`
	ChurchID   *string `gorm:"type:uuid"                                      json:"church_id,omitempty"`
	CellID     *string `gorm:"type:uuid"                                      json:"cell_id,omitempty"`
	Role       string  `gorm:"type:varchar(20);not null"                      json:"role"`
	BaseModel
}

func (UnitRole) TableName() string { return "unit_roles" }
