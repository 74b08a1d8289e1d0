package model

import "time"

// Schedule status values. The only transition is open → closed.
const (
	ScheduleStatusOpen   = "open"
	ScheduleStatusClosed = "closed"
)

// Schedule maps to the schedules table — one worship-service instance.
// Exactly one of ChurchID/CellID is set (DB check constraint mirrors it).
// Closing figures are null while open and all present once closed.
type Schedule struct {
	ScheduleID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	ChurchID       *string    `gorm:"type:uuid"                                      json:"church_id,omitempty"`
	CellID         *string    `gorm:"type:uuid"                                      json:"cell_id,omitempty"`
	ServiceTypeID  *string    `gorm:"type:uuid"                                      json:"service_type_id,omitempty"`
	ServiceDate    time.Time  `gorm:"type:date;not null"                             json:"service_date"`
	StartTime      *string    `gorm:"type:varchar(5)"                                json:"start_time,omitempty"` // "19:30"
	Status         string     `gorm:"type:varchar(10);not null;default:'open'"       json:"status"`
	OfferingAmount *float64   `gorm:"type:numeric(12,2)"                             json:"offering_amount,omitempty"`
	TitheAmount    *float64   `gorm:"type:numeric(12,2)"                             json:"tithe_amount,omitempty"`
	VerifierName   *string    `gorm:"type:varchar(120)"                              json:"verifier_name,omitempty"`
	ClosedBy       *string    `gorm:"type:uuid"                                      json:"closed_by,omitempty"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
	VersionedModel

	Church      *Church      `gorm:"foreignKey:ChurchID;references:ChurchID"                json:"church,omitempty"`
	Cell        *Cell        `gorm:"foreignKey:CellID;references:CellID"                    json:"cell,omitempty"`
	ServiceType *ServiceType `gorm:"foreignKey:ServiceTypeID;references:ServiceTypeID"      json:"service_type,omitempty"`
	Assignments []Assignment `gorm:"foreignKey:ScheduleID"                                  json:"assignments,omitempty"`
}

func (Schedule) TableName() string { return "schedules" }

// Unit returns the schedule's owning unit reference.
func (s *Schedule) Unit() UnitRef {
	return UnitRef{ChurchID: s.ChurchID, CellID: s.CellID}
}

// IsOpen reports whether the schedule still accepts roster edits.
func (s *Schedule) IsOpen() bool { return s.Status == ScheduleStatusOpen }

// Assignment maps to the assignments table — one role slot for one
// schedule. The holder is a member reference, a free-text custom name, or
// neither (slot reserved, not yet filled). Attended/AbsenceReason are only
// meaningful after the schedule is closed.
type Assignment struct {
	AssignmentID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	ScheduleID    string  `gorm:"type:uuid;not null"                             json:"schedule_id"`
	RoleID        string  `gorm:"type:uuid;not null"                             json:"role_id"`
	MemberID      *string `gorm:"type:uuid"                                      json:"member_id,omitempty"`
	CustomName    *string `gorm:"type:varchar(120)"                              json:"custom_name,omitempty"`
	TitleLabel    *string `gorm:"type:varchar(120)"                              json:"title_label,omitempty"`
	Link          *string `gorm:"type:varchar(500)"                              json:"link,omitempty"`
	Attended      *bool   `json:"attended,omitempty"`
	AbsenceReason *string `gorm:"type:varchar(500)"                              json:"absence_reason,omitempty"`
	VersionedModel

	Role   *Role   `gorm:"foreignKey:RoleID;references:RoleID"       json:"role,omitempty"`
	Member *Member `gorm:"foreignKey:MemberID;references:MemberID"   json:"member,omitempty"`
}

func (Assignment) TableName() string { return "assignments" }
