package model

// Member maps to the members table — the directory used to render
// assignment holders.
type Member struct {
	MemberID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"member_id"`
	ChurchID *string `gorm:"type:uuid"                                      json:"church_id,omitempty"`
	CellID   *string `gorm:"type:uuid"                                      json:"cell_id,omitempty"`
	Name     string  `gorm:"type:varchar(120);not null"                     json:"name"`
	Phone    string  `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	VersionedModel
}

func (Member) TableName() string { return "members" }

// Unit returns the member's owning unit reference.
func (m *Member) Unit() UnitRef {
	return UnitRef{ChurchID: m.ChurchID, CellID: m.CellID}
}
