package dto

// UnitQuery selects the owning unit on schedule endpoints: exactly one of
// church_id or cell_id must be provided (validated in the service layer).
type UnitQuery struct {
	ChurchID *string `form:"church_id" json:"church_id" binding:"omitempty,uuid"`
	CellID   *string `form:"cell_id"   json:"cell_id"   binding:"omitempty,uuid"`
}

// ChurchResponse is the list/detail view of a church.
type ChurchResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	City       string `json:"city,omitempty"`
	IsApproved bool   `json:"is_approved"`
}

// CellResponse is the list/detail view of a cell.
type CellResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	IsApproved bool            `json:"is_approved"`
	Church     *ChurchResponse `json:"church,omitempty"`
}

// MemberResponse is the directory view of a member.
type MemberResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PublicUnitResponse is one approved church with its approved cells, as
// shown to anonymous visitors.
type PublicUnitResponse struct {
	Church ChurchResponse `json:"church"`
	Cells  []CellResponse `json:"cells"`
}

// MemberListRequest filters the member directory.
type MemberListRequest struct {
	UnitQuery
	Search string `form:"search" binding:"omitempty,max=120"`
	PaginationRequest
}
