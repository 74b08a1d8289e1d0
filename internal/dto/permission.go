package dto

// CapabilityResponse is the resolved capability set for (caller, unit),
// consumed by UIs to decide which controls to render. The server still
// re-validates every mutation.
type CapabilityResponse struct {
	CanViewScale       bool `json:"can_view_scale"`
	CanEditScale       bool `json:"can_edit_scale"`
	CanEditWorship     bool `json:"can_edit_worship"`
	CanEditDepartments bool `json:"can_edit_departments"`
	CanViewFinancial   bool `json:"can_view_financial"`
	CanEditFinancial   bool `json:"can_edit_financial"`
}
