package dto

// AddAssignmentRequest creates an empty slot for a role on a schedule.
type AddAssignmentRequest struct {
	RoleID string `json:"role_id" binding:"required,uuid"`
}

// UpdateAssignmentRequest edits the core fields of a slot. Only valid
// while the schedule is open. Explicit nulls clear a field; writing member
// and custom name together is allowed (custom name overrides the display).
type UpdateAssignmentRequest struct {
	MemberID    *string `json:"member_id"   binding:"omitempty,uuid"`
	ClearMember bool    `json:"clear_member"`
	CustomName  *string `json:"custom_name" binding:"omitempty,max=120"`
	ClearCustom bool    `json:"clear_custom_name"`
	TitleLabel  *string `json:"title_label" binding:"omitempty,max=120"`
	Link        *string `json:"link"        binding:"omitempty,url,max=500"`
	ClearLink   bool    `json:"clear_link"`
}

// UpdateAttendanceRequest records attendance after closing. This is the
// only write accepted on a closed schedule. The absence reason is dropped
// when attended is true.
type UpdateAttendanceRequest struct {
	Attended      *bool   `json:"attended"       binding:"required"`
	AbsenceReason *string `json:"absence_reason" binding:"omitempty,max=500"`
}

// AssignmentResponse is the view of one roster slot.
type AssignmentResponse struct {
	ID            string          `json:"id"`
	ScheduleID    string          `json:"schedule_id"`
	Role          *RoleResponse   `json:"role,omitempty"`
	Member        *MemberResponse `json:"member,omitempty"`
	CustomName    *string         `json:"custom_name,omitempty"`
	TitleLabel    *string         `json:"title_label,omitempty"`
	Link          *string         `json:"link,omitempty"`
	Attended      *bool           `json:"attended,omitempty"`
	AbsenceReason *string         `json:"absence_reason,omitempty"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}
