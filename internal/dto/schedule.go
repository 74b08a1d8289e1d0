package dto

// Period filter values accepted by the schedule directory.
const (
	PeriodUpcoming  = "upcoming"
	PeriodThisWeek  = "this-week"
	PeriodThisMonth = "this-month"
	PeriodNextMonth = "next-month"
)

// ScheduleListRequest selects schedules for one unit within a period.
type ScheduleListRequest struct {
	UnitQuery
	Period string `form:"period" binding:"omitempty,oneof=upcoming this-week this-month next-month"`
}

// CreateScheduleRequest creates a schedule header. Date is mandatory,
// everything else optional; the new schedule always starts open.
type CreateScheduleRequest struct {
	UnitQuery
	ServiceTypeID *string `json:"service_type_id" binding:"omitempty,uuid"`
	ServiceDate   string  `json:"service_date"    binding:"required,datetime=2006-01-02"`
	StartTime     *string `json:"start_time"      binding:"omitempty,datetime=15:04"`
}

// CloseScheduleRequest carries the closing figures. All three are
// mandatory at close time.
type CloseScheduleRequest struct {
	OfferingAmount *float64 `json:"offering_amount" binding:"required,gte=0"`
	TitheAmount    *float64 `json:"tithe_amount"    binding:"required,gte=0"`
	VerifierName   string   `json:"verifier_name"   binding:"required,min=2,max=120"`
}

// ── responses ──

// ScheduleResponse is the detail view of a schedule.
type ScheduleResponse struct {
	ID             string               `json:"id"`
	ChurchID       *string              `json:"church_id,omitempty"`
	CellID         *string              `json:"cell_id,omitempty"`
	ServiceType    *ServiceTypeResponse `json:"service_type,omitempty"`
	ServiceDate    string               `json:"service_date"`
	StartTime      *string              `json:"start_time,omitempty"`
	Status         string               `json:"status"`
	OfferingAmount *float64             `json:"offering_amount,omitempty"`
	TitheAmount    *float64             `json:"tithe_amount,omitempty"`
	VerifierName   *string              `json:"verifier_name,omitempty"`
	ClosedAt       *string              `json:"closed_at,omitempty"`
	CreatedAt      string               `json:"created_at"`
	UpdatedAt      string               `json:"updated_at"`
}

// ScheduleSummaryResponse is the list view of a schedule.
type ScheduleSummaryResponse struct {
	ID          string               `json:"id"`
	ServiceType *ServiceTypeResponse `json:"service_type,omitempty"`
	ServiceDate string               `json:"service_date"`
	StartTime   *string              `json:"start_time,omitempty"`
	Status      string               `json:"status"`
}
