package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"siscof/backend/internal/dto"
	"siscof/backend/internal/model"
)

func setupTestScheduleService() (ScheduleService, *mocks) {
	repo, m := newMockRepository()
	perms := NewPermissionService(repo, zap.NewNop())
	svc := NewScheduleService(repo, perms, zap.NewNop())
	return svc, m
}

func seedChurch(m *mocks, id string, approved bool) {
	m.churches.churches[id] = &model.Church{ChurchID: id, Name: "Igreja " + id, IsApproved: approved}
	m.churches.churches[id].Version = 1
}

func seedSchedule(m *mocks, id, churchID string, date time.Time, status string) *model.Schedule {
	s := &model.Schedule{
		ScheduleID:  id,
		ChurchID:    strPtr(churchID),
		ServiceDate: date,
		Status:      status,
	}
	m.schedules.Create(context.Background(), s)
	return s
}

// ── periodWindow ──

func TestPeriodWindow_ThisWeekStartsSunday(t *testing.T) {
	// Wednesday 2026-09-02
	now := time.Date(2026, 9, 2, 15, 30, 0, 0, time.UTC)

	from, to, limit := periodWindow(now, dto.PeriodThisWeek)
	if from.Weekday() != time.Sunday {
		t.Errorf("week should start on Sunday, got %s", from.Weekday())
	}
	if !from.Equal(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected window start 2026-08-30, got %s", from)
	}
	if to == nil || !to.Equal(time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected window end 2026-09-06, got %v", to)
	}
	if limit != 0 {
		t.Errorf("calendar windows carry no cap, got %d", limit)
	}
}

func TestPeriodWindow_ThisWeekOnSunday(t *testing.T) {
	// already a Sunday: the window starts the same day
	now := time.Date(2026, 9, 6, 8, 0, 0, 0, time.UTC)

	from, to, _ := periodWindow(now, dto.PeriodThisWeek)
	if !from.Equal(time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected window start 2026-09-06, got %s", from)
	}
	if to == nil || !to.Equal(time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected window end 2026-09-13, got %v", to)
	}
}

func TestPeriodWindow_ThisMonth(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	from, to, _ := periodWindow(now, dto.PeriodThisMonth)
	if !from.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected month start 2026-09-01, got %s", from)
	}
	if to == nil || !to.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected month end 2026-10-01, got %v", to)
	}
}

func TestPeriodWindow_NextMonthAcrossYear(t *testing.T) {
	now := time.Date(2026, 12, 20, 12, 0, 0, 0, time.UTC)

	from, to, _ := periodWindow(now, dto.PeriodNextMonth)
	if !from.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected next month start 2027-01-01, got %s", from)
	}
	if to == nil || !to.Equal(time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected next month end 2027-02-01, got %v", to)
	}
}

func TestPeriodWindow_UpcomingIsCapped(t *testing.T) {
	now := time.Date(2026, 9, 2, 23, 59, 0, 0, time.UTC)

	from, to, limit := periodWindow(now, dto.PeriodUpcoming)
	if !from.Equal(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("upcoming should start today, got %s", from)
	}
	if to != nil {
		t.Errorf("upcoming has no upper bound, got %v", to)
	}
	if limit != upcomingPageSize {
		t.Errorf("expected cap %d, got %d", upcomingPageSize, limit)
	}
}

// ── CreateSchedule ──

func TestScheduleService_Create_Success(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedChurch(m, "igreja-1", true)
	seedMembership(m, "u1", "igreja-1", model.UnitRoleLeader)

	req := &dto.CreateScheduleRequest{
		UnitQuery:   dto.UnitQuery{ChurchID: strPtr("igreja-1")},
		ServiceDate: "2026-09-06",
		StartTime:   strPtr("19:30"),
	}

	result, err := svc.CreateSchedule(context.Background(), req, Caller{UserID: "u1"})
	if err != nil {
		t.Fatalf("CreateSchedule should succeed: %v", err)
	}
	if result.Status != model.ScheduleStatusOpen {
		t.Errorf("a new schedule must start open, got %s", result.Status)
	}
	if result.ServiceDate != "2026-09-06" {
		t.Errorf("expected service_date 2026-09-06, got %s", result.ServiceDate)
	}
	if result.OfferingAmount != nil || result.TitheAmount != nil {
		t.Error("a new schedule must carry no closing figures")
	}
}

func TestScheduleService_Create_BothUnitsRejected(t *testing.T) {
	svc, _ := setupTestScheduleService()

	req := &dto.CreateScheduleRequest{
		UnitQuery: dto.UnitQuery{
			ChurchID: strPtr("igreja-1"),
			CellID:   strPtr("celula-1"),
		},
		ServiceDate: "2026-09-06",
	}

	_, err := svc.CreateSchedule(context.Background(), req, Caller{UserID: "u1"})
	if !errors.Is(err, ErrUnitInvalid) {
		t.Errorf("expected ErrUnitInvalid, got: %v", err)
	}
}

func TestScheduleService_Create_UnknownUnit(t *testing.T) {
	svc, _ := setupTestScheduleService()

	req := &dto.CreateScheduleRequest{
		UnitQuery:   dto.UnitQuery{ChurchID: strPtr("nope")},
		ServiceDate: "2026-09-06",
	}

	_, err := svc.CreateSchedule(context.Background(), req, Caller{UserID: "u1"})
	if !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("expected ErrUnitNotFound, got: %v", err)
	}
}

func TestScheduleService_Create_PermissionDenied(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedChurch(m, "igreja-1", true)
	seedMembership(m, "u1", "igreja-1", model.UnitRoleMember)

	req := &dto.CreateScheduleRequest{
		UnitQuery:   dto.UnitQuery{ChurchID: strPtr("igreja-1")},
		ServiceDate: "2026-09-06",
	}

	_, err := svc.CreateSchedule(context.Background(), req, Caller{UserID: "u1"})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got: %v", err)
	}
}

func TestScheduleService_Create_UnknownServiceType(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedChurch(m, "igreja-1", true)
	seedMembership(m, "u1", "igreja-1", model.UnitRoleLeader)

	req := &dto.CreateScheduleRequest{
		UnitQuery:     dto.UnitQuery{ChurchID: strPtr("igreja-1")},
		ServiceTypeID: strPtr("nope"),
		ServiceDate:   "2026-09-06",
	}

	_, err := svc.CreateSchedule(context.Background(), req, Caller{UserID: "u1"})
	if !errors.Is(err, ErrServiceTypeNotFound) {
		t.Errorf("expected ErrServiceTypeNotFound, got: %v", err)
	}
}

// ── ListSchedules ──

func TestScheduleService_List_OrderedByDateThenTime(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedChurch(m, "igreja-1", true)
	seedMembership(m, "u1", "igreja-1", model.UnitRoleMember)

	nextSunday := time.Now().AddDate(0, 0, 14)
	soonerDay := time.Now().AddDate(0, 0, 7)

	late := seedSchedule(m, "s-late", "igreja-1", nextSunday, model.ScheduleStatusOpen)
	late.StartTime = strPtr("19:30")
	early := seedSchedule(m, "s-early", "igreja-1", nextSunday, model.ScheduleStatusOpen)
	early.StartTime = strPtr("09:00")
	seedSchedule(m, "s-first", "igreja-1", soonerDay, model.ScheduleStatusOpen)

	req := &dto.ScheduleListRequest{
		UnitQuery: dto.UnitQuery{ChurchID: strPtr("igreja-1")},
		Period:    dto.PeriodUpcoming,
	}

	result, err := svc.ListSchedules(context.Background(), req, Caller{UserID: "u1"})
	if err != nil {
		t.Fatalf("ListSchedules should succeed: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 schedules, got %d", len(result))
	}
	if result[0].ID != "s-first" || result[1].ID != "s-early" || result[2].ID != "s-late" {
		t.Errorf("wrong order: %s, %s, %s", result[0].ID, result[1].ID, result[2].ID)
	}
}

func TestScheduleService_List_UpcomingCap(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedChurch(m, "igreja-1", true)
	seedMembership(m, "u1", "igreja-1", model.UnitRoleMember)

	for i := 0; i < upcomingPageSize+5; i++ {
		seedSchedule(m, "", "igreja-1", time.Now().AddDate(0, 0, i+1), model.ScheduleStatusOpen)
	}

	req := &dto.ScheduleListRequest{
		UnitQuery: dto.UnitQuery{ChurchID: strPtr("igreja-1")},
		Period:    dto.PeriodUpcoming,
	}

	result, err := svc.ListSchedules(context.Background(), req, Caller{UserID: "u1"})
	if err != nil {
		t.Fatalf("ListSchedules should succeed: %v", err)
	}
	if len(result) != upcomingPageSize {
		t.Errorf("expected the upcoming listing capped at %d, got %d", upcomingPageSize, len(result))
	}
}

func TestScheduleService_List_NoMembershipDenied(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedChurch(m, "igreja-1", true)

	req := &dto.ScheduleListRequest{
		UnitQuery: dto.UnitQuery{ChurchID: strPtr("igreja-1")},
	}

	_, err := svc.ListSchedules(context.Background(), req, Caller{UserID: "stranger"})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got: %v", err)
	}
}

// ── GetSchedule ──

func TestScheduleService_Get_FinancialsHiddenWithoutCapability(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedChurch(m, "igreja-1", true)
	seedMembership(m, "viewer", "igreja-1", model.UnitRoleMember)
	seedMembership(m, "pastor", "igreja-1", model.UnitRolePastor)

	s := seedSchedule(m, "s1", "igreja-1", time.Now(), model.ScheduleStatusClosed)
	offering := 150.0
	s.OfferingAmount = &offering

	asViewer, err := svc.GetSchedule(context.Background(), "s1", Caller{UserID: "viewer"})
	if err != nil {
		t.Fatalf("GetSchedule should succeed: %v", err)
	}
	if asViewer.OfferingAmount != nil {
		t.Error("members must not see closing figures")
	}

	asPastor, err := svc.GetSchedule(context.Background(), "s1", Caller{UserID: "pastor"})
	if err != nil {
		t.Fatalf("GetSchedule should succeed: %v", err)
	}
	if asPastor.OfferingAmount == nil || *asPastor.OfferingAmount != 150.0 {
		t.Error("pastor should see closing figures")
	}
}

// ── DeleteSchedule ──

func TestScheduleService_Delete_CascadesAssignments(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedChurch(m, "igreja-1", true)
	seedMembership(m, "u1", "igreja-1", model.UnitRoleLeader)
	seedSchedule(m, "s1", "igreja-1", time.Now(), model.ScheduleStatusOpen)

	m.assignments.Create(context.Background(), &model.Assignment{ScheduleID: "s1", RoleID: "r1"})
	m.assignments.Create(context.Background(), &model.Assignment{ScheduleID: "s1", RoleID: "r2"})

	if err := svc.DeleteSchedule(context.Background(), "s1", Caller{UserID: "u1"}); err != nil {
		t.Fatalf("DeleteSchedule should succeed: %v", err)
	}
	if len(m.assignments.assignments) != 0 {
		t.Errorf("assignments should be cascade-deleted, %d left", len(m.assignments.assignments))
	}
}

func TestScheduleService_Delete_ClosedRejected(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedChurch(m, "igreja-1", true)
	seedMembership(m, "u1", "igreja-1", model.UnitRolePastor)
	seedSchedule(m, "s1", "igreja-1", time.Now(), model.ScheduleStatusClosed)

	err := svc.DeleteSchedule(context.Background(), "s1", Caller{UserID: "u1"})
	if !errors.Is(err, ErrScheduleClosed) {
		t.Errorf("expected ErrScheduleClosed, got: %v", err)
	}
}

func TestScheduleService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestScheduleService()

	err := svc.DeleteSchedule(context.Background(), "nope", Caller{UserID: "u1"})
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("expected ErrScheduleNotFound, got: %v", err)
	}
}
