package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"siscof/backend/internal/model"
	"siscof/backend/internal/repository"
	pkgerrors "siscof/backend/pkg/errors"
)

// mockClock hands out strictly increasing timestamps so creation-order
// assertions are deterministic.
type mockClock struct {
	base time.Time
	seq  int
}

func newMockClock() *mockClock {
	return &mockClock{base: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) next() time.Time {
	c.seq++
	return c.base.Add(time.Duration(c.seq) * time.Second)
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, _, _ int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

// ── Mock ChurchRepository ──

type mockChurchRepo struct {
	churches map[string]*model.Church
}

func newMockChurchRepo() *mockChurchRepo {
	return &mockChurchRepo{churches: make(map[string]*model.Church)}
}

func (m *mockChurchRepo) Create(_ context.Context, church *model.Church) error {
	if church.ChurchID == "" {
		church.ChurchID = "church-" + church.Name
	}
	m.churches[church.ChurchID] = church
	return nil
}

func (m *mockChurchRepo) GetByID(_ context.Context, id string) (*model.Church, error) {
	if c, ok := m.churches[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockChurchRepo) List(_ context.Context, approvedOnly bool) ([]model.Church, error) {
	var result []model.Church
	for _, c := range m.churches {
		if approvedOnly && !c.IsApproved {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockChurchRepo) Update(_ context.Context, church *model.Church) error {
	stored, ok := m.churches[church.ChurchID]
	if !ok || stored.Version != church.Version {
		return pkgerrors.ErrOptimisticLock
	}
	church.Version++
	m.churches[church.ChurchID] = church
	return nil
}

// ── Mock CellRepository ──

type mockCellRepo struct {
	cells map[string]*model.Cell
}

func newMockCellRepo() *mockCellRepo {
	return &mockCellRepo{cells: make(map[string]*model.Cell)}
}

func (m *mockCellRepo) Create(_ context.Context, cell *model.Cell) error {
	if cell.CellID == "" {
		cell.CellID = "cell-" + cell.Name
	}
	m.cells[cell.CellID] = cell
	return nil
}

func (m *mockCellRepo) GetByID(_ context.Context, id string) (*model.Cell, error) {
	if c, ok := m.cells[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCellRepo) ListByChurch(_ context.Context, churchID string, approvedOnly bool) ([]model.Cell, error) {
	var result []model.Cell
	for _, c := range m.cells {
		if c.ChurchID != churchID {
			continue
		}
		if approvedOnly && !c.IsApproved {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockCellRepo) Update(_ context.Context, cell *model.Cell) error {
	stored, ok := m.cells[cell.CellID]
	if !ok || stored.Version != cell.Version {
		return pkgerrors.ErrOptimisticLock
	}
	cell.Version++
	m.cells[cell.CellID] = cell
	return nil
}

// ── Mock UnitRoleRepository ──

type mockUnitRoleRepo struct {
	roles map[string]*model.UnitRole
}

func newMockUnitRoleRepo() *mockUnitRoleRepo {
	return &mockUnitRoleRepo{roles: make(map[string]*model.UnitRole)}
}

func (m *mockUnitRoleRepo) Create(_ context.Context, role *model.UnitRole) error {
	if role.UnitRoleID == "" {
		role.UnitRoleID = fmt.Sprintf("ur-%d", len(m.roles)+1)
	}
	m.roles[role.UnitRoleID] = role
	return nil
}

func (m *mockUnitRoleRepo) GetByUserAndUnit(_ context.Context, userID string, unit model.UnitRef) (*model.UnitRole, error) {
	for _, r := range m.roles {
		if r.UserID != userID {
			continue
		}
		if unit.IsChurch() && r.ChurchID != nil && *r.ChurchID == *unit.ChurchID {
			return r, nil
		}
		if !unit.IsChurch() && r.CellID != nil && *r.CellID == *unit.CellID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUnitRoleRepo) ListByUser(_ context.Context, userID string) ([]model.UnitRole, error) {
	var result []model.UnitRole
	for _, r := range m.roles {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockUnitRoleRepo) Delete(_ context.Context, id string) error {
	delete(m.roles, id)
	return nil
}

// ── Mock MemberRepository ──

type mockMemberRepo struct {
	members map[string]*model.Member
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{members: make(map[string]*model.Member)}
}

func (m *mockMemberRepo) Create(_ context.Context, member *model.Member) error {
	if member.MemberID == "" {
		member.MemberID = "member-" + member.Name
	}
	m.members[member.MemberID] = member
	return nil
}

func (m *mockMemberRepo) GetByID(_ context.Context, id string) (*model.Member, error) {
	if mem, ok := m.members[id]; ok {
		return mem, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) ListByUnit(_ context.Context, unit model.UnitRef, search string, offset, limit int) ([]model.Member, int64, error) {
	var result []model.Member
	for _, mem := range m.members {
		if unit.IsChurch() {
			if mem.ChurchID == nil || *mem.ChurchID != *unit.ChurchID {
				continue
			}
		} else {
			if mem.CellID == nil || *mem.CellID != *unit.CellID {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(mem.Name), strings.ToLower(search)) {
			continue
		}
		result = append(result, *mem)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	total := int64(len(result))
	if offset >= len(result) {
		return []model.Member{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockMemberRepo) Update(_ context.Context, member *model.Member) error {
	stored, ok := m.members[member.MemberID]
	if !ok || stored.Version != member.Version {
		return pkgerrors.ErrOptimisticLock
	}
	member.Version++
	m.members[member.MemberID] = member
	return nil
}

func (m *mockMemberRepo) Delete(_ context.Context, id string) error {
	delete(m.members, id)
	return nil
}

// ── Mock RoleRepository ──

type mockRoleRepo struct {
	roles map[string]*model.Role
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{roles: make(map[string]*model.Role)}
}

func (m *mockRoleRepo) GetByID(_ context.Context, id string) (*model.Role, error) {
	if r, ok := m.roles[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) List(_ context.Context) ([]model.Role, error) {
	var result []model.Role
	for _, r := range m.roles {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Rank < result[j].Rank })
	return result, nil
}

// ── Mock ServiceTypeRepository ──

type mockServiceTypeRepo struct {
	types map[string]*model.ServiceType
}

func newMockServiceTypeRepo() *mockServiceTypeRepo {
	return &mockServiceTypeRepo{types: make(map[string]*model.ServiceType)}
}

func (m *mockServiceTypeRepo) GetByID(_ context.Context, id string) (*model.ServiceType, error) {
	if t, ok := m.types[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockServiceTypeRepo) List(_ context.Context) ([]model.ServiceType, error) {
	var result []model.ServiceType
	for _, t := range m.types {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules   map[string]*model.Schedule
	assignments *mockAssignmentRepo // cascade target for Delete
	clock       *mockClock
}

func newMockScheduleRepo(clock *mockClock) *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.Schedule), clock: clock}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == "" {
		schedule.ScheduleID = fmt.Sprintf("sched-%d", len(m.schedules)+1)
	}
	if schedule.Version == 0 {
		schedule.Version = 1
	}
	schedule.CreatedAt = m.clock.next()
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListByUnitAndRange(_ context.Context, unit model.UnitRef, from time.Time, to *time.Time, limit int) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if unit.IsChurch() {
			if s.ChurchID == nil || *s.ChurchID != *unit.ChurchID {
				continue
			}
		} else {
			if s.CellID == nil || *s.CellID != *unit.CellID {
				continue
			}
		}
		if s.ServiceDate.Before(from) {
			continue
		}
		if to != nil && !s.ServiceDate.Before(*to) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].ServiceDate.Equal(result[j].ServiceDate) {
			return result[i].ServiceDate.Before(result[j].ServiceDate)
		}
		si, sj := "", ""
		if result[i].StartTime != nil {
			si = *result[i].StartTime
		}
		if result[j].StartTime != nil {
			sj = *result[j].StartTime
		}
		if si != sj {
			return si < sj
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockScheduleRepo) Close(_ context.Context, schedule *model.Schedule) error {
	stored, ok := m.schedules[schedule.ScheduleID]
	if !ok || stored.Version != schedule.Version || stored.Status != model.ScheduleStatusOpen {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Status = model.ScheduleStatusClosed
	stored.OfferingAmount = schedule.OfferingAmount
	stored.TitheAmount = schedule.TitheAmount
	stored.VerifierName = schedule.VerifierName
	stored.ClosedBy = schedule.ClosedBy
	stored.ClosedAt = schedule.ClosedAt
	stored.Version++
	schedule.Status = model.ScheduleStatusClosed
	schedule.Version = stored.Version
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string, _ *string) error {
	delete(m.schedules, id)
	if m.assignments != nil {
		for aid, a := range m.assignments.assignments {
			if a.ScheduleID == id {
				delete(m.assignments.assignments, aid)
			}
		}
	}
	return nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	roles       *mockRoleRepo
	members     *mockMemberRepo
	clock       *mockClock
}

func newMockAssignmentRepo(roles *mockRoleRepo, members *mockMemberRepo, clock *mockClock) *mockAssignmentRepo {
	return &mockAssignmentRepo{
		assignments: make(map[string]*model.Assignment),
		roles:       roles,
		members:     members,
		clock:       clock,
	}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if assignment.AssignmentID == "" {
		assignment.AssignmentID = fmt.Sprintf("assign-%d", len(m.assignments)+1)
	}
	if assignment.Version == 0 {
		assignment.Version = 1
	}
	assignment.CreatedAt = m.clock.next()
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) CreateExclusive(ctx context.Context, assignment *model.Assignment) error {
	count, _ := m.CountByScheduleAndRole(ctx, assignment.ScheduleID, assignment.RoleID)
	if count > 0 {
		return pkgerrors.ErrDuplicateSlot
	}
	return m.Create(ctx, assignment)
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	a, ok := m.assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *a
	m.preload(&copied)
	return &copied, nil
}

func (m *mockAssignmentRepo) ListBySchedule(_ context.Context, scheduleID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.ScheduleID != scheduleID {
			continue
		}
		copied := *a
		m.preload(&copied)
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool {
		ri, rj := 0, 0
		if result[i].Role != nil {
			ri = result[i].Role.Rank
		}
		if result[j].Role != nil {
			rj = result[j].Role.Rank
		}
		if ri != rj {
			return ri < rj
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockAssignmentRepo) CountByScheduleAndRole(_ context.Context, scheduleID, roleID string) (int64, error) {
	var count int64
	for _, a := range m.assignments {
		if a.ScheduleID == scheduleID && a.RoleID == roleID {
			count++
		}
	}
	return count, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, assignment *model.Assignment) error {
	stored, ok := m.assignments[assignment.AssignmentID]
	if !ok || stored.Version != assignment.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.MemberID = assignment.MemberID
	stored.CustomName = assignment.CustomName
	stored.TitleLabel = assignment.TitleLabel
	stored.Link = assignment.Link
	stored.UpdatedBy = assignment.UpdatedBy
	stored.Version++
	assignment.Version = stored.Version
	return nil
}

func (m *mockAssignmentRepo) UpdateAttendance(_ context.Context, assignment *model.Assignment) error {
	stored, ok := m.assignments[assignment.AssignmentID]
	if !ok || stored.Version != assignment.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Attended = assignment.Attended
	stored.AbsenceReason = assignment.AbsenceReason
	stored.UpdatedBy = assignment.UpdatedBy
	stored.Version++
	assignment.Version = stored.Version
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string, _ *string) error {
	delete(m.assignments, id)
	return nil
}

func (m *mockAssignmentRepo) preload(a *model.Assignment) {
	if r, ok := m.roles.roles[a.RoleID]; ok {
		a.Role = r
	}
	if a.MemberID != nil {
		if mem, ok := m.members.members[*a.MemberID]; ok {
			a.Member = mem
		}
	}
}

// ── aggregate ──

// mocks bundles every mock so tests can seed data directly.
type mocks struct {
	users        *mockUserRepo
	churches     *mockChurchRepo
	cells        *mockCellRepo
	unitRoles    *mockUnitRoleRepo
	members      *mockMemberRepo
	roles        *mockRoleRepo
	serviceTypes *mockServiceTypeRepo
	schedules    *mockScheduleRepo
	assignments  *mockAssignmentRepo
}

func newMockRepository() (*repository.Repository, *mocks) {
	clock := newMockClock()
	m := &mocks{
		users:        newMockUserRepo(),
		churches:     newMockChurchRepo(),
		cells:        newMockCellRepo(),
		unitRoles:    newMockUnitRoleRepo(),
		members:      newMockMemberRepo(),
		roles:        newMockRoleRepo(),
		serviceTypes: newMockServiceTypeRepo(),
		schedules:    newMockScheduleRepo(clock),
	}
	m.assignments = newMockAssignmentRepo(m.roles, m.members, clock)
	m.schedules.assignments = m.assignments

	repo := &repository.Repository{
		User:        m.users,
		Church:      m.churches,
		Cell:        m.cells,
		UnitRole:    m.unitRoles,
		Member:      m.members,
		Role:        m.roles,
		ServiceType: m.serviceTypes,
		Schedule:    m.schedules,
		Assignment:  m.assignments,
	}
	return repo, m
}
