package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"siscof/backend/internal/dto"
	"siscof/backend/internal/model"
)

func strPtr(s string) *string { return &s }

func setupTestPermissionService() (PermissionService, *mocks) {
	repo, m := newMockRepository()
	svc := NewPermissionService(repo, zap.NewNop())
	return svc, m
}

func seedMembership(m *mocks, userID, churchID, role string) {
	m.unitRoles.Create(context.Background(), &model.UnitRole{
		UserID:   userID,
		ChurchID: strPtr(churchID),
		Role:     role,
	})
}

func TestPermissionService_Resolve_Pastor(t *testing.T) {
	svc, m := setupTestPermissionService()
	seedMembership(m, "u1", "igreja-1", model.UnitRolePastor)

	caps, err := svc.Resolve(context.Background(), Caller{UserID: "u1"}, model.ChurchUnit("igreja-1"))
	if err != nil {
		t.Fatalf("Resolve should succeed: %v", err)
	}
	if caps != allCapabilities {
		t.Errorf("pastor should hold every capability, got %+v", caps)
	}
}

func TestPermissionService_Resolve_Treasurer(t *testing.T) {
	svc, m := setupTestPermissionService()
	seedMembership(m, "u1", "igreja-1", model.UnitRoleTreasurer)

	caps, err := svc.Resolve(context.Background(), Caller{UserID: "u1"}, model.ChurchUnit("igreja-1"))
	if err != nil {
		t.Fatalf("Resolve should succeed: %v", err)
	}
	if !caps.CanViewFinancial || !caps.CanEditFinancial {
		t.Error("treasurer should hold the financial capabilities")
	}
	if caps.CanEditScale || caps.CanEditWorship {
		t.Error("treasurer should not hold roster edit capabilities")
	}
}

func TestPermissionService_Resolve_MemberViewOnly(t *testing.T) {
	svc, m := setupTestPermissionService()
	seedMembership(m, "u1", "igreja-1", model.UnitRoleMember)

	caps, err := svc.Resolve(context.Background(), Caller{UserID: "u1"}, model.ChurchUnit("igreja-1"))
	if err != nil {
		t.Fatalf("Resolve should succeed: %v", err)
	}
	if !caps.CanViewScale {
		t.Error("member should be able to view the scale")
	}
	if caps.CanEditScale || caps.CanViewFinancial || caps.CanEditFinancial {
		t.Errorf("member should hold no other capability, got %+v", caps)
	}
}

func TestPermissionService_Resolve_NoMembershipDeniesAll(t *testing.T) {
	svc, _ := setupTestPermissionService()

	caps, err := svc.Resolve(context.Background(), Caller{UserID: "stranger"}, model.ChurchUnit("igreja-1"))
	if err != nil {
		t.Fatalf("Resolve should succeed: %v", err)
	}
	if caps != (CapabilitySet{}) {
		t.Errorf("no membership should yield the zero capability set, got %+v", caps)
	}
}

func TestPermissionService_Resolve_AdminBypassesMembership(t *testing.T) {
	svc, _ := setupTestPermissionService()

	caps, err := svc.Resolve(context.Background(), Caller{UserID: "root", IsAdmin: true}, model.CellUnit("celula-9"))
	if err != nil {
		t.Fatalf("Resolve should succeed: %v", err)
	}
	if caps != allCapabilities {
		t.Errorf("admin should hold every capability, got %+v", caps)
	}
}

func TestPermissionService_Resolve_CellScopedMembership(t *testing.T) {
	svc, m := setupTestPermissionService()
	m.unitRoles.Create(context.Background(), &model.UnitRole{
		UserID: "u1",
		CellID: strPtr("celula-1"),
		Role:   model.UnitRoleLeader,
	})

	caps, err := svc.Resolve(context.Background(), Caller{UserID: "u1"}, model.CellUnit("celula-1"))
	if err != nil {
		t.Fatalf("Resolve should succeed: %v", err)
	}
	if !caps.CanEditScale || !caps.CanEditWorship || !caps.CanEditDepartments {
		t.Errorf("leader should hold the roster edit capabilities, got %+v", caps)
	}
	if caps.CanViewFinancial || caps.CanEditFinancial {
		t.Error("leader should not hold financial capabilities")
	}

	// the same membership grants nothing on a different cell
	other, err := svc.Resolve(context.Background(), Caller{UserID: "u1"}, model.CellUnit("celula-2"))
	if err != nil {
		t.Fatalf("Resolve should succeed: %v", err)
	}
	if other != (CapabilitySet{}) {
		t.Errorf("membership must not leak across units, got %+v", other)
	}
}

func TestPermissionService_GetCapabilities_InvalidUnit(t *testing.T) {
	svc, _ := setupTestPermissionService()

	_, err := svc.GetCapabilities(context.Background(), Caller{UserID: "u1"}, &dto.UnitQuery{
		ChurchID: strPtr("igreja-1"),
		CellID:   strPtr("celula-1"),
	})
	if !errors.Is(err, ErrUnitInvalid) {
		t.Errorf("expected ErrUnitInvalid, got: %v", err)
	}

	_, err = svc.GetCapabilities(context.Background(), Caller{UserID: "u1"}, &dto.UnitQuery{})
	if !errors.Is(err, ErrUnitInvalid) {
		t.Errorf("expected ErrUnitInvalid for empty query, got: %v", err)
	}
}
