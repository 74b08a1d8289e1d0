package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"siscof/backend/internal/dto"
	"siscof/backend/internal/repository"
)

// ErrMemberNotFound is returned for unknown member ids.
var ErrMemberNotFound = errors.New("member not found")

// MemberService is the directory consumed to render assignment holders.
type MemberService interface {
	ListMembers(ctx context.Context, req *dto.MemberListRequest, caller Caller) ([]dto.MemberResponse, int64, error)
	GetMember(ctx context.Context, id string, caller Caller) (*dto.MemberResponse, error)
}

type memberService struct {
	repo   *repository.Repository
	perms  PermissionService
	logger *zap.Logger
}

func NewMemberService(repo *repository.Repository, perms PermissionService, logger *zap.Logger) MemberService {
	return &memberService{repo: repo, perms: perms, logger: logger}
}

func (s *memberService) ListMembers(ctx context.Context, req *dto.MemberListRequest, caller Caller) ([]dto.MemberResponse, int64, error) {
	unit, err := unitRefFromQuery(req.UnitQuery)
	if err != nil {
		return nil, 0, err
	}

	caps, err := s.perms.Resolve(ctx, caller, unit)
	if err != nil {
		return nil, 0, err
	}
	if !caps.CanViewScale {
		return nil, 0, ErrPermissionDenied
	}

	members, total, err := s.repo.Member.ListByUnit(ctx, unit, req.Search, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("listing members failed", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, dto.MemberResponse{ID: m.MemberID, Name: m.Name})
	}
	return out, total, nil
}

func (s *memberService) GetMember(ctx context.Context, id string, caller Caller) (*dto.MemberResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		s.logger.Error("loading member failed", zap.Error(err))
		return nil, err
	}

	caps, err := s.perms.Resolve(ctx, caller, member.Unit())
	if err != nil {
		return nil, err
	}
	if !caps.CanViewScale {
		return nil, ErrPermissionDenied
	}

	return &dto.MemberResponse{ID: member.MemberID, Name: member.Name}, nil
}
