package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"haccp/internal/domain"
	"haccp/internal/port"
)

// GrantRoleInput is the DTO for granting a role.
type GrantRoleInput struct {
	StaffID  uuid.UUID   `json:"staff_id" binding:"required"`
	Role     domain.Role `json:"role" binding:"required"`
	MarketID *uuid.UUID  `json:"market_id"`
}

// RbacService resolves effective roles and manages role assignments.
type RbacService interface {
	// EffectiveRole returns the strongest role staffID holds in marketID.
	EffectiveRole(ctx context.Context, tenantID, staffID, marketID uuid.UUID) (domain.Role, error)
	// CoversMarket reports whether an assignment of staffID covers marketID.
	CoversMarket(ctx context.Context, tenantID, staffID, marketID uuid.UUID) (bool, error)
	// AuthorizeScope checks that actor may administer records scoped to scope
	// (nil = every market of the tenant).
	AuthorizeScope(ctx context.Context, actor domain.Actor, scope *uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.RbacAssignment, error)
	ListByStaff(ctx context.Context, tenantID, staffID uuid.UUID) ([]domain.RbacAssignment, error)
	Grant(ctx context.Context, actor domain.Actor, input GrantRoleInput) (*domain.RbacAssignment, error)
	Revoke(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID) error
}

type rbacService struct {
	repo       port.RbacRepository
	staffRepo  port.StaffRepository
	marketRepo port.MarketRepository
}

// NewRbacService creates a new RbacService implementation.
func NewRbacService(
	repo port.RbacRepository,
	staffRepo port.StaffRepository,
	marketRepo port.MarketRepository,
) RbacService {
	return &rbacService{
		repo:       repo,
		staffRepo:  staffRepo,
		marketRepo: marketRepo,
	}
}

func (s *rbacService) EffectiveRole(ctx context.Context, tenantID, staffID, marketID uuid.UUID) (domain.Role, error) {
	assignments, err := s.repo.ListByStaff(ctx, tenantID, staffID)
	if err != nil {
		return "", fmt.Errorf("rbac.EffectiveRole: %w", err)
	}
	return effectiveRole(assignments, marketID), nil
}

// effectiveRole scans the allow-list: SUPERADMIN anywhere grants tenant-wide
// rights, ADMIN applies to its market or to every market when unscoped.
func effectiveRole(assignments []domain.RbacAssignment, marketID uuid.UUID) domain.Role {
	role := domain.RoleStaff
	for i := range assignments {
		a := &assignments[i]
		switch a.Role {
		case domain.RoleSuperAdmin:
			return domain.RoleSuperAdmin
		case domain.RoleAdmin:
			if domain.VisibleIn(a.MarketID, marketID) {
				role = domain.RoleAdmin
			}
		}
	}
	return role
}

func (s *rbacService) CoversMarket(ctx context.Context, tenantID, staffID, marketID uuid.UUID) (bool, error) {
	role, err := s.EffectiveRole(ctx, tenantID, staffID, marketID)
	if err != nil {
		return false, err
	}
	return role.Satisfies(domain.RoleAdmin), nil
}

func (s *rbacService) AuthorizeScope(ctx context.Context, actor domain.Actor, scope *uuid.UUID) error {
	if actor.IsSuperAdmin() {
		return nil
	}
	assignments, err := s.repo.ListByStaff(ctx, actor.TenantID, actor.StaffID)
	if err != nil {
		return fmt.Errorf("rbac.AuthorizeScope: %w", err)
	}
	for i := range assignments {
		a := &assignments[i]
		if a.Role == domain.RoleSuperAdmin {
			return nil
		}
		if a.Role != domain.RoleAdmin {
			continue
		}
		if a.MarketID == nil {
			return nil
		}
		if scope != nil && *a.MarketID == *scope {
			return nil
		}
	}
	return domain.ErrForbidden
}

func (s *rbacService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.RbacAssignment, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

func (s *rbacService) ListByStaff(ctx context.Context, tenantID, staffID uuid.UUID) ([]domain.RbacAssignment, error) {
	return s.repo.ListByStaff(ctx, tenantID, staffID)
}

func (s *rbacService) Grant(ctx context.Context, actor domain.Actor, input GrantRoleInput) (*domain.RbacAssignment, error) {
	if !domain.AssignableRoles[input.Role] {
		return nil, domain.ErrInvalidRole
	}
	if _, err := s.staffRepo.GetByID(ctx, actor.TenantID, input.StaffID); err != nil {
		return nil, err
	}
	marketID := input.MarketID
	if input.Role == domain.RoleSuperAdmin {
		marketID = nil
	}
	if marketID != nil {
		if _, err := s.marketRepo.GetByID(ctx, actor.TenantID, *marketID); err != nil {
			return nil, err
		}
	}

	grantedBy := actor.StaffID
	a := &domain.RbacAssignment{
		TenantID:  actor.TenantID,
		StaffID:   input.StaffID,
		Role:      input.Role,
		MarketID:  marketID,
		GrantedBy: &grantedBy,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *rbacService) Revoke(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, actor.TenantID, assignmentID)
	if err != nil {
		return err
	}
	if a.StaffID == actor.StaffID && a.Role == domain.RoleSuperAdmin {
		return domain.ErrSelfRevoke
	}
	return s.repo.Delete(ctx, actor.TenantID, assignmentID)
}
