package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"haccp/internal/domain"
	"haccp/internal/port"
)

// CreateMarketInput is the DTO for creating a market.
type CreateMarketInput struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code" binding:"required"`
	Address string `json:"address"`
}

// UpdateMarketInput is the DTO for updating a market.
type UpdateMarketInput struct {
	Name     *string `json:"name"`
	Code     *string `json:"code"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"is_active"`
}

// MarketService defines the market management contract.
type MarketService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateMarketInput) (*domain.Market, error)
	GetByID(ctx context.Context, tenantID, marketID uuid.UUID) (*domain.Market, error)
	List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]domain.Market, error)
	// ListSelectable returns the active markets the staff member may select.
	ListSelectable(ctx context.Context, tenantID, staffID uuid.UUID) ([]domain.Market, error)
	// CheckSelectable returns the market if staffID may select it.
	CheckSelectable(ctx context.Context, tenantID, staffID, marketID uuid.UUID) (*domain.Market, error)
	Update(ctx context.Context, tenantID, marketID uuid.UUID, input UpdateMarketInput) (*domain.Market, error)
	Delete(ctx context.Context, tenantID, marketID uuid.UUID) error
}

type marketService struct {
	repo      port.MarketRepository
	staffRepo port.StaffRepository
	rbac      RbacService
}

// NewMarketService creates a new MarketService implementation.
func NewMarketService(repo port.MarketRepository, staffRepo port.StaffRepository, rbac RbacService) MarketService {
	return &marketService{repo: repo, staffRepo: staffRepo, rbac: rbac}
}

func (s *marketService) Create(ctx context.Context, tenantID uuid.UUID, input CreateMarketInput) (*domain.Market, error) {
	market := &domain.Market{
		TenantID: tenantID,
		Name:     strings.TrimSpace(input.Name),
		Code:     strings.ToUpper(strings.TrimSpace(input.Code)),
		Address:  strings.TrimSpace(input.Address),
		IsActive: true,
	}
	if err := s.repo.Create(ctx, market); err != nil {
		return nil, err
	}
	return market, nil
}

func (s *marketService) GetByID(ctx context.Context, tenantID, marketID uuid.UUID) (*domain.Market, error) {
	return s.repo.GetByID(ctx, tenantID, marketID)
}

func (s *marketService) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]domain.Market, error) {
	return s.repo.ListByTenant(ctx, tenantID, activeOnly)
}

func (s *marketService) ListSelectable(ctx context.Context, tenantID, staffID uuid.UUID) ([]domain.Market, error) {
	staff, err := s.staffRepo.GetByID(ctx, tenantID, staffID)
	if err != nil {
		return nil, err
	}
	markets, err := s.repo.ListByTenant(ctx, tenantID, true)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Market, 0, len(markets))
	for i := range markets {
		ok, err := s.selectable(ctx, staff, markets[i].ID)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, markets[i])
		}
	}
	return out, nil
}

func (s *marketService) CheckSelectable(ctx context.Context, tenantID, staffID, marketID uuid.UUID) (*domain.Market, error) {
	market, err := s.repo.GetByID(ctx, tenantID, marketID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrMarketNotAccessible
		}
		return nil, err
	}
	if !market.IsActive {
		return nil, domain.ErrMarketInactive
	}
	staff, err := s.staffRepo.GetByID(ctx, tenantID, staffID)
	if err != nil {
		return nil, err
	}
	ok, err := s.selectable(ctx, staff, marketID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrMarketNotAccessible
	}
	return market, nil
}

// selectable: tenant-wide staff, the home market, or a market an RBAC
// assignment covers.
func (s *marketService) selectable(ctx context.Context, staff *domain.StaffProfile, marketID uuid.UUID) (bool, error) {
	if domain.VisibleIn(staff.MarketID, marketID) {
		return true, nil
	}
	return s.rbac.CoversMarket(ctx, staff.TenantID, staff.ID, marketID)
}

func (s *marketService) Update(ctx context.Context, tenantID, marketID uuid.UUID, input UpdateMarketInput) (*domain.Market, error) {
	market, err := s.repo.GetByID(ctx, tenantID, marketID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		market.Name = strings.TrimSpace(*input.Name)
	}
	if input.Code != nil {
		market.Code = strings.ToUpper(strings.TrimSpace(*input.Code))
	}
	if input.Address != nil {
		market.Address = strings.TrimSpace(*input.Address)
	}
	if input.IsActive != nil {
		market.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, market); err != nil {
		return nil, err
	}
	return market, nil
}

func (s *marketService) Delete(ctx context.Context, tenantID, marketID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, marketID)
}
