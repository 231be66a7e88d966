package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"haccp/internal/domain"
	"haccp/internal/port"
)

// CreateTenantInput is the DTO for creating a tenant.
type CreateTenantInput struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	Timezone string `json:"timezone"`
}

// UpdateTenantInput is the DTO for updating a tenant.
type UpdateTenantInput struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	Timezone *string `json:"timezone"`
	IsActive *bool   `json:"is_active"`
}

// TenantService defines the tenant management contract.
type TenantService interface {
	Create(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tenantService struct {
	repo            port.TenantRepository
	defaultTimezone string
}

// NewTenantService creates a new TenantService implementation. New tenants
// without an explicit timezone get defaultTimezone.
func NewTenantService(repo port.TenantRepository, defaultTimezone string) TenantService {
	return &tenantService{repo: repo, defaultTimezone: defaultTimezone}
}

func (s *tenantService) Create(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error) {
	tz := input.Timezone
	if tz == "" {
		tz = s.defaultTimezone
	}
	if err := validateTimezone(tz); err != nil {
		return nil, err
	}
	tenant := &domain.Tenant{
		Name:     strings.TrimSpace(input.Name),
		Slug:     strings.ToLower(strings.TrimSpace(input.Slug)),
		Timezone: tz,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *tenantService) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	return s.repo.GetBySlug(ctx, strings.ToLower(slug))
}

func (s *tenantService) List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *tenantService) Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error) {
	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tenant.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		tenant.Slug = strings.ToLower(strings.TrimSpace(*input.Slug))
	}
	if input.Timezone != nil {
		if err := validateTimezone(*input.Timezone); err != nil {
			return nil, err
		}
		tenant.Timezone = *input.Timezone
	}
	if input.IsActive != nil {
		tenant.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func validateTimezone(tz string) error {
	if tz == "" {
		return domain.ErrInvalidTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return domain.ErrInvalidTimezone
	}
	return nil
}

// tenantLocation returns the tenant's business timezone, falling back to
// fallback when the stored zone cannot be loaded.
func tenantLocation(ctx context.Context, repo port.TenantRepository, tenantID uuid.UUID, fallback *time.Location) (*time.Location, error) {
	tenant, err := repo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if loc, err := time.LoadLocation(tenant.Timezone); err == nil && tenant.Timezone != "" {
		return loc, nil
	}
	if fallback == nil {
		return time.UTC, nil
	}
	return fallback, nil
}
