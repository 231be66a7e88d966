package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"haccp/internal/domain"
	"haccp/internal/port"
)

// CreateDokuSectionInput is the DTO for creating a documentation section.
type CreateDokuSectionInput struct {
	Key         string     `json:"key" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	MarketID    *uuid.UUID `json:"market_id"`
	SortOrder   int        `json:"sort_order"`
}

// UpdateDokuSectionInput is the DTO for updating a documentation section.
type UpdateDokuSectionInput struct {
	Key         *string `json:"key"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// DokuSectionService defines the documentation section contract.
type DokuSectionService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateDokuSectionInput) (*domain.DokuSection, error)
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.DokuSection, error)
	// ListVisible returns the active sections visible in the actor's market.
	ListVisible(ctx context.Context, actor domain.Actor) ([]domain.DokuSection, error)
	// ListAll returns every section of the tenant, inactive ones included.
	ListAll(ctx context.Context, actor domain.Actor) ([]domain.DokuSection, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input UpdateDokuSectionInput) (*domain.DokuSection, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

type dokuSectionService struct {
	repo       port.DokuSectionRepository
	marketRepo port.MarketRepository
	rbac       RbacService
}

// NewDokuSectionService creates a new DokuSectionService implementation.
func NewDokuSectionService(repo port.DokuSectionRepository, marketRepo port.MarketRepository, rbac RbacService) DokuSectionService {
	return &dokuSectionService{repo: repo, marketRepo: marketRepo, rbac: rbac}
}

func (s *dokuSectionService) Create(ctx context.Context, actor domain.Actor, input CreateDokuSectionInput) (*domain.DokuSection, error) {
	key, err := normalizeKey(input.Key)
	if err != nil {
		return nil, err
	}
	if err := s.rbac.AuthorizeScope(ctx, actor, input.MarketID); err != nil {
		return nil, err
	}
	if input.MarketID != nil {
		if _, err := s.marketRepo.GetByID(ctx, actor.TenantID, *input.MarketID); err != nil {
			return nil, err
		}
	}
	section := &domain.DokuSection{
		TenantID:    actor.TenantID,
		MarketID:    input.MarketID,
		Key:         key,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *dokuSectionService) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.DokuSection, error) {
	section, err := s.repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsSuperAdmin() && !domain.VisibleIn(section.MarketID, actor.MarketID) {
		return nil, domain.ErrNotFound
	}
	return section, nil
}

func (s *dokuSectionService) ListVisible(ctx context.Context, actor domain.Actor) ([]domain.DokuSection, error) {
	marketID := actor.MarketID
	return s.repo.List(ctx, actor.TenantID, port.DokuSectionFilter{VisibleIn: &marketID, ActiveOnly: true})
}

func (s *dokuSectionService) ListAll(ctx context.Context, actor domain.Actor) ([]domain.DokuSection, error) {
	filter := port.DokuSectionFilter{}
	if !actor.IsSuperAdmin() {
		marketID := actor.MarketID
		filter.VisibleIn = &marketID
	}
	return s.repo.List(ctx, actor.TenantID, filter)
}

func (s *dokuSectionService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input UpdateDokuSectionInput) (*domain.DokuSection, error) {
	section, err := s.repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.rbac.AuthorizeScope(ctx, actor, section.MarketID); err != nil {
		return nil, err
	}

	if input.Key != nil {
		key, err := normalizeKey(*input.Key)
		if err != nil {
			return nil, err
		}
		section.Key = key
	}
	if input.Title != nil {
		section.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		section.Description = strings.TrimSpace(*input.Description)
	}
	if input.SortOrder != nil {
		section.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		section.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *dokuSectionService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	section, err := s.repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}
	if err := s.rbac.AuthorizeScope(ctx, actor, section.MarketID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, actor.TenantID, id)
}
