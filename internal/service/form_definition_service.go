package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"haccp/internal/domain"
	"haccp/internal/period"
	"haccp/internal/port"
)

// CreateFormDefinitionInput is the DTO for creating a form definition.
type CreateFormDefinitionInput struct {
	Key             string              `json:"key" binding:"required"`
	Label           string              `json:"label" binding:"required"`
	Description     string              `json:"description"`
	Category        domain.FormCategory `json:"category" binding:"required"`
	Periodicity     string              `json:"periodicity" binding:"required"`
	RequiredEntries int                 `json:"required_entries"`
	Fields          json.RawMessage     `json:"fields" swaggertype:"array,object"`
	MarketID        *uuid.UUID          `json:"market_id"`
	SectionID       *uuid.UUID          `json:"section_id"`
	SortOrder       int                 `json:"sort_order"`
}

// UpdateFormDefinitionInput is the DTO for updating a form definition. The
// market scope is fixed at creation.
type UpdateFormDefinitionInput struct {
	Key             *string              `json:"key"`
	Label           *string              `json:"label"`
	Description     *string              `json:"description"`
	Category        *domain.FormCategory `json:"category"`
	Periodicity     *string              `json:"periodicity"`
	RequiredEntries *int                 `json:"required_entries"`
	Fields          json.RawMessage      `json:"fields" swaggertype:"array,object"`
	SectionID       *uuid.UUID           `json:"section_id"`
	ClearSection    bool                 `json:"clear_section"`
	SortOrder       *int                 `json:"sort_order"`
	IsActive        *bool                `json:"is_active"`
}

// ListFormsInput filters form definition listings.
type ListFormsInput struct {
	SectionID *uuid.UUID
	Category  domain.FormCategory
	// All lists every definition of the tenant regardless of scope and
	// activity; honored for admins only.
	All bool
}

// FormDefinitionService defines the form definition contract.
type FormDefinitionService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateFormDefinitionInput) (*domain.FormDefinition, error)
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.FormDefinition, error)
	// GetVisible returns an active definition visible in the actor's market.
	GetVisible(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.FormDefinition, error)
	List(ctx context.Context, actor domain.Actor, input ListFormsInput) ([]domain.FormDefinition, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input UpdateFormDefinitionInput) (*domain.FormDefinition, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

type formDefinitionService struct {
	repo        port.FormDefinitionRepository
	sectionRepo port.DokuSectionRepository
	marketRepo  port.MarketRepository
	rbac        RbacService
}

// NewFormDefinitionService creates a new FormDefinitionService implementation.
func NewFormDefinitionService(
	repo port.FormDefinitionRepository,
	sectionRepo port.DokuSectionRepository,
	marketRepo port.MarketRepository,
	rbac RbacService,
) FormDefinitionService {
	return &formDefinitionService{
		repo:        repo,
		sectionRepo: sectionRepo,
		marketRepo:  marketRepo,
		rbac:        rbac,
	}
}

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

func normalizeKey(key string) (string, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	if !keyPattern.MatchString(k) {
		return "", domain.ErrInvalidKey
	}
	return k, nil
}

// normalizeFields validates a field schema and stores an empty one as [].
func normalizeFields(raw json.RawMessage) (json.RawMessage, error) {
	defs, err := domain.ParseFields(raw)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return json.RawMessage("[]"), nil
	}
	return raw, nil
}

func (s *formDefinitionService) Create(ctx context.Context, actor domain.Actor, input CreateFormDefinitionInput) (*domain.FormDefinition, error) {
	key, err := normalizeKey(input.Key)
	if err != nil {
		return nil, err
	}
	if !domain.ValidFormCategories[input.Category] {
		return nil, domain.ErrInvalidCategory
	}
	p, err := period.ParsePeriodicity(input.Periodicity)
	if err != nil {
		return nil, domain.ErrInvalidPeriodicity
	}
	fields, err := normalizeFields(input.Fields)
	if err != nil {
		return nil, err
	}
	required := input.RequiredEntries
	if required == 0 {
		required = 1
	}
	if required < 1 {
		return nil, domain.ErrInvalidRequiredEntries
	}
	if err := s.rbac.AuthorizeScope(ctx, actor, input.MarketID); err != nil {
		return nil, err
	}
	if input.MarketID != nil {
		if _, err := s.marketRepo.GetByID(ctx, actor.TenantID, *input.MarketID); err != nil {
			return nil, err
		}
	}
	if err := s.checkSection(ctx, actor.TenantID, input.SectionID, input.MarketID); err != nil {
		return nil, err
	}

	def := &domain.FormDefinition{
		TenantID:        actor.TenantID,
		MarketID:        input.MarketID,
		SectionID:       input.SectionID,
		Key:             key,
		Label:           strings.TrimSpace(input.Label),
		Description:     strings.TrimSpace(input.Description),
		Category:        input.Category,
		Periodicity:     p,
		RequiredEntries: required,
		Fields:          fields,
		SortOrder:       input.SortOrder,
		IsActive:        true,
	}
	if err := s.repo.Create(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}

// checkSection ensures the section exists and its scope contains the form's:
// a global section holds any form, a market section only forms of that market.
func (s *formDefinitionService) checkSection(ctx context.Context, tenantID uuid.UUID, sectionID, formScope *uuid.UUID) error {
	if sectionID == nil {
		return nil
	}
	section, err := s.sectionRepo.GetByID(ctx, tenantID, *sectionID)
	if err != nil {
		return err
	}
	if section.MarketID != nil && (formScope == nil || *formScope != *section.MarketID) {
		return domain.ErrScopeMismatch
	}
	return nil
}

func (s *formDefinitionService) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.FormDefinition, error) {
	def, err := s.repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsSuperAdmin() && !domain.VisibleIn(def.MarketID, actor.MarketID) {
		return nil, domain.ErrNotFound
	}
	return def, nil
}

func (s *formDefinitionService) GetVisible(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.FormDefinition, error) {
	def, err := s.repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if !domain.VisibleIn(def.MarketID, actor.MarketID) {
		return nil, domain.ErrNotFound
	}
	if !def.IsActive {
		return nil, domain.ErrFormInactive
	}
	return def, nil
}

func (s *formDefinitionService) List(ctx context.Context, actor domain.Actor, input ListFormsInput) ([]domain.FormDefinition, error) {
	filter := port.FormDefinitionFilter{
		SectionID: input.SectionID,
		Category:  input.Category,
	}
	switch {
	case input.All && actor.IsSuperAdmin():
	case input.All && actor.Role.Satisfies(domain.RoleAdmin):
		marketID := actor.MarketID
		filter.VisibleIn = &marketID
	default:
		marketID := actor.MarketID
		filter.VisibleIn = &marketID
		filter.ActiveOnly = true
	}
	return s.repo.List(ctx, actor.TenantID, filter)
}

func (s *formDefinitionService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input UpdateFormDefinitionInput) (*domain.FormDefinition, error) {
	def, err := s.repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.rbac.AuthorizeScope(ctx, actor, def.MarketID); err != nil {
		return nil, err
	}

	if input.Key != nil {
		key, err := normalizeKey(*input.Key)
		if err != nil {
			return nil, err
		}
		def.Key = key
	}
	if input.Label != nil {
		def.Label = strings.TrimSpace(*input.Label)
	}
	if input.Description != nil {
		def.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		if !domain.ValidFormCategories[*input.Category] {
			return nil, domain.ErrInvalidCategory
		}
		def.Category = *input.Category
	}
	if input.Periodicity != nil {
		p, err := period.ParsePeriodicity(*input.Periodicity)
		if err != nil {
			return nil, domain.ErrInvalidPeriodicity
		}
		def.Periodicity = p
	}
	if input.RequiredEntries != nil {
		if *input.RequiredEntries < 1 {
			return nil, domain.ErrInvalidRequiredEntries
		}
		def.RequiredEntries = *input.RequiredEntries
	}
	if input.Fields != nil {
		fields, err := normalizeFields(input.Fields)
		if err != nil {
			return nil, err
		}
		def.Fields = fields
	}
	if input.ClearSection {
		def.SectionID = nil
	} else if input.SectionID != nil {
		if err := s.checkSection(ctx, actor.TenantID, input.SectionID, def.MarketID); err != nil {
			return nil, err
		}
		def.SectionID = input.SectionID
	}
	if input.SortOrder != nil {
		def.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		def.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}

func (s *formDefinitionService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	def, err := s.repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}
	if err := s.rbac.AuthorizeScope(ctx, actor, def.MarketID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, actor.TenantID, id)
}
