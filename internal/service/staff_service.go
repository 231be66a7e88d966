package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"haccp/internal/domain"
	"haccp/internal/port"
)

// CreateStaffInput is the DTO for creating a staff profile.
type CreateStaffInput struct {
	FirstName string     `json:"first_name" binding:"required"`
	LastName  string     `json:"last_name"`
	Initials  string     `json:"initials" binding:"required"`
	PIN       string     `json:"pin" binding:"required"`
	MarketID  *uuid.UUID `json:"market_id"`
	Email     *string    `json:"email" binding:"omitempty,email"`
}

// UpdateStaffInput is the DTO for updating a staff profile. Changing initials
// or scope, or reactivating a profile, requires PIN so the signature can be
// re-checked for ambiguity.
type UpdateStaffInput struct {
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Initials    *string    `json:"initials"`
	MarketID    *uuid.UUID `json:"market_id"`
	ClearMarket bool       `json:"clear_market"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	IsActive    *bool      `json:"is_active"`
	PIN         *string    `json:"pin"`
}

// ListStaffInput filters staff listings.
type ListStaffInput struct {
	MarketID   *uuid.UUID
	ActiveOnly bool
	Offset     int
	Limit      int
}

// StaffService defines the staff administration contract.
type StaffService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateStaffInput) (*domain.StaffProfile, error)
	GetByID(ctx context.Context, actor domain.Actor, staffID uuid.UUID) (*domain.StaffProfile, error)
	List(ctx context.Context, actor domain.Actor, input ListStaffInput) ([]domain.StaffProfile, int, error)
	Update(ctx context.Context, actor domain.Actor, staffID uuid.UUID, input UpdateStaffInput) (*domain.StaffProfile, error)
	ResetPIN(ctx context.Context, actor domain.Actor, staffID uuid.UUID, pin string) error
	ChangeOwnPIN(ctx context.Context, actor domain.Actor, currentPIN, newPIN string) error
	Delete(ctx context.Context, actor domain.Actor, staffID uuid.UUID) error
	// VerifySignature resolves initials and PIN to the active staff member
	// allowed to sign in marketID.
	VerifySignature(ctx context.Context, tenantID, marketID uuid.UUID, initials, pin string) (*domain.StaffProfile, error)
}

type staffService struct {
	repo       port.StaffRepository
	marketRepo port.MarketRepository
	rbac       RbacService
}

// NewStaffService creates a new StaffService implementation.
func NewStaffService(repo port.StaffRepository, marketRepo port.MarketRepository, rbac RbacService) StaffService {
	return &staffService{repo: repo, marketRepo: marketRepo, rbac: rbac}
}

// HashPIN validates and bcrypt-hashes a PIN.
func HashPIN(pin string) (string, error) {
	if err := domain.ValidatePIN(pin); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing PIN: %w", err)
	}
	return string(hash), nil
}

func pinMatches(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

func (s *staffService) Create(ctx context.Context, actor domain.Actor, input CreateStaffInput) (*domain.StaffProfile, error) {
	initials, err := domain.NormalizeInitials(input.Initials)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePIN(input.PIN); err != nil {
		return nil, err
	}
	if err := s.rbac.AuthorizeScope(ctx, actor, input.MarketID); err != nil {
		return nil, err
	}
	if err := s.checkMarket(ctx, actor.TenantID, input.MarketID); err != nil {
		return nil, err
	}
	if err := s.checkSignatureFree(ctx, actor.TenantID, uuid.Nil, input.MarketID, initials, input.PIN); err != nil {
		return nil, err
	}

	hash, err := HashPIN(input.PIN)
	if err != nil {
		return nil, err
	}
	staff := &domain.StaffProfile{
		TenantID:  actor.TenantID,
		MarketID:  input.MarketID,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Initials:  initials,
		PinHash:   hash,
		Email:     normalizeEmail(input.Email),
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *staffService) GetByID(ctx context.Context, actor domain.Actor, staffID uuid.UUID) (*domain.StaffProfile, error) {
	staff, err := s.repo.GetByID(ctx, actor.TenantID, staffID)
	if err != nil {
		return nil, err
	}
	if !actor.IsSuperAdmin() && !domain.VisibleIn(staff.MarketID, actor.MarketID) {
		return nil, domain.ErrNotFound
	}
	return staff, nil
}

func (s *staffService) List(ctx context.Context, actor domain.Actor, input ListStaffInput) ([]domain.StaffProfile, int, error) {
	filter := port.StaffFilter{
		MarketID:   input.MarketID,
		ActiveOnly: input.ActiveOnly,
		Offset:     input.Offset,
		Limit:      input.Limit,
	}
	if !actor.IsSuperAdmin() {
		marketID := actor.MarketID
		filter.MarketID = &marketID
	}
	return s.repo.List(ctx, actor.TenantID, filter)
}

func (s *staffService) Update(ctx context.Context, actor domain.Actor, staffID uuid.UUID, input UpdateStaffInput) (*domain.StaffProfile, error) {
	staff, err := s.repo.GetByID(ctx, actor.TenantID, staffID)
	if err != nil {
		return nil, err
	}
	if err := s.rbac.AuthorizeScope(ctx, actor, staff.MarketID); err != nil {
		return nil, err
	}

	recheck := false
	if input.FirstName != nil {
		staff.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		staff.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Initials != nil {
		initials, err := domain.NormalizeInitials(*input.Initials)
		if err != nil {
			return nil, err
		}
		recheck = recheck || initials != staff.Initials
		staff.Initials = initials
	}
	if input.ClearMarket || input.MarketID != nil {
		newScope := input.MarketID
		if input.ClearMarket {
			newScope = nil
		}
		if err := s.rbac.AuthorizeScope(ctx, actor, newScope); err != nil {
			return nil, err
		}
		if err := s.checkMarket(ctx, actor.TenantID, newScope); err != nil {
			return nil, err
		}
		recheck = recheck || !sameScope(staff.MarketID, newScope)
		staff.MarketID = newScope
	}
	if input.Email != nil {
		staff.Email = normalizeEmail(input.Email)
	}
	if input.IsActive != nil {
		recheck = recheck || (*input.IsActive && !staff.IsActive)
		staff.IsActive = *input.IsActive
	}

	if recheck && staff.IsActive {
		if input.PIN == nil {
			return nil, domain.ErrInvalidPIN
		}
		if err := domain.ValidatePIN(*input.PIN); err != nil {
			return nil, err
		}
		if err := s.checkSignatureFree(ctx, actor.TenantID, staff.ID, staff.MarketID, staff.Initials, *input.PIN); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, staff); err != nil {
		return nil, err
	}
	if recheck && staff.IsActive {
		hash, err := HashPIN(*input.PIN)
		if err != nil {
			return nil, err
		}
		if err := s.repo.UpdatePIN(ctx, actor.TenantID, staff.ID, hash); err != nil {
			return nil, err
		}
		staff.PinHash = hash
	}
	return staff, nil
}

func (s *staffService) ResetPIN(ctx context.Context, actor domain.Actor, staffID uuid.UUID, pin string) error {
	if err := domain.ValidatePIN(pin); err != nil {
		return err
	}
	staff, err := s.repo.GetByID(ctx, actor.TenantID, staffID)
	if err != nil {
		return err
	}
	if err := s.rbac.AuthorizeScope(ctx, actor, staff.MarketID); err != nil {
		return err
	}
	return s.setPIN(ctx, staff, pin)
}

func (s *staffService) ChangeOwnPIN(ctx context.Context, actor domain.Actor, currentPIN, newPIN string) error {
	if err := domain.ValidatePIN(newPIN); err != nil {
		return err
	}
	staff, err := s.repo.GetByID(ctx, actor.TenantID, actor.StaffID)
	if err != nil {
		return err
	}
	if !pinMatches(staff.PinHash, currentPIN) {
		return domain.ErrInvalidCredentials
	}
	return s.setPIN(ctx, staff, newPIN)
}

func (s *staffService) setPIN(ctx context.Context, staff *domain.StaffProfile, pin string) error {
	if staff.IsActive {
		if err := s.checkSignatureFree(ctx, staff.TenantID, staff.ID, staff.MarketID, staff.Initials, pin); err != nil {
			return err
		}
	}
	hash, err := HashPIN(pin)
	if err != nil {
		return err
	}
	return s.repo.UpdatePIN(ctx, staff.TenantID, staff.ID, hash)
}

func (s *staffService) Delete(ctx context.Context, actor domain.Actor, staffID uuid.UUID) error {
	if staffID == actor.StaffID {
		return domain.ErrForbidden
	}
	staff, err := s.repo.GetByID(ctx, actor.TenantID, staffID)
	if err != nil {
		return err
	}
	if err := s.rbac.AuthorizeScope(ctx, actor, staff.MarketID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, actor.TenantID, staffID)
}

func (s *staffService) VerifySignature(ctx context.Context, tenantID, marketID uuid.UUID, initials, pin string) (*domain.StaffProfile, error) {
	norm, err := domain.NormalizeInitials(initials)
	if err != nil {
		return nil, domain.ErrInvalidSignature
	}
	if domain.ValidatePIN(pin) != nil {
		return nil, domain.ErrInvalidSignature
	}
	candidates, err := s.repo.ListSignatureCandidates(ctx, tenantID, marketID, norm)
	if err != nil {
		return nil, fmt.Errorf("staff.VerifySignature: %w", err)
	}
	for i := range candidates {
		if pinMatches(candidates[i].PinHash, pin) {
			return &candidates[i], nil
		}
	}
	return nil, domain.ErrInvalidSignature
}

// checkSignatureFree fails when another active profile with the same initials
// and an overlapping scope already verifies pin.
func (s *staffService) checkSignatureFree(ctx context.Context, tenantID, selfID uuid.UUID, scope *uuid.UUID, initials, pin string) error {
	others, err := s.repo.ListActiveByInitials(ctx, tenantID, initials)
	if err != nil {
		return fmt.Errorf("staff.checkSignatureFree: %w", err)
	}
	for i := range others {
		o := &others[i]
		if o.ID == selfID || !domain.ScopesOverlap(o.MarketID, scope) {
			continue
		}
		if pinMatches(o.PinHash, pin) {
			return domain.ErrDuplicateSignature
		}
	}
	return nil
}

func (s *staffService) checkMarket(ctx context.Context, tenantID uuid.UUID, marketID *uuid.UUID) error {
	if marketID == nil {
		return nil
	}
	_, err := s.marketRepo.GetByID(ctx, tenantID, *marketID)
	return err
}

func sameScope(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	e := strings.ToLower(strings.TrimSpace(*email))
	if e == "" {
		return nil
	}
	return &e
}
