package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"haccp/internal/config"
	"haccp/internal/domain"
	"haccp/internal/port"
)

// Claims represents the JWT claims with tenant and market context.
type Claims struct {
	jwt.RegisteredClaims
	TenantID uuid.UUID   `json:"tenant_id"`
	StaffID  uuid.UUID   `json:"staff_id"`
	MarketID uuid.UUID   `json:"market_id"`
	Initials string      `json:"initials"`
	Role     domain.Role `json:"role"`
}

// TokenPair holds access and refresh tokens.
type TokenPair struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresAt    time.Time   `json:"expires_at"`
	MarketID     uuid.UUID   `json:"market_id"`
	Role         domain.Role `json:"role"`
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	TenantSlug string     `json:"tenant_slug" binding:"required"`
	Initials   string     `json:"initials" binding:"required"`
	PIN        string     `json:"pin" binding:"required"`
	MarketID   *uuid.UUID `json:"market_id"`
}

// RefreshInput is the DTO for token refresh requests.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SwitchMarketInput is the DTO for selecting another market.
type SwitchMarketInput struct {
	MarketID uuid.UUID `json:"market_id" binding:"required"`
}

// MeResult describes the authenticated caller.
type MeResult struct {
	Staff       *domain.StaffProfile    `json:"staff"`
	Tenant      *domain.Tenant          `json:"tenant"`
	Market      *domain.Market          `json:"market"`
	Role        domain.Role             `json:"role"`
	Markets     []domain.Market         `json:"markets"`
	Assignments []domain.RbacAssignment `json:"assignments"`
}

// AuthService defines the authentication contract.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ValidateToken(tokenString string) (*Claims, error)
	SwitchMarket(ctx context.Context, actor domain.Actor, marketID uuid.UUID) (*TokenPair, error)
	Me(ctx context.Context, actor domain.Actor) (*MeResult, error)
}

type authService struct {
	tenantRepo   port.TenantRepository
	staffRepo    port.StaffRepository
	myMarketRepo port.MyMarketRepository
	markets      MarketService
	rbac         RbacService
	cfg          config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(
	tenantRepo port.TenantRepository,
	staffRepo port.StaffRepository,
	myMarketRepo port.MyMarketRepository,
	markets MarketService,
	rbac RbacService,
	cfg config.JWTConfig,
) AuthService {
	return &authService{
		tenantRepo:   tenantRepo,
		staffRepo:    staffRepo,
		myMarketRepo: myMarketRepo,
		markets:      markets,
		rbac:         rbac,
		cfg:          cfg,
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*TokenPair, error) {
	tenant, err := s.tenantRepo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(input.TenantSlug)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if !tenant.IsActive {
		return nil, domain.ErrTenantInactive
	}

	initials, err := domain.NormalizeInitials(input.Initials)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if domain.ValidatePIN(input.PIN) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	candidates, err := s.staffRepo.ListActiveByInitials(ctx, tenant.ID, initials)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	var matches []*domain.StaffProfile
	for i := range candidates {
		if pinMatches(candidates[i].PinHash, input.PIN) {
			matches = append(matches, &candidates[i])
		}
	}
	if len(matches) == 0 {
		return nil, domain.ErrInvalidCredentials
	}

	var (
		staff  *domain.StaffProfile
		market *domain.Market
	)
	if input.MarketID != nil {
		staff, market, err = s.pickForMarket(ctx, matches, *input.MarketID)
		if err != nil {
			return nil, err
		}
	} else {
		if len(matches) > 1 {
			// Same signature in disjoint markets; the market disambiguates.
			return nil, domain.ErrMarketRequired
		}
		staff = matches[0]
		market, err = s.resolveMarket(ctx, staff)
		if err != nil {
			return nil, err
		}
	}
	if err := s.myMarketRepo.Set(ctx, &domain.MyMarket{
		StaffID:  staff.ID,
		TenantID: staff.TenantID,
		MarketID: market.ID,
	}); err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	return s.issue(ctx, staff, market.ID)
}

// pickForMarket narrows the signature matches to the staff members allowed
// to select marketID. When none qualifies the last rejection is returned.
func (s *authService) pickForMarket(ctx context.Context, matches []*domain.StaffProfile, marketID uuid.UUID) (*domain.StaffProfile, *domain.Market, error) {
	var (
		staff   *domain.StaffProfile
		market  *domain.Market
		lastErr error
		found   int
	)
	for _, m := range matches {
		mk, err := s.markets.CheckSelectable(ctx, m.TenantID, m.ID, marketID)
		switch {
		case err == nil:
			staff, market = m, mk
			found++
		case errors.Is(err, domain.ErrMarketNotAccessible), errors.Is(err, domain.ErrMarketInactive):
			lastErr = err
		case errors.Is(err, domain.ErrNotFound):
			lastErr = domain.ErrMarketNotAccessible
		default:
			return nil, nil, err
		}
	}
	switch {
	case found == 0:
		return nil, nil, lastErr
	case found > 1:
		return nil, nil, domain.ErrMarketRequired
	}
	return staff, market, nil
}

// resolveMarket picks the selected market when none was requested: the stored
// selection, else the home market, else the first selectable market.
func (s *authService) resolveMarket(ctx context.Context, staff *domain.StaffProfile) (*domain.Market, error) {
	stored, err := s.myMarketRepo.Get(ctx, staff.TenantID, staff.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.resolveMarket: %w", err)
	}
	if stored != nil {
		if m, err := s.markets.CheckSelectable(ctx, staff.TenantID, staff.ID, stored.MarketID); err == nil {
			return m, nil
		}
	}

	if staff.MarketID != nil {
		if m, err := s.markets.CheckSelectable(ctx, staff.TenantID, staff.ID, *staff.MarketID); err == nil {
			return m, nil
		}
	}

	selectable, err := s.markets.ListSelectable(ctx, staff.TenantID, staff.ID)
	if err != nil {
		return nil, err
	}
	if len(selectable) == 0 {
		return nil, domain.ErrMarketRequired
	}
	return &selectable[0], nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateTokenString(refreshToken, "refresh")
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	tenant, err := s.tenantRepo.GetByID(ctx, claims.TenantID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !tenant.IsActive {
		return nil, domain.ErrTenantInactive
	}

	staff, err := s.staffRepo.GetByID(ctx, claims.TenantID, claims.StaffID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !staff.IsActive {
		return nil, domain.ErrStaffInactive
	}
	if _, err := s.markets.CheckSelectable(ctx, staff.TenantID, staff.ID, claims.MarketID); err != nil {
		return nil, err
	}

	return s.issue(ctx, staff, claims.MarketID)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	return s.validateTokenString(tokenString, "access")
}

func (s *authService) SwitchMarket(ctx context.Context, actor domain.Actor, marketID uuid.UUID) (*TokenPair, error) {
	staff, err := s.staffRepo.GetByID(ctx, actor.TenantID, actor.StaffID)
	if err != nil {
		return nil, err
	}
	if !staff.IsActive {
		return nil, domain.ErrStaffInactive
	}
	market, err := s.markets.CheckSelectable(ctx, actor.TenantID, actor.StaffID, marketID)
	if err != nil {
		return nil, err
	}
	if err := s.myMarketRepo.Set(ctx, &domain.MyMarket{
		StaffID:  staff.ID,
		TenantID: staff.TenantID,
		MarketID: market.ID,
	}); err != nil {
		return nil, fmt.Errorf("auth.SwitchMarket: %w", err)
	}
	return s.issue(ctx, staff, market.ID)
}

func (s *authService) Me(ctx context.Context, actor domain.Actor) (*MeResult, error) {
	staff, err := s.staffRepo.GetByID(ctx, actor.TenantID, actor.StaffID)
	if err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.GetByID(ctx, actor.TenantID)
	if err != nil {
		return nil, err
	}
	markets, err := s.markets.ListSelectable(ctx, actor.TenantID, actor.StaffID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.rbac.ListByStaff(ctx, actor.TenantID, actor.StaffID)
	if err != nil {
		return nil, err
	}

	res := &MeResult{
		Staff:       staff,
		Tenant:      tenant,
		Role:        actor.Role,
		Markets:     markets,
		Assignments: assignments,
	}
	for i := range markets {
		if markets[i].ID == actor.MarketID {
			res.Market = &markets[i]
			break
		}
	}
	return res, nil
}

func (s *authService) issue(ctx context.Context, staff *domain.StaffProfile, marketID uuid.UUID) (*TokenPair, error) {
	role, err := s.rbac.EffectiveRole(ctx, staff.TenantID, staff.ID, marketID)
	if err != nil {
		return nil, err
	}
	return s.generateTokenPair(staff, marketID, role)
}

func (s *authService) generateTokenPair(staff *domain.StaffProfile, marketID uuid.UUID, role domain.Role) (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.cfg.AccessTokenExpiry)
	refreshExpiry := now.Add(s.cfg.RefreshTokenExpiry)

	accessToken, err := s.sign(staff, marketID, role, "access", now, accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	refreshToken, err := s.sign(staff, marketID, role, "refresh", now, refreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiry,
		MarketID:     marketID,
		Role:         role,
	}, nil
}

func (s *authService) sign(staff *domain.StaffProfile, marketID uuid.UUID, role domain.Role, audience string, now, expiry time.Time) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   staff.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{audience},
		},
		TenantID: staff.TenantID,
		StaffID:  staff.ID,
		MarketID: marketID,
		Initials: staff.Initials,
		Role:     role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *authService) validateTokenString(tokenString, audience string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithAudience(audience))
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
