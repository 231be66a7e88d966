package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"haccp/internal/domain"
)

// TenantRepository defines the contract for tenant persistence.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error)
	ListActive(ctx context.Context) ([]domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MarketRepository defines the contract for market persistence.
// All query methods include tenantID to enforce tenant isolation at the data layer.
type MarketRepository interface {
	Create(ctx context.Context, market *domain.Market) error
	GetByID(ctx context.Context, tenantID, marketID uuid.UUID) (*domain.Market, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]domain.Market, error)
	Update(ctx context.Context, market *domain.Market) error
	Delete(ctx context.Context, tenantID, marketID uuid.UUID) error
}

// StaffFilter narrows staff listings. A nil MarketID lists every profile.
type StaffFilter struct {
	MarketID   *uuid.UUID
	ActiveOnly bool
	Offset     int
	Limit      int
}

// StaffRepository defines the contract for staff profile persistence.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffProfile) error
	GetByID(ctx context.Context, tenantID, staffID uuid.UUID) (*domain.StaffProfile, error)
	List(ctx context.Context, tenantID uuid.UUID, filter StaffFilter) ([]domain.StaffProfile, int, error)
	// ListActiveByInitials returns active profiles with the given initials in any market.
	ListActiveByInitials(ctx context.Context, tenantID uuid.UUID, initials string) ([]domain.StaffProfile, error)
	// ListSignatureCandidates returns active profiles with the given initials whose
	// scope is global or equals marketID.
	ListSignatureCandidates(ctx context.Context, tenantID, marketID uuid.UUID, initials string) ([]domain.StaffProfile, error)
	// ListMarketAdmins returns active profiles with an email that administer marketID.
	ListMarketAdmins(ctx context.Context, tenantID, marketID uuid.UUID) ([]domain.StaffProfile, error)
	Update(ctx context.Context, staff *domain.StaffProfile) error
	UpdatePIN(ctx context.Context, tenantID, staffID uuid.UUID, pinHash string) error
	Delete(ctx context.Context, tenantID, staffID uuid.UUID) error
}

// RbacRepository defines the contract for role assignment persistence.
type RbacRepository interface {
	Create(ctx context.Context, a *domain.RbacAssignment) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.RbacAssignment, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.RbacAssignment, error)
	ListByStaff(ctx context.Context, tenantID, staffID uuid.UUID) ([]domain.RbacAssignment, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// MyMarketRepository stores each staff member's selected market.
type MyMarketRepository interface {
	Get(ctx context.Context, tenantID, staffID uuid.UUID) (*domain.MyMarket, error)
	Set(ctx context.Context, m *domain.MyMarket) error
}

// DokuSectionFilter narrows section listings. VisibleIn applies the
// global-or-market visibility rule when set.
type DokuSectionFilter struct {
	VisibleIn  *uuid.UUID
	ActiveOnly bool
}

// DokuSectionRepository defines the contract for documentation section persistence.
type DokuSectionRepository interface {
	Create(ctx context.Context, s *domain.DokuSection) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.DokuSection, error)
	List(ctx context.Context, tenantID uuid.UUID, filter DokuSectionFilter) ([]domain.DokuSection, error)
	Update(ctx context.Context, s *domain.DokuSection) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// FormDefinitionFilter narrows form definition listings.
type FormDefinitionFilter struct {
	VisibleIn  *uuid.UUID
	SectionID  *uuid.UUID
	Category   domain.FormCategory
	ActiveOnly bool
}

// FormDefinitionRepository defines the contract for form definition persistence.
type FormDefinitionRepository interface {
	Create(ctx context.Context, def *domain.FormDefinition) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.FormDefinition, error)
	List(ctx context.Context, tenantID uuid.UUID, filter FormDefinitionFilter) ([]domain.FormDefinition, error)
	Update(ctx context.Context, def *domain.FormDefinition) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// FormInstanceRepository defines the contract for period container reads.
// Instances are created together with their first entry, see FormEntryRepository.
type FormInstanceRepository interface {
	GetByRef(ctx context.Context, tenantID, formID, marketID uuid.UUID, periodRef string) (*domain.FormInstance, error)
	// ListStatusInRange returns the status of every instance of marketID whose
	// period intersects [from, to).
	ListStatusInRange(ctx context.Context, tenantID, marketID uuid.UUID, from, to time.Time) ([]domain.InstanceStatusRow, error)
}

// FormEntryRepository defines the contract for entry persistence.
type FormEntryRepository interface {
	// CreateSigned upserts the instance identified by inst's form, market and
	// period, inserts entry into it and completes the instance once required
	// entries exist. inst and entry are updated in place.
	CreateSigned(ctx context.Context, inst *domain.FormInstance, entry *domain.FormEntry, required int) error
	GetByID(ctx context.Context, tenantID, entryID uuid.UUID) (*domain.FormEntry, error)
	// GetInMarket returns the entry only when its instance belongs to marketID.
	GetInMarket(ctx context.Context, tenantID, marketID, entryID uuid.UUID) (*domain.FormEntry, error)
	ListByInstance(ctx context.Context, tenantID, instanceID uuid.UUID) ([]domain.FormEntry, error)
	// ListInRange returns the entries of marketID dated within [from, to).
	ListInRange(ctx context.Context, tenantID, marketID uuid.UUID, from, to time.Time) ([]domain.EntryRow, error)
}

// AttachmentRepository defines the contract for entry attachment metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, a *domain.EntryAttachment) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.EntryAttachment, error)
	ListByEntry(ctx context.Context, tenantID, entryID uuid.UUID) ([]domain.EntryAttachment, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// ReminderRepository records which missed checks were already reported.
type ReminderRepository interface {
	// MarkSent records the check and reports whether it was new.
	MarkSent(ctx context.Context, check domain.MissedCheck) (bool, error)
}
