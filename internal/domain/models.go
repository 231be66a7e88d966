package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Tenant is the top-level customer partition.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	Timezone  string    `db:"timezone" json:"timezone"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Market is a single store location within a tenant.
type Market struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	Address   string    `db:"address" json:"address"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StaffProfile is a person who signs entries with initials and PIN.
// A nil MarketID makes the profile valid in every market of the tenant.
type StaffProfile struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	TenantID     uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	MarketID     *uuid.UUID `db:"market_id" json:"market_id"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	Initials     string     `db:"initials" json:"initials"`
	PinHash      string     `db:"pin_hash" json:"-"`
	Email        *string    `db:"email" json:"email"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	PinChangedAt time.Time  `db:"pin_changed_at" json:"pin_changed_at"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName returns "First Last".
func (s *StaffProfile) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// RbacAssignment grants a staff member a role, optionally limited to one market.
type RbacAssignment struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	TenantID  uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	StaffID   uuid.UUID  `db:"staff_id" json:"staff_id"`
	Role      Role       `db:"role" json:"role"`
	MarketID  *uuid.UUID `db:"market_id" json:"market_id"`
	GrantedBy *uuid.UUID `db:"granted_by" json:"granted_by"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// MyMarket is the market a staff member last selected.
type MyMarket struct {
	StaffID   uuid.UUID `db:"staff_id" json:"staff_id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	MarketID  uuid.UUID `db:"market_id" json:"market_id"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DokuSection groups form definitions in the Dokumentation area.
type DokuSection struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	TenantID    uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	MarketID    *uuid.UUID `db:"market_id" json:"market_id"`
	Key         string     `db:"key" json:"key"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	SortOrder   int        `db:"sort_order" json:"sort_order"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// FormDefinition describes a recurring documentation task.
type FormDefinition struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	TenantID        uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	MarketID        *uuid.UUID      `db:"market_id" json:"market_id"`
	SectionID       *uuid.UUID      `db:"section_id" json:"section_id"`
	Key             string          `db:"key" json:"key"`
	Label           string          `db:"label" json:"label"`
	Description     string          `db:"description" json:"description"`
	Category        FormCategory    `db:"category" json:"category"`
	Periodicity     Periodicity     `db:"periodicity" json:"periodicity"`
	RequiredEntries int             `db:"required_entries" json:"required_entries"`
	Fields          json.RawMessage `db:"fields" json:"fields"`
	SortOrder       int             `db:"sort_order" json:"sort_order"`
	IsActive        bool            `db:"is_active" json:"is_active"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// FormInstance is one period's container for a form definition in a market.
type FormInstance struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	TenantID         uuid.UUID      `db:"tenant_id" json:"tenant_id"`
	FormDefinitionID uuid.UUID      `db:"form_definition_id" json:"form_definition_id"`
	MarketID         uuid.UUID      `db:"market_id" json:"market_id"`
	PeriodRef        string         `db:"period_ref" json:"period_ref"`
	PeriodStart      time.Time      `db:"period_start" json:"period_start"`
	PeriodEnd        time.Time      `db:"period_end" json:"period_end"`
	Status           InstanceStatus `db:"status" json:"status"`
	EntryCount       int            `db:"entry_count" json:"entry_count"`
	CompletedAt      *time.Time     `db:"completed_at" json:"completed_at"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// FormEntry is a single dated, signed record inside an instance.
type FormEntry struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	TenantID         uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	FormInstanceID   uuid.UUID       `db:"form_instance_id" json:"form_instance_id"`
	EntryDate        time.Time       `db:"entry_date" json:"entry_date"`
	Data             json.RawMessage `db:"data" json:"data"`
	Deviation        bool            `db:"deviation" json:"deviation"`
	CorrectiveAction string          `db:"corrective_action" json:"corrective_action"`
	SignedBy         uuid.UUID       `db:"signed_by" json:"signed_by"`
	SignerInitials   string          `db:"signer_initials" json:"signer_initials"`
	SignedAt         time.Time       `db:"signed_at" json:"signed_at"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}

// EntryAttachment is a file (delivery note, photo) attached to an entry.
type EntryAttachment struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	TenantID    uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	FormEntryID uuid.UUID  `db:"form_entry_id" json:"form_entry_id"`
	FileName    string     `db:"file_name" json:"file_name"`
	FileType    FileType   `db:"file_type" json:"file_type"`
	ContentType string     `db:"content_type" json:"content_type"`
	FileSize    int64      `db:"file_size" json:"file_size"`
	S3Bucket    string     `db:"s3_bucket" json:"-"`
	S3Key       string     `db:"s3_key" json:"-"`
	Status      FileStatus `db:"status" json:"status"`
	UploadedBy  uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// InstanceStatusRow is a lightweight projection used by the Dokumentation views.
type InstanceStatusRow struct {
	FormDefinitionID uuid.UUID      `db:"form_definition_id"`
	PeriodRef        string         `db:"period_ref"`
	Status           InstanceStatus `db:"status"`
	EntryCount       int            `db:"entry_count"`
}

// MissedCheck identifies a period for which a form was not completed.
type MissedCheck struct {
	TenantID  uuid.UUID `db:"tenant_id"`
	MarketID  uuid.UUID `db:"market_id"`
	FormID    uuid.UUID `db:"form_definition_id"`
	FormLabel string    `db:"-"`
	PeriodRef string    `db:"period_ref"`
	Label     string    `db:"-"`
}

// EntryRow is an entry joined with its instance's form and period.
type EntryRow struct {
	FormEntry
	FormDefinitionID uuid.UUID `db:"form_definition_id" json:"form_definition_id"`
	PeriodRef        string    `db:"period_ref" json:"period_ref"`
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	TenantID uuid.UUID
	StaffID  uuid.UUID
	MarketID uuid.UUID
	Role     Role
}

// IsSuperAdmin reports whether the actor acts with tenant-wide rights.
func (a Actor) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}
