package domain

import "haccp/internal/period"

// Role is an RBAC role. Staff without an assignment act with RoleStaff.
type Role string

const (
	RoleStaff      Role = "STAFF"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// AssignableRoles are the roles that can be granted through an RbacAssignment.
var AssignableRoles = map[Role]bool{
	RoleAdmin:      true,
	RoleSuperAdmin: true,
}

// Satisfies reports whether r carries at least the rights of required.
func (r Role) Satisfies(required Role) bool {
	return roleRank[r] >= roleRank[required]
}

var roleRank = map[Role]int{
	RoleStaff:      1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// FormCategory groups form definitions by the kind of check they document.
type FormCategory string

const (
	CategoryCleaning     FormCategory = "CLEANING"
	CategoryTemperature  FormCategory = "TEMPERATURE"
	CategoryGoodsReceipt FormCategory = "GOODS_RECEIPT"
	CategoryOther        FormCategory = "OTHER"
)

// ValidFormCategories is the allow-list of categories.
var ValidFormCategories = map[FormCategory]bool{
	CategoryCleaning:     true,
	CategoryTemperature:  true,
	CategoryGoodsReceipt: true,
	CategoryOther:        true,
}

// InstanceStatus tracks whether a period's documentation is complete.
type InstanceStatus string

const (
	InstanceOpen      InstanceStatus = "OPEN"
	InstanceCompleted InstanceStatus = "COMPLETED"
)

// Periodicity re-exports the period package's type for entity fields.
type Periodicity = period.Periodicity

// FileType represents the allowed attachment types.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// FileStatus represents the lifecycle of an uploaded attachment.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
)
