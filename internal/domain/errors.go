package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrTenantInactive         = errors.New("tenant is inactive")
	ErrStaffInactive          = errors.New("staff profile is inactive")
	ErrDuplicateTenantSlug    = errors.New("tenant slug already exists")
	ErrDuplicateMarketCode    = errors.New("market code already exists for this tenant")
	ErrDuplicateKey           = errors.New("key already exists in this scope")
	ErrDuplicateAssignment    = errors.New("role assignment already exists")
	ErrDuplicateSignature     = errors.New("initials and PIN combination is already in use")
	ErrMarketRequired         = errors.New("a market must be selected")
	ErrMarketNotAccessible    = errors.New("market is not accessible for this staff member")
	ErrMarketInactive         = errors.New("market is inactive")
	ErrInvalidPIN             = errors.New("PIN must consist of 4 to 6 digits")
	ErrInvalidInitials        = errors.New("initials must consist of 2 to 4 letters")
	ErrInvalidSignature       = errors.New("initials and PIN do not match an active staff member")
	ErrInvalidRole            = errors.New("invalid role")
	ErrInvalidPeriodicity     = errors.New("invalid periodicity")
	ErrInvalidPeriodRef       = errors.New("invalid period reference")
	ErrInvalidCategory        = errors.New("invalid form category")
	ErrInvalidFieldSchema     = errors.New("invalid form field definition")
	ErrInvalidEntryData       = errors.New("entry data does not match the form fields")
	ErrCorrectiveActionNeeded = errors.New("a corrective action is required for out-of-range values")
	ErrFormInactive           = errors.New("form definition is inactive")
	ErrFutureEntry            = errors.New("entries cannot be dated in the future")
	ErrEntryTooOld            = errors.New("entry date is older than the allowed backdating window")
	ErrSelfRevoke             = errors.New("cannot revoke your own superadmin assignment")
	ErrStaffReferenced        = errors.New("staff profile has signed entries; deactivate it instead")
	ErrMarketReferenced       = errors.New("market has staff or documentation; deactivate it instead")
	ErrFormReferenced         = errors.New("form definition has documentation; deactivate it instead")
	ErrScopeMismatch          = errors.New("section and form must share the same market scope")
	ErrInvalidTimezone        = errors.New("invalid timezone")
	ErrInvalidKey             = errors.New("key must be lower-case letters, digits, '-' or '_'")
	ErrInvalidRequiredEntries = errors.New("required entries must be at least 1")
	ErrInvalidDate            = errors.New("dates must use the YYYY-MM-DD format")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed           = errors.New("file upload to storage failed")
)
