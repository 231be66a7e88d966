package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"haccp/internal/domain"
	"haccp/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrTenantInactive):
		return http.StatusForbidden, "TENANT_INACTIVE", "tenant is inactive"
	case errors.Is(err, domain.ErrStaffInactive):
		return http.StatusForbidden, "STAFF_INACTIVE", "staff profile is inactive"
	case errors.Is(err, domain.ErrDuplicateTenantSlug):
		return http.StatusConflict, "DUPLICATE_SLUG", "tenant slug already exists"
	case errors.Is(err, domain.ErrDuplicateMarketCode):
		return http.StatusConflict, "DUPLICATE_MARKET_CODE", "market code already exists for this tenant"
	case errors.Is(err, domain.ErrDuplicateKey):
		return http.StatusConflict, "DUPLICATE_KEY", "key already exists in this scope"
	case errors.Is(err, domain.ErrDuplicateAssignment):
		return http.StatusConflict, "DUPLICATE_ASSIGNMENT", "role assignment already exists"
	case errors.Is(err, domain.ErrDuplicateSignature):
		return http.StatusConflict, "DUPLICATE_SIGNATURE", "initials and PIN combination is already in use"
	case errors.Is(err, domain.ErrMarketRequired):
		return http.StatusConflict, "MARKET_REQUIRED", "a market must be selected"
	case errors.Is(err, domain.ErrMarketNotAccessible):
		return http.StatusForbidden, "MARKET_NOT_ACCESSIBLE", "market is not accessible"
	case errors.Is(err, domain.ErrMarketInactive):
		return http.StatusForbidden, "MARKET_INACTIVE", "market is inactive"
	case errors.Is(err, domain.ErrInvalidPIN):
		return http.StatusBadRequest, "INVALID_PIN", "PIN must consist of 4 to 6 digits"
	case errors.Is(err, domain.ErrInvalidInitials):
		return http.StatusBadRequest, "INVALID_INITIALS", "initials must consist of 2 to 4 letters"
	case errors.Is(err, domain.ErrInvalidSignature):
		return http.StatusUnauthorized, "INVALID_SIGNATURE", "initials and PIN do not match an active staff member"
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "INVALID_ROLE", "invalid role; allowed: ADMIN, SUPERADMIN"
	case errors.Is(err, domain.ErrInvalidPeriodicity):
		return http.StatusBadRequest, "INVALID_PERIODICITY", "invalid periodicity"
	case errors.Is(err, domain.ErrInvalidPeriodRef):
		return http.StatusBadRequest, "INVALID_PERIOD_REF", "invalid period reference"
	case errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest, "INVALID_CATEGORY", "invalid form category"
	case errors.Is(err, domain.ErrInvalidFieldSchema):
		return http.StatusBadRequest, "INVALID_FIELD_SCHEMA", err.Error()
	case errors.Is(err, domain.ErrInvalidEntryData):
		return http.StatusBadRequest, "INVALID_ENTRY_DATA", err.Error()
	case errors.Is(err, domain.ErrCorrectiveActionNeeded):
		return http.StatusUnprocessableEntity, "CORRECTIVE_ACTION_REQUIRED", err.Error()
	case errors.Is(err, domain.ErrFormInactive):
		return http.StatusConflict, "FORM_INACTIVE", "form definition is inactive"
	case errors.Is(err, domain.ErrFutureEntry):
		return http.StatusBadRequest, "FUTURE_ENTRY", "entries cannot be dated in the future"
	case errors.Is(err, domain.ErrEntryTooOld):
		return http.StatusBadRequest, "ENTRY_TOO_OLD", "entry date is older than the allowed backdating window"
	case errors.Is(err, domain.ErrSelfRevoke):
		return http.StatusBadRequest, "SELF_REVOKE", "cannot revoke your own superadmin assignment"
	case errors.Is(err, domain.ErrStaffReferenced):
		return http.StatusConflict, "STAFF_REFERENCED", "staff profile has signed entries; deactivate it instead"
	case errors.Is(err, domain.ErrMarketReferenced):
		return http.StatusConflict, "MARKET_REFERENCED", "market has staff or documentation; deactivate it instead"
	case errors.Is(err, domain.ErrFormReferenced):
		return http.StatusConflict, "FORM_REFERENCED", "form definition has documentation; deactivate it instead"
	case errors.Is(err, domain.ErrScopeMismatch):
		return http.StatusBadRequest, "SCOPE_MISMATCH", "section and form must share the same market scope"
	case errors.Is(err, domain.ErrInvalidTimezone):
		return http.StatusBadRequest, "INVALID_TIMEZONE", "invalid timezone"
	case errors.Is(err, domain.ErrInvalidKey):
		return http.StatusBadRequest, "INVALID_KEY", "key must be lower-case letters, digits, '-' or '_'"
	case errors.Is(err, domain.ErrInvalidRequiredEntries):
		return http.StatusBadRequest, "INVALID_REQUIRED_ENTRIES", "required entries must be at least 1"
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest, "INVALID_DATE", "dates must use the YYYY-MM-DD format"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		zap.L().Named("handler").Error("internal error",
			zap.String("request_id", c.GetString(middleware.ContextKeyRequestID)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	RespondError(c, status, code, msg)
}

// actorFrom extracts the authenticated caller from the request context.
// Returns false if auth context is missing (error response already written).
func actorFrom(c *gin.Context) (domain.Actor, bool) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context")
		return domain.Actor{}, false
	}
	return actor, true
}

// parseIDParam parses a UUID path parameter.
// Returns false if it is malformed (error response already written).
func parseIDParam(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalUUIDQuery parses an optional UUID query parameter.
func parseOptionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name)
		return nil, false
	}
	return &id, true
}

// parsePagination reads offset and limit, clamping limit to (0,100].
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

func queryBool(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(c.Query(name))
	return v
}
