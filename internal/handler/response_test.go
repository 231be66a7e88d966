package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"haccp/internal/domain"
	"haccp/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrStaffInactive, http.StatusForbidden, "STAFF_INACTIVE"},
		{domain.ErrDuplicateMarketCode, http.StatusConflict, "DUPLICATE_MARKET_CODE"},
		{domain.ErrMarketInactive, http.StatusForbidden, "MARKET_INACTIVE"},
		{domain.ErrInvalidPIN, http.StatusBadRequest, "INVALID_PIN"},
		{domain.ErrEntryTooOld, http.StatusBadRequest, "ENTRY_TOO_OLD"},
		{domain.ErrSelfRevoke, http.StatusBadRequest, "SELF_REVOKE"},
		{domain.ErrMarketReferenced, http.StatusConflict, "MARKET_REFERENCED"},
		{domain.ErrFormReferenced, http.StatusConflict, "FORM_REFERENCED"},
		{domain.ErrScopeMismatch, http.StatusBadRequest, "SCOPE_MISMATCH"},
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
		{fmt.Errorf("loading form: %w", domain.ErrFormInactive), http.StatusConflict, "FORM_INACTIVE"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestMapDomainError_DetailMessages(t *testing.T) {
	err := fmt.Errorf("%w: field temp must be a number", domain.ErrInvalidEntryData)

	_, code, msg := handler.MapDomainError(err)

	assert.Equal(t, "INVALID_ENTRY_DATA", code)
	assert.Contains(t, msg, "field temp")
}
