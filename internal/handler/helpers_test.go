package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"haccp/internal/domain"
	"haccp/internal/handler"
	"haccp/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testActor(role domain.Role) domain.Actor {
	return domain.Actor{TenantID: uuid.New(), StaffID: uuid.New(), MarketID: uuid.New(), Role: role}
}

func setActor(c *gin.Context, a domain.Actor) {
	c.Set(middleware.ContextKeyTenantID, a.TenantID)
	c.Set(middleware.ContextKeyStaffID, a.StaffID)
	c.Set(middleware.ContextKeyMarketID, a.MarketID)
	c.Set(middleware.ContextKeyRole, string(a.Role))
}

// newContext builds a test context; a nil body sends no payload and a non-nil
// value is encoded as JSON.
func newContext(method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, target, r)
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
