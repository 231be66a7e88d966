package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
	"haccp/internal/handler"
	"haccp/internal/service"
	"haccp/mocks"
)

func TestStaffHandler_Create(t *testing.T) {
	svc := new(mocks.MockStaffService)
	h := handler.NewStaffHandler(svc)
	actor := testActor(domain.RoleAdmin)
	svc.On("Create", mock.Anything, actor, mock.MatchedBy(func(in service.CreateStaffInput) bool {
		return in.FirstName == "Anna" && in.Initials == "AB" && in.PIN == "4711"
	})).Return(&domain.StaffProfile{ID: uuid.New(), Initials: "AB"}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/admin/staff", map[string]string{
		"first_name": "Anna", "initials": "AB", "pin": "4711",
	})
	setActor(c, actor)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestStaffHandler_Create_DuplicateSignature(t *testing.T) {
	svc := new(mocks.MockStaffService)
	h := handler.NewStaffHandler(svc)
	actor := testActor(domain.RoleAdmin)
	svc.On("Create", mock.Anything, actor, mock.Anything).Return(nil, domain.ErrDuplicateSignature)

	c, w := newContext(http.MethodPost, "/api/v1/admin/staff", map[string]string{
		"first_name": "Anna", "initials": "AB", "pin": "4711",
	})
	setActor(c, actor)
	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_SIGNATURE", decode(t, w).Error.Code)
}

func TestStaffHandler_List_Paginated(t *testing.T) {
	svc := new(mocks.MockStaffService)
	h := handler.NewStaffHandler(svc)
	actor := testActor(domain.RoleAdmin)
	svc.On("List", mock.Anything, actor, service.ListStaffInput{ActiveOnly: true, Offset: 10, Limit: 20}).
		Return([]domain.StaffProfile{{Initials: "AB"}}, 11, nil)

	c, w := newContext(http.MethodGet, "/api/v1/admin/staff?active=true&offset=10&limit=500", nil)
	setActor(c, actor)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	if assert.NotNil(t, resp.Meta) {
		assert.Equal(t, handler.PagMeta{Total: 11, Offset: 10, Limit: 20}, *resp.Meta)
	}
}

func TestStaffHandler_List_InvalidMarketFilter(t *testing.T) {
	svc := new(mocks.MockStaffService)
	h := handler.NewStaffHandler(svc)

	c, w := newContext(http.MethodGet, "/api/v1/admin/staff?market_id=x", nil)
	setActor(c, testActor(domain.RoleAdmin))
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decode(t, w).Error.Code)
}

func TestStaffHandler_ChangeOwnPIN_Wrong(t *testing.T) {
	svc := new(mocks.MockStaffService)
	h := handler.NewStaffHandler(svc)
	actor := testActor(domain.RoleStaff)
	svc.On("ChangeOwnPIN", mock.Anything, actor, "1111", "2222").Return(domain.ErrInvalidCredentials)

	c, w := newContext(http.MethodPut, "/api/v1/me/pin", map[string]string{"current_pin": "1111", "new_pin": "2222"})
	setActor(c, actor)
	h.ChangeOwnPIN(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStaffHandler_Delete_Referenced(t *testing.T) {
	svc := new(mocks.MockStaffService)
	h := handler.NewStaffHandler(svc)
	actor := testActor(domain.RoleAdmin)
	id := uuid.New()
	svc.On("Delete", mock.Anything, actor, id).Return(domain.ErrStaffReferenced)

	c, w := newContext(http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setActor(c, actor)
	h.Delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "STAFF_REFERENCED", decode(t, w).Error.Code)
}
