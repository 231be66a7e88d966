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
	"haccp/mocks"
)

func TestMarketHandler_Delete_SelectedMarket(t *testing.T) {
	svc := new(mocks.MockMarketService)
	h := handler.NewMarketHandler(svc)
	actor := testActor(domain.RoleAdmin)

	c, w := newContext(http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: actor.MarketID.String()}}
	setActor(c, actor)
	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MARKET_SELECTED", decode(t, w).Error.Code)
	svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarketHandler_Delete_OtherMarket(t *testing.T) {
	svc := new(mocks.MockMarketService)
	h := handler.NewMarketHandler(svc)
	actor := testActor(domain.RoleAdmin)
	other := uuid.New()
	svc.On("Delete", mock.Anything, actor.TenantID, other).Return(nil)

	c, w := newContext(http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: other.String()}}
	setActor(c, actor)
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestMarketHandler_Delete_Referenced(t *testing.T) {
	svc := new(mocks.MockMarketService)
	h := handler.NewMarketHandler(svc)
	actor := testActor(domain.RoleAdmin)
	other := uuid.New()
	svc.On("Delete", mock.Anything, actor.TenantID, other).Return(domain.ErrMarketReferenced)

	c, w := newContext(http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: other.String()}}
	setActor(c, actor)
	h.Delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.Equal(t, "MARKET_REFERENCED", body.Error.Code)
	assert.Contains(t, body.Error.Message, "deactivate")
}

func TestMarketHandler_GetByID_NotFound(t *testing.T) {
	svc := new(mocks.MockMarketService)
	h := handler.NewMarketHandler(svc)
	actor := testActor(domain.RoleAdmin)
	id := uuid.New()
	svc.On("GetByID", mock.Anything, actor.TenantID, id).Return(nil, domain.ErrNotFound)

	c, w := newContext(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setActor(c, actor)
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
