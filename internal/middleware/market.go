package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"haccp/internal/domain"
	"haccp/internal/service"
)

// TenantGuard returns middleware that ensures tenant context is present.
// It relies on AuthMiddleware having already set the tenant_id.
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextKeyTenantID); !exists {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "tenant context required")
			return
		}
		c.Next()
	}
}

// MarketGuard rejects requests whose selected market has been deactivated
// or is no longer selectable by the caller since the token was issued.
func MarketGuard(markets service.MarketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := GetActor(c)
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context")
			return
		}

		_, err = markets.CheckSelectable(c.Request.Context(), actor.TenantID, actor.StaffID, actor.MarketID)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, domain.ErrMarketInactive):
			abort(c, http.StatusForbidden, "MARKET_INACTIVE", "selected market is inactive")
		case errors.Is(err, domain.ErrMarketNotAccessible), errors.Is(err, domain.ErrNotFound):
			abort(c, http.StatusForbidden, "MARKET_NOT_ACCESSIBLE", "selected market is not accessible")
		default:
			zap.L().Named("middleware").Error("checking selected market",
				zap.String("request_id", c.GetString(ContextKeyRequestID)),
				zap.Error(err),
			)
			abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
		}
	}
}
