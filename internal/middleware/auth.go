package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"haccp/internal/domain"
	"haccp/internal/service"
)

const (
	ContextKeyTenantID = "tenant_id"
	ContextKeyStaffID  = "staff_id"
	ContextKeyMarketID = "market_id"
	ContextKeyInitials = "initials"
	ContextKeyRole     = "role"
	ContextKeyClaims   = "claims"
)

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": msg},
	})
}

// AuthMiddleware returns Gin middleware that validates JWT access tokens and
// injects tenant, staff and market context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid authorization header")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authService.ValidateToken(token)
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		c.Set(ContextKeyTenantID, claims.TenantID)
		c.Set(ContextKeyStaffID, claims.StaffID)
		c.Set(ContextKeyMarketID, claims.MarketID)
		c.Set(ContextKeyInitials, claims.Initials)
		c.Set(ContextKeyRole, string(claims.Role))
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireRole re-evaluates the caller's role assignments for the selected
// market on every request, so revoked grants take effect before the token
// expires. The recomputed role replaces the one from the token.
func RequireRole(rbac service.RbacService, required domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := GetActor(c)
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context")
			return
		}

		role, err := rbac.EffectiveRole(c.Request.Context(), actor.TenantID, actor.StaffID, actor.MarketID)
		if err != nil {
			zap.L().Named("middleware").Error("resolving role",
				zap.String("request_id", c.GetString(ContextKeyRequestID)),
				zap.Error(err),
			)
			abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
			return
		}
		c.Set(ContextKeyRole, string(role))

		if !role.Satisfies(required) {
			abort(c, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
			return
		}
		c.Next()
	}
}

// GetTenantID extracts the tenant ID from the Gin context.
func GetTenantID(c *gin.Context) (uuid.UUID, error) {
	return getUUID(c, ContextKeyTenantID)
}

// GetStaffID extracts the staff ID from the Gin context.
func GetStaffID(c *gin.Context) (uuid.UUID, error) {
	return getUUID(c, ContextKeyStaffID)
}

// GetMarketID extracts the selected market ID from the Gin context.
func GetMarketID(c *gin.Context) (uuid.UUID, error) {
	return getUUID(c, ContextKeyMarketID)
}

// GetRole extracts the role string from the Gin context.
func GetRole(c *gin.Context) string {
	return c.GetString(ContextKeyRole)
}

// GetActor assembles the service-level caller from the Gin context.
func GetActor(c *gin.Context) (domain.Actor, error) {
	tenantID, err := GetTenantID(c)
	if err != nil {
		return domain.Actor{}, err
	}
	staffID, err := GetStaffID(c)
	if err != nil {
		return domain.Actor{}, err
	}
	marketID, err := GetMarketID(c)
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.Actor{
		TenantID: tenantID,
		StaffID:  staffID,
		MarketID: marketID,
		Role:     domain.Role(GetRole(c)),
	}, nil
}

func getUUID(c *gin.Context, key string) (uuid.UUID, error) {
	val, exists := c.Get(key)
	if !exists {
		return uuid.Nil, domain.ErrUnauthorized
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}
