package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"haccp/internal/port"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db      Pinger
	storage port.ObjectStorage
	bucket  string
}

// NewHealthHandler creates a new HealthHandler. storage may be nil, in which
// case readiness only checks the database.
func NewHealthHandler(db Pinger, storage port.ObjectStorage, bucket string) *HealthHandler {
	return &HealthHandler{db: db, storage: storage, bucket: bucket}
}

// Liveness handles GET /healthz
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Readiness handles GET /readyz
// @Summary Readiness probe
// @Description Checks the database and the attachment bucket
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		zap.L().Named("health").Warn("database not reachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: "database not reachable"})
		return
	}
	if h.storage != nil {
		if err := h.storage.Ping(ctx, h.bucket); err != nil {
			zap.L().Named("health").Warn("storage not reachable", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: "storage not reachable"})
			return
		}
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
