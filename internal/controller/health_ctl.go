package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vufs_catalog_v1/internal/api/dto"
)

// Pinger 存储连通性检查
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthController 健康检查
type HealthController struct {
	db     Pinger
	logger *zap.Logger
}

func NewHealthController(db Pinger, logger *zap.Logger) *HealthController {
	return &HealthController{db: db, logger: logger}
}

// Health 健康检查
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /api/vufs/health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.db.PingContext(pingCtx); err != nil {
		c.logger.Warn("数据库不可用", zap.Error(err))
		ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Database: "down"})
		return
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: "up"})
}
