package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vufs_catalog_v1/internal/api/dto"
	"vufs_catalog_v1/internal/service"
)

// BulkController 批量导入
type BulkController struct {
	svc    *service.BulkService
	logger *zap.Logger
}

func NewBulkController(svc *service.BulkService, logger *zap.Logger) *BulkController {
	return &BulkController{svc: svc, logger: logger}
}

// BulkAdd 批量导入
// @Summary 批量导入
// @Description type 取值 category(ies) / brand(s) / color(s) / colour(s) / material(s) / pattern(s) / fit(s) / size(s) / attribute-value(s)；重复项计为 skipped
// @Tags Bulk (批量导入)
// @Accept json
// @Produce json
// @Param request body dto.BulkAddRequest true "导入参数"
// @Success 200 {object} map[string]interface{} "{"message", "result"}"
// @Failure 400 {object} dto.ErrorResponse "类型不支持或缺少字段"
// @Router /api/vufs/bulk [post]
func (c *BulkController) BulkAdd(ctx *gin.Context) {
	var req dto.BulkAddRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, c.logger, bindError(err))
		return
	}

	result, err := c.svc.BulkAddItems(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": messagef("bulk import finished: %d created, %d skipped, %d failed",
			result.CreatedCount, result.SkippedCount, len(result.Errors)),
		"result": result,
	})
}
