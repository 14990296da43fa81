package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vufs_catalog_v1/internal/api/dto"
	"vufs_catalog_v1/internal/service"
)

// SettingController 全局设置
type SettingController struct {
	svc    *service.SettingService
	logger *zap.Logger
}

func NewSettingController(svc *service.SettingService, logger *zap.Logger) *SettingController {
	return &SettingController{svc: svc, logger: logger}
}

// List 全部设置
// @Summary 全部全局设置
// @Tags Settings (全局设置)
// @Produce json
// @Success 200 {object} map[string]interface{} "{"message", "settings"}"
// @Router /api/vufs/settings [get]
func (c *SettingController) List(ctx *gin.Context) {
	settings, err := c.svc.GetAll(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message":  messagef("%d settings", len(settings)),
		"settings": settings,
	})
}

// Get 单个设置
// @Summary 获取全局设置
// @Tags Settings (全局设置)
// @Produce json
// @Param key path string true "设置 key"
// @Success 200 {object} map[string]interface{} "{"message", "setting"}"
// @Failure 404 {object} dto.ErrorResponse "不存在"
// @Router /api/vufs/settings/{key} [get]
func (c *SettingController) Get(ctx *gin.Context) {
	setting, err := c.svc.Get(ctx.Request.Context(), ctx.Param("key"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "setting found",
		"setting": setting,
	})
}

// Set 写入设置
// @Summary 写入全局设置
// @Description value 可以是任意 JSON
// @Tags Settings (全局设置)
// @Accept json
// @Produce json
// @Param request body dto.SetSettingRequest true "设置"
// @Success 200 {object} map[string]interface{} "{"message", "setting"}"
// @Failure 400 {object} dto.ErrorResponse "缺少 key"
// @Router /api/vufs/settings [post]
func (c *SettingController) Set(ctx *gin.Context) {
	var req dto.SetSettingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, c.logger, bindError(err))
		return
	}

	setting, err := c.svc.Set(ctx.Request.Context(), req.Key, req.Value)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "setting saved",
		"setting": setting,
	})
}
