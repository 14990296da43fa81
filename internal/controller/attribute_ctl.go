package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vufs_catalog_v1/internal/api/dto"
	"vufs_catalog_v1/internal/model"
	"vufs_catalog_v1/internal/service"
	"vufs_catalog_v1/pkg/apperr"
)

// AttributeMatrixController 品类 / 品牌 / 尺码属性接口
type AttributeMatrixController struct {
	svc    *service.AttributeService
	kind   model.EntityKind
	logger *zap.Logger
}

// NewAttributeMatrixController kind 决定路由前缀与请求体中的 ID 字段
func NewAttributeMatrixController(svc *service.AttributeService, kind model.EntityKind, logger *zap.Logger) *AttributeMatrixController {
	return &AttributeMatrixController{svc: svc, kind: kind, logger: logger}
}

// List 某类实体的全部属性
// @Summary 实体属性列表
// @Tags Attributes (实体属性)
// @Produce json
// @Success 200 {object} map[string]interface{} "{"success", "attributes"}"
// @Router /api/vufs/category-attributes [get]
// @Router /api/vufs/brand-attributes [get]
// @Router /api/vufs/size-attributes [get]
func (c *AttributeMatrixController) List(ctx *gin.Context) {
	attrs, err := c.svc.GetAllAttributes(ctx.Request.Context(), c.kind)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "attributes": attrs})
}

// ListByEntity 单个实体的属性
// @Summary 单个实体属性
// @Tags Attributes (实体属性)
// @Produce json
// @Param entityId path int true "实体ID"
// @Success 200 {object} map[string]interface{} "{"success", "attributes"}"
// @Router /api/vufs/category-attributes/{entityId} [get]
// @Router /api/vufs/brand-attributes/{entityId} [get]
// @Router /api/vufs/size-attributes/{entityId} [get]
func (c *AttributeMatrixController) ListByEntity(ctx *gin.Context) {
	entityID, err := parseID(ctx, "entityId")
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	attrs, err := c.svc.ListEntityAttributes(ctx.Request.Context(), c.kind, entityID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "attributes": attrs})
}

// Set 设置属性，已存在则覆盖
// @Summary 设置实体属性
// @Description 请求体中的 ID 字段为 categoryId / brandId / sizeId（或通用 entityId）；attributeSlug 不校验是否存在
// @Tags Attributes (实体属性)
// @Accept json
// @Produce json
// @Param request body dto.SetAttributeRequest true "属性"
// @Success 200 {object} map[string]interface{} "{"success", "attribute"}"
// @Failure 400 {object} dto.ErrorResponse "缺少字段"
// @Router /api/vufs/category-attributes [post]
// @Router /api/vufs/brand-attributes [post]
// @Router /api/vufs/size-attributes [post]
func (c *AttributeMatrixController) Set(ctx *gin.Context) {
	var req dto.SetAttributeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, c.logger, bindError(err))
		return
	}

	attr, err := c.svc.SetAttribute(ctx.Request.Context(), c.kind, c.entityID(req), req.AttributeSlug, req.Value)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "attribute": attr})
}

// Delete 删除单个属性
// @Summary 删除实体属性
// @Tags Attributes (实体属性)
// @Produce json
// @Param entityId path int true "实体ID"
// @Param slug path string true "属性 slug"
// @Success 200 {object} map[string]interface{} "{"success"}"
// @Failure 404 {object} dto.ErrorResponse "不存在"
// @Router /api/vufs/category-attributes/{entityId}/{slug} [delete]
// @Router /api/vufs/brand-attributes/{entityId}/{slug} [delete]
// @Router /api/vufs/size-attributes/{entityId}/{slug} [delete]
func (c *AttributeMatrixController) Delete(ctx *gin.Context) {
	entityID, err := parseID(ctx, "entityId")
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	slug := ctx.Param("slug")
	if slug == "" {
		respondError(ctx, c.logger, apperr.MissingFields("slug is required"))
		return
	}

	if err := c.svc.DeleteAttribute(ctx.Request.Context(), c.kind, entityID, slug); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// entityID 优先取与路由对应的字段
func (c *AttributeMatrixController) entityID(req dto.SetAttributeRequest) *int64 {
	var id *int64
	switch c.kind {
	case model.EntityCategory:
		id = req.CategoryID
	case model.EntityBrand:
		id = req.BrandID
	case model.EntitySize:
		id = req.SizeID
	}
	if id == nil {
		id = req.EntityID
	}
	return id
}
