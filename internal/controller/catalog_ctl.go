package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vufs_catalog_v1/internal/api/dto"
	"vufs_catalog_v1/internal/model"
	"vufs_catalog_v1/internal/service"
)

// CatalogController 扁平实体通用接口
// T 为实体，C / U 为新增、更新请求体
type CatalogController[T model.Entity, C any, U any] struct {
	svc      *service.CatalogService[T]
	singular string
	plural   string
	logger   *zap.Logger

	toModel    func(req C) *T
	toFields   func(req U) map[string]interface{}
	listFilter func(ctx *gin.Context) map[string]interface{}
}

// NewCatalogController singular / plural 作为响应字段名，如 color / colors
func NewCatalogController[T model.Entity, C any, U any](
	svc *service.CatalogService[T],
	singular, plural string,
	toModel func(req C) *T,
	toFields func(req U) map[string]interface{},
	logger *zap.Logger,
) *CatalogController[T, C, U] {
	return &CatalogController[T, C, U]{
		svc:      svc,
		singular: singular,
		plural:   plural,
		toModel:  toModel,
		toFields: toFields,
		logger:   logger,
	}
}

// WithListFilter 列表查询参数 -> 过滤条件
func (c *CatalogController[T, C, U]) WithListFilter(fn func(ctx *gin.Context) map[string]interface{}) *CatalogController[T, C, U] {
	c.listFilter = fn
	return c
}

// List 实体列表
// @Summary 扁平实体列表
// @Description colors / materials / patterns / fits / sizes / standards / care-instructions / attribute-types / attribute-values
// @Tags Catalog (扁平实体)
// @Produce json
// @Param typeSlug query string false "仅 attribute-values：按属性类型筛选"
// @Success 200 {object} map[string]interface{} "{"message", "<plural>"}"
// @Router /api/vufs/colors [get]
// @Router /api/vufs/materials [get]
// @Router /api/vufs/patterns [get]
// @Router /api/vufs/fits [get]
// @Router /api/vufs/sizes [get]
// @Router /api/vufs/standards [get]
// @Router /api/vufs/care-instructions [get]
// @Router /api/vufs/attribute-types [get]
// @Router /api/vufs/attribute-values [get]
func (c *CatalogController[T, C, U]) List(ctx *gin.Context) {
	var where map[string]interface{}
	if c.listFilter != nil {
		where = c.listFilter(ctx)
	}

	list, err := c.svc.List(ctx.Request.Context(), where)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": messagef("%d %s found", len(list), c.plural),
		c.plural:  list,
	})
}

// Search 名称搜索
// @Summary 扁平实体搜索
// @Tags Catalog (扁平实体)
// @Produce json
// @Param q query string true "关键字"
// @Success 200 {object} map[string]interface{} "{"message", "query", "<plural>"}"
// @Failure 400 {object} dto.ErrorResponse "缺少 q"
// @Router /api/vufs/colors/search [get]
// @Router /api/vufs/materials/search [get]
// @Router /api/vufs/patterns/search [get]
// @Router /api/vufs/fits/search [get]
// @Router /api/vufs/sizes/search [get]
// @Router /api/vufs/standards/search [get]
// @Router /api/vufs/care-instructions/search [get]
// @Router /api/vufs/attribute-types/search [get]
// @Router /api/vufs/attribute-values/search [get]
func (c *CatalogController[T, C, U]) Search(ctx *gin.Context) {
	q := ctx.Query("q")
	list, err := c.svc.Search(ctx.Request.Context(), q)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": messagef("%d %s matched", len(list), c.plural),
		"query":   q,
		c.plural:  list,
	})
}

// Get 实体详情
// @Summary 扁平实体详情
// @Tags Catalog (扁平实体)
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} map[string]interface{} "{"message", "<singular>"}"
// @Failure 404 {object} dto.ErrorResponse "不存在"
// @Router /api/vufs/colors/{id} [get]
// @Router /api/vufs/materials/{id} [get]
// @Router /api/vufs/patterns/{id} [get]
// @Router /api/vufs/fits/{id} [get]
// @Router /api/vufs/sizes/{id} [get]
// @Router /api/vufs/standards/{id} [get]
// @Router /api/vufs/care-instructions/{id} [get]
// @Router /api/vufs/attribute-types/{id} [get]
// @Router /api/vufs/attribute-values/{id} [get]
func (c *CatalogController[T, C, U]) Get(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	entity, err := c.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  messagef("%s found", c.svc.Entity()),
		c.singular: entity,
	})
}

// Create 新增实体
// @Summary 新增扁平实体
// @Tags Catalog (扁平实体)
// @Accept json
// @Produce json
// @Param request body object true "实体参数，字段随实体不同，见各实体的 Create*Request"
// @Success 201 {object} map[string]interface{} "{"message", "<singular>"}"
// @Failure 400 {object} dto.ErrorResponse "缺少字段"
// @Failure 409 {object} dto.ErrorResponse "名称已存在"
// @Router /api/vufs/colors [post]
// @Router /api/vufs/materials [post]
// @Router /api/vufs/patterns [post]
// @Router /api/vufs/fits [post]
// @Router /api/vufs/sizes [post]
// @Router /api/vufs/standards [post]
// @Router /api/vufs/care-instructions [post]
// @Router /api/vufs/attribute-types [post]
// @Router /api/vufs/attribute-values [post]
func (c *CatalogController[T, C, U]) Create(ctx *gin.Context) {
	var req C
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, c.logger, bindError(err))
		return
	}

	entity, err := c.svc.Add(ctx.Request.Context(), c.toModel(req))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":  messagef("%s created", c.svc.Entity()),
		c.singular: entity,
	})
}

// Update 更新实体
// @Summary 更新扁平实体
// @Tags Catalog (扁平实体)
// @Accept json
// @Produce json
// @Param id path int true "ID"
// @Param request body object true "更新字段，字段随实体不同，见各实体的 Update*Request"
// @Success 200 {object} map[string]interface{} "{"message", "<singular>"}"
// @Failure 404 {object} dto.ErrorResponse "不存在"
// @Failure 409 {object} dto.ErrorResponse "名称已存在"
// @Router /api/vufs/colors/{id} [put]
// @Router /api/vufs/materials/{id} [put]
// @Router /api/vufs/patterns/{id} [put]
// @Router /api/vufs/fits/{id} [put]
// @Router /api/vufs/sizes/{id} [put]
// @Router /api/vufs/standards/{id} [put]
// @Router /api/vufs/care-instructions/{id} [put]
// @Router /api/vufs/attribute-types/{id} [put]
// @Router /api/vufs/attribute-values/{id} [put]
func (c *CatalogController[T, C, U]) Update(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	var req U
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, c.logger, bindError(err))
		return
	}

	entity, err := c.svc.Update(ctx.Request.Context(), id, c.toFields(req))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  messagef("%s updated", c.svc.Entity()),
		c.singular: entity,
	})
}

// Delete 删除实体
// @Summary 删除扁平实体
// @Tags Catalog (扁平实体)
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "不存在"
// @Router /api/vufs/colors/{id} [delete]
// @Router /api/vufs/materials/{id} [delete]
// @Router /api/vufs/patterns/{id} [delete]
// @Router /api/vufs/fits/{id} [delete]
// @Router /api/vufs/sizes/{id} [delete]
// @Router /api/vufs/standards/{id} [delete]
// @Router /api/vufs/care-instructions/{id} [delete]
// @Router /api/vufs/attribute-types/{id} [delete]
// @Router /api/vufs/attribute-values/{id} [delete]
func (c *CatalogController[T, C, U]) Delete(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	if err := c.svc.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: messagef("%s deleted", c.svc.Entity())})
}

// ==================== 各实体装配 ====================

// setIf 指针非空时写入更新字段
func setIf[V any](fields map[string]interface{}, column string, v *V) {
	if v != nil {
		fields[column] = *v
	}
}

func NewColorController(svc *service.CatalogService[model.Color], logger *zap.Logger) *CatalogController[model.Color, dto.CreateColorRequest, dto.UpdateColorRequest] {
	return NewCatalogController(svc, "color", "colors",
		func(req dto.CreateColorRequest) *model.Color {
			return &model.Color{Name: strings.TrimSpace(req.Name), Hex: strings.ToUpper(req.Hex)}
		},
		func(req dto.UpdateColorRequest) map[string]interface{} {
			fields := map[string]interface{}{}
			setIf(fields, "name", req.Name)
			if req.Hex != nil {
				fields["hex"] = strings.ToUpper(*req.Hex)
			}
			return fields
		}, logger)
}

func NewMaterialController(svc *service.CatalogService[model.Material], logger *zap.Logger) *CatalogController[model.Material, dto.CreateNamedRequest, dto.UpdateNamedRequest] {
	return NewCatalogController(svc, "material", "materials",
		func(req dto.CreateNamedRequest) *model.Material {
			return &model.Material{Name: strings.TrimSpace(req.Name), Description: req.Description}
		},
		namedFields, logger)
}

func NewPatternController(svc *service.CatalogService[model.Pattern], logger *zap.Logger) *CatalogController[model.Pattern, dto.CreatePatternRequest, dto.UpdatePatternRequest] {
	return NewCatalogController(svc, "pattern", "patterns",
		func(req dto.CreatePatternRequest) *model.Pattern {
			return &model.Pattern{Name: strings.TrimSpace(req.Name)}
		},
		func(req dto.UpdatePatternRequest) map[string]interface{} {
			fields := map[string]interface{}{}
			setIf(fields, "name", req.Name)
			return fields
		}, logger)
}

func NewFitController(svc *service.CatalogService[model.Fit], logger *zap.Logger) *CatalogController[model.Fit, dto.CreateNamedRequest, dto.UpdateNamedRequest] {
	return NewCatalogController(svc, "fit", "fits",
		func(req dto.CreateNamedRequest) *model.Fit {
			return &model.Fit{Name: strings.TrimSpace(req.Name), Description: req.Description}
		},
		namedFields, logger)
}

func NewSizeController(svc *service.CatalogService[model.Size], logger *zap.Logger) *CatalogController[model.Size, dto.CreateSizeRequest, dto.UpdateSizeRequest] {
	return NewCatalogController(svc, "size", "sizes",
		func(req dto.CreateSizeRequest) *model.Size {
			return &model.Size{Name: strings.TrimSpace(req.Name), SortOrder: req.SortOrder}
		},
		func(req dto.UpdateSizeRequest) map[string]interface{} {
			fields := map[string]interface{}{}
			setIf(fields, "name", req.Name)
			setIf(fields, "sort_order", req.SortOrder)
			return fields
		}, logger)
}

func NewStandardController(svc *service.CatalogService[model.Standard], logger *zap.Logger) *CatalogController[model.Standard, dto.CreateStandardRequest, dto.UpdateStandardRequest] {
	return NewCatalogController(svc, "standard", "standards",
		func(req dto.CreateStandardRequest) *model.Standard {
			return &model.Standard{
				Name:        strings.TrimSpace(req.Name),
				Label:       req.Label,
				Region:      req.Region,
				Category:    req.Category,
				Approach:    req.Approach,
				Description: req.Description,
			}
		},
		func(req dto.UpdateStandardRequest) map[string]interface{} {
			fields := map[string]interface{}{}
			setIf(fields, "name", req.Name)
			setIf(fields, "label", req.Label)
			setIf(fields, "region", req.Region)
			setIf(fields, "category", req.Category)
			setIf(fields, "approach", req.Approach)
			setIf(fields, "description", req.Description)
			return fields
		}, logger)
}

func NewCareInstructionController(svc *service.CatalogService[model.CareInstruction], logger *zap.Logger) *CatalogController[model.CareInstruction, dto.CreateCareInstructionRequest, dto.UpdateCareInstructionRequest] {
	return NewCatalogController(svc, "careInstruction", "careInstructions",
		func(req dto.CreateCareInstructionRequest) *model.CareInstruction {
			return &model.CareInstruction{Name: strings.TrimSpace(req.Name), Symbol: req.Symbol, Description: req.Description}
		},
		func(req dto.UpdateCareInstructionRequest) map[string]interface{} {
			fields := map[string]interface{}{}
			setIf(fields, "name", req.Name)
			setIf(fields, "symbol", req.Symbol)
			setIf(fields, "description", req.Description)
			return fields
		}, logger)
}

// NewAttributeTypeController slug 由服务层生成
func NewAttributeTypeController(svc *service.CatalogService[model.AttributeType], logger *zap.Logger) *CatalogController[model.AttributeType, dto.CreateAttributeTypeRequest, dto.UpdateAttributeTypeRequest] {
	return NewCatalogController(svc, "attributeType", "attributeTypes",
		func(req dto.CreateAttributeTypeRequest) *model.AttributeType {
			return &model.AttributeType{Name: req.Name}
		},
		func(req dto.UpdateAttributeTypeRequest) map[string]interface{} {
			fields := map[string]interface{}{}
			setIf(fields, "name", req.Name)
			return fields
		}, logger)
}

// NewAttributeValueController 列表支持 ?typeSlug= 筛选
func NewAttributeValueController(svc *service.CatalogService[model.AttributeValue], logger *zap.Logger) *CatalogController[model.AttributeValue, dto.CreateAttributeValueRequest, dto.UpdateAttributeValueRequest] {
	return NewCatalogController(svc, "attributeValue", "attributeValues",
		func(req dto.CreateAttributeValueRequest) *model.AttributeValue {
			return &model.AttributeValue{TypeSlug: req.TypeSlug, Name: req.Name}
		},
		func(req dto.UpdateAttributeValueRequest) map[string]interface{} {
			fields := map[string]interface{}{}
			setIf(fields, "name", req.Name)
			return fields
		}, logger).
		WithListFilter(func(ctx *gin.Context) map[string]interface{} {
			if slug := strings.TrimSpace(ctx.Query("typeSlug")); slug != "" {
				return map[string]interface{}{"type_slug": slug}
			}
			return nil
		})
}

func namedFields(req dto.UpdateNamedRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	setIf(fields, "name", req.Name)
	setIf(fields, "description", req.Description)
	return fields
}
