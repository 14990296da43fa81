package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vufs_catalog_v1/internal/api/dto"
	"vufs_catalog_v1/internal/model"
	"vufs_catalog_v1/internal/service"
)

// TaxonomyController 品类 / 品牌树接口，两棵树共用同一组处理函数
type TaxonomyController struct {
	svc      *service.TaxonomyService
	kind     model.NodeKind
	singular string
	plural   string
	logger   *zap.Logger
}

// NewCategoryController /categories
func NewCategoryController(svc *service.TaxonomyService, logger *zap.Logger) *TaxonomyController {
	return &TaxonomyController{svc: svc, kind: model.KindCategory, singular: "category", plural: "categories", logger: logger}
}

// NewBrandController /brands
func NewBrandController(svc *service.TaxonomyService, logger *zap.Logger) *TaxonomyController {
	return &TaxonomyController{svc: svc, kind: model.KindBrand, singular: "brand", plural: "brands", logger: logger}
}

// List 节点列表
// @Summary 节点列表
// @Description 按层级、父节点筛选品类或品牌节点，按名称排序
// @Tags Taxonomy (品类 / 品牌)
// @Produce json
// @Param level query string false "层级 page/blue/white/gray 或 brand/line/collaboration"
// @Param parentId query int false "父节点ID"
// @Success 200 {object} map[string]interface{} "{"message", "categories"}"
// @Failure 400 {object} dto.ErrorResponse "参数错误"
// @Router /api/vufs/categories [get]
// @Router /api/vufs/brands [get]
func (c *TaxonomyController) List(ctx *gin.Context) {
	var query dto.ListNodesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondError(ctx, c.logger, bindError(err))
		return
	}

	nodes, err := c.svc.ListNodes(ctx.Request.Context(), c.kind, query)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": messagef("%d %s found", len(nodes), c.plural),
		c.plural:  nodes,
	})
}

// Search 名称搜索
// @Summary 搜索节点
// @Description 名称不区分大小写模糊匹配，前缀匹配优先
// @Tags Taxonomy (品类 / 品牌)
// @Produce json
// @Param q query string true "关键字"
// @Success 200 {object} map[string]interface{} "{"message", "query", "categories"}"
// @Failure 400 {object} dto.ErrorResponse "缺少 q"
// @Router /api/vufs/categories/search [get]
// @Router /api/vufs/brands/search [get]
func (c *TaxonomyController) Search(ctx *gin.Context) {
	q := ctx.Query("q")
	nodes, err := c.svc.SearchNodes(ctx.Request.Context(), c.kind, q)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": messagef("%d %s matched", len(nodes), c.plural),
		"query":   q,
		c.plural:  nodes,
	})
}

// Tree 整棵树
// @Summary 完整树结构
// @Tags Taxonomy (品类 / 品牌)
// @Produce json
// @Success 200 {object} map[string]interface{} "{"message", "tree"}"
// @Router /api/vufs/categories/tree [get]
// @Router /api/vufs/brands/tree [get]
func (c *TaxonomyController) Tree(ctx *gin.Context) {
	tree, err := c.svc.GetTree(ctx.Request.Context(), c.kind)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": messagef("%s tree", c.singular),
		"tree":    tree,
	})
}

// Get 节点详情
// @Summary 节点详情
// @Tags Taxonomy (品类 / 品牌)
// @Produce json
// @Param id path int true "节点ID"
// @Success 200 {object} map[string]interface{} "{"message", "category"}"
// @Failure 400 {object} dto.ErrorResponse "ID格式错误"
// @Failure 404 {object} dto.ErrorResponse "节点不存在"
// @Router /api/vufs/categories/{id} [get]
// @Router /api/vufs/brands/{id} [get]
func (c *TaxonomyController) Get(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	node, err := c.svc.GetNode(ctx.Request.Context(), c.kind, id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  messagef("%s found", c.singular),
		c.singular: node,
	})
}

// Path 从根到节点的路径
// @Summary 节点路径
// @Description 返回从根节点到当前节点的完整链路，根在前
// @Tags Taxonomy (品类 / 品牌)
// @Produce json
// @Param id path int true "节点ID"
// @Success 200 {object} map[string]interface{} "{"message", "categoryId", "path"}"
// @Failure 400 {object} dto.ErrorResponse "ID格式错误或存在环"
// @Failure 404 {object} dto.ErrorResponse "节点不存在"
// @Router /api/vufs/categories/{id}/path [get]
// @Router /api/vufs/brands/{id}/path [get]
func (c *TaxonomyController) Path(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	path, err := c.svc.GetPath(ctx.Request.Context(), c.kind, id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":         messagef("%s path resolved", c.singular),
		c.singular + "Id": id,
		"path":            path,
	})
}

// Create 新增节点
// @Summary 新增节点
// @Tags Taxonomy (品类 / 品牌)
// @Accept json
// @Produce json
// @Param request body dto.CreateNodeRequest true "节点参数"
// @Success 201 {object} map[string]interface{} "{"message", "category"}"
// @Failure 400 {object} dto.ErrorResponse "参数错误"
// @Failure 409 {object} dto.ErrorResponse "同级重名"
// @Router /api/vufs/categories [post]
// @Router /api/vufs/brands [post]
func (c *TaxonomyController) Create(ctx *gin.Context) {
	var req dto.CreateNodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, c.logger, bindError(err))
		return
	}

	node, err := c.svc.AddNode(ctx.Request.Context(), c.kind, req)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":  messagef("%s created", c.singular),
		c.singular: node,
	})
}

// Update 重命名 / 移动
// @Summary 更新节点
// @Description 重命名或移动到新的父节点，父节点必须恰好高一级
// @Tags Taxonomy (品类 / 品牌)
// @Accept json
// @Produce json
// @Param id path int true "节点ID"
// @Param request body dto.UpdateNodeRequest true "更新参数"
// @Success 200 {object} map[string]interface{} "{"message", "category"}"
// @Failure 400 {object} dto.ErrorResponse "参数错误"
// @Failure 404 {object} dto.ErrorResponse "节点不存在"
// @Failure 409 {object} dto.ErrorResponse "同级重名"
// @Router /api/vufs/categories/{id} [put]
// @Router /api/vufs/brands/{id} [put]
func (c *TaxonomyController) Update(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	var req dto.UpdateNodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, c.logger, bindError(err))
		return
	}

	node, err := c.svc.UpdateNode(ctx.Request.Context(), c.kind, id, req)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  messagef("%s updated", c.singular),
		c.singular: node,
	})
}

// Delete 删除节点
// @Summary 删除节点
// @Description 有子节点时返回 409 HAS_CHILDREN；cascade=true 删除整棵子树
// @Tags Taxonomy (品类 / 品牌)
// @Produce json
// @Param id path int true "节点ID"
// @Param cascade query bool false "级联删除子树"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "节点不存在"
// @Failure 409 {object} dto.ErrorResponse "存在子节点"
// @Router /api/vufs/categories/{id} [delete]
// @Router /api/vufs/brands/{id} [delete]
func (c *TaxonomyController) Delete(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	cascade, err := parseBoolQuery(ctx, "cascade")
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	deleted, err := c.svc.DeleteNode(ctx.Request.Context(), c.kind, id, cascade)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: messagef("%s deleted (%d nodes removed)", c.singular, deleted),
	})
}

// ==================== 层级构建 ====================

// HierarchyController 层级构建接口
type HierarchyController struct {
	svc    *service.TaxonomyService
	logger *zap.Logger
}

func NewHierarchyController(svc *service.TaxonomyService, logger *zap.Logger) *HierarchyController {
	return &HierarchyController{svc: svc, logger: logger}
}

// BuildCategory 品类层级
// @Summary 构建品类层级
// @Description page > blue > white > gray 逐级查找或创建，遇到空名称停止
// @Tags Hierarchy (层级构建)
// @Accept json
// @Produce json
// @Param request body dto.CategoryHierarchyRequest true "各级名称"
// @Success 200 {object} map[string]interface{} "{"message", "hierarchy"}"
// @Failure 400 {object} dto.ErrorResponse "缺少 page"
// @Router /api/vufs/category-hierarchy [post]
func (c *HierarchyController) BuildCategory(ctx *gin.Context) {
	var req dto.CategoryHierarchyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, c.logger, bindError(err))
		return
	}

	h, err := c.svc.BuildCategoryHierarchy(ctx.Request.Context(), req)
	c.respond(ctx, h, err)
}

// BuildBrand 品牌层级
// @Summary 构建品牌层级
// @Description brand > line > collaboration 逐级查找或创建
// @Tags Hierarchy (层级构建)
// @Accept json
// @Produce json
// @Param request body dto.BrandHierarchyRequest true "各级名称"
// @Success 200 {object} map[string]interface{} "{"message", "hierarchy"}"
// @Failure 400 {object} dto.ErrorResponse "缺少 brand"
// @Router /api/vufs/brand-hierarchy [post]
func (c *HierarchyController) BuildBrand(ctx *gin.Context) {
	var req dto.BrandHierarchyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, c.logger, bindError(err))
		return
	}

	h, err := c.svc.BuildBrandHierarchy(ctx.Request.Context(), req)
	c.respond(ctx, h, err)
}

func (c *HierarchyController) respond(ctx *gin.Context, h *dto.Hierarchy, err error) {
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message":   messagef("hierarchy resolved (%d levels, %d created)", len(h.Chain), h.Created),
		"hierarchy": h,
	})
}
