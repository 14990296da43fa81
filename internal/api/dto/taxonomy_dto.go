package dto

import "vufs_catalog_v1/internal/model"

// ==================== 请求 DTO ====================

// CreateNodeRequest 新增品类 / 品牌节点
type CreateNodeRequest struct {
	Name     string `json:"name" binding:"required"`
	Level    string `json:"level" binding:"required,taxonomy_level"`
	ParentID *int64 `json:"parentId,omitempty"`
}

// UpdateNodeRequest 重命名或移动节点，至少提供一项
type UpdateNodeRequest struct {
	Name     *string `json:"name,omitempty"`
	ParentID *int64  `json:"parentId,omitempty"`
}

// ListNodesQuery 节点列表筛选
type ListNodesQuery struct {
	Level    string `form:"level" binding:"omitempty,taxonomy_level"`
	ParentID *int64 `form:"parentId"`
}

// CategoryHierarchyRequest 品类层级构建
type CategoryHierarchyRequest struct {
	Page             string `json:"page"`
	BlueSubcategory  string `json:"blueSubcategory,omitempty"`
	WhiteSubcategory string `json:"whiteSubcategory,omitempty"`
	GraySubcategory  string `json:"graySubcategory,omitempty"`
}

// Names 按层级顺序
func (r CategoryHierarchyRequest) Names() []string {
	return []string{r.Page, r.BlueSubcategory, r.WhiteSubcategory, r.GraySubcategory}
}

// BrandHierarchyRequest 品牌层级构建
type BrandHierarchyRequest struct {
	Brand         string `json:"brand"`
	Line          string `json:"line,omitempty"`
	Collaboration string `json:"collaboration,omitempty"`
}

func (r BrandHierarchyRequest) Names() []string {
	return []string{r.Brand, r.Line, r.Collaboration}
}

// ==================== 响应 DTO ====================

// Hierarchy 构建结果：最深节点 + 从根开始的完整链路
type Hierarchy struct {
	Deepest *model.TaxonomyNode  `json:"deepest"`
	Chain   []model.TaxonomyNode `json:"chain"`
	Created int                  `json:"created"`
}
