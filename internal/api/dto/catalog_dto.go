package dto

// ==================== 扁平实体请求 ====================

type CreateColorRequest struct {
	Name string `json:"name" binding:"required"`
	Hex  string `json:"hex,omitempty" binding:"omitempty,hexcolor"`
}

type UpdateColorRequest struct {
	Name *string `json:"name,omitempty"`
	Hex  *string `json:"hex,omitempty" binding:"omitempty,hexcolor"`
}

// CreateNamedRequest 名称 + 描述的实体（材质、版型）
type CreateNamedRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

type UpdateNamedRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreatePatternRequest 图案只有名称
type CreatePatternRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdatePatternRequest struct {
	Name *string `json:"name,omitempty"`
}

type CreateSizeRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sortOrder,omitempty"`
}

type UpdateSizeRequest struct {
	Name      *string `json:"name,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
}

// CreateStandardRequest 尺码 / 品质标准
type CreateStandardRequest struct {
	Name        string `json:"name" binding:"required"`
	Label       string `json:"label,omitempty"`
	Region      string `json:"region,omitempty"`
	Category    string `json:"category,omitempty"`
	Approach    string `json:"approach,omitempty"`
	Description string `json:"description,omitempty"`
}

type UpdateStandardRequest struct {
	Name        *string `json:"name,omitempty"`
	Label       *string `json:"label,omitempty"`
	Region      *string `json:"region,omitempty"`
	Category    *string `json:"category,omitempty"`
	Approach    *string `json:"approach,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CreateCareInstructionRequest struct {
	Name        string `json:"name" binding:"required"`
	Symbol      string `json:"symbol,omitempty"`
	Description string `json:"description,omitempty"`
}

type UpdateCareInstructionRequest struct {
	Name        *string `json:"name,omitempty"`
	Symbol      *string `json:"symbol,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateAttributeTypeRequest slug 由名称生成
type CreateAttributeTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateAttributeTypeRequest 重命名不改变 slug
type UpdateAttributeTypeRequest struct {
	Name *string `json:"name,omitempty"`
}

type CreateAttributeValueRequest struct {
	TypeSlug string `json:"typeSlug" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type UpdateAttributeValueRequest struct {
	Name *string `json:"name,omitempty"`
}
