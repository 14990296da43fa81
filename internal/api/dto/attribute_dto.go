package dto

// SetAttributeRequest 设置实体属性
// 实体 ID 字段按路由区分：categoryId / brandId / sizeId，entityId 作为通用别名
type SetAttributeRequest struct {
	CategoryID    *int64 `json:"categoryId,omitempty"`
	BrandID       *int64 `json:"brandId,omitempty"`
	SizeID        *int64 `json:"sizeId,omitempty"`
	EntityID      *int64 `json:"entityId,omitempty"`
	AttributeSlug string `json:"attributeSlug"`
	Value         string `json:"value"`
}
