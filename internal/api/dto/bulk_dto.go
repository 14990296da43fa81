package dto

// BulkAddRequest 批量导入
type BulkAddRequest struct {
	Type          string   `json:"type" binding:"required"`
	Items         []string `json:"items" binding:"required"`
	AttributeSlug string   `json:"attributeSlug,omitempty"`
}

// BulkItemError 单条失败记录
type BulkItemError struct {
	Index   int    `json:"index"`
	Item    string `json:"item"`
	Message string `json:"message"`
}

// BulkResult 批量导入结果
type BulkResult struct {
	CreatedCount int             `json:"createdCount"`
	SkippedCount int             `json:"skippedCount"`
	Errors       []BulkItemError `json:"errors"`
}
