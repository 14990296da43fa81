package model

import "time"

// BaseModel 通用字段
// 审计字段由 middleware.RegisterAuditCallbacks 在 Create/Update 时自动填充
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// --- 审计字段 ---
	CreatedBy int64 `gorm:"comment:创建人ID" json:"-"`
	UpdatedBy int64 `gorm:"comment:更新人ID" json:"-"`
}

// Entity 扁平目录实体（颜色、材质等）的公共约束
type Entity interface {
	TableName() string
	GetName() string
}

// AllModels 需要自动建表的模型
func AllModels() []interface{} {
	return []interface{}{
		&TaxonomyNode{},
		&Color{}, &Material{}, &Pattern{}, &Fit{}, &Size{}, &Standard{}, &CareInstruction{},
		&AttributeType{}, &AttributeValue{}, &EntityAttribute{},
		&GlobalSetting{},
	}
}
