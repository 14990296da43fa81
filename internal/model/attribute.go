package model

// AttributeType 属性类型，按 slug 唯一
type AttributeType struct {
	BaseModel
	Slug string `gorm:"size:128;not null;uniqueIndex" json:"slug"`
	Name string `gorm:"size:128;not null" json:"name"`
}

func (AttributeType) TableName() string  { return "vufs_attribute_types" }
func (a AttributeType) GetName() string { return a.Name }

// AttributeValue 属性值，同一类型下 name 唯一
type AttributeValue struct {
	BaseModel
	TypeSlug string `gorm:"size:128;not null;uniqueIndex:idx_attr_value_name,priority:1" json:"typeSlug"`
	Name     string `gorm:"size:128;not null;uniqueIndex:idx_attr_value_name,priority:2" json:"name"`
}

func (AttributeValue) TableName() string  { return "vufs_attribute_values" }
func (a AttributeValue) GetName() string { return a.Name }

// EntityKind 可挂属性的实体类型
type EntityKind string

const (
	EntityCategory EntityKind = "category"
	EntityBrand    EntityKind = "brand"
	EntitySize     EntityKind = "size"
)

func (k EntityKind) Valid() bool {
	switch k {
	case EntityCategory, EntityBrand, EntitySize:
		return true
	}
	return false
}

// EntityAttribute 稀疏属性矩阵 (实体, 属性) -> 值
// attribute_slug 不校验是否存在对应的 AttributeType
type EntityAttribute struct {
	BaseModel
	EntityKind    EntityKind `gorm:"size:16;not null;uniqueIndex:idx_entity_attr,priority:1" json:"entityKind"`
	EntityID      int64      `gorm:"not null;uniqueIndex:idx_entity_attr,priority:2" json:"entityId"`
	AttributeSlug string     `gorm:"size:128;not null;uniqueIndex:idx_entity_attr,priority:3" json:"attributeSlug"`
	Value         string     `gorm:"size:1024" json:"value"`
}

func (EntityAttribute) TableName() string { return "vufs_entity_attributes" }
