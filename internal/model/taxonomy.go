package model

import "gorm.io/gorm"

// NodeKind 分类树类型
type NodeKind string

const (
	KindCategory NodeKind = "category"
	KindBrand    NodeKind = "brand"
)

// Level 树节点层级
type Level string

const (
	// 品类：page > blue > white > gray
	LevelPage  Level = "page"
	LevelBlue  Level = "blue"
	LevelWhite Level = "white"
	LevelGray  Level = "gray"

	// 品牌：brand > line > collaboration
	LevelBrand         Level = "brand"
	LevelLine          Level = "line"
	LevelCollaboration Level = "collaboration"
)

// kindLevels 每种树的层级顺序，下标即深度
var kindLevels = map[NodeKind][]Level{
	KindCategory: {LevelPage, LevelBlue, LevelWhite, LevelGray},
	KindBrand:    {LevelBrand, LevelLine, LevelCollaboration},
}

func (k NodeKind) Valid() bool {
	_, ok := kindLevels[k]
	return ok
}

// Levels 根层级在前
func (k NodeKind) Levels() []Level {
	return kindLevels[k]
}

// MaxDepth 层级数量，也是路径长度上限
func (k NodeKind) MaxDepth() int {
	return len(kindLevels[k])
}

func (k NodeKind) RootLevel() Level {
	return kindLevels[k][0]
}

// Depth 层级深度，根为 0
func (k NodeKind) Depth(l Level) (int, bool) {
	for i, lv := range kindLevels[k] {
		if lv == l {
			return i, true
		}
	}
	return 0, false
}

// ParentLevel 父节点必须所在的层级；根层级返回 false
func (k NodeKind) ParentLevel(l Level) (Level, bool) {
	d, ok := k.Depth(l)
	if !ok || d == 0 {
		return "", false
	}
	return kindLevels[k][d-1], true
}

// ChildLevel 子节点所在层级；最深层返回 false
func (k NodeKind) ChildLevel(l Level) (Level, bool) {
	d, ok := k.Depth(l)
	if !ok || d+1 >= len(kindLevels[k]) {
		return "", false
	}
	return kindLevels[k][d+1], true
}

// TaxonomyNode 品类 / 品牌树节点
// 同一父节点下 (kind, level, name) 唯一；ParentKey 为 0 表示根节点，
// 用非空列建唯一索引，避免 NULL 父节点绕过约束
type TaxonomyNode struct {
	BaseModel
	Kind      NodeKind `gorm:"size:16;not null;uniqueIndex:idx_node_sibling,priority:1;index:idx_node_kind_level,priority:1" json:"kind"`
	Level     Level    `gorm:"size:16;not null;uniqueIndex:idx_node_sibling,priority:2;index:idx_node_kind_level,priority:2" json:"level"`
	ParentKey int64    `gorm:"not null;default:0;uniqueIndex:idx_node_sibling,priority:3" json:"-"`
	Name      string   `gorm:"size:128;not null;uniqueIndex:idx_node_sibling,priority:4" json:"name"`
	ParentID  *int64   `gorm:"index" json:"parentId"`
}

func (TaxonomyNode) TableName() string { return "taxonomy_nodes" }

// BeforeSave 同步 ParentKey
func (n *TaxonomyNode) BeforeSave(tx *gorm.DB) error {
	n.ParentKey = ParentKeyOf(n.ParentID)
	return nil
}

// ParentKeyOf nil -> 0
func ParentKeyOf(parentID *int64) int64 {
	if parentID == nil {
		return 0
	}
	return *parentID
}

func (n *TaxonomyNode) IsRoot() bool {
	return n.ParentID == nil
}

// TreeNode 树形结构输出
type TreeNode struct {
	TaxonomyNode
	Children []*TreeNode `json:"children"`
}
