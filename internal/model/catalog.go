package model

// ==================== 扁平目录实体 ====================
// name 唯一（区分大小写），由数据库唯一索引保证

// Color 颜色
type Color struct {
	BaseModel
	Name string `gorm:"size:128;not null;uniqueIndex" json:"name"`
	Hex  string `gorm:"size:16" json:"hex"` // 如 #FF0000
}

func (Color) TableName() string  { return "vufs_colors" }
func (c Color) GetName() string { return c.Name }

// Material 材质
type Material struct {
	BaseModel
	Name        string `gorm:"size:128;not null;uniqueIndex" json:"name"`
	Description string `gorm:"size:1024" json:"description"`
}

func (Material) TableName() string  { return "vufs_materials" }
func (m Material) GetName() string { return m.Name }

// Pattern 图案
type Pattern struct {
	BaseModel
	Name string `gorm:"size:128;not null;uniqueIndex" json:"name"`
}

func (Pattern) TableName() string  { return "vufs_patterns" }
func (p Pattern) GetName() string { return p.Name }

// Fit 版型
type Fit struct {
	BaseModel
	Name        string `gorm:"size:128;not null;uniqueIndex" json:"name"`
	Description string `gorm:"size:1024" json:"description"`
}

func (Fit) TableName() string  { return "vufs_fits" }
func (f Fit) GetName() string { return f.Name }

// Size 尺码
type Size struct {
	BaseModel
	Name      string `gorm:"size:128;not null;uniqueIndex" json:"name"`
	SortOrder int    `gorm:"not null;default:0" json:"sortOrder"`
}

func (Size) TableName() string  { return "vufs_sizes" }
func (s Size) GetName() string { return s.Name }

// Standard 尺码标准
type Standard struct {
	BaseModel
	Name        string `gorm:"size:128;not null;uniqueIndex" json:"name"`
	Label       string `gorm:"size:128" json:"label"`
	Region      string `gorm:"size:64" json:"region"`
	Category    string `gorm:"size:128" json:"category"`
	Approach    string `gorm:"size:128" json:"approach"`
	Description string `gorm:"size:2048" json:"description"`
}

func (Standard) TableName() string  { return "vufs_standards" }
func (s Standard) GetName() string { return s.Name }

// CareInstruction 洗护说明
type CareInstruction struct {
	BaseModel
	Name        string `gorm:"size:128;not null;uniqueIndex" json:"name"`
	Symbol      string `gorm:"size:64" json:"symbol"`
	Description string `gorm:"size:1024" json:"description"`
}

func (CareInstruction) TableName() string  { return "vufs_care_instructions" }
func (c CareInstruction) GetName() string { return c.Name }
