package model

import (
	"time"

	"gorm.io/datatypes"
)

// GlobalSetting 全局键值设置，value 为任意 JSON
type GlobalSetting struct {
	Key       string         `gorm:"column:setting_key;primaryKey;size:128" json:"key"`
	Value     datatypes.JSON `json:"value"`
	UpdatedAt time.Time      `json:"updatedAt"`
	UpdatedBy int64          `gorm:"comment:更新人ID" json:"-"`
}

func (GlobalSetting) TableName() string { return "vufs_global_settings" }
