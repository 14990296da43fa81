package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vufs_catalog_v1/internal/model"
)

// ErrSettingNotFound 设置项不存在
var ErrSettingNotFound = errors.New("setting not found")

// SettingStore 全局设置存储，按 key 单条读写
type SettingStore interface {
	GetAll(ctx context.Context) ([]model.GlobalSetting, error)
	Get(ctx context.Context, key string) (*model.GlobalSetting, error)
	Set(ctx context.Context, setting *model.GlobalSetting) error
}

// ==================== GORM 实现 ====================

type gormSettingStore struct {
	db *gorm.DB
}

// NewGormSettingStore 数据库表存储
func NewGormSettingStore(db *gorm.DB) SettingStore {
	return &gormSettingStore{db: db}
}

func (s *gormSettingStore) GetAll(ctx context.Context) ([]model.GlobalSetting, error) {
	var settings []model.GlobalSetting
	err := s.db.WithContext(ctx).Order("setting_key ASC").Find(&settings).Error
	return settings, err
}

func (s *gormSettingStore) Get(ctx context.Context, key string) (*model.GlobalSetting, error) {
	var setting model.GlobalSetting
	err := s.db.WithContext(ctx).Where("setting_key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSettingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *gormSettingStore) Set(ctx context.Context, setting *model.GlobalSetting) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at", "updated_by"}),
	}).Create(setting).Error
}
