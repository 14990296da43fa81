package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"vufs_catalog_v1/internal/model"
	"vufs_catalog_v1/internal/repository"
	"vufs_catalog_v1/pkg/apperr"
)

// SettingService 全局设置
type SettingService struct {
	store  repository.SettingStore
	logger *zap.Logger
}

// NewSettingService store 由配置 settings.backend 决定
func NewSettingService(store repository.SettingStore, logger *zap.Logger) *SettingService {
	return &SettingService{store: store, logger: logger}
}

func (s *SettingService) GetAll(ctx context.Context) ([]model.GlobalSetting, error) {
	settings, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if settings == nil {
		settings = []model.GlobalSetting{}
	}
	return settings, nil
}

func (s *SettingService) Get(ctx context.Context, key string) (*model.GlobalSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperr.MissingFields("key is required")
	}

	setting, err := s.store.Get(ctx, key)
	if errors.Is(err, repository.ErrSettingNotFound) {
		return nil, apperr.NotFound("setting", key)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return setting, nil
}

// Set 写入单个设置，value 缺省为 null
func (s *SettingService) Set(ctx context.Context, key string, value json.RawMessage) (*model.GlobalSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperr.MissingFields("key is required")
	}
	if len(value) == 0 {
		value = json.RawMessage("null")
	}
	if !json.Valid(value) {
		return nil, apperr.Validation(apperr.CodeValidation, "value must be valid JSON")
	}

	if err := s.store.Set(ctx, &model.GlobalSetting{Key: key, Value: datatypes.JSON(value)}); err != nil {
		return nil, apperr.Internal(err)
	}

	s.logger.Info("更新全局设置", zap.String("key", key))
	return s.Get(ctx, key)
}
