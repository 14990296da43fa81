package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"vufs_catalog_v1/internal/model"
)

// SettingsHashKey redis 中保存全部设置的 hash
const SettingsHashKey = "vufs:settings"

// ==================== Redis 实现 ====================

type redisSettingStore struct {
	rdb *redis.Client
	key string
}

// NewRedisSettingStore hash 字段为设置 key，字段值为序列化后的 GlobalSetting
func NewRedisSettingStore(rdb *redis.Client) SettingStore {
	return &redisSettingStore{rdb: rdb, key: SettingsHashKey}
}

func (s *redisSettingStore) GetAll(ctx context.Context) ([]model.GlobalSetting, error) {
	fields, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}

	settings := make([]model.GlobalSetting, 0, len(fields))
	for field, raw := range fields {
		var setting model.GlobalSetting
		if err := json.Unmarshal([]byte(raw), &setting); err != nil {
			return nil, fmt.Errorf("decode setting %q: %w", field, err)
		}
		settings = append(settings, setting)
	}

	sort.Slice(settings, func(i, j int) bool {
		return settings[i].Key < settings[j].Key
	})
	return settings, nil
}

func (s *redisSettingStore) Get(ctx context.Context, key string) (*model.GlobalSetting, error) {
	raw, err := s.rdb.HGet(ctx, s.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSettingNotFound
	}
	if err != nil {
		return nil, err
	}

	var setting model.GlobalSetting
	if err := json.Unmarshal([]byte(raw), &setting); err != nil {
		return nil, fmt.Errorf("decode setting %q: %w", key, err)
	}
	return &setting, nil
}

func (s *redisSettingStore) Set(ctx context.Context, setting *model.GlobalSetting) error {
	if setting.UpdatedAt.IsZero() {
		setting.UpdatedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(setting)
	if err != nil {
		return err
	}
	return s.rdb.HSet(ctx, s.key, setting.Key, raw).Err()
}
