package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"vufs_catalog_v1/internal/model"
)

func runSettingStoreContract(t *testing.T, store SettingStore) {
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrSettingNotFound))

	require.NoError(t, store.Set(ctx, &model.GlobalSetting{Key: "sizing.default", Value: datatypes.JSON(`"EU"`)}))
	require.NoError(t, store.Set(ctx, &model.GlobalSetting{Key: "feature.flags", Value: datatypes.JSON(`{"bulk":true}`)}))
	require.NoError(t, store.Set(ctx, &model.GlobalSetting{Key: "sizing.default", Value: datatypes.JSON(`"US"`)}))

	got, err := store.Get(ctx, "sizing.default")
	require.NoError(t, err)
	assert.JSONEq(t, `"US"`, string(got.Value))

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "feature.flags", all[0].Key)
	assert.JSONEq(t, `{"bulk":true}`, string(all[0].Value))
	assert.Equal(t, "sizing.default", all[1].Key)
}

func TestGormSettingStore(t *testing.T) {
	runSettingStoreContract(t, NewGormSettingStore(setupTestDB(t)))
}

// 需要真实 redis：VUFS_TEST_REDIS_URL=redis://localhost:6379/15
func TestRedisSettingStore(t *testing.T) {
	url := os.Getenv("VUFS_TEST_REDIS_URL")
	if url == "" {
		t.Skip("VUFS_TEST_REDIS_URL not set")
	}

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	require.NoError(t, rdb.Del(ctx, SettingsHashKey).Err())
	t.Cleanup(func() { rdb.Del(context.Background(), SettingsHashKey) })

	runSettingStoreContract(t, NewRedisSettingStore(rdb))
}
