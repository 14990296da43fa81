package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vufs_catalog_v1/internal/model"
	"vufs_catalog_v1/pkg/database"
)

func TestCatalogRepo_CreateAndUnique(t *testing.T) {
	repo := NewCatalogRepository[model.Color](setupTestDB(t))
	ctx := context.Background()

	red := &model.Color{Name: "Red", Hex: "#FF0000"}
	require.NoError(t, repo.Create(ctx, red))
	assert.NotZero(t, red.ID)

	err := repo.Create(ctx, &model.Color{Name: "Red"})
	assert.True(t, database.IsUniqueViolation(err), "got %v", err)

	// 名称区分大小写
	assert.NoError(t, repo.Create(ctx, &model.Color{Name: "red"}))
}

func TestCatalogRepo_ListSearch(t *testing.T) {
	repo := NewCatalogRepository[model.Material](setupTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"Wool", "Cotton", "Merino Wool", "Linen"} {
		require.NoError(t, repo.Create(ctx, &model.Material{Name: name}))
	}

	list, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "Cotton", list[0].Name)
	assert.Equal(t, "Wool", list[3].Name)

	found, err := repo.Search(ctx, "wool", 0)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Wool", found[0].Name)
	assert.Equal(t, "Merino Wool", found[1].Name)
}

func TestCatalogRepo_SearchWildcardsLiteral(t *testing.T) {
	repo := NewCatalogRepository[model.Material](setupTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"Red", "Blue", "100% Cotton"} {
		require.NoError(t, repo.Create(ctx, &model.Material{Name: name}))
	}

	tests := []struct {
		name string
		q    string
		want []string
	}{
		{"百分号按字面匹配", "%", []string{"100% Cotton"}},
		{"下划线按字面匹配", "_", nil},
		{"反斜杠按字面匹配", `\`, nil},
		{"带百分号的前缀", "100%", []string{"100% Cotton"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.Search(ctx, tt.q, 0)
			require.NoError(t, err)
			var names []string
			for _, m := range found {
				names = append(names, m.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestCatalogRepo_ListWhere(t *testing.T) {
	repo := NewCatalogRepository[model.AttributeValue](setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.AttributeValue{TypeSlug: "fabric-weight", Name: "Light"}))
	require.NoError(t, repo.Create(ctx, &model.AttributeValue{TypeSlug: "fabric-weight", Name: "Heavy"}))
	require.NoError(t, repo.Create(ctx, &model.AttributeValue{TypeSlug: "neckline", Name: "V-neck"}))

	values, err := repo.List(ctx, map[string]interface{}{"type_slug": "fabric-weight"})
	require.NoError(t, err)
	assert.Len(t, values, 2)

	// 不同类型下可同名
	assert.NoError(t, repo.Create(ctx, &model.AttributeValue{TypeSlug: "neckline", Name: "Light"}))

	affected, err := repo.DeleteWhere(ctx, map[string]interface{}{"type_slug": "fabric-weight"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
}

func TestCatalogRepo_UpdateDelete(t *testing.T) {
	repo := NewCatalogRepository[model.Size](setupTestDB(t))
	ctx := context.Background()

	s := &model.Size{Name: "M", SortOrder: 2}
	require.NoError(t, repo.Create(ctx, s))
	require.NoError(t, repo.Create(ctx, &model.Size{Name: "L", SortOrder: 3}))

	require.NoError(t, repo.UpdateFields(ctx, s.ID, map[string]interface{}{"name": "Medium"}))
	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Medium", got.Name)
	assert.Equal(t, 2, got.SortOrder)

	err = repo.UpdateFields(ctx, s.ID, map[string]interface{}{"name": "L"})
	assert.True(t, database.IsUniqueViolation(err))

	affected, err := repo.Delete(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(ctx, s.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	_, err = repo.GetByID(ctx, s.ID)
	assert.True(t, database.IsNotFound(err))
}
