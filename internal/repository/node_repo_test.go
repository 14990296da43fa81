package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vufs_catalog_v1/internal/model"
	"vufs_catalog_v1/pkg/database"
)

func createNode(t *testing.T, repo NodeRepository, kind model.NodeKind, level model.Level, parentID *int64, name string) *model.TaxonomyNode {
	t.Helper()
	node := &model.TaxonomyNode{Kind: kind, Level: level, ParentID: parentID, Name: name}
	require.NoError(t, repo.Create(context.Background(), node))
	return node
}

func TestNodeRepo_CreateAndFindChild(t *testing.T) {
	repo := NewNodeRepository(setupTestDB(t))
	ctx := context.Background()

	page := createNode(t, repo, model.KindCategory, model.LevelPage, nil, "Apparel")
	blue := createNode(t, repo, model.KindCategory, model.LevelBlue, &page.ID, "Tops")

	assert.NotZero(t, page.ID)
	assert.Equal(t, int64(0), page.ParentKey)
	assert.Equal(t, page.ID, blue.ParentKey)

	found, err := repo.FindChild(ctx, model.KindCategory, model.LevelPage, nil, "Apparel")
	require.NoError(t, err)
	assert.Equal(t, page.ID, found.ID)

	found, err = repo.FindChild(ctx, model.KindCategory, model.LevelBlue, &page.ID, "Tops")
	require.NoError(t, err)
	assert.Equal(t, blue.ID, found.ID)

	// 名称精确匹配
	_, err = repo.FindChild(ctx, model.KindCategory, model.LevelBlue, &page.ID, "tops")
	assert.True(t, database.IsNotFound(err))
}

func TestNodeRepo_SiblingUniqueness(t *testing.T) {
	repo := NewNodeRepository(setupTestDB(t))
	ctx := context.Background()

	apparel := createNode(t, repo, model.KindCategory, model.LevelPage, nil, "Apparel")
	shoes := createNode(t, repo, model.KindCategory, model.LevelPage, nil, "Shoes")

	tests := []struct {
		name       string
		node       *model.TaxonomyNode
		wantUnique bool
	}{
		{"重复根节点", &model.TaxonomyNode{Kind: model.KindCategory, Level: model.LevelPage, Name: "Apparel"}, true},
		{"不同类型同名根节点", &model.TaxonomyNode{Kind: model.KindBrand, Level: model.LevelBrand, Name: "Apparel"}, false},
		{"不同父节点下同名", &model.TaxonomyNode{Kind: model.KindCategory, Level: model.LevelBlue, ParentID: &shoes.ID, Name: "Sale"}, false},
		{"同父节点下同名", &model.TaxonomyNode{Kind: model.KindCategory, Level: model.LevelBlue, ParentID: &shoes.ID, Name: "Sale"}, true},
		{"另一父节点下同名", &model.TaxonomyNode{Kind: model.KindCategory, Level: model.LevelBlue, ParentID: &apparel.ID, Name: "Sale"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.node)
			if tt.wantUnique {
				assert.True(t, database.IsUniqueViolation(err), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNodeRepo_ListAndGet(t *testing.T) {
	repo := NewNodeRepository(setupTestDB(t))
	ctx := context.Background()

	women := createNode(t, repo, model.KindCategory, model.LevelPage, nil, "Women")
	men := createNode(t, repo, model.KindCategory, model.LevelPage, nil, "Men")
	createNode(t, repo, model.KindCategory, model.LevelBlue, &women.ID, "Dresses")
	createNode(t, repo, model.KindCategory, model.LevelBlue, &men.ID, "Suits")
	createNode(t, repo, model.KindBrand, model.LevelBrand, nil, "Acme")

	all, err := repo.List(ctx, NodeFilter{Kind: model.KindCategory})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	pages, err := repo.List(ctx, NodeFilter{Kind: model.KindCategory, Level: model.LevelPage})
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "Men", pages[0].Name)
	assert.Equal(t, "Women", pages[1].Name)

	children, err := repo.List(ctx, NodeFilter{Kind: model.KindCategory, ParentID: &women.ID})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Dresses", children[0].Name)

	brands, err := repo.ListByKind(ctx, model.KindBrand)
	require.NoError(t, err)
	assert.Len(t, brands, 1)

	got, err := repo.GetByID(ctx, model.KindCategory, women.ID)
	require.NoError(t, err)
	assert.Equal(t, "Women", got.Name)

	// 类型不匹配视为不存在
	_, err = repo.GetByID(ctx, model.KindBrand, women.ID)
	assert.True(t, database.IsNotFound(err))
}

func TestNodeRepo_SearchPrefixFirst(t *testing.T) {
	repo := NewNodeRepository(setupTestDB(t))
	ctx := context.Background()

	createNode(t, repo, model.KindCategory, model.LevelPage, nil, "Activewear")
	createNode(t, repo, model.KindCategory, model.LevelPage, nil, "Beachwear")
	createNode(t, repo, model.KindCategory, model.LevelPage, nil, "Wear Basics")
	createNode(t, repo, model.KindCategory, model.LevelPage, nil, "Shoes")

	results, err := repo.Search(ctx, model.KindCategory, "WEAR", 0)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Wear Basics", results[0].Name)
	assert.Equal(t, "Activewear", results[1].Name)
	assert.Equal(t, "Beachwear", results[2].Name)

	limited, err := repo.Search(ctx, model.KindCategory, "wear", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestNodeRepo_SearchEscapesWildcards(t *testing.T) {
	repo := NewNodeRepository(setupTestDB(t))
	ctx := context.Background()

	createNode(t, repo, model.KindBrand, model.LevelBrand, nil, "500 Pairs")
	createNode(t, repo, model.KindBrand, model.LevelBrand, nil, "Sale 50%")
	createNode(t, repo, model.KindBrand, model.LevelBrand, nil, "50% Off")
	createNode(t, repo, model.KindBrand, model.LevelBrand, nil, "Snake Case")

	results, err := repo.Search(ctx, model.KindBrand, "50%", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "50% Off", results[0].Name)
	assert.Equal(t, "Sale 50%", results[1].Name)

	none, err := repo.Search(ctx, model.KindBrand, "e_c", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNodeRepo_ChildrenAndDelete(t *testing.T) {
	repo := NewNodeRepository(setupTestDB(t))
	ctx := context.Background()

	page := createNode(t, repo, model.KindCategory, model.LevelPage, nil, "Apparel")
	tops := createNode(t, repo, model.KindCategory, model.LevelBlue, &page.ID, "Tops")
	bottoms := createNode(t, repo, model.KindCategory, model.LevelBlue, &page.ID, "Bottoms")
	shirts := createNode(t, repo, model.KindCategory, model.LevelWhite, &tops.ID, "Shirts")

	count, err := repo.CountChildren(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	ids, err := repo.ListChildrenIDs(ctx, []int64{page.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{tops.ID, bottoms.ID}, ids)

	ids, err = repo.ListChildrenIDs(ctx, []int64{tops.ID, bottoms.ID})
	require.NoError(t, err)
	assert.Equal(t, []int64{shirts.ID}, ids)

	affected, err := repo.DeleteByIDs(ctx, []int64{shirts.ID, bottoms.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	affected, err = repo.DeleteByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestNodeRepo_UpdateFields(t *testing.T) {
	repo := NewNodeRepository(setupTestDB(t))
	ctx := context.Background()

	a := createNode(t, repo, model.KindCategory, model.LevelPage, nil, "A")
	b := createNode(t, repo, model.KindCategory, model.LevelPage, nil, "B")
	child := createNode(t, repo, model.KindCategory, model.LevelBlue, &a.ID, "Child")

	err := repo.UpdateFields(ctx, child.ID, map[string]interface{}{
		"parent_id":  b.ID,
		"parent_key": b.ID,
		"name":       "Moved",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, model.KindCategory, child.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, b.ID, *got.ParentID)
	assert.Equal(t, b.ID, got.ParentKey)
	assert.Equal(t, "Moved", got.Name)

	// 重名冲突来自唯一索引
	createNode(t, repo, model.KindCategory, model.LevelBlue, &b.ID, "Taken")
	err = repo.UpdateFields(ctx, child.ID, map[string]interface{}{"name": "Taken"})
	assert.True(t, database.IsUniqueViolation(err))
}
