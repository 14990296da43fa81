package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vufs_catalog_v1/internal/model"
)

// ==================== 仓储接口 ====================

// NodeRepository 品类 / 品牌树节点仓储接口
type NodeRepository interface {
	Create(ctx context.Context, node *model.TaxonomyNode) error
	GetByID(ctx context.Context, kind model.NodeKind, id int64) (*model.TaxonomyNode, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)

	// 列表查询
	List(ctx context.Context, filter NodeFilter) ([]model.TaxonomyNode, error)
	ListByKind(ctx context.Context, kind model.NodeKind) ([]model.TaxonomyNode, error)
	Search(ctx context.Context, kind model.NodeKind, q string, limit int) ([]model.TaxonomyNode, error)

	// 层级相关
	FindChild(ctx context.Context, kind model.NodeKind, level model.Level, parentID *int64, name string) (*model.TaxonomyNode, error)
	CountChildren(ctx context.Context, id int64) (int64, error)
	ListChildrenIDs(ctx context.Context, parentIDs []int64) ([]int64, error)
}

// ==================== 过滤条件 ====================

// NodeFilter 节点过滤条件
type NodeFilter struct {
	Kind     model.NodeKind
	Level    model.Level // 空表示不筛选
	ParentID *int64      // nil 表示不筛选
}

// DefaultSearchLimit 搜索结果上限
const DefaultSearchLimit = 50

// ==================== 仓储实现 ====================

type nodeRepo struct {
	db *gorm.DB
}

// NewNodeRepository 创建树节点仓储
func NewNodeRepository(db *gorm.DB) NodeRepository {
	return &nodeRepo{db: db}
}

func (r *nodeRepo) Create(ctx context.Context, node *model.TaxonomyNode) error {
	return r.db.WithContext(ctx).Create(node).Error
}

func (r *nodeRepo) GetByID(ctx context.Context, kind model.NodeKind, id int64) (*model.TaxonomyNode, error) {
	var node model.TaxonomyNode
	if err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		First(&node, id).Error; err != nil {
		return nil, err
	}
	return &node, nil
}

// UpdateFields 按列更新；修改 parent_id 时调用方需同时给出 parent_key
func (r *nodeRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.TaxonomyNode{}).Where("id = ?", id).Updates(fields).Error
}

func (r *nodeRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.TaxonomyNode{})
	return result.RowsAffected, result.Error
}

func (r *nodeRepo) List(ctx context.Context, filter NodeFilter) ([]model.TaxonomyNode, error) {
	var nodes []model.TaxonomyNode

	query := r.db.WithContext(ctx).Model(&model.TaxonomyNode{}).Where("kind = ?", filter.Kind)
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	}

	err := query.Order("name ASC, id ASC").Find(&nodes).Error
	return nodes, err
}

func (r *nodeRepo) ListByKind(ctx context.Context, kind model.NodeKind) ([]model.TaxonomyNode, error) {
	var nodes []model.TaxonomyNode
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("name ASC, id ASC").
		Find(&nodes).Error
	return nodes, err
}

// Search 名称模糊搜索（不区分大小写），前缀匹配排在前面
func (r *nodeRepo) Search(ctx context.Context, kind model.NodeKind, q string, limit int) ([]model.TaxonomyNode, error) {
	var nodes []model.TaxonomyNode
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	term := escapeLike(strings.ToLower(q))
	err := r.db.WithContext(ctx).
		Where("kind = ? AND LOWER(name) LIKE ? ESCAPE '\\'", kind, "%"+term+"%").
		Order(prefixFirst(term)).
		Limit(limit).
		Find(&nodes).Error
	return nodes, err
}

func (r *nodeRepo) FindChild(ctx context.Context, kind model.NodeKind, level model.Level, parentID *int64, name string) (*model.TaxonomyNode, error) {
	var node model.TaxonomyNode
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND level = ? AND parent_key = ? AND name = ?", kind, level, model.ParentKeyOf(parentID), name).
		First(&node).Error; err != nil {
		return nil, err
	}
	return &node, nil
}

func (r *nodeRepo) CountChildren(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TaxonomyNode{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *nodeRepo) ListChildrenIDs(ctx context.Context, parentIDs []int64) ([]int64, error) {
	var ids []int64
	if len(parentIDs) == 0 {
		return ids, nil
	}
	err := r.db.WithContext(ctx).
		Model(&model.TaxonomyNode{}).
		Where("parent_id IN ?", parentIDs).
		Pluck("id", &ids).Error
	return ids, err
}

// likeEscaper 转义 LIKE 通配符，配合 ESCAPE '\' 使用
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 用户输入中的 % _ 按字面匹配
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// prefixFirst 前缀匹配优先，其次按名称排序；term 需已转义
func prefixFirst(term string) clause.OrderBy {
	return clause.OrderBy{
		Expression: clause.Expr{
			SQL:                "CASE WHEN LOWER(name) LIKE ? ESCAPE '\\' THEN 0 ELSE 1 END, name ASC",
			Vars:               []interface{}{term + "%"},
			WithoutParentheses: true,
		},
	}
}
