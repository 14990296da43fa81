package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"vufs_catalog_v1/internal/model"
)

// CatalogRepository 扁平实体通用仓储（颜色、材质、尺码、属性类型等）
type CatalogRepository[T model.Entity] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) (int64, error)
	DeleteWhere(ctx context.Context, where map[string]interface{}) (int64, error)
	List(ctx context.Context, where map[string]interface{}) ([]T, error)
	Search(ctx context.Context, q string, limit int) ([]T, error)
}

type catalogRepo[T model.Entity] struct {
	db *gorm.DB
}

// NewCatalogRepository 创建扁平实体仓储
func NewCatalogRepository[T model.Entity](db *gorm.DB) CatalogRepository[T] {
	return &catalogRepo[T]{db: db}
}

func (r *catalogRepo[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *catalogRepo[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *catalogRepo[T]) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields).Error
}

// Delete 返回实际删除行数，0 表示记录不存在
func (r *catalogRepo[T]) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	return result.RowsAffected, result.Error
}

func (r *catalogRepo[T]) DeleteWhere(ctx context.Context, where map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Where(where).Delete(new(T))
	return result.RowsAffected, result.Error
}

func (r *catalogRepo[T]) List(ctx context.Context, where map[string]interface{}) ([]T, error) {
	var list []T
	query := r.db.WithContext(ctx).Model(new(T))
	if len(where) > 0 {
		query = query.Where(where)
	}
	err := query.Order("name ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *catalogRepo[T]) Search(ctx context.Context, q string, limit int) ([]T, error) {
	var list []T
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	term := escapeLike(strings.ToLower(q))
	err := r.db.WithContext(ctx).
		Model(new(T)).
		Where("LOWER(name) LIKE ? ESCAPE '\\'", "%"+term+"%").
		Order(prefixFirst(term)).
		Limit(limit).
		Find(&list).Error
	return list, err
}
