package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"vufs_catalog_v1/internal/model"
	"vufs_catalog_v1/internal/repository"
	"vufs_catalog_v1/pkg/apperr"
	"vufs_catalog_v1/pkg/database"
)

// CatalogService 扁平实体通用增删改查
type CatalogService[T model.Entity] struct {
	repo   repository.CatalogRepository[T]
	entity string
	logger *zap.Logger

	beforeAdd func(ctx context.Context, entity *T) error
	deleter   func(ctx context.Context, entity *T) (int64, error)
}

// CatalogOption 可选钩子
type CatalogOption[T model.Entity] func(s *CatalogService[T])

// WithBeforeAdd 写入前补全 / 校验字段
func WithBeforeAdd[T model.Entity](fn func(ctx context.Context, entity *T) error) CatalogOption[T] {
	return func(s *CatalogService[T]) { s.beforeAdd = fn }
}

// WithDeleter 替换默认删除逻辑（如需要级联）
func WithDeleter[T model.Entity](fn func(ctx context.Context, entity *T) (int64, error)) CatalogOption[T] {
	return func(s *CatalogService[T]) { s.deleter = fn }
}

// NewCatalogService entity 用于错误信息，如 "color"
func NewCatalogService[T model.Entity](repo repository.CatalogRepository[T], entity string, logger *zap.Logger, opts ...CatalogOption[T]) *CatalogService[T] {
	s := &CatalogService[T]{
		repo:   repo,
		entity: entity,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Entity 实体名称
func (s *CatalogService[T]) Entity() string {
	return s.entity
}

func (s *CatalogService[T]) List(ctx context.Context, where map[string]interface{}) ([]T, error) {
	list, err := s.repo.List(ctx, where)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return list, nil
}

func (s *CatalogService[T]) Search(ctx context.Context, q string) ([]T, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperr.Validation(apperr.CodeMissingQuery, "query parameter q is required")
	}

	list, err := s.repo.Search(ctx, q, repository.DefaultSearchLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return list, nil
}

func (s *CatalogService[T]) Get(ctx context.Context, id int64) (*T, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateErr(err, s.entity, id)
	}
	return entity, nil
}

// Add 新增；名称冲突由唯一索引判定
func (s *CatalogService[T]) Add(ctx context.Context, entity *T) (*T, error) {
	if strings.TrimSpace((*entity).GetName()) == "" {
		return nil, apperr.MissingFields("name is required")
	}
	if s.beforeAdd != nil {
		if err := s.beforeAdd(ctx, entity); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("%s %q already exists", s.entity, (*entity).GetName()).WithCause(err)
		}
		return nil, apperr.Internal(err)
	}

	s.logger.Info("新增实体", zap.String("entity", s.entity), zap.String("name", (*entity).GetName()))
	return entity, nil
}

// Update 按字段更新，fields 为列名 -> 值
func (s *CatalogService[T]) Update(ctx context.Context, id int64, fields map[string]interface{}) (*T, error) {
	if len(fields) == 0 {
		return nil, apperr.MissingFields("no fields to update")
	}
	if name, ok := fields["name"]; ok {
		str, _ := name.(string)
		str = strings.TrimSpace(str)
		if str == "" {
			return nil, apperr.MissingFields("name must not be empty")
		}
		fields["name"] = str
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("%s name already exists", s.entity).WithCause(err)
		}
		return nil, apperr.Internal(err)
	}

	s.logger.Info("更新实体", zap.String("entity", s.entity), zap.Int64("id", id), zap.Any("fields", fields))
	return s.Get(ctx, id)
}

// Delete 未删除任何记录时返回 NotFound
func (s *CatalogService[T]) Delete(ctx context.Context, id int64) error {
	var (
		affected int64
		err      error
	)
	if s.deleter != nil {
		entity, getErr := s.Get(ctx, id)
		if getErr != nil {
			return getErr
		}
		affected, err = s.deleter(ctx, entity)
	} else {
		affected, err = s.repo.Delete(ctx, id)
	}
	if err != nil {
		return apperr.Wrap(err)
	}
	if affected == 0 {
		return apperr.NotFound(s.entity, id)
	}

	s.logger.Info("删除实体", zap.String("entity", s.entity), zap.Int64("id", id))
	return nil
}
