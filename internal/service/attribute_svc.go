package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"vufs_catalog_v1/internal/model"
	"vufs_catalog_v1/internal/repository"
	"vufs_catalog_v1/pkg/apperr"
	"vufs_catalog_v1/pkg/utils"
)

// AttributeService 属性类型、属性值与实体属性矩阵
type AttributeService struct {
	Types  *CatalogService[model.AttributeType]
	Values *CatalogService[model.AttributeValue]

	uow    *repository.CatalogUnitOfWork
	logger *zap.Logger
}

// NewAttributeService 创建属性服务
func NewAttributeService(uow *repository.CatalogUnitOfWork, logger *zap.Logger) *AttributeService {
	s := &AttributeService{uow: uow, logger: logger}

	s.Types = NewCatalogService(uow.AttributeTypes, "attribute type", logger,
		WithBeforeAdd[model.AttributeType](s.prepareType),
		WithDeleter[model.AttributeType](s.deleteType),
	)
	s.Values = NewCatalogService(uow.AttributeValues, "attribute value", logger,
		WithBeforeAdd[model.AttributeValue](s.prepareValue),
	)
	return s
}

// ==================== 属性类型 / 属性值 ====================

// prepareType slug 由名称生成，之后重命名不再变化
func (s *AttributeService) prepareType(ctx context.Context, t *model.AttributeType) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Slug = utils.Slugify(t.Name)
	if t.Slug == "" {
		return apperr.Validation(apperr.CodeValidation, "name %q does not produce a usable slug", t.Name)
	}
	return nil
}

// deleteType 同一事务中删除该类型下的全部属性值
func (s *AttributeService) deleteType(ctx context.Context, t *model.AttributeType) (int64, error) {
	var affected int64
	err := s.uow.Transaction(ctx, func(tx *repository.CatalogUnitOfWork) error {
		if _, err := tx.AttributeValues.DeleteWhere(ctx, map[string]interface{}{"type_slug": t.Slug}); err != nil {
			return err
		}
		var err error
		affected, err = tx.AttributeTypes.Delete(ctx, t.ID)
		return err
	})
	return affected, err
}

// prepareValue 属性值必须挂在已存在的类型下
func (s *AttributeService) prepareValue(ctx context.Context, v *model.AttributeValue) error {
	v.Name = strings.TrimSpace(v.Name)
	v.TypeSlug = strings.TrimSpace(v.TypeSlug)
	if v.TypeSlug == "" {
		return apperr.MissingFields("typeSlug is required")
	}

	exists, err := s.TypeExists(ctx, v.TypeSlug)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.Validation(apperr.CodeValidation, "attribute type %q does not exist", v.TypeSlug)
	}
	return nil
}

// TypeExists 按 slug 判断属性类型是否存在
func (s *AttributeService) TypeExists(ctx context.Context, slug string) (bool, error) {
	types, err := s.uow.AttributeTypes.List(ctx, map[string]interface{}{"slug": slug})
	if err != nil {
		return false, apperr.Internal(err)
	}
	return len(types) > 0, nil
}

// AddValueBySlug 批量导入用
func (s *AttributeService) AddValueBySlug(ctx context.Context, typeSlug, name string) (*model.AttributeValue, error) {
	return s.Values.Add(ctx, &model.AttributeValue{TypeSlug: typeSlug, Name: name})
}

// ==================== 实体属性矩阵 ====================

// SetAttribute 设置实体属性，已存在则覆盖
// attributeSlug 不校验是否存在对应的属性类型
func (s *AttributeService) SetAttribute(ctx context.Context, kind model.EntityKind, entityID *int64, attributeSlug, value string) (*model.EntityAttribute, error) {
	if !kind.Valid() {
		return nil, apperr.Validation(apperr.CodeValidation, "unknown entity kind %q", kind)
	}
	attributeSlug = strings.TrimSpace(attributeSlug)
	if entityID == nil || attributeSlug == "" {
		return nil, apperr.MissingFields("%sId and attributeSlug are required", kind)
	}

	attr := &model.EntityAttribute{
		EntityKind:    kind,
		EntityID:      *entityID,
		AttributeSlug: attributeSlug,
		Value:         value,
	}
	if err := s.uow.Attributes.Upsert(ctx, attr); err != nil {
		return nil, apperr.Internal(err)
	}

	stored, err := s.uow.Attributes.Get(ctx, kind, *entityID, attributeSlug)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("reload attribute: %w", err))
	}

	s.logger.Info("设置实体属性",
		zap.String("entity_kind", string(kind)),
		zap.Int64("entity_id", *entityID),
		zap.String("attribute", attributeSlug))
	return stored, nil
}

// GetAllAttributes 某类实体的全部属性
func (s *AttributeService) GetAllAttributes(ctx context.Context, kind model.EntityKind) ([]model.EntityAttribute, error) {
	attrs, err := s.uow.Attributes.ListByKind(ctx, kind)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return attrs, nil
}

// ListEntityAttributes 单个实体的属性
func (s *AttributeService) ListEntityAttributes(ctx context.Context, kind model.EntityKind, entityID int64) ([]model.EntityAttribute, error) {
	attrs, err := s.uow.Attributes.ListByEntity(ctx, kind, entityID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return attrs, nil
}

// DeleteAttribute 删除单个属性
func (s *AttributeService) DeleteAttribute(ctx context.Context, kind model.EntityKind, entityID int64, attributeSlug string) error {
	affected, err := s.uow.Attributes.Delete(ctx, kind, entityID, attributeSlug)
	if err != nil {
		return apperr.Internal(err)
	}
	if affected == 0 {
		return apperr.NotFound(string(kind)+" attribute", fmt.Sprintf("%d/%s", entityID, attributeSlug))
	}

	s.logger.Info("删除实体属性",
		zap.String("entity_kind", string(kind)),
		zap.Int64("entity_id", entityID),
		zap.String("attribute", attributeSlug))
	return nil
}
