package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vufs_catalog_v1/internal/model"
)

// AttributeRepository 实体属性矩阵仓储接口
type AttributeRepository interface {
	Upsert(ctx context.Context, attr *model.EntityAttribute) error
	Get(ctx context.Context, kind model.EntityKind, entityID int64, slug string) (*model.EntityAttribute, error)
	ListByKind(ctx context.Context, kind model.EntityKind) ([]model.EntityAttribute, error)
	ListByEntity(ctx context.Context, kind model.EntityKind, entityID int64) ([]model.EntityAttribute, error)
	Delete(ctx context.Context, kind model.EntityKind, entityID int64, slug string) (int64, error)
	DeleteByEntities(ctx context.Context, kind model.EntityKind, entityIDs []int64) error
}

type attributeRepo struct {
	db *gorm.DB
}

// NewAttributeRepository 创建属性矩阵仓储
func NewAttributeRepository(db *gorm.DB) AttributeRepository {
	return &attributeRepo{db: db}
}

// Upsert (entity_kind, entity_id, attribute_slug) 冲突时覆盖 value
func (r *attributeRepo) Upsert(ctx context.Context, attr *model.EntityAttribute) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "entity_kind"},
			{Name: "entity_id"},
			{Name: "attribute_slug"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at", "updated_by"}),
	}).Create(attr).Error
}

func (r *attributeRepo) Get(ctx context.Context, kind model.EntityKind, entityID int64, slug string) (*model.EntityAttribute, error) {
	var attr model.EntityAttribute
	if err := r.db.WithContext(ctx).
		Where("entity_kind = ? AND entity_id = ? AND attribute_slug = ?", kind, entityID, slug).
		First(&attr).Error; err != nil {
		return nil, err
	}
	return &attr, nil
}

func (r *attributeRepo) ListByKind(ctx context.Context, kind model.EntityKind) ([]model.EntityAttribute, error) {
	var attrs []model.EntityAttribute
	err := r.db.WithContext(ctx).
		Where("entity_kind = ?", kind).
		Order("entity_id ASC, attribute_slug ASC").
		Find(&attrs).Error
	return attrs, err
}

func (r *attributeRepo) ListByEntity(ctx context.Context, kind model.EntityKind, entityID int64) ([]model.EntityAttribute, error) {
	var attrs []model.EntityAttribute
	err := r.db.WithContext(ctx).
		Where("entity_kind = ? AND entity_id = ?", kind, entityID).
		Order("attribute_slug ASC").
		Find(&attrs).Error
	return attrs, err
}

func (r *attributeRepo) Delete(ctx context.Context, kind model.EntityKind, entityID int64, slug string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("entity_kind = ? AND entity_id = ? AND attribute_slug = ?", kind, entityID, slug).
		Delete(&model.EntityAttribute{})
	return result.RowsAffected, result.Error
}

func (r *attributeRepo) DeleteByEntities(ctx context.Context, kind model.EntityKind, entityIDs []int64) error {
	if len(entityIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("entity_kind = ? AND entity_id IN ?", kind, entityIDs).
		Delete(&model.EntityAttribute{}).Error
}
