package repository

import (
	"context"

	"gorm.io/gorm"

	"vufs_catalog_v1/internal/model"
)

// ==================== 事务支持 ====================

// CatalogUnitOfWork 跨表写操作的工作单元（事务）
type CatalogUnitOfWork struct {
	db              *gorm.DB
	Nodes           NodeRepository
	Attributes      AttributeRepository
	AttributeTypes  CatalogRepository[model.AttributeType]
	AttributeValues CatalogRepository[model.AttributeValue]
}

// NewCatalogUnitOfWork 创建工作单元
func NewCatalogUnitOfWork(db *gorm.DB) *CatalogUnitOfWork {
	return &CatalogUnitOfWork{
		db:              db,
		Nodes:           NewNodeRepository(db),
		Attributes:      NewAttributeRepository(db),
		AttributeTypes:  NewCatalogRepository[model.AttributeType](db),
		AttributeValues: NewCatalogRepository[model.AttributeValue](db),
	}
}

// Transaction 执行事务
func (u *CatalogUnitOfWork) Transaction(ctx context.Context, fn func(uow *CatalogUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewCatalogUnitOfWork(tx))
	})
}
