package service

import (
	"testing"

	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vufs_catalog_v1/internal/model"
	"vufs_catalog_v1/internal/repository"
)

// ==================== 测试辅助 ====================

type testServices struct {
	db         *gorm.DB
	uow        *repository.CatalogUnitOfWork
	taxonomy   *TaxonomyService
	colors     *CatalogService[model.Color]
	sizes      *CatalogService[model.Size]
	attributes *AttributeService
	bulk       *BulkService
	settings   *SettingService
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取连接池失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func setupServices(t *testing.T) *testServices {
	t.Helper()

	db := setupTestDB(t)
	zl := zaptest.NewLogger(t)
	uow := repository.NewCatalogUnitOfWork(db)

	s := &testServices{
		db:         db,
		uow:        uow,
		taxonomy:   NewTaxonomyService(uow.Nodes, uow, zl),
		colors:     NewCatalogService(repository.NewCatalogRepository[model.Color](db), "color", zl),
		sizes:      NewCatalogService(repository.NewCatalogRepository[model.Size](db), "size", zl),
		attributes: NewAttributeService(uow, zl),
		settings:   NewSettingService(repository.NewGormSettingStore(db), zl),
	}
	s.bulk = NewBulkService(BulkDeps{
		Taxonomy:   s.taxonomy,
		Colors:     s.colors,
		Materials:  NewCatalogService(repository.NewCatalogRepository[model.Material](db), "material", zl),
		Patterns:   NewCatalogService(repository.NewCatalogRepository[model.Pattern](db), "pattern", zl),
		Fits:       NewCatalogService(repository.NewCatalogRepository[model.Fit](db), "fit", zl),
		Sizes:      s.sizes,
		Attributes: s.attributes,
	}, zl)
	return s
}

func int64Ptr(v int64) *int64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}
