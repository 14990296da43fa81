package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vufs_catalog_v1/internal/config"
	"vufs_catalog_v1/internal/controller"
	"vufs_catalog_v1/internal/middleware"
	"vufs_catalog_v1/internal/model"
	"vufs_catalog_v1/internal/repository"
	"vufs_catalog_v1/internal/router"
	"vufs_catalog_v1/internal/service"
	"vufs_catalog_v1/pkg/database"
	"vufs_catalog_v1/pkg/logger"
)

// @title VUFS Catalog API
// @version 1.0
// @description VUFS 服装分类目录服务：品类 / 品牌树、属性矩阵、批量导入与全局设置
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer {token}
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.Server.Mode)

	// 2. 初始化日志
	zl := logger.Must(cfg.App.Env, cfg.Log.Level)
	defer func() { _ = zl.Sync() }()

	// 3. 初始化数据库
	db := initDatabase(cfg, zl)

	// 4. 初始化依赖
	deps := initDependencies(cfg, db, zl)
	defer deps.Close()

	// 5. 初始化路由
	r := router.SetupRouter(deps.Controllers, router.Options{
		Logger:       zl,
		AllowOrigins: cfg.CORS.AllowOrigins,
		Auth:         deps.Auth,
	})

	// 6. 启动服务
	startServer(cfg, r, zl)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Auth        *middleware.Authenticator
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Close 释放外部连接
func (d *Dependencies) Close() {
	if d.Redis != nil {
		_ = d.Redis.Close()
	}
	if sqlDB, err := d.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Repositories 仓库集合
type Repositories struct {
	Uow             *repository.CatalogUnitOfWork
	Color           repository.CatalogRepository[model.Color]
	Material        repository.CatalogRepository[model.Material]
	Pattern         repository.CatalogRepository[model.Pattern]
	Fit             repository.CatalogRepository[model.Fit]
	Size            repository.CatalogRepository[model.Size]
	Standard        repository.CatalogRepository[model.Standard]
	CareInstruction repository.CatalogRepository[model.CareInstruction]
	Settings        repository.SettingStore
}

// Services 服务集合
type Services struct {
	Taxonomy        *service.TaxonomyService
	Color           *service.CatalogService[model.Color]
	Material        *service.CatalogService[model.Material]
	Pattern         *service.CatalogService[model.Pattern]
	Fit             *service.CatalogService[model.Fit]
	Size            *service.CatalogService[model.Size]
	Standard        *service.CatalogService[model.Standard]
	CareInstruction *service.CatalogService[model.CareInstruction]
	Attribute       *service.AttributeService
	Bulk            *service.BulkService
	Setting         *service.SettingService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config, zl *zap.Logger) *gorm.DB {
	var models []interface{}
	if cfg.Database.AutoMigrate {
		models = model.AllModels()
	}

	db, err := database.InitDB(database.Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}, zl, models...)
	if err != nil {
		zl.Fatal("数据库初始化失败", zap.Error(err))
	}

	if err := middleware.RegisterAuditCallbacks(db); err != nil {
		zl.Fatal("注册审计回调失败", zap.Error(err))
	}
	return db
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB, zl *zap.Logger) *Dependencies {
	deps := &Dependencies{DB: db}

	// -------- 设置存储 --------
	if cfg.Settings.Backend == "redis" {
		deps.Redis = initRedis(cfg, zl)
	}

	// -------- Repo 层 --------
	deps.Repos = initRepositories(db, deps.Redis)

	// -------- 业务服务 --------
	deps.Services = initServices(deps.Repos, zl)

	// -------- 鉴权 --------
	if cfg.Auth.Enabled {
		deps.Auth = middleware.NewAuthenticator(cfg.Auth)
		zl.Info("写接口已启用 JWT 鉴权", zap.String("role", cfg.Auth.AdminRole))
	}

	// -------- Controller 层 --------
	sqlDB, err := db.DB()
	if err != nil {
		zl.Fatal("获取连接池失败", zap.Error(err))
	}
	deps.Controllers = initControllers(deps.Services, sqlDB, zl)

	return deps
}

// initRedis 初始化 Redis 客户端
func initRedis(cfg *config.Config, zl *zap.Logger) *redis.Client {
	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		zl.Fatal("Redis URL 无效", zap.Error(err))
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		zl.Fatal("Redis 连接失败", zap.Error(err))
	}
	zl.Info("Redis 连接成功", zap.String("addr", opt.Addr))
	return rdb
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB, rdb *redis.Client) *Repositories {
	repos := &Repositories{
		Uow:             repository.NewCatalogUnitOfWork(db),
		Color:           repository.NewCatalogRepository[model.Color](db),
		Material:        repository.NewCatalogRepository[model.Material](db),
		Pattern:         repository.NewCatalogRepository[model.Pattern](db),
		Fit:             repository.NewCatalogRepository[model.Fit](db),
		Size:            repository.NewCatalogRepository[model.Size](db),
		Standard:        repository.NewCatalogRepository[model.Standard](db),
		CareInstruction: repository.NewCatalogRepository[model.CareInstruction](db),
	}
	if rdb != nil {
		repos.Settings = repository.NewRedisSettingStore(rdb)
	} else {
		repos.Settings = repository.NewGormSettingStore(db)
	}
	return repos
}

// initServices 初始化所有服务
func initServices(repos *Repositories, zl *zap.Logger) *Services {
	svc := &Services{
		Taxonomy:        service.NewTaxonomyService(repos.Uow.Nodes, repos.Uow, zl),
		Color:           service.NewCatalogService(repos.Color, "color", zl),
		Material:        service.NewCatalogService(repos.Material, "material", zl),
		Pattern:         service.NewCatalogService(repos.Pattern, "pattern", zl),
		Fit:             service.NewCatalogService(repos.Fit, "fit", zl),
		Size:            service.NewCatalogService(repos.Size, "size", zl),
		Standard:        service.NewCatalogService(repos.Standard, "standard", zl),
		CareInstruction: service.NewCatalogService(repos.CareInstruction, "care instruction", zl),
		Attribute:       service.NewAttributeService(repos.Uow, zl),
		Setting:         service.NewSettingService(repos.Settings, zl),
	}
	svc.Bulk = service.NewBulkService(service.BulkDeps{
		Taxonomy:   svc.Taxonomy,
		Colors:     svc.Color,
		Materials:  svc.Material,
		Patterns:   svc.Pattern,
		Fits:       svc.Fit,
		Sizes:      svc.Size,
		Attributes: svc.Attribute,
	}, zl)
	return svc
}

// initControllers 初始化所有控制器
func initControllers(svc *Services, db controller.Pinger, zl *zap.Logger) *router.Controllers {
	return &router.Controllers{
		Category:  controller.NewCategoryController(svc.Taxonomy, zl),
		Brand:     controller.NewBrandController(svc.Taxonomy, zl),
		Hierarchy: controller.NewHierarchyController(svc.Taxonomy, zl),

		Color:           controller.NewColorController(svc.Color, zl),
		Material:        controller.NewMaterialController(svc.Material, zl),
		Pattern:         controller.NewPatternController(svc.Pattern, zl),
		Fit:             controller.NewFitController(svc.Fit, zl),
		Size:            controller.NewSizeController(svc.Size, zl),
		Standard:        controller.NewStandardController(svc.Standard, zl),
		CareInstruction: controller.NewCareInstructionController(svc.CareInstruction, zl),
		AttributeType:   controller.NewAttributeTypeController(svc.Attribute.Types, zl),
		AttributeValue:  controller.NewAttributeValueController(svc.Attribute.Values, zl),

		CategoryAttributes: controller.NewAttributeMatrixController(svc.Attribute, model.EntityCategory, zl),
		BrandAttributes:    controller.NewAttributeMatrixController(svc.Attribute, model.EntityBrand, zl),
		SizeAttributes:     controller.NewAttributeMatrixController(svc.Attribute, model.EntitySize, zl),

		Bulk:    controller.NewBulkController(svc.Bulk, zl),
		Setting: controller.NewSettingController(svc.Setting, zl),
		Health:  controller.NewHealthController(db, zl),
	}
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(cfg *config.Config, r *gin.Engine, zl *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 异步启动服务
	go func() {
		zl.Info("服务启动", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("服务强制关闭", zap.Error(err))
		return
	}

	zl.Info("服务已退出")
}
