package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"vufs_catalog_v1/internal/api/dto"
	"vufs_catalog_v1/internal/controller"
	"vufs_catalog_v1/internal/middleware"
	"vufs_catalog_v1/internal/model"

	_ "vufs_catalog_v1/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Category  *controller.TaxonomyController
	Brand     *controller.TaxonomyController
	Hierarchy *controller.HierarchyController

	Color           *controller.CatalogController[model.Color, dto.CreateColorRequest, dto.UpdateColorRequest]
	Material        *controller.CatalogController[model.Material, dto.CreateNamedRequest, dto.UpdateNamedRequest]
	Pattern         *controller.CatalogController[model.Pattern, dto.CreatePatternRequest, dto.UpdatePatternRequest]
	Fit             *controller.CatalogController[model.Fit, dto.CreateNamedRequest, dto.UpdateNamedRequest]
	Size            *controller.CatalogController[model.Size, dto.CreateSizeRequest, dto.UpdateSizeRequest]
	Standard        *controller.CatalogController[model.Standard, dto.CreateStandardRequest, dto.UpdateStandardRequest]
	CareInstruction *controller.CatalogController[model.CareInstruction, dto.CreateCareInstructionRequest, dto.UpdateCareInstructionRequest]
	AttributeType   *controller.CatalogController[model.AttributeType, dto.CreateAttributeTypeRequest, dto.UpdateAttributeTypeRequest]
	AttributeValue  *controller.CatalogController[model.AttributeValue, dto.CreateAttributeValueRequest, dto.UpdateAttributeValueRequest]

	CategoryAttributes *controller.AttributeMatrixController
	BrandAttributes    *controller.AttributeMatrixController
	SizeAttributes     *controller.AttributeMatrixController

	Bulk    *controller.BulkController
	Setting *controller.SettingController
	Health  *controller.HealthController
}

// Options 路由配置
type Options struct {
	Logger       *zap.Logger
	AllowOrigins []string
	// Auth 为 nil 时写接口不做鉴权
	Auth *middleware.Authenticator
}

// catalogRoutes 扁平实体路由所需的处理函数
type catalogRoutes interface {
	List(ctx *gin.Context)
	Search(ctx *gin.Context)
	Get(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

// SetupRouter 创建 gin 引擎并注册所有路由
func SetupRouter(ctls *Controllers, opts Options) *gin.Engine {
	if err := dto.RegisterValidators(); err != nil {
		opts.Logger.Fatal("注册校验器失败", zap.Error(err))
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(opts.Logger),
		middleware.Recovery(opts.Logger),
		cors.New(corsConfig(opts.AllowOrigins)),
	)

	// Swagger 文档：http://localhost:8080/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/vufs")
	api.GET("/health", ctls.Health.Health)

	// 写接口：开启鉴权时要求管理员角色
	write := []gin.HandlerFunc{}
	if opts.Auth != nil {
		write = append(write,
			opts.Auth.JWTAuth(),
			middleware.RequireRole(opts.Auth.AdminRole()),
			middleware.AuditContext(),
		)
	}
	guard := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), h)
	}

	// 品类 / 品牌树
	for prefix, ctl := range map[string]*controller.TaxonomyController{
		"/categories": ctls.Category,
		"/brands":     ctls.Brand,
	} {
		g := api.Group(prefix)
		{
			g.GET("", ctl.List)
			g.GET("/search", ctl.Search)
			g.GET("/tree", ctl.Tree)
			g.GET("/:id", ctl.Get)
			g.GET("/:id/path", ctl.Path)
			g.POST("", guard(ctl.Create)...)
			g.PUT("/:id", guard(ctl.Update)...)
			g.DELETE("/:id", guard(ctl.Delete)...)
		}
	}

	api.POST("/category-hierarchy", guard(ctls.Hierarchy.BuildCategory)...)
	api.POST("/brand-hierarchy", guard(ctls.Hierarchy.BuildBrand)...)

	// 扁平实体
	for prefix, ctl := range map[string]catalogRoutes{
		"/colors":            ctls.Color,
		"/materials":         ctls.Material,
		"/patterns":          ctls.Pattern,
		"/fits":              ctls.Fit,
		"/sizes":             ctls.Size,
		"/standards":         ctls.Standard,
		"/care-instructions": ctls.CareInstruction,
		"/attribute-types":   ctls.AttributeType,
		"/attribute-values":  ctls.AttributeValue,
	} {
		g := api.Group(prefix)
		{
			g.GET("", ctl.List)
			g.GET("/search", ctl.Search)
			g.GET("/:id", ctl.Get)
			g.POST("", guard(ctl.Create)...)
			g.PUT("/:id", guard(ctl.Update)...)
			g.DELETE("/:id", guard(ctl.Delete)...)
		}
	}

	// 实体属性矩阵
	for prefix, ctl := range map[string]*controller.AttributeMatrixController{
		"/category-attributes": ctls.CategoryAttributes,
		"/brand-attributes":    ctls.BrandAttributes,
		"/size-attributes":     ctls.SizeAttributes,
	} {
		g := api.Group(prefix)
		{
			g.GET("", ctl.List)
			g.GET("/:entityId", ctl.ListByEntity)
			g.POST("", guard(ctl.Set)...)
			g.DELETE("/:entityId/:slug", guard(ctl.Delete)...)
		}
	}

	api.POST("/bulk", guard(ctls.Bulk.BulkAdd)...)

	settings := api.Group("/settings")
	{
		settings.GET("", ctls.Setting.List)
		settings.GET("/:key", ctls.Setting.Get)
		settings.POST("", guard(ctls.Setting.Set)...)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
