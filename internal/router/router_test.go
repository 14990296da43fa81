package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vufs_catalog_v1/internal/config"
	"vufs_catalog_v1/internal/controller"
	"vufs_catalog_v1/internal/middleware"
	"vufs_catalog_v1/internal/model"
	"vufs_catalog_v1/internal/repository"
	"vufs_catalog_v1/internal/service"
)

// ==================== 测试辅助 ====================

var pathParam = regexp.MustCompile(`:([A-Za-z]+)`)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	db     *gorm.DB
	engine *gin.Engine
	auth   *middleware.Authenticator
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	require.NoError(t, middleware.RegisterAuditCallbacks(db))
	return db
}

// setupServer 组装完整的 repo -> service -> controller -> router 链路
func setupServer(t *testing.T, withAuth bool) *testServer {
	t.Helper()

	db := setupTestDB(t)
	zl := zaptest.NewLogger(t)
	uow := repository.NewCatalogUnitOfWork(db)

	taxonomy := service.NewTaxonomyService(uow.Nodes, uow, zl)
	colors := service.NewCatalogService(repository.NewCatalogRepository[model.Color](db), "color", zl)
	materials := service.NewCatalogService(repository.NewCatalogRepository[model.Material](db), "material", zl)
	patterns := service.NewCatalogService(repository.NewCatalogRepository[model.Pattern](db), "pattern", zl)
	fits := service.NewCatalogService(repository.NewCatalogRepository[model.Fit](db), "fit", zl)
	sizes := service.NewCatalogService(repository.NewCatalogRepository[model.Size](db), "size", zl)
	standards := service.NewCatalogService(repository.NewCatalogRepository[model.Standard](db), "standard", zl)
	care := service.NewCatalogService(repository.NewCatalogRepository[model.CareInstruction](db), "care instruction", zl)
	attributes := service.NewAttributeService(uow, zl)
	settings := service.NewSettingService(repository.NewGormSettingStore(db), zl)
	bulk := service.NewBulkService(service.BulkDeps{
		Taxonomy:   taxonomy,
		Colors:     colors,
		Materials:  materials,
		Patterns:   patterns,
		Fits:       fits,
		Sizes:      sizes,
		Attributes: attributes,
	}, zl)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	ctls := &Controllers{
		Category:           controller.NewCategoryController(taxonomy, zl),
		Brand:              controller.NewBrandController(taxonomy, zl),
		Hierarchy:          controller.NewHierarchyController(taxonomy, zl),
		Color:              controller.NewColorController(colors, zl),
		Material:           controller.NewMaterialController(materials, zl),
		Pattern:            controller.NewPatternController(patterns, zl),
		Fit:                controller.NewFitController(fits, zl),
		Size:               controller.NewSizeController(sizes, zl),
		Standard:           controller.NewStandardController(standards, zl),
		CareInstruction:    controller.NewCareInstructionController(care, zl),
		AttributeType:      controller.NewAttributeTypeController(attributes.Types, zl),
		AttributeValue:     controller.NewAttributeValueController(attributes.Values, zl),
		CategoryAttributes: controller.NewAttributeMatrixController(attributes, model.EntityCategory, zl),
		BrandAttributes:    controller.NewAttributeMatrixController(attributes, model.EntityBrand, zl),
		SizeAttributes:     controller.NewAttributeMatrixController(attributes, model.EntitySize, zl),
		Bulk:               controller.NewBulkController(bulk, zl),
		Setting:            controller.NewSettingController(settings, zl),
		Health:             controller.NewHealthController(sqlDB, zl),
	}

	var auth *middleware.Authenticator
	if withAuth {
		auth = middleware.NewAuthenticator(config.AuthConfig{
			Enabled:        true,
			JWTSecret:      "router-test-secret",
			Issuer:         "vufs-test",
			AdminRole:      "admin",
			AccessTokenTTL: time.Hour,
		})
	}

	return &testServer{
		db:     db,
		engine: SetupRouter(ctls, Options{Logger: zl, Auth: auth}),
		auth:   auth,
	}
}

// do 发送请求并解析 JSON 响应
func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	resp := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w.Code, resp
}

func errorCode(resp map[string]interface{}) string {
	body, ok := resp["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := body["code"].(string)
	return code
}

func idOf(t *testing.T, resp map[string]interface{}, key string) int64 {
	t.Helper()
	obj, ok := resp[key].(map[string]interface{})
	require.True(t, ok, "响应缺少 %s: %v", key, resp)
	return int64(obj["id"].(float64))
}

// ==================== 健康检查 ====================

func TestHealth(t *testing.T) {
	s := setupServer(t, false)

	code, resp := s.do(t, http.MethodGet, "/api/vufs/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "up", resp["database"])
}

func TestRequestIDHeader(t *testing.T) {
	s := setupServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/vufs/health", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(middleware.HeaderRequestID))
}

// ==================== 品类树 ====================

func TestCategoryRoutes(t *testing.T) {
	s := setupServer(t, false)

	code, resp := s.do(t, http.MethodPost, "/api/vufs/categories", map[string]interface{}{"name": "Tops", "level": "page"})
	require.Equal(t, http.StatusCreated, code, resp)
	pageID := idOf(t, resp, "category")

	code, resp = s.do(t, http.MethodPost, "/api/vufs/categories", map[string]interface{}{"name": "Shirts", "level": "blue", "parentId": pageID})
	require.Equal(t, http.StatusCreated, code, resp)
	blueID := idOf(t, resp, "category")

	t.Run("路径从根开始", func(t *testing.T) {
		code, resp := s.do(t, http.MethodGet, fmt.Sprintf("/api/vufs/categories/%d/path", blueID), nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, float64(blueID), resp["categoryId"])

		path := resp["path"].([]interface{})
		require.Len(t, path, 2)
		assert.Equal(t, "Tops", path[0].(map[string]interface{})["name"])
		assert.Equal(t, "Shirts", path[1].(map[string]interface{})["name"])
	})

	t.Run("按层级筛选", func(t *testing.T) {
		code, resp := s.do(t, http.MethodGet, "/api/vufs/categories?level=blue", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Len(t, resp["categories"], 1)
	})

	t.Run("非法层级", func(t *testing.T) {
		code, resp := s.do(t, http.MethodGet, "/api/vufs/categories?level=purple", nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(resp))
	})

	t.Run("搜索缺少关键字", func(t *testing.T) {
		code, resp := s.do(t, http.MethodGet, "/api/vufs/categories/search", nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "MISSING_QUERY", errorCode(resp))
	})

	t.Run("搜索", func(t *testing.T) {
		code, resp := s.do(t, http.MethodGet, "/api/vufs/categories/search?q=shi", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "shi", resp["query"])
		assert.Len(t, resp["categories"], 1)
	})

	t.Run("树", func(t *testing.T) {
		code, resp := s.do(t, http.MethodGet, "/api/vufs/categories/tree", nil)
		require.Equal(t, http.StatusOK, code)
		tree := resp["tree"].([]interface{})
		require.Len(t, tree, 1)
		assert.Len(t, tree[0].(map[string]interface{})["children"], 1)
	})

	t.Run("缺少名称", func(t *testing.T) {
		code, resp := s.do(t, http.MethodPost, "/api/vufs/categories", map[string]interface{}{"level": "page"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "MISSING_FIELDS", errorCode(resp))
	})

	t.Run("重复兄弟节点", func(t *testing.T) {
		code, resp := s.do(t, http.MethodPost, "/api/vufs/categories", map[string]interface{}{"name": "Tops", "level": "page"})
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "CONFLICT", errorCode(resp))
	})

	t.Run("非法 ID", func(t *testing.T) {
		code, resp := s.do(t, http.MethodGet, "/api/vufs/categories/abc", nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "INVALID_ID", errorCode(resp))
	})

	t.Run("节点不存在", func(t *testing.T) {
		code, resp := s.do(t, http.MethodGet, "/api/vufs/categories/9999/path", nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "NOT_FOUND", errorCode(resp))
	})

	t.Run("有子节点时拒绝删除", func(t *testing.T) {
		code, resp := s.do(t, http.MethodDelete, fmt.Sprintf("/api/vufs/categories/%d", pageID), nil)
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "HAS_CHILDREN", errorCode(resp))
	})

	t.Run("级联删除", func(t *testing.T) {
		code, _ := s.do(t, http.MethodDelete, fmt.Sprintf("/api/vufs/categories/%d?cascade=true", pageID), nil)
		require.Equal(t, http.StatusOK, code)

		code, resp := s.do(t, http.MethodGet, "/api/vufs/categories", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, resp["categories"])
	})
}

func TestBrandRoutes_UsesBrandKeys(t *testing.T) {
	s := setupServer(t, false)

	code, resp := s.do(t, http.MethodPost, "/api/vufs/brands", map[string]interface{}{"name": "Acme", "level": "brand"})
	require.Equal(t, http.StatusCreated, code, resp)
	brandID := idOf(t, resp, "brand")

	code, resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/vufs/brands/%d/path", brandID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(brandID), resp["brandId"])

	// 品类层级不能用于品牌树
	code, resp = s.do(t, http.MethodPost, "/api/vufs/brands", map[string]interface{}{"name": "Tops", "level": "page"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, errorCode(resp))
}

// ==================== 层级构建 ====================

func TestCategoryHierarchy_Idempotent(t *testing.T) {
	s := setupServer(t, false)

	body := map[string]interface{}{
		"page":             "Tops",
		"blueSubcategory":  "Shirts",
		"whiteSubcategory": "Oxford",
	}

	code, first := s.do(t, http.MethodPost, "/api/vufs/category-hierarchy", body)
	require.Equal(t, http.StatusOK, code, first)
	code, second := s.do(t, http.MethodPost, "/api/vufs/category-hierarchy", body)
	require.Equal(t, http.StatusOK, code, second)

	h1 := first["hierarchy"].(map[string]interface{})
	h2 := second["hierarchy"].(map[string]interface{})
	assert.Equal(t, float64(3), h1["created"])
	assert.Equal(t, float64(0), h2["created"])
	assert.Equal(t, h1["deepest"].(map[string]interface{})["id"], h2["deepest"].(map[string]interface{})["id"])
	assert.Equal(t, "white", h2["deepest"].(map[string]interface{})["level"])

	code, resp := s.do(t, http.MethodPost, "/api/vufs/category-hierarchy", map[string]interface{}{"page": "  "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "MISSING_FIELDS", errorCode(resp))
}

func TestBrandHierarchy_StopsAtFirstEmpty(t *testing.T) {
	s := setupServer(t, false)

	code, resp := s.do(t, http.MethodPost, "/api/vufs/brand-hierarchy", map[string]interface{}{
		"brand":         "Acme",
		"collaboration": "Acme x Studio",
	})
	require.Equal(t, http.StatusOK, code, resp)

	h := resp["hierarchy"].(map[string]interface{})
	assert.Len(t, h["chain"], 1)
	assert.Equal(t, "brand", h["deepest"].(map[string]interface{})["level"])
}

// ==================== 扁平实体 ====================

func TestColorRoutes(t *testing.T) {
	s := setupServer(t, false)

	code, resp := s.do(t, http.MethodPost, "/api/vufs/colors", map[string]interface{}{"name": "Red", "hex": "#FF0000"})
	require.Equal(t, http.StatusCreated, code, resp)
	id := idOf(t, resp, "color")

	t.Run("重名返回 409", func(t *testing.T) {
		code, resp := s.do(t, http.MethodPost, "/api/vufs/colors", map[string]interface{}{"name": "Red"})
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "CONFLICT", errorCode(resp))
	})

	t.Run("非法色值", func(t *testing.T) {
		code, resp := s.do(t, http.MethodPost, "/api/vufs/colors", map[string]interface{}{"name": "Blue", "hex": "blue"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(resp))
	})

	t.Run("列表与搜索", func(t *testing.T) {
		code, resp := s.do(t, http.MethodGet, "/api/vufs/colors", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Len(t, resp["colors"], 1)

		code, resp = s.do(t, http.MethodGet, "/api/vufs/colors/search?q=re", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Len(t, resp["colors"], 1)
	})

	t.Run("更新", func(t *testing.T) {
		code, resp := s.do(t, http.MethodPut, fmt.Sprintf("/api/vufs/colors/%d", id), map[string]interface{}{"name": "Crimson"})
		require.Equal(t, http.StatusOK, code, resp)
		assert.Equal(t, "Crimson", resp["color"].(map[string]interface{})["name"])
	})

	t.Run("删除后再删返回 404", func(t *testing.T) {
		code, _ := s.do(t, http.MethodDelete, fmt.Sprintf("/api/vufs/colors/%d", id), nil)
		require.Equal(t, http.StatusOK, code)

		code, resp := s.do(t, http.MethodDelete, fmt.Sprintf("/api/vufs/colors/%d", id), nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "NOT_FOUND", errorCode(resp))
	})
}

func TestAttributeTypeRoutes_Slug(t *testing.T) {
	s := setupServer(t, false)

	code, resp := s.do(t, http.MethodPost, "/api/vufs/attribute-types", map[string]interface{}{"name": "Fabric Weight"})
	require.Equal(t, http.StatusCreated, code, resp)
	assert.Equal(t, "fabric-weight", resp["attributeType"].(map[string]interface{})["slug"])

	code, resp = s.do(t, http.MethodPost, "/api/vufs/attribute-values", map[string]interface{}{"typeSlug": "fabric-weight", "name": "Heavy"})
	require.Equal(t, http.StatusCreated, code, resp)

	code, resp = s.do(t, http.MethodGet, "/api/vufs/attribute-values?typeSlug=fabric-weight", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp["attributeValues"], 1)
}

func TestPatternRoutes_NameOnly(t *testing.T) {
	s := setupServer(t, false)

	code, resp := s.do(t, http.MethodPost, "/api/vufs/patterns", map[string]interface{}{"name": "  Stripes ", "description": "ignored"})
	require.Equal(t, http.StatusCreated, code, resp)
	pattern := resp["pattern"].(map[string]interface{})
	assert.Equal(t, "Stripes", pattern["name"])
	assert.NotContains(t, pattern, "description")
	id := idOf(t, resp, "pattern")

	t.Run("只带描述的更新视为缺少字段", func(t *testing.T) {
		code, resp := s.do(t, http.MethodPut, fmt.Sprintf("/api/vufs/patterns/%d", id), map[string]interface{}{"description": "x"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "MISSING_FIELDS", errorCode(resp))
	})

	t.Run("改名", func(t *testing.T) {
		code, resp := s.do(t, http.MethodPut, fmt.Sprintf("/api/vufs/patterns/%d", id), map[string]interface{}{"name": "Checks"})
		require.Equal(t, http.StatusOK, code, resp)
		assert.Equal(t, "Checks", resp["pattern"].(map[string]interface{})["name"])
	})
}

// ==================== Swagger ====================

func TestSwaggerDoc_MatchesRoutes(t *testing.T) {
	s := setupServer(t, false)

	code, doc := s.do(t, http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, code)
	paths, ok := doc["paths"].(map[string]interface{})
	require.True(t, ok, "doc.json 缺少 paths")

	documented := 0
	for _, op := range paths {
		documented += len(op.(map[string]interface{}))
	}

	registered := 0
	for _, route := range s.engine.Routes() {
		if !strings.HasPrefix(route.Path, "/api/vufs") {
			continue
		}
		registered++

		// gin 的 :id 对应 swagger 的 {id}
		path := pathParam.ReplaceAllString(route.Path, "{$1}")
		op, ok := paths[path].(map[string]interface{})
		if assert.True(t, ok, "文档缺少路径 %s", path) {
			assert.Contains(t, op, strings.ToLower(route.Method), "文档缺少 %s %s", route.Method, path)
		}
	}
	assert.Equal(t, registered, documented)

	t.Run("图案请求体只有名称", func(t *testing.T) {
		defs := doc["definitions"].(map[string]interface{})
		create := defs["dto.CreatePatternRequest"].(map[string]interface{})
		props := create["properties"].(map[string]interface{})
		assert.Contains(t, props, "name")
		assert.NotContains(t, props, "description")

		post := paths["/api/vufs/patterns"].(map[string]interface{})["post"].(map[string]interface{})
		body := post["parameters"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, "#/definitions/dto.CreatePatternRequest", body["schema"].(map[string]interface{})["$ref"])
	})
}

// ==================== 属性矩阵 ====================

func TestCategoryAttributes_Upsert(t *testing.T) {
	s := setupServer(t, false)

	body := map[string]interface{}{"categoryId": 5, "attributeSlug": "fit-type", "value": "Slim"}
	code, resp := s.do(t, http.MethodPost, "/api/vufs/category-attributes", body)
	require.Equal(t, http.StatusOK, code, resp)
	assert.Equal(t, true, resp["success"])

	body["value"] = "Regular"
	code, _ = s.do(t, http.MethodPost, "/api/vufs/category-attributes", body)
	require.Equal(t, http.StatusOK, code)

	code, resp = s.do(t, http.MethodGet, "/api/vufs/category-attributes", nil)
	require.Equal(t, http.StatusOK, code)
	attrs := resp["attributes"].([]interface{})
	require.Len(t, attrs, 1)
	assert.Equal(t, "Regular", attrs[0].(map[string]interface{})["value"])

	t.Run("缺少实体 ID", func(t *testing.T) {
		code, resp := s.do(t, http.MethodPost, "/api/vufs/category-attributes", map[string]interface{}{"attributeSlug": "fit-type"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.NotEmpty(t, errorCode(resp))
	})

	t.Run("删除", func(t *testing.T) {
		code, _ := s.do(t, http.MethodDelete, "/api/vufs/category-attributes/5/fit-type", nil)
		require.Equal(t, http.StatusOK, code)

		code, resp := s.do(t, http.MethodGet, "/api/vufs/category-attributes/5", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, resp["attributes"])
	})
}

// ==================== 批量导入 ====================

func TestBulk(t *testing.T) {
	s := setupServer(t, false)

	code, resp := s.do(t, http.MethodPost, "/api/vufs/bulk", map[string]interface{}{
		"type":  "color",
		"items": []string{"Red", "Red", "Blue"},
	})
	require.Equal(t, http.StatusOK, code, resp)

	result := resp["result"].(map[string]interface{})
	assert.Equal(t, float64(2), result["createdCount"])
	assert.Equal(t, float64(1), result["skippedCount"])

	code, resp = s.do(t, http.MethodPost, "/api/vufs/bulk", map[string]interface{}{
		"type":  "widgets",
		"items": []string{"A"},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "UNSUPPORTED_TYPE", errorCode(resp))
}

// ==================== 全局设置 ====================

func TestSettings(t *testing.T) {
	s := setupServer(t, false)

	code, resp := s.do(t, http.MethodPost, "/api/vufs/settings", map[string]interface{}{
		"key":   "defaultLocale",
		"value": "en-US",
	})
	require.Equal(t, http.StatusOK, code, resp)

	code, resp = s.do(t, http.MethodGet, "/api/vufs/settings/defaultLocale", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "en-US", resp["setting"].(map[string]interface{})["value"])

	code, resp = s.do(t, http.MethodGet, "/api/vufs/settings/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", errorCode(resp))

	code, resp = s.do(t, http.MethodPost, "/api/vufs/settings", map[string]interface{}{"value": 1})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "MISSING_FIELDS", errorCode(resp))
}

// ==================== 鉴权 ====================

func TestWriteRoutes_RequireAdmin(t *testing.T) {
	s := setupServer(t, true)

	adminToken, err := s.auth.IssueAccessToken(42, "alice", "admin")
	require.NoError(t, err)
	viewerToken, err := s.auth.IssueAccessToken(7, "bob", "viewer")
	require.NoError(t, err)

	body := map[string]interface{}{"name": "Navy"}

	t.Run("读接口无需令牌", func(t *testing.T) {
		code, _ := s.do(t, http.MethodGet, "/api/vufs/colors", nil)
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("缺少令牌", func(t *testing.T) {
		code, resp := s.do(t, http.MethodPost, "/api/vufs/colors", body)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "UNAUTHORIZED", errorCode(resp))
	})

	t.Run("角色不足", func(t *testing.T) {
		code, resp := s.do(t, http.MethodPost, "/api/vufs/colors", body, "Authorization", "Bearer "+viewerToken)
		assert.Equal(t, http.StatusForbidden, code)
		assert.Equal(t, "FORBIDDEN", errorCode(resp))
	})

	t.Run("管理员写入并记录审计字段", func(t *testing.T) {
		code, resp := s.do(t, http.MethodPost, "/api/vufs/colors", body, "Authorization", "Bearer "+adminToken)
		require.Equal(t, http.StatusCreated, code, resp)

		var color model.Color
		require.NoError(t, s.db.Where("name = ?", "Navy").First(&color).Error)
		assert.Equal(t, int64(42), color.CreatedBy)
		assert.Equal(t, int64(42), color.UpdatedBy)
	})
}
