package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vufs_catalog_v1/internal/api/dto"
	"vufs_catalog_v1/internal/config"
	"vufs_catalog_v1/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Enabled:        true,
		JWTSecret:      "test-secret",
		Issuer:         "vufs-test",
		AdminRole:      "admin",
		AccessTokenTTL: time.Hour,
	}
}

func performRequest(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorBody {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

// ==================== 请求 ID / 日志 ====================

func TestRequestIDAndLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestID(), Logger(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := performRequest(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	generated := w.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	w = performRequest(r, http.MethodGet, "/ping", map[string]string{HeaderRequestID: "req-123"})
	assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-123", entries[1].ContextMap()["request_id"])
	assert.Equal(t, int64(http.StatusOK), entries[1].ContextMap()["status"])
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := performRequest(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	assert.Equal(t, "internal server error", body.Message)
}

// ==================== JWT ====================

func TestAuthenticator_IssueAndParse(t *testing.T) {
	auth := NewAuthenticator(testAuthConfig())

	token, err := auth.IssueAccessToken(7, "editor", "admin")
	require.NoError(t, err)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	other := testAuthConfig()
	other.Issuer = "someone-else"
	foreign, err := NewAuthenticator(other).IssueAccessToken(7, "editor", "admin")
	require.NoError(t, err)
	_, err = auth.ParseToken(foreign)
	assert.Error(t, err)

	wrongKey := testAuthConfig()
	wrongKey.JWTSecret = "other-secret"
	forged, err := NewAuthenticator(wrongKey).IssueAccessToken(7, "editor", "admin")
	require.NoError(t, err)
	_, err = auth.ParseToken(forged)
	assert.Error(t, err)

	expiredCfg := testAuthConfig()
	expiredCfg.AccessTokenTTL = -time.Minute
	expired, err := NewAuthenticator(expiredCfg).IssueAccessToken(7, "editor", "admin")
	require.NoError(t, err)
	_, err = auth.ParseToken(expired)
	assert.Error(t, err)
}

func TestJWTAuthAndRequireRole(t *testing.T) {
	auth := NewAuthenticator(testAuthConfig())
	r := gin.New()
	r.POST("/write", auth.JWTAuth(), RequireRole(auth.AdminRole()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetUserID(c)})
	})

	adminToken, _ := auth.IssueAccessToken(1, "root", "admin")
	viewerToken, _ := auth.IssueAccessToken(2, "guest", "viewer")

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"缺少认证头", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"格式错误", "Token abc", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"无效 Token", "Bearer not-a-jwt", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"角色不足", "Bearer " + viewerToken, http.StatusForbidden, "FORBIDDEN"},
		{"管理员", "Bearer " + adminToken, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			w := performRequest(r, http.MethodPost, "/write", headers)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
			}
		})
	}
}

// ==================== 审计 ====================

func setupAuditTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, RegisterAuditCallbacks(db))
	require.NoError(t, db.AutoMigrate(&model.Color{}))
	return db
}

func TestAuditCallbacks(t *testing.T) {
	db := setupAuditTestDB(t)
	ctx := WithAuditInfo(context.Background(), 42, "editor")

	color := &model.Color{Name: "Red"}
	require.NoError(t, db.WithContext(ctx).Create(color).Error)
	assert.Equal(t, int64(42), color.CreatedBy)
	assert.Equal(t, int64(42), color.UpdatedBy)

	other := WithAuditInfo(context.Background(), 7, "reviewer")
	require.NoError(t, db.WithContext(other).Model(&model.Color{}).
		Where("id = ?", color.ID).
		Updates(map[string]interface{}{"hex": "#FF0000"}).Error)

	var got model.Color
	require.NoError(t, db.First(&got, color.ID).Error)
	assert.Equal(t, int64(42), got.CreatedBy)
	assert.Equal(t, int64(7), got.UpdatedBy)

	// 未登录不填充
	anon := &model.Color{Name: "Blue"}
	require.NoError(t, db.Create(anon).Error)
	assert.Zero(t, anon.CreatedBy)
}

func TestAuditContext(t *testing.T) {
	auth := NewAuthenticator(testAuthConfig())
	token, _ := auth.IssueAccessToken(9, "root", "admin")

	var seen int64
	r := gin.New()
	r.GET("/me", auth.JWTAuth(), AuditContext(), func(c *gin.Context) {
		seen = GetAuditUserID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := performRequest(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(9), seen)
}
