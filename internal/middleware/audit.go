package middleware

import (
	"context"
	"reflect"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==================== 审计上下文 ====================

type auditContextKey struct{}

// AuditInfo 审计信息
type AuditInfo struct {
	UserID   int64
	Username string
}

// WithAuditInfo 注入审计信息到 context
func WithAuditInfo(ctx context.Context, userID int64, username string) context.Context {
	return context.WithValue(ctx, auditContextKey{}, &AuditInfo{
		UserID:   userID,
		Username: username,
	})
}

// GetAuditUserID 从 context 获取审计用户 ID，未登录为 0
func GetAuditUserID(ctx context.Context) int64 {
	if info, ok := ctx.Value(auditContextKey{}).(*AuditInfo); ok {
		return info.UserID
	}
	return 0
}

// AuditContext 将 JWT 中的用户写入 request context，供 GORM 回调填充 created_by / updated_by
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := GetUserID(c); userID > 0 {
			ctx := WithAuditInfo(c.Request.Context(), userID, GetUsername(c))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// ==================== GORM 回调 ====================

// RegisterAuditCallbacks 注册审计回调
func RegisterAuditCallbacks(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register("audit:create", auditCreate); err != nil {
		return err
	}
	return db.Callback().Update().Before("gorm:update").Register("audit:update", auditUpdate)
}

func auditCreate(tx *gorm.DB) {
	userID := auditUserID(tx)
	if userID == 0 {
		return
	}
	fillZeroField(tx, "CreatedBy", userID)
	fillZeroField(tx, "UpdatedBy", userID)
}

// auditUpdate Updates(map) 与 Save(struct) 都通过 SetColumn 生效
func auditUpdate(tx *gorm.DB) {
	userID := auditUserID(tx)
	if userID == 0 || tx.Statement.Schema == nil {
		return
	}
	if tx.Statement.Schema.LookUpField("UpdatedBy") == nil {
		return
	}
	tx.Statement.SetColumn("UpdatedBy", userID, true)
}

func auditUserID(tx *gorm.DB) int64 {
	if tx.Statement.Context == nil {
		return 0
	}
	return GetAuditUserID(tx.Statement.Context)
}

// fillZeroField 仅填充零值字段，支持批量插入
func fillZeroField(tx *gorm.DB, fieldName string, value int64) {
	if tx.Statement.Schema == nil {
		return
	}
	field := tx.Statement.Schema.LookUpField(fieldName)
	if field == nil {
		return
	}

	ctx := tx.Statement.Context
	rv := tx.Statement.ReflectValue
	switch rv.Kind() {
	case reflect.Struct:
		if _, isZero := field.ValueOf(ctx, rv); isZero {
			_ = field.Set(ctx, rv, value)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			elem := reflect.Indirect(rv.Index(i))
			if _, isZero := field.ValueOf(ctx, elem); isZero {
				_ = field.Set(ctx, elem, value)
			}
		}
	}
}
