package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"vufs_catalog_v1/internal/config"
	"vufs_catalog_v1/pkg/apperr"
)

const tokenSubjectAccess = "access"

// ==================== Claims 定义 ====================

// UserClaims 用户声明
type UserClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// ==================== Authenticator ====================

// Authenticator 签发与校验 access token，密钥来自配置
type Authenticator struct {
	secret    []byte
	issuer    string
	ttl       time.Duration
	adminRole string
}

// NewAuthenticator 创建 JWT 认证器
func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	return &Authenticator{
		secret:    []byte(cfg.JWTSecret),
		issuer:    cfg.Issuer,
		ttl:       cfg.AccessTokenTTL,
		adminRole: cfg.AdminRole,
	}
}

// AdminRole 写操作所需角色
func (a *Authenticator) AdminRole() string {
	return a.adminRole
}

// IssueAccessToken 生成 Access Token
func (a *Authenticator) IssueAccessToken(userID int64, username, role string) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.issuer,
			Subject:   tokenSubjectAccess,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ParseToken 校验签名、签发者与有效期
func (a *Authenticator) ParseToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return a.secret, nil
	}, jwt.WithIssuer(a.issuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject != tokenSubjectAccess {
		return nil, errors.New("not an access token")
	}
	return claims, nil
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
)

// JWTAuth 要求 Bearer access token
func (a *Authenticator) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperr.New(apperr.KindUnauthorized, apperr.CodeUnauthorized, "missing authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, apperr.New(apperr.KindUnauthorized, apperr.CodeUnauthorized, "authorization header must be Bearer {token}"))
			return
		}

		claims, err := a.ParseToken(parts[1])
		if err != nil {
			abortWithError(c, apperr.New(apperr.KindUnauthorized, apperr.CodeUnauthorized, "invalid or expired token"))
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}

// RequireRole 角色校验，需在 JWTAuth 之后
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetUserRole(c)
		if role == "" {
			abortWithError(c, apperr.New(apperr.KindUnauthorized, apperr.CodeUnauthorized, "no role in token"))
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		abortWithError(c, apperr.New(apperr.KindForbidden, apperr.CodeForbidden, "insufficient role"))
	}
}

// ==================== 辅助函数 ====================

// GetUserID 从 Context 获取用户 ID
func GetUserID(c *gin.Context) int64 {
	return c.GetInt64(ContextKeyUserID)
}

// GetUsername 从 Context 获取用户名
func GetUsername(c *gin.Context) string {
	return c.GetString(ContextKeyUsername)
}

// GetUserRole 从 Context 获取用户角色
func GetUserRole(c *gin.Context) string {
	return c.GetString(ContextKeyRole)
}
