package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"vufs_catalog_v1/internal/config"
	"vufs_catalog_v1/internal/middleware"
)

// 签发 access token，供运维在开启 auth 后调用写接口
//
//	go run ./cmd/token --user-id 1 --username ops
func main() {
	userID := pflag.Int64("user-id", 1, "写入审计字段的用户 ID")
	username := pflag.String("username", "admin", "用户名")
	role := pflag.String("role", "", "角色，默认取 auth.admin_role")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if cfg.Auth.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "auth.jwt_secret 未配置")
		os.Exit(1)
	}

	if *role == "" {
		*role = cfg.Auth.AdminRole
	}

	token, err := middleware.NewAuthenticator(cfg.Auth).IssueAccessToken(*userID, *username, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "签发失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
