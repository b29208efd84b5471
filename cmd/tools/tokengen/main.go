package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/mindcare/backend/internal/auth"
	"github.com/zhouzirui/mindcare/backend/internal/config"
	"github.com/zhouzirui/mindcare/backend/internal/db"
	"github.com/zhouzirui/mindcare/backend/internal/model/profile"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] 无法加载 .env，改用系统环境变量: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	userID := flag.String("user", "", "用户 ID (写入 sub)")
	name := flag.String("name", "", "显示名，配置了 PROFILE_DATABASE_URL 时同时写入用户资料表")
	ttl := flag.Duration("ttl", cfg.Auth.TokenTTL, "令牌有效期")
	timeout := flag.Duration("timeout", 10*time.Second, "数据库操作超时时间")

	flag.Parse()

	if *userID == "" {
		flag.Usage()
		log.Fatal("请通过 -user 指定用户 ID")
	}

	svc, err := auth.NewService(cfg.Auth.JWTSecret, *ttl)
	if err != nil {
		log.Fatalf("初始化鉴权服务失败: %v", err)
	}

	token, err := svc.IssueToken(*userID, *name)
	if err != nil {
		log.Fatalf("签发令牌失败: %v", err)
	}

	if *name != "" && cfg.Profile.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()

		if err := saveProfile(ctx, cfg.Profile, profile.Profile{UserID: *userID, DisplayName: *name}); err != nil {
			log.Fatalf("写入用户资料失败: %v", err)
		}
		log.Printf("已写入用户资料: %s -> %s", *userID, *name)
	}

	log.Printf("令牌过期时间: %s", token.ExpiresAt.Format(time.RFC3339))
	fmt.Println(token.Value)
}

func saveProfile(ctx context.Context, cfg config.ProfileConfig, p profile.Profile) error {
	pg, err := db.NewPostgres(ctx, cfg)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := pg.EnsureSchema(ctx); err != nil {
		return err
	}
	return pg.UpsertProfile(ctx, p)
}
