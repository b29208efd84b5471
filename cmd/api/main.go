package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zhouzirui/mindcare/backend/internal/analysis/category"
	"github.com/zhouzirui/mindcare/backend/internal/auth"
	"github.com/zhouzirui/mindcare/backend/internal/config"
	"github.com/zhouzirui/mindcare/backend/internal/db"
	"github.com/zhouzirui/mindcare/backend/internal/handler"
	"github.com/zhouzirui/mindcare/backend/internal/logger"
	"github.com/zhouzirui/mindcare/backend/internal/model/disease"
	"github.com/zhouzirui/mindcare/backend/internal/model/profile"
	"github.com/zhouzirui/mindcare/backend/internal/service/ai"
	"github.com/zhouzirui/mindcare/backend/internal/service/chat"
	"github.com/zhouzirui/mindcare/backend/internal/service/prediction"
	"github.com/zhouzirui/mindcare/backend/internal/service/resolver"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	base, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = base.Sync() }()
	sugar := base.Sugar()

	if envErr != nil {
		sugar.Infow("no .env file loaded, continuing with system environment variables only", "reason", envErr)
	}

	profiles, closeProfiles := buildProfileDirectory(ctx, cfg.Profile, sugar)
	defer closeProfiles()

	authService, err := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		sugar.Fatalw("failed to initialize auth service", "error", err)
	}

	// 令牌中的 name 优先于资料表
	directory := profile.NewClaimsDirectory(profiles)
	chatService := chat.NewService(buildResolver(ctx, cfg, sugar), directory, sugar.Named("chat"))

	router := handler.NewRouter(handler.Dependencies{
		Chat:       chatService,
		Diseases:   disease.NewMemoryStore(disease.Seed()),
		Prediction: prediction.NewService(nil),
		Verifier:   authService,
		SignInURL:  cfg.Auth.SignInURL,
		Logger:     sugar.Named("http"),
	})

	startServer(ctx, cfg.Server, router, sugar)
}

// buildResolver 选择回复策略：配置了 Ark 模型且模式为 delegated 时走大模型，否则使用本地规则。
func buildResolver(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) resolver.Resolver {
	local := resolver.NewLocal(category.DefaultTable(), nil)

	if cfg.Chat.Mode == config.ChatModeLocal {
		logger.Infow("chat mode set to local, using keyword rules")
		return local
	}
	if !cfg.AI.Enabled() {
		logger.Warnw("Ark 凭证未配置，使用本地规则回复")
		return local
	}

	aiService, err := ai.NewService(ctx, cfg.AI, logger.Named("ai"))
	if err != nil {
		logger.Warnw("failed to initialize AI service, falling back to local rules - 请检查 Ark 模型相关环境变量", "error", err)
		return local
	}

	logger.Infow("AI service initialized successfully", "model", cfg.AI.Model, "timeout", cfg.Chat.ReplyTimeout)
	return resolver.NewDelegated(aiService, cfg.Chat.ReplyTimeout, logger.Named("resolver"))
}

func buildProfileDirectory(ctx context.Context, cfg config.ProfileConfig, logger *zap.SugaredLogger) (profile.Directory, func()) {
	if cfg.DatabaseURL == "" {
		logger.Infow("PROFILE_DATABASE_URL not set, using in-memory profile directory")
		return profile.NewMemoryDirectory(), func() {}
	}

	pg, err := db.NewPostgres(ctx, cfg)
	if err != nil {
		logger.Fatalw("failed to connect profile database", "error", err)
	}
	if err := pg.EnsureSchema(ctx); err != nil {
		pg.Close()
		logger.Fatalw("failed to prepare profile schema", "error", err)
	}

	logger.Infow("profile directory backed by postgres")
	return pg, pg.Close
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *zap.SugaredLogger) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Infow("MindCare backend listening", "addr", addr)
	if err := runServer(ctx, srv); err != nil {
		logger.Fatalw("server error", "error", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
