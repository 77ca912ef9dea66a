package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"vtufest/backend/config"
	"vtufest/backend/internal/api/handler"
	"vtufest/backend/internal/api/middleware"
	"vtufest/backend/internal/api/router"
	"vtufest/backend/internal/catalog"
	"vtufest/backend/internal/repository"
	"vtufest/backend/internal/service"
	"vtufest/backend/pkg/database"
	"vtufest/backend/pkg/jwt"
	applogger "vtufest/backend/pkg/logger"
	"vtufest/backend/pkg/mailer"
	"vtufest/backend/pkg/redis"
	"vtufest/backend/pkg/storage"
)

func main() {
	// 0. 本地开发读取 .env（文件不存在时忽略）
	_ = godotenv.Load()

	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：仅用于限流，失败时降级为不限流）
	var limiter middleware.RateLimiter
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，限流功能将不可用", zap.Error(err))
			rdb = nil
		} else {
			limiter = rdb
		}
	}

	// 5. 对象存储与邮件
	blobs, err := storage.NewClient(context.Background(), &cfg.Storage)
	if err != nil {
		logger.Fatal("对象存储初始化失败", zap.Error(err))
	}
	smtp := mailer.NewSMTPMailer(cfg.Mail)

	// 6. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	cat := catalog.Default()
	svc := service.NewService(cfg, repo, cat, smtp, blobs, logger)
	h := handler.NewHandler(svc, repo)
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 7. 定时清理过期的资料补全会话
	cleaner := service.NewSessionCleaner(repo, cfg.Scheduler.SessionCleanupInterval, logger)
	if err := cleaner.Start(); err != nil {
		logger.Fatal("定时任务启动失败", zap.Error(err))
	}

	// 8. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, limiter, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if err := cleaner.Stop(); err != nil {
		logger.Error("定时任务关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
