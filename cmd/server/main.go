package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jacksen-ng/shift-agent/config"
	"github.com/jacksen-ng/shift-agent/internal/api/handler"
	"github.com/jacksen-ng/shift-agent/internal/api/router"
	"github.com/jacksen-ng/shift-agent/internal/oracle"
	"github.com/jacksen-ng/shift-agent/internal/repository"
	"github.com/jacksen-ng/shift-agent/internal/service"
	"github.com/jacksen-ng/shift-agent/pkg/database"
	"github.com/jacksen-ng/shift-agent/pkg/jwt"
	applogger "github.com/jacksen-ng/shift-agent/pkg/logger"
	"github.com/jacksen-ng/shift-agent/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
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
	db, err := database.NewDB(&cfg.Database, logger)
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

	// 4. 连接 Redis（排班窗口租约依赖它，连接失败直接退出）
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Fatal("Redis 连接失败", zap.Error(err))
	}

	// 5. 初始化 JWT 校验器与 Oracle 客户端
	verifier := jwt.NewVerifier(&cfg.Auth)
	oracleClient := oracle.NewGeminiClient(&cfg.Gemini, logger)

	// 6. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, rdb, oracleClient, logger)
	h := handler.NewHandler(svc)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, verifier, rdb, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // 生成循环含多次模型调用，写超时放宽
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	sqlDB.Close()

	// 关闭 Redis 连接
	rdb.Close()

	logger.Info("服务器已关闭")
}
