package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// 班次排班系统的全部表结构随二进制一起发布
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 启动时把排班库结构升到最新版本
// 已是最新版本时不做任何事
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("读取内嵌迁移脚本失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("创建 postgres 迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("升级排班库结构失败: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		logger.Warn("排班库迁移处于 dirty 状态，需人工介入", zap.Uint("version", version))
	} else {
		logger.Info("排班库结构已是最新", zap.Uint("version", version))
	}

	return nil
}
