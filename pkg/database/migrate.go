package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 将教务库结构升级到最新版本
// 迁移脚本随二进制嵌入发布，覆盖学员/教师/课程/班级/排课/考勤/成绩各表
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("加载迁移脚本失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	err = m.Up()
	upToDate := errors.Is(err, migrate.ErrNoChange)
	if err != nil && !upToDate {
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	version, dirty, _ := m.Version()
	switch {
	case dirty:
		logger.Warn("教务库迁移处于 dirty 状态，需人工介入", zap.Uint("version", version))
	case upToDate:
		logger.Info("教务库结构已是最新", zap.Uint("version", version))
	default:
		logger.Info("教务库迁移完成", zap.Uint("version", version))
	}

	return nil
}
