package db

import (
	"fmt"
	"time"

	"github.com/skillmastery/server/config"
	dbmysql "github.com/skillmastery/server/db/mysql"
	dbpostgres "github.com/skillmastery/server/db/postgres"
	dbsqlite "github.com/skillmastery/server/db/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	ModeSQLite   = "sqlite"
	ModeMySQL    = "mysql"
	ModePostgres = "postgres"
)

// Open returns a *gorm.DB for the configured database mode.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gcfg := gormConfig(cfg.LogQueries)
	switch cfg.Mode {
	case ModeSQLite:
		return dbsqlite.Open(cfg.SQLitePath, gcfg)
	case ModeMySQL:
		if cfg.MySQLDSN == "" {
			return nil, fmt.Errorf("db: database.mysql_dsn is required for mode %q", cfg.Mode)
		}
		return dbmysql.Open(cfg.MySQLDSN, cfg.MaxOpen, cfg.MaxIdle, cfg.MaxLife, gcfg)
	case ModePostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("db: database.postgres_dsn is required for mode %q", cfg.Mode)
		}
		return dbpostgres.Open(cfg.PostgresDSN, cfg.MaxOpen, cfg.MaxIdle, cfg.MaxLife, gcfg)
	default:
		return nil, fmt.Errorf("db: unknown mode %q", cfg.Mode)
	}
}

func gormConfig(logQueries bool) *gorm.Config {
	level := logger.Silent
	if logQueries {
		level = logger.Info
	}
	return &gorm.Config{
		Logger:  logger.Default.LogMode(level),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}
}
