package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the configured database. SQLite is the default (the venue
// runs a single binary next to its db file); set DB_DRIVER=mysql with
// DB_DSN for a shared server.
func InitDB() (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch os.Getenv("DB_DRIVER") {
	case "mysql":
		dsn := os.Getenv("DB_DSN")
		if dsn == "" {
			return nil, fmt.Errorf("DB_DSN is required when DB_DRIVER=mysql")
		}
		return gorm.Open(mysql.Open(dsn), gormCfg)
	case "", "sqlite":
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "kendo_bar.db"
		}
		return gorm.Open(sqlite.Open(path), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", os.Getenv("DB_DRIVER"))
	}
}
