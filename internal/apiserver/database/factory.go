package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pusdatin/simontok/internal/common/cnst"
	"github.com/pusdatin/simontok/internal/common/config"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDatabase opens a database based on configuration, migrates the schema
// and aligns the identifier counters with any pre-existing rows.
func NewDatabase(cfg *config.DatabaseConfig) (Database, error) {
	var dialector gorm.Dialector
	switch cfg.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, sslMode(cfg))
		dialector = postgres.Open(dsn)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
		dialector = mysql.Open(dsn)
	case "sqlite":
		if !strings.HasPrefix(cfg.DBName, ":") && !strings.HasPrefix(cfg.DBName, "file:") {
			if err := os.MkdirAll(filepath.Dir(cfg.DBName), 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.DBName)
	default:
		return nil, fmt.Errorf("%w: %s", cnst.ErrUnsupportedDatabase, cfg.Type)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Type == "sqlite" {
		// A pooled in-memory sqlite would hand every connection its own
		// empty database.
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := gormDB.AutoMigrate(
		&Office{}, &User{}, &Personnel{}, &Education{}, &FunctionalGrade{},
		&Posting{}, &Category{}, &DeviceType{}, &CommDevice{}, &CryptoDevice{},
		&SystemType{}, &SystemRecord{}, &Distribution{}, &Counter{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	d := &DB{db: gormDB}
	if err := d.SyncCounters(context.Background()); err != nil {
		return nil, err
	}
	return d, nil
}

func sslMode(cfg *config.DatabaseConfig) string {
	if cfg.SSLMode == "" {
		return "disable"
	}
	return cfg.SSLMode
}
