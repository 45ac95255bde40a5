package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go-inventory-ledger/internal/logger"
	"go-inventory-ledger/internal/model"
)

// Options configures the Postgres connection.
type Options struct {
	DSN           string
	LogLevel      string
	SlowThreshold time.Duration
}

func ConnectDB(opts Options, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  opts.DSN,
		PreferSimpleProtocol: true, // Disables implicit prepared statements for pgbouncer/Supabase transaction mode
	}), &gorm.Config{
		Logger:      logger.NewGormLogger(log, logger.GormLevel(opts.LogLevel), opts.SlowThreshold),
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: pool: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("database connection established")
	return db, nil
}

// Models lists every table owned by the application, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.Privilege{},
		&model.Role{},
		&model.User{},
		&model.Product{},
		&model.Supplier{},
		&model.Purchase{},
		&model.Sale{},
		&model.ProductHistory{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("database: migrate: %w", err)
	}
	return nil
}
