package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/john9012002/DoAnChuyenNganh/pkg/config"
)

// Connect opens the Postgres connection, retrying indefinitely with
// exponential backoff until the database accepts connections. The delay
// starts at RetryBaseDelay, doubles on each failure and is capped at
// RetryMaxDelay. Startup is the only place that blocks on the database;
// request handlers receive an already-open handle.
func Connect(dbConfig *config.DBConfig, log *zap.Logger) *gorm.DB {
	pgConfig := postgres.Config{
		DSN:                  dbConfig.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	delay := dbConfig.RetryBaseDelay
	for attempt := 1; ; attempt++ {
		db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
			Logger: logger.Default.LogMode(dbConfig.LogLevel),
		})
		if err == nil {
			if sqlDB, pingErr := db.DB(); pingErr == nil {
				if pingErr = sqlDB.Ping(); pingErr == nil {
					sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
					sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
					sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)
					log.Info("Database connected successfully",
						zap.Int("attempt", attempt))
					return db
				}
				err = pingErr
			} else {
				err = pingErr
			}
		}

		log.Warn("Database connection failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("next_retry_in", delay),
			zap.Error(err))
		time.Sleep(delay)

		delay *= 2
		if delay > dbConfig.RetryMaxDelay {
			delay = dbConfig.RetryMaxDelay
		}
	}
}

// Migrate runs migrations for the provided models
func Migrate(db *gorm.DB, models ...interface{}) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return nil
}

// Ping reports whether the underlying connection pool is reachable.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
