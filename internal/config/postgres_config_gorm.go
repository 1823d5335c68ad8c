package config

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenPostgresGORM opens and pings a configured *gorm.DB using the gorm postgres driver.
func (c Config) OpenPostgresGORM(ctx context.Context) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(c.PostgresDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	configurePool(sqlDB)

	if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
		_ = sqlDB.Close() // the ping error is the one worth reporting
		return nil, fmt.Errorf("pinging database: %w", pingErr)
	}

	return db, nil
}
