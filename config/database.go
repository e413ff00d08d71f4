package config

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database from DB_URL and hands the caller the
// handle. The caller owns the lifecycle: open at startup, close the
// underlying sql.DB at shutdown. There is no package-level handle.
func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DB_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}
