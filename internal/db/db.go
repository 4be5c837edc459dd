package db

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Init(databaseURL string, maxOpen, maxIdle, maxLifetimeSeconds int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(time.Duration(maxLifetimeSeconds) * time.Second)

	return db, nil
}
