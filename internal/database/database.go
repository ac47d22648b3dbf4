package database

import (
	"fmt"
	"time"

	"github.com/hillcrest-academy/core/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the MySQL connection and runs migrations.
func Connect(dsn string, dev bool) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if dev {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Migrate runs auto-migration for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.AdminModel{},
		&models.AdminSession{},
		&models.NewsModel{},
		&models.EventModel{},
		&models.GalleryModel{},
		&models.ImageModel{},
		&models.ApplicantModel{},
	); err != nil {
		return err
	}

	// Image titles are unique case-sensitively ("Hero" and "hero" are
	// distinct records). MySQL's default utf8mb4 collation folds case on
	// both the equality check and the unique index, so the column needs a
	// binary collation there. SQLite compares bytes already.
	if db.Dialector.Name() == "mysql" {
		if err := db.Exec(
			"ALTER TABLE images MODIFY title VARCHAR(191) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
		).Error; err != nil {
			return fmt.Errorf("set images.title collation: %w", err)
		}
	}
	return nil
}
