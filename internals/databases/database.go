package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"medaid_backend/internals/configs"
	caseModel "medaid_backend/internals/features/cases/cases/model"
	donationModel "medaid_backend/internals/features/donations/donations/model"
	notifModel "medaid_backend/internals/features/home/notifications/model"
	userModel "medaid_backend/internals/features/users/user/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB(cfg configs.Config) *gorm.DB {
	log.Println("🔌 Connecting to PostgreSQL...")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=medaid&options=-c statement_timeout=5000",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			configs.GetEnv("DB_PORT", "5432"),
			os.Getenv("DB_NAME"),
			cfg.DBSSLMode,
		)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: configs.NewGormLogger(cfg.SlowSQL, cfg.LogSQL),
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
	return db
}

func TunePool(db *gorm.DB, cfg configs.Config) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("[WARN] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpen)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdle)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// AutoMigrate creates or updates every table the API writes to.
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Printf("[WARN] pgcrypto extension: %v", err)
	}
	err := db.AutoMigrate(
		&userModel.DonorModel{},
		&userModel.VolunteerModel{},
		&userModel.AdminModel{},
		&caseModel.CaseModel{},
		&caseModel.CaseSequence{},
		&donationModel.DonationModel{},
		&donationModel.DonorCaseLink{},
		&notifModel.NotificationModel{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Println("✅ Schema migrated.")
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
