package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"question-bank-api/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func dsnFromEnv() string {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USERNAME"),
		os.Getenv("DB_PASSWORD"),
		host,
		port,
		os.Getenv("DB_DATABASE"),
	)
}

func InitDB() {
	// In production, suppress SQL logs unless explicitly re-enabled via DEBUG_SQL=true.
	logLevel := logger.Info
	if strings.ToLower(os.Getenv("ENVIRONMENT")) == "production" &&
		strings.ToLower(os.Getenv("DEBUG_SQL")) != "true" {
		logLevel = logger.Warn
	}

	var err error
	DB, err = gorm.Open(mysql.Open(dsnFromEnv()), &gorm.Config{
		Logger: logger.New(
			log.New(LogWriter, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: logLevel},
		),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := DB.DB()
	if err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	// Schema is normally managed by migrations; AUTO_MIGRATE=true is a
	// convenience for fresh development databases.
	if strings.ToLower(os.Getenv("AUTO_MIGRATE")) == "true" {
		if err := DB.AutoMigrate(
			&models.User{},
			&models.Paper{},
			&models.Question{},
			&models.LedgerEntry{},
		); err != nil {
			log.Fatal("Failed to migrate database schema:", err)
		}
	}

	log.Println("Database connected successfully")
}
