package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/voz-urbana/api-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB connects to Postgres and migrates the schema. TranslateError is on
// so unique-index violations surface as gorm.ErrDuplicatedKey, which the
// like/attendance toggles rely on.
func InitDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Report{},
		&models.Comment{},
		&models.Like{},
		&models.Event{},
		&models.EventParticipant{},
		&models.EventPhoto{},
	); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database schema")
	}

	return db
}
